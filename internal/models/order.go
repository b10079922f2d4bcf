package models

import "time"

// DefaultOrderQuantity applies when an order is created without a quantity.
const DefaultOrderQuantity = 1

// Order links one Product to one Customer.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product"`
	ProductID  uint      `gorm:"index;not null" json:"product_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	// OrderDate is set once, in UTC, when the order is created.
	OrderDate time.Time `gorm:"not null" json:"order_date"`
}
