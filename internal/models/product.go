package models

// ProductStatusAvailable is assigned when a product is created without a status.
const ProductStatusAvailable = "available"

const (
	ProductNameMinLen        = 2
	ProductNameMaxLen        = 100
	ProductStatusMaxLen      = 20
	ProductDescriptionMaxLen = 255
	ProductSupplierMaxLen    = 100
)

// Product is a sellable item, optionally filed under a Category.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Status      string    `gorm:"size:20;default:available" json:"status"`
	Description *string   `gorm:"size:255" json:"description"`
	Supplier    *string   `gorm:"size:100" json:"supplier"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
}

// HasCategory reports whether the product references a category.
func (p *Product) HasCategory() bool {
	return p.CategoryID != nil
}
