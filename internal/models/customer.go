package models

// Customer places orders. Email is unique.
type Customer struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:120;not null" json:"name"`
	Email string `gorm:"uniqueIndex;size:120;not null" json:"email"`
}

const (
	CustomerNameMaxLen  = 120
	CustomerEmailMaxLen = 120
)
