package models

// Category groups products. Names are unique across all categories.
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"uniqueIndex;size:80;not null" json:"name"`
	Description *string `gorm:"size:255" json:"description"`
}

// Field limits shared by validation and schema.
const (
	CategoryNameMaxLen        = 80
	CategoryDescriptionMaxLen = 255
)

// DefaultCategories are inserted once, when the categories table is empty.
var DefaultCategories = []string{"Elektronika", "Jedzenie", "Ubrania", "Inne"}
