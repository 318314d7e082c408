package model

// Customer is deduplicated by case-insensitive name; the phone number is
// last-write-wins across repeat sales.
type Customer struct {
	ID    string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Phone string `gorm:"type:varchar(20)" json:"phone,omitempty"`
}
