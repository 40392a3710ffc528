package models

// User represents an authenticated customer.
type User struct {
	BaseModel
	Name         string  `json:"name"`
	Email        string  `gorm:"uniqueIndex" json:"email"`
	Phone        string  `json:"phone"`
	PasswordHash string  `json:"-"`
	Orders       []Order `json:"orders,omitempty"`
}
