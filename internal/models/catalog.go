package models

type Category struct {
	BaseModel
	Name     string    `json:"name"`
	Slug     string    `gorm:"uniqueIndex" json:"slug"`
	Image    string    `json:"image"`
	IsActive bool      `json:"is_active"`
	Products []Product `json:"products,omitempty"`
}

type Brand struct {
	BaseModel
	Name     string    `json:"name"`
	Slug     string    `gorm:"uniqueIndex" json:"slug"`
	Image    string    `json:"image"`
	IsActive bool      `json:"is_active"`
	Products []Product `json:"products,omitempty"`
}
