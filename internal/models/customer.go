package models

// Customer represents a registered customer. The ID is client-supplied at
// registration and records are immutable afterwards.
type Customer struct {
	ID        int    `json:"id" gorm:"primaryKey" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	IsPremium bool   `json:"is_premium"`
}
