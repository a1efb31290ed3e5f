package models

import "strings"

type Property struct {
	ID          int     `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name" validate:"required"`
	Price       float64 `bson:"price" json:"price" validate:"gt=0"`
	Location    string  `bson:"location" json:"location" validate:"required"`
	Image       string  `bson:"image" json:"image" validate:"required"`
	Description string  `bson:"description" json:"description" validate:"required"`
	OwnerEmail  string  `bson:"owner_email" json:"owner_email" validate:"required"`
	OwnerName   string  `bson:"owner_name" json:"owner_name" validate:"required"`
}

// PropertyForm is the raw admin form input for a new listing. A nil field
// means the form did not carry that key at all.
type PropertyForm struct {
	Name        *string
	Price       *string
	Location    *string
	Image       *string
	Description *string
	OwnerEmail  *string
	OwnerName   *string
}

// Trimmed copies the text fields with surrounding whitespace removed.
func (p Property) Trimmed() Property {
	p.Name = strings.TrimSpace(p.Name)
	p.Location = strings.TrimSpace(p.Location)
	p.Image = strings.TrimSpace(p.Image)
	p.Description = strings.TrimSpace(p.Description)
	p.OwnerEmail = strings.TrimSpace(p.OwnerEmail)
	p.OwnerName = strings.TrimSpace(p.OwnerName)
	return p
}
