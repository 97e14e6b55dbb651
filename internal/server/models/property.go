package models

import "time"

type Property struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	PetsAllowed string    `json:"petsAllowed"`
	Amenities   []string  `json:"amenities"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`

	// Owner and Reviews are filled by listing and detail queries only.
	Owner   *PersonName `json:"user,omitempty"`
	Reviews []*Review   `json:"reviews,omitempty"`
}

// PersonName is the public projection of a user shown next to listings.
type PersonName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
}

type Review struct {
	ID         int64       `json:"id"`
	PropertyID int64       `json:"propertyId"`
	UserID     int64       `json:"userId"`
	Rating     int         `json:"rating"`
	Comment    string      `json:"comment"`
	CreatedAt  time.Time   `json:"createdAt"`
	Reviewer   *PersonName `json:"user,omitempty"`
}
