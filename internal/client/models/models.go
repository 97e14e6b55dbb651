// Package models defines the client-side view of PetSwap API resources.
package models

import "time"

// User is the identity returned by login, registration and /me.
// Phone is only populated by /me.
type User struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
}

// DisplayName returns "First Last", falling back to the email.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// AuthResponse is the body of a successful login or registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
}

type PersonName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
}

type Review struct {
	ID        int64       `json:"id"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
	Reviewer  *PersonName `json:"user,omitempty"`
}

type Property struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	PetsAllowed string      `json:"petsAllowed"`
	Amenities   []string    `json:"amenities"`
	Images      []string    `json:"images"`
	CreatedAt   time.Time   `json:"createdAt"`
	Owner       *PersonName `json:"user,omitempty"`
	Reviews     []Review    `json:"reviews,omitempty"`
}

type PropertyInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	PetsAllowed string   `json:"petsAllowed"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

type ImageUpload struct {
	Key string `json:"key"`
	URL string `json:"uploadUrl"`
}

type Booking struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	CreatedAt  time.Time `json:"createdAt"`
	Property   *Property `json:"property,omitempty"`
}

type BookingRequest struct {
	PropertyID int64  `json:"propertyId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}
