package models

import "time"

type Booking struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyId"`
	UserID     int64     `json:"userId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	CreatedAt  time.Time `json:"createdAt"`

	Property *Property `json:"property,omitempty"`
}
