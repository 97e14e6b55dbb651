package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/petswap/internal/server/models"
)

type registerRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userView is the identity returned alongside a token.
type userView struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type meResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone"`
}

func newUserView(u *models.User) userView {
	return userView{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

type propertyRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Bedrooms    flexInt  `json:"bedrooms"`
	Bathrooms   flexInt  `json:"bathrooms"`
	PetsAllowed string   `json:"petsAllowed"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// propertyDetail always renders reviews, even when there are none.
type propertyDetail struct {
	*models.Property
	Reviews []*models.Review `json:"reviews"`
}

type bookingRequest struct {
	PropertyID flexInt `json:"propertyId"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// flexInt accepts a JSON number or a numeric string, as form fields often
// arrive as strings.
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}

	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*n = 0
			return nil
		}
	} else {
		raw = string(b)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %q", raw)
	}
	*n = flexInt(v)
	return nil
}

var dateLayouts = []string{time.RFC3339, time.DateOnly}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
