package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/petswap/internal/server/auth"
	"github.com/dmitrijs2005/petswap/internal/server/models"
	"github.com/dmitrijs2005/petswap/internal/server/services"
)

type BookingService interface {
	List(ctx context.Context, userID int64) ([]*models.Booking, error)
	Create(ctx context.Context, userID int64, in services.BookingInput) (*models.Booking, error)
}

type BookingHandler struct {
	bookings BookingService
}

func NewBookingHandler(bookings BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func (h *BookingHandler) HandleList(w http.ResponseWriter, r *http.Request) error {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return ErrUnauthorized("")
	}

	items, err := h.bookings.List(r.Context(), userID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*models.Booking{}
	}

	RespondWithJSON(w, http.StatusOK, items)
	return nil
}

func (h *BookingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) error {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return ErrUnauthorized("")
	}

	var req bookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	in := services.BookingInput{PropertyID: int64(req.PropertyID)}
	if req.StartDate != "" {
		t, ok := parseDate(req.StartDate)
		if !ok {
			return ErrBadRequest("Invalid start date")
		}
		in.StartDate = t
	}
	if req.EndDate != "" {
		t, ok := parseDate(req.EndDate)
		if !ok {
			return ErrBadRequest("Invalid end date")
		}
		in.EndDate = t
	}

	b, err := h.bookings.Create(r.Context(), userID, in)
	if err != nil {
		return err
	}

	RespondWithJSON(w, http.StatusOK, b)
	return nil
}
