package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/petswap/internal/client/models"
)

const dateLayout = "2006-01-02"

// Bookings lists the caller's bookings, newest first.
func (a *App) Bookings(ctx context.Context) error {
	token, ok := a.token()
	if !ok {
		return nil
	}

	bookings, err := a.api.ListBookings(ctx, token)
	if err != nil {
		return a.fail(ctx, err)
	}

	if len(bookings) == 0 {
		printlnFn("No bookings yet")
		return nil
	}

	for _, b := range bookings {
		title := fmt.Sprintf("property #%d", b.PropertyID)
		if b.Property != nil && b.Property.Title != "" {
			title = b.Property.Title
		}
		printlnFn(fmt.Sprintf("%d. %s, %s to %s", b.ID, title,
			b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout)))
	}
	return nil
}

// Book prompts for a property and a date range and creates a booking.
// Dates are passed through as typed; the server validates them.
func (a *App) Book(ctx context.Context) error {
	token, ok := a.token()
	if !ok {
		return nil
	}

	id, err := a.readID("Property ID")
	if err != nil {
		return err
	}

	start, err := getSimpleText(a.reader, "Start date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}

	end, err := getSimpleText(a.reader, "End date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}

	b, err := a.api.CreateBooking(ctx, token, models.BookingRequest{
		PropertyID: id,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("Booking %d confirmed", b.ID))
	return nil
}
