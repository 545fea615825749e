package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/OlgaOrl/massage-booking/internal/entities"
)

// ErrConfirmationUnavailable covers every way the confirmation page
// can fail: missing identifier, not found, or any other non-success
// response. They all render the same generic error state.
var ErrConfirmationUnavailable = errors.New("booking confirmation unavailable")

// LoadConfirmation fetches the booking shown on the confirmation page.
// The identifier comes in as the raw query-parameter string.
func LoadConfirmation(ctx context.Context, client *Client, rawID string) (*entities.BookingDetail, error) {
	if rawID == "" {
		return nil, ErrConfirmationUnavailable
	}
	bookingID, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, ErrConfirmationUnavailable
	}
	booking, err := client.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, ErrConfirmationUnavailable
	}
	return booking, nil
}

// ConfirmationTitle is the page title carrying the booking reference.
func ConfirmationTitle(booking *entities.BookingDetail) string {
	return fmt.Sprintf("Booking Confirmation %s - Massage Booking", booking.Reference)
}

// FormatConfirmationDate renders the booked date for display, falling
// back to the raw value when it does not parse.
func FormatConfirmationDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, January 2, 2006")
}
