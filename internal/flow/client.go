// Package flow implements the booking flow: the staged state machine a
// booking client walks through (catalog, calendar, slots, reservation
// with countdown, contact form, submission, confirmation), decoupled
// from any rendering.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/OlgaOrl/massage-booking/internal/entities"
)

// APIError carries the status and plain-text body of a non-2xx reply.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client talks to the booking API surface.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ListServices(ctx context.Context) ([]entities.MassageTypeResponse, error) {
	var services []entities.MassageTypeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/massage-types", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) ListSlots(ctx context.Context, date string, serviceID int) ([]entities.SlotResponse, error) {
	path := fmt.Sprintf("/api/slots?date=%s&service_id=%d", date, serviceID)
	var slots []entities.SlotResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) CreateReservation(ctx context.Context, slotID int) (*entities.ReservationResponse, error) {
	var resp entities.ReservationResponse
	req := entities.ReservationRequest{SlotID: slotID}
	if err := c.doJSON(ctx, http.MethodPost, "/api/reservations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CancelReservation(ctx context.Context, reservationID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", reservationID), nil, nil)
}

func (c *Client) CreateBooking(ctx context.Context, req entities.BookingRequest) (*entities.BookingDetail, error) {
	var booking entities.BookingDetail
	if err := c.doJSON(ctx, http.MethodPost, "/api/bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) GetBooking(ctx context.Context, bookingID int) (*entities.BookingDetail, error) {
	var booking entities.BookingDetail
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/%d", bookingID), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
