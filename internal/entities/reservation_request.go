package entities

import "time"

type ReservationRequest struct {
	SlotID int `json:"slot_id"`
}

type ReservationResponse struct {
	ReservationID    int       `json:"reservation_id"`
	ExpiresAt        time.Time `json:"expires_at"`
	ExpiresInSeconds int       `json:"expires_in_seconds"`
}
