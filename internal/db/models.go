package db

import "time"

type MassageType struct {
	ID       int
	Name     string
	Duration int     // minutes
	Price    float64 // euros
}

type TimeSlot struct {
	ID        int
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	ServiceID int
	Available bool
}

// Reservation is a temporary hold on a slot while the client fills the
// booking form. Expired rows are purged by the cleanup job.
type Reservation struct {
	ID         int
	SlotID     int
	ReservedAt time.Time
	ExpiresAt  time.Time
}

type Booking struct {
	ID         int
	Reference  string
	ClientName string
	Email      string
	Phone      string
	ServiceID  int
	Date       string
	TimeSlot   string
	CreatedAt  time.Time
}
