package entities

import "time"

// BookingDetail is a booking joined with its service, as shown on the
// confirmation page and in the confirmation email.
type BookingDetail struct {
	ID          int       `json:"id"`
	Reference   string    `json:"reference"`
	ClientName  string    `json:"client_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ServiceID   int       `json:"service_id"`
	ServiceName string    `json:"service_name"`
	Duration    int       `json:"duration"`
	Price       float64   `json:"price"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	CreatedAt   time.Time `json:"created_at"`
}
