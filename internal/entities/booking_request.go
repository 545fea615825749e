package entities

type BookingRequest struct {
	ReservationID int    `json:"reservation_id"`
	ClientName    string `json:"client_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ServiceID     int    `json:"service_id"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
}
