package entities

type BookingEmailData struct {
	ClientName    string
	Reference     string
	ServiceName   string
	Duration      int
	Price         float64
	DateFormatted string
	TimeSlot      string
	CurrentYear   int
}
