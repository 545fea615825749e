package entities

type SlotResponse struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	ServiceID int    `json:"service_id"`
	Available bool   `json:"available"`
}
