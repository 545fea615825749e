package entities

type MassageTypeResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}
