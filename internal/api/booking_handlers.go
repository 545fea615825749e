package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/OlgaOrl/massage-booking/internal/entities"
	"github.com/OlgaOrl/massage-booking/internal/httperr"
	"github.com/OlgaOrl/massage-booking/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// GetMassageTypes handles GET /api/massage-types
func (h *BookingHandler) GetMassageTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.GetMassageTypes()
	if err != nil {
		log.Printf("Error getting massage types: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// GetSlots handles GET /api/slots?date=YYYY-MM-DD&service_id=1
func (h *BookingHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	serviceIDStr := r.URL.Query().Get("service_id")

	if date == "" {
		http.Error(w, "Missing required parameter: date", http.StatusBadRequest)
		return
	}
	if serviceIDStr == "" {
		http.Error(w, "Missing required parameter: service_id", http.StatusBadRequest)
		return
	}
	serviceID, err := strconv.Atoi(serviceIDStr)
	if err != nil {
		http.Error(w, "Invalid service_id parameter", http.StatusBadRequest)
		return
	}

	slots, err := h.Service.GetTimeSlots(date, serviceID)
	if err != nil {
		log.Printf("Error getting time slots for date %s and service %d: %v", date, serviceID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// CreateReservation handles POST /api/reservations
func (h *BookingHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SlotID <= 0 {
		http.Error(w, "Invalid slot_id", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.CreateReservation(req.SlotID)
	if err != nil {
		writeError(w, err, "Error creating reservation for slot %d: %v", req.SlotID)
		return
	}

	log.Printf("Created reservation %d for slot %d, expires at %v", resp.ReservationID, req.SlotID, resp.ExpiresAt)
	writeJSON(w, http.StatusOK, resp)
}

// DeleteReservation handles DELETE /api/reservations/{id}
func (h *BookingHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	reservationID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.CancelReservation(reservationID); err != nil {
		writeError(w, err, "Error deleting reservation %d: %v", reservationID)
		return
	}

	log.Printf("Deleted reservation %d", reservationID)
	w.WriteHeader(http.StatusNoContent)
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.CreateBooking(req)
	if err != nil {
		writeError(w, err, "Error creating booking for reservation %d: %v", req.ReservationID)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	bookingID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.GetBooking(bookingID)
	if err != nil {
		writeError(w, err, "Error getting booking %d: %v", bookingID)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps service errors to plain-text HTTP errors, hiding
// internals behind a generic 500 message.
func writeError(w http.ResponseWriter, err error, logFormat string, logArgs ...interface{}) {
	status := httperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf(logFormat, append(logArgs, err)...)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
