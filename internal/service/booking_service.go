package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/OlgaOrl/massage-booking/internal/entities"
	"github.com/OlgaOrl/massage-booking/internal/httperr"
	"github.com/OlgaOrl/massage-booking/internal/repository"
	"github.com/OlgaOrl/massage-booking/internal/validate"
)

type BookingService struct {
	Catalog      *repository.CatalogRepository
	Slots        *repository.SlotRepository
	Reservations *repository.ReservationRepository
	Bookings     *repository.BookingRepository
	sender       *SenderService
}

func NewBookingService(
	catalog *repository.CatalogRepository,
	slots *repository.SlotRepository,
	reservations *repository.ReservationRepository,
	bookings *repository.BookingRepository,
	sender *SenderService,
) *BookingService {
	return &BookingService{
		Catalog:      catalog,
		Slots:        slots,
		Reservations: reservations,
		Bookings:     bookings,
		sender:       sender,
	}
}

func (s *BookingService) GetMassageTypes() ([]entities.MassageTypeResponse, error) {
	types, err := s.Catalog.GetMassageTypes()
	if err != nil {
		return nil, err
	}
	out := make([]entities.MassageTypeResponse, 0, len(types))
	for _, mt := range types {
		out = append(out, entities.MassageTypeResponse{
			ID:       mt.ID,
			Name:     mt.Name,
			Duration: mt.Duration,
			Price:    mt.Price,
		})
	}
	return out, nil
}

func (s *BookingService) GetTimeSlots(date string, serviceID int) ([]entities.SlotResponse, error) {
	slots, err := s.Slots.GetTimeSlots(date, serviceID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.SlotResponse, 0, len(slots))
	for _, ts := range slots {
		out = append(out, entities.SlotResponse{
			ID:        ts.ID,
			Date:      ts.Date,
			Time:      ts.Time,
			ServiceID: ts.ServiceID,
			Available: ts.Available,
		})
	}
	return out, nil
}

func (s *BookingService) CreateReservation(slotID int) (*entities.ReservationResponse, error) {
	reservationID, expiresAt, err := s.Reservations.CreateReservation(slotID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotNotFound):
			return nil, httperr.NotFound("Slot not found")
		case errors.Is(err, repository.ErrSlotUnavailable), errors.Is(err, repository.ErrSlotReserved):
			return nil, httperr.Conflict("Slot is not available")
		default:
			return nil, err
		}
	}

	return &entities.ReservationResponse{
		ReservationID:    reservationID,
		ExpiresAt:        expiresAt,
		ExpiresInSeconds: int(time.Until(expiresAt).Seconds()),
	}, nil
}

func (s *BookingService) CancelReservation(reservationID int) error {
	err := s.Reservations.DeleteReservation(reservationID)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return httperr.NotFound("Reservation not found")
	}
	return err
}

// CreateBooking finalizes an unexpired reservation into a booking and
// kicks off the confirmation email/SMS in the background.
func (s *BookingService) CreateBooking(req entities.BookingRequest) (*entities.BookingDetail, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, httperr.BadRequest(err.Error())
	}

	slotID, err := s.Reservations.GetActiveReservation(req.ReservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, httperr.NotFound("Reservation not found or expired")
		}
		return nil, err
	}

	reference, err := s.generateBookingReference(req.Date)
	if err != nil {
		return nil, err
	}

	bookingID, err := s.Bookings.FinalizeBooking(req, reference, slotID)
	if err != nil {
		return nil, err
	}

	booking, err := s.Bookings.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}

	if s.sender != nil {
		s.sender.SendBookingConfirmation(*booking)
	}

	log.Printf("Created booking %d (%s) for %s on %s at %s",
		booking.ID, booking.Reference, booking.ClientName, booking.Date, booking.TimeSlot)
	return booking, nil
}

func (s *BookingService) GetBooking(bookingID int) (*entities.BookingDetail, error) {
	booking, err := s.Bookings.GetBookingByID(bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, httperr.NotFound("Booking not found")
		}
		return nil, err
	}
	return booking, nil
}

// generateBookingReference builds the BK-YYYYMMDD-NNN reference from
// the per-date booking count.
func (s *BookingService) generateBookingReference(date string) (string, error) {
	dateOnly := strings.Split(date, " ")[0]
	count, err := s.Bookings.CountBookingsForDate(dateOnly)
	if err != nil {
		return "", err
	}
	dateStr := strings.ReplaceAll(dateOnly, "-", "")
	return fmt.Sprintf("BK-%s-%03d", dateStr, count+1), nil
}

func validateBookingRequest(req entities.BookingRequest) error {
	if err := validate.Name(req.ClientName); err != nil {
		return err
	}
	if err := validate.Email(req.Email); err != nil {
		return err
	}
	if err := validate.Phone(req.Phone); err != nil {
		return err
	}
	if req.ReservationID <= 0 {
		return &validate.FieldError{Field: "reservation_id", Message: "Invalid reservation ID"}
	}
	if req.ServiceID <= 0 {
		return &validate.FieldError{Field: "service_id", Message: "Invalid service ID"}
	}
	if req.Date == "" {
		return &validate.FieldError{Field: "date", Message: "Date is required"}
	}
	if req.TimeSlot == "" {
		return &validate.FieldError{Field: "time_slot", Message: "Time slot is required"}
	}
	return nil
}
