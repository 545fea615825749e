package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/OlgaOrl/massage-booking/internal/entities"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// CountBookingsForDate feeds reference generation (BK-YYYYMMDD-NNN).
func (r *BookingRepository) CountBookingsForDate(date string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings WHERE date = $1`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get booking count: %w", err)
	}
	return count, nil
}

// FinalizeBooking turns a reservation into a booking in one
// transaction: insert the booking, mark the slot unavailable, delete
// the hold.
func (r *BookingRepository) FinalizeBooking(req entities.BookingRequest, reference string, slotID int) (int, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var bookingID int
	err = tx.QueryRow(`
		INSERT INTO bookings (reference, client_name, email, phone, service_id, date, time_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		reference, req.ClientName, req.Email, req.Phone, req.ServiceID, req.Date, req.TimeSlot,
	).Scan(&bookingID)
	if err != nil {
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	if _, err := tx.Exec(`UPDATE time_slots SET available = FALSE WHERE id = $1`, slotID); err != nil {
		return 0, fmt.Errorf("failed to mark slot %d as unavailable: %w", slotID, err)
	}

	if _, err := tx.Exec(`DELETE FROM temporary_reservations WHERE id = $1`, req.ReservationID); err != nil {
		return 0, fmt.Errorf("failed to delete reservation %d: %w", req.ReservationID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit booking transaction: %w", err)
	}
	return bookingID, nil
}

// GetBookingByID returns a booking joined with its service details.
func (r *BookingRepository) GetBookingByID(bookingID int) (*entities.BookingDetail, error) {
	query := `
		SELECT b.id, b.reference, b.client_name, b.email, b.phone,
		       b.service_id, b.date, b.time_slot, b.created_at,
		       mt.name, mt.duration, mt.price
		FROM bookings b
		JOIN massage_types mt ON b.service_id = mt.id
		WHERE b.id = $1`

	var booking entities.BookingDetail
	err := r.DB.QueryRow(query, bookingID).Scan(
		&booking.ID, &booking.Reference, &booking.ClientName, &booking.Email, &booking.Phone,
		&booking.ServiceID, &booking.Date, &booking.TimeSlot, &booking.CreatedAt,
		&booking.ServiceName, &booking.Duration, &booking.Price,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}
