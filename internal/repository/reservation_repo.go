package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSlotUnavailable     = errors.New("slot is not available")
	ErrSlotReserved        = errors.New("slot is already reserved")
	ErrReservationNotFound = errors.New("reservation not found")
)

// ReservationTTL is how long a temporary hold lasts before expiring
// server-side.
const ReservationTTL = 10 * time.Minute

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

// CreateReservation places a temporary hold on a slot. The slot must
// exist, be available, and carry no other unexpired hold.
func (r *ReservationRepository) CreateReservation(slotID int) (int, time.Time, error) {
	var available bool
	err := r.DB.QueryRow(`SELECT available FROM time_slots WHERE id = $1`, slotID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, time.Time{}, ErrSlotNotFound
		}
		return 0, time.Time{}, fmt.Errorf("failed to check slot availability: %w", err)
	}
	if !available {
		return 0, time.Time{}, ErrSlotUnavailable
	}

	var count int
	err = r.DB.QueryRow(`SELECT COUNT(*) FROM temporary_reservations WHERE slot_id = $1 AND expires_at > NOW()`, slotID).Scan(&count)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to check existing reservations: %w", err)
	}
	if count > 0 {
		return 0, time.Time{}, ErrSlotReserved
	}

	expiresAt := time.Now().UTC().Add(ReservationTTL)
	var reservationID int
	err = r.DB.QueryRow(`INSERT INTO temporary_reservations (slot_id, expires_at) VALUES ($1, $2) RETURNING id`,
		slotID, expiresAt).Scan(&reservationID)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to create reservation: %w", err)
	}

	return reservationID, expiresAt, nil
}

// GetActiveReservation returns the slot held by an unexpired reservation.
func (r *ReservationRepository) GetActiveReservation(reservationID int) (slotID int, err error) {
	err = r.DB.QueryRow(`SELECT slot_id FROM temporary_reservations WHERE id = $1 AND expires_at > NOW()`,
		reservationID).Scan(&slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrReservationNotFound
		}
		return 0, fmt.Errorf("failed to check reservation %d: %w", reservationID, err)
	}
	return slotID, nil
}

func (r *ReservationRepository) DeleteReservation(reservationID int) error {
	result, err := r.DB.Exec(`DELETE FROM temporary_reservations WHERE id = $1`, reservationID)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}
