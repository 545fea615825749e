package repository

import (
	"database/sql"
	"fmt"

	"github.com/OlgaOrl/massage-booking/internal/db"
)

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(database *sql.DB) *SlotRepository {
	return &SlotRepository{DB: database}
}

// GetTimeSlots returns the slots for a date and service, excluding
// slots under an unexpired temporary reservation.
func (r *SlotRepository) GetTimeSlots(date string, serviceID int) ([]db.TimeSlot, error) {
	query := `
		SELECT ts.id, ts.date, ts.time, ts.service_id, ts.available
		FROM time_slots ts
		LEFT JOIN temporary_reservations tr ON ts.id = tr.slot_id AND tr.expires_at > NOW()
		WHERE ts.date = $1 AND ts.service_id = $2 AND tr.id IS NULL
		ORDER BY ts.time`

	rows, err := r.DB.Query(query, date, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time slots: %w", err)
	}
	defer rows.Close()

	var slots []db.TimeSlot
	for rows.Next() {
		var ts db.TimeSlot
		if err := rows.Scan(&ts.ID, &ts.Date, &ts.Time, &ts.ServiceID, &ts.Available); err != nil {
			return nil, fmt.Errorf("failed to scan time slot: %w", err)
		}
		slots = append(slots, ts)
	}
	return slots, rows.Err()
}
