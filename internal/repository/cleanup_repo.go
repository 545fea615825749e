package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type CleanupRepository struct {
	DB *sql.DB
}

func NewCleanupRepository(database *sql.DB) *CleanupRepository {
	return &CleanupRepository{DB: database}
}

// GetExpiredReservationIDs lists temporary holds past their expiry.
func (r *CleanupRepository) GetExpiredReservationIDs() ([]int, error) {
	rows, err := r.DB.Query(`SELECT id FROM temporary_reservations WHERE expires_at < NOW()`)
	if err != nil {
		return nil, fmt.Errorf("error querying expired reservations: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// DeleteReservations removes the given holds.
func (r *CleanupRepository) DeleteReservations(ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.Exec(`DELETE FROM temporary_reservations WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error deleting expired reservations: %w", err)
	}
	return result.RowsAffected()
}
