package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/OlgaOrl/massage-booking/internal/db"
)

var ErrServiceNotFound = errors.New("service not found")

type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(database *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: database}
}

func (r *CatalogRepository) GetMassageTypes() ([]db.MassageType, error) {
	rows, err := r.DB.Query(`SELECT id, name, duration, price FROM massage_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query massage types: %w", err)
	}
	defer rows.Close()

	var types []db.MassageType
	for rows.Next() {
		var mt db.MassageType
		if err := rows.Scan(&mt.ID, &mt.Name, &mt.Duration, &mt.Price); err != nil {
			return nil, fmt.Errorf("failed to scan massage type: %w", err)
		}
		types = append(types, mt)
	}
	return types, rows.Err()
}

func (r *CatalogRepository) GetMassageTypeByID(id int) (*db.MassageType, error) {
	var mt db.MassageType
	err := r.DB.QueryRow(`SELECT id, name, duration, price FROM massage_types WHERE id = $1`, id).
		Scan(&mt.ID, &mt.Name, &mt.Duration, &mt.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to query massage type %d: %w", id, err)
	}
	return &mt, nil
}
