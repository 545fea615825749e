package repository

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// EnsureSchema creates the tables the booking service needs.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS massage_types (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			duration INTEGER NOT NULL,
			price NUMERIC(8,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS time_slots (
			id SERIAL PRIMARY KEY,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			service_id INTEGER NOT NULL REFERENCES massage_types (id),
			available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id SERIAL PRIMARY KEY,
			reference TEXT UNIQUE NOT NULL,
			client_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			service_id INTEGER NOT NULL REFERENCES massage_types (id),
			date TEXT NOT NULL,
			time_slot TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS temporary_reservations (
			id SERIAL PRIMARY KEY,
			slot_id INTEGER NOT NULL REFERENCES time_slots (id),
			reserved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expires_at ON temporary_reservations (expires_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SeedData populates the catalog and generates slots for the next 30
// days. It is a no-op when massage types already exist.
func SeedData(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM massage_types`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		log.Println("Sample data already exists, skipping seed")
		return nil
	}

	massageTypes := []struct {
		Name     string
		Duration int
		Price    float64
	}{
		{"Swedish Massage", 60, 50.0},
		{"Deep Tissue", 90, 70.0},
		{"Hot Stone", 60, 65.0},
		{"Sports Massage", 45, 45.0},
	}
	for _, mt := range massageTypes {
		_, err := db.Exec(`INSERT INTO massage_types (name, duration, price) VALUES ($1, $2, $3)`,
			mt.Name, mt.Duration, mt.Price)
		if err != nil {
			return fmt.Errorf("failed to insert massage type: %w", err)
		}
	}

	if err := generateTimeSlots(db); err != nil {
		return fmt.Errorf("failed to generate time slots: %w", err)
	}

	log.Println("Sample data seeded successfully")
	return nil
}

// generateTimeSlots fills the next 30 days with slots per service,
// spaced by the service duration over working hours 09:00-18:00.
// Roughly 30% are pre-marked booked so the demo data looks lived-in.
func generateTimeSlots(db *sql.DB) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	rows, err := db.Query(`SELECT id, duration FROM massage_types`)
	if err != nil {
		return fmt.Errorf("failed to get massage types: %w", err)
	}
	defer rows.Close()

	var services []struct {
		ID       int
		Duration int
	}
	for rows.Next() {
		var s struct {
			ID       int
			Duration int
		}
		if err := rows.Scan(&s.ID, &s.Duration); err != nil {
			return fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const workingMinutes = 9 * 60 // 09:00-18:00

	startDate := time.Now()
	for day := 0; day < 30; day++ {
		dateStr := startDate.AddDate(0, 0, day).Format("2006-01-02")

		for _, service := range services {
			slotsPerDay := workingMinutes / service.Duration
			for slot := 0; slot < slotsPerDay; slot++ {
				startMinutes := 9*60 + slot*service.Duration
				if startMinutes >= 18*60 {
					break
				}
				timeStr := fmt.Sprintf("%02d:%02d", startMinutes/60, startMinutes%60)
				available := rng.Float32() > 0.3

				_, err := db.Exec(`INSERT INTO time_slots (date, time, service_id, available) VALUES ($1, $2, $3, $4)`,
					dateStr, timeStr, service.ID, available)
				if err != nil {
					return fmt.Errorf("failed to insert time slot: %w", err)
				}
			}
		}
	}
	return nil
}
