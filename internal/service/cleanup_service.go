package service

import (
	"fmt"
	"log"

	"github.com/OlgaOrl/massage-booking/internal/repository"
)

type CleanupService struct {
	Repo *repository.CleanupRepository
}

func NewCleanupService(repo *repository.CleanupRepository) *CleanupService {
	return &CleanupService{Repo: repo}
}

// PurgeExpiredReservations removes temporary holds past their expiry.
// Scheduled every minute from main.
func (s *CleanupService) PurgeExpiredReservations() error {
	ids, err := s.Repo.GetExpiredReservationIDs()
	if err != nil {
		return fmt.Errorf("cleanup job: failed to get expired reservations: %w", err)
	}

	if len(ids) == 0 {
		return nil
	}

	deleted, err := s.Repo.DeleteReservations(ids)
	if err != nil {
		return fmt.Errorf("cleanup job: failed to delete expired reservations: %w", err)
	}

	log.Printf("Cleanup job: removed %d expired reservations", deleted)
	return nil
}
