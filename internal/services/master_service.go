package services

import (
	"context"
	"fmt"

	"github.com/ssuzuki/toukidocs/internal/logger"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/repository"
)

// MasterService manages the contractor and scrivener master records
// shared across cases.
type MasterService interface {
	ListContractors(ctx context.Context) ([]models.Contractor, error)
	SaveContractor(ctx context.Context, c models.Contractor) (*models.Contractor, error)
	DeleteContractor(ctx context.Context, id string) error

	ListScriveners(ctx context.Context) ([]models.Scrivener, error)
	SaveScrivener(ctx context.Context, sc models.Scrivener) (*models.Scrivener, error)
	DeleteScrivener(ctx context.Context, id string) error
}

type masterService struct {
	repo  repository.StateRepository
	log   *logger.Logger
	newID models.IDGenerator
}

// NewMasterService creates a new instance of MasterService.
func NewMasterService(repo repository.StateRepository, log *logger.Logger, newID models.IDGenerator) MasterService {
	return &masterService{repo: repo, log: log, newID: newID}
}

func (s *masterService) ListContractors(ctx context.Context) ([]models.Contractor, error) {
	list, err := s.repo.ListContractors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}
	return list, nil
}

func (s *masterService) SaveContractor(ctx context.Context, c models.Contractor) (*models.Contractor, error) {
	if c.ID == "" {
		c.ID = s.newID()
	}
	if err := s.repo.PutContractor(ctx, c); err != nil {
		s.log.Error("Failed to store contractor", err, map[string]interface{}{"contractor_id": c.ID})
		return nil, fmt.Errorf("failed to store contractor: %w", err)
	}
	return &c, nil
}

func (s *masterService) DeleteContractor(ctx context.Context, id string) error {
	if err := s.repo.DeleteContractor(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contractor: %w", err)
	}
	return nil
}

func (s *masterService) ListScriveners(ctx context.Context) ([]models.Scrivener, error) {
	list, err := s.repo.ListScriveners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scriveners: %w", err)
	}
	return list, nil
}

func (s *masterService) SaveScrivener(ctx context.Context, sc models.Scrivener) (*models.Scrivener, error) {
	if sc.ID == "" {
		sc.ID = s.newID()
	}
	if err := s.repo.PutScrivener(ctx, sc); err != nil {
		s.log.Error("Failed to store scrivener", err, map[string]interface{}{"scrivener_id": sc.ID})
		return nil, fmt.Errorf("failed to store scrivener: %w", err)
	}
	return &sc, nil
}

func (s *masterService) DeleteScrivener(ctx context.Context, id string) error {
	if err := s.repo.DeleteScrivener(ctx, id); err != nil {
		return fmt.Errorf("failed to delete scrivener: %w", err)
	}
	return nil
}
