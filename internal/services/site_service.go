// Package services holds the business logic between the HTTP handlers
// and the repository: case lifecycle, document planning and rendering,
// master records and the export/import envelope.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ssuzuki/toukidocs/internal/docplan"
	"github.com/ssuzuki/toukidocs/internal/logger"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/repository"
)

// Service-level errors
var (
	ErrSiteNotFound   = errors.New("site not found")
	ErrEmptySelection = errors.New("selection would resolve to zero entities")
	ErrBadEnvelope    = errors.New("invalid export envelope")
)

// SiteService defines the case lifecycle operations.
type SiteService interface {
	// ListSites returns all cases.
	ListSites(ctx context.Context) ([]models.Site, error)

	// GetSite retrieves one case.
	// Returns ErrSiteNotFound if the id does not exist.
	GetSite(ctx context.Context, id string) (*models.Site, error)

	// CreateSite creates a sanitized empty case with the given name
	// (the default name when blank) and marks it active.
	CreateSite(ctx context.Context, name string) (*models.Site, error)

	// UpdateSite sanitizes and reconciles the submitted case, then
	// persists it. The stored result is returned since sanitization
	// and plan reconciliation may rewrite fields.
	// Returns ErrSiteNotFound if the id does not exist.
	UpdateSite(ctx context.Context, site models.Site) (*models.Site, error)

	// DeleteSite removes a case.
	// Returns ErrSiteNotFound if the id does not exist.
	DeleteSite(ctx context.Context, id string) error

	// ActiveSiteID returns the id of the active case, empty when none.
	ActiveSiteID(ctx context.Context) (string, error)

	// SetActiveSiteID marks a case active.
	// Returns ErrSiteNotFound if the id does not exist.
	SetActiveSiteID(ctx context.Context, id string) error
}

type siteService struct {
	repo  repository.StateRepository
	log   *logger.Logger
	newID models.IDGenerator
}

// NewSiteService creates a new instance of SiteService. The id
// generator is injected so tests can use deterministic ids.
func NewSiteService(repo repository.StateRepository, log *logger.Logger, newID models.IDGenerator) SiteService {
	return &siteService{repo: repo, log: log, newID: newID}
}

func (s *siteService) ListSites(ctx context.Context) ([]models.Site, error) {
	sites, err := s.repo.ListSites(ctx)
	if err != nil {
		s.log.Error("Failed to list sites", err, nil)
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	return sites, nil
}

func (s *siteService) GetSite(ctx context.Context, id string) (*models.Site, error) {
	site, err := s.repo.GetSite(ctx, id)
	if err != nil {
		s.log.Error("Failed to load site", err, map[string]interface{}{"site_id": id})
		return nil, fmt.Errorf("failed to load site: %w", err)
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}
	return site, nil
}

func (s *siteService) CreateSite(ctx context.Context, name string) (*models.Site, error) {
	site := models.NewSite(name, s.newID)

	if err := s.repo.PutSite(ctx, site); err != nil {
		s.log.Error("Failed to create site", err, map[string]interface{}{"name": site.Name})
		return nil, fmt.Errorf("failed to create site: %w", err)
	}
	if err := s.repo.SetActiveSiteID(ctx, site.ID); err != nil {
		return nil, fmt.Errorf("failed to activate site: %w", err)
	}

	s.log.Info("Site created", map[string]interface{}{
		"site_id": site.ID,
		"name":    site.Name,
	})
	return &site, nil
}

func (s *siteService) UpdateSite(ctx context.Context, site models.Site) (*models.Site, error) {
	existing, err := s.repo.GetSite(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load site: %w", err)
	}
	if existing == nil {
		return nil, ErrSiteNotFound
	}

	site = models.SanitizeSite(site, s.newID)
	docplan.Reconcile(&site)
	docplan.EnsureRequiredCounts(&site)

	if err := s.repo.PutSite(ctx, site); err != nil {
		s.log.WithSite(site.ID).Error("Failed to store site", err, nil)
		return nil, fmt.Errorf("failed to store site: %w", err)
	}

	s.log.WithSite(site.ID).Info("Site updated", map[string]interface{}{
		"buildings": len(site.ProposedBuildings),
		"people":    len(site.People),
	})
	return &site, nil
}

func (s *siteService) DeleteSite(ctx context.Context, id string) error {
	existing, err := s.repo.GetSite(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load site: %w", err)
	}
	if existing == nil {
		return ErrSiteNotFound
	}
	if err := s.repo.DeleteSite(ctx, id); err != nil {
		s.log.WithSite(id).Error("Failed to delete site", err, nil)
		return fmt.Errorf("failed to delete site: %w", err)
	}
	s.log.WithSite(id).Info("Site deleted", nil)
	return nil
}

func (s *siteService) ActiveSiteID(ctx context.Context) (string, error) {
	id, err := s.repo.ActiveSiteID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load active site: %w", err)
	}
	return id, nil
}

func (s *siteService) SetActiveSiteID(ctx context.Context, id string) error {
	existing, err := s.repo.GetSite(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load site: %w", err)
	}
	if existing == nil {
		return ErrSiteNotFound
	}
	if err := s.repo.SetActiveSiteID(ctx, id); err != nil {
		return fmt.Errorf("failed to set active site: %w", err)
	}
	return nil
}
