package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ssuzuki/toukidocs/internal/logger"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/repository"
)

// ExportService builds and restores the backup envelope.
type ExportService interface {
	// Export snapshots the whole application state.
	Export(ctx context.Context) (*models.Export, error)

	// Import replaces the whole application state with the envelope's
	// content after sanitizing every record.
	// Returns ErrBadEnvelope for an unrecognized schema version or
	// missing site list.
	Import(ctx context.Context, env models.Export) error
}

type exportService struct {
	repo  repository.StateRepository
	log   *logger.Logger
	newID models.IDGenerator
	now   func() time.Time
}

// NewExportService creates a new instance of ExportService.
func NewExportService(repo repository.StateRepository, log *logger.Logger, newID models.IDGenerator, now func() time.Time) ExportService {
	return &exportService{repo: repo, log: log, newID: newID, now: now}
}

func (s *exportService) Export(ctx context.Context) (*models.Export, error) {
	sites, err := s.repo.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	contractors, err := s.repo.ListContractors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}
	scriveners, err := s.repo.ListScriveners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scriveners: %w", err)
	}
	activeID, err := s.repo.ActiveSiteID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active site: %w", err)
	}

	env := &models.Export{
		SchemaVersion: models.ExportSchemaVersion,
		ExportedAt:    s.now().UTC().Format(time.RFC3339),
		App:           models.ExportAppName,
		ActiveSiteID:  activeID,
		Sites:         sites,
		Contractors:   contractors,
		Scriveners:    scriveners,
	}

	s.log.Info("State exported", map[string]interface{}{
		"sites":       len(sites),
		"contractors": len(contractors),
		"scriveners":  len(scriveners),
	})
	return env, nil
}

func (s *exportService) Import(ctx context.Context, env models.Export) error {
	if env.SchemaVersion != models.ExportSchemaVersion {
		return fmt.Errorf("%w: unsupported schema version %d", ErrBadEnvelope, env.SchemaVersion)
	}
	if env.Sites == nil {
		return fmt.Errorf("%w: missing site list", ErrBadEnvelope)
	}

	st := repository.AppState{
		ActiveSiteID: env.ActiveSiteID,
		Contractors:  models.SanitizeContractors(env.Contractors, s.newID),
		Scriveners:   models.SanitizeScriveners(env.Scriveners, s.newID),
	}
	st.Sites = make([]models.Site, 0, len(env.Sites))
	for _, site := range env.Sites {
		st.Sites = append(st.Sites, models.SanitizeSite(site, s.newID))
	}

	// A stale active pointer must not survive the import.
	valid := false
	for _, site := range st.Sites {
		if site.ID == st.ActiveSiteID {
			valid = true
			break
		}
	}
	if !valid {
		st.ActiveSiteID = ""
	}

	if err := s.repo.ReplaceAll(ctx, st); err != nil {
		s.log.Error("Failed to import state", err, nil)
		return fmt.Errorf("failed to import state: %w", err)
	}

	s.log.Info("State imported", map[string]interface{}{
		"sites":       len(st.Sites),
		"contractors": len(st.Contractors),
		"scriveners":  len(st.Scriveners),
	})
	return nil
}
