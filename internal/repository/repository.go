// Package repository persists the application state: cases, the
// contractor and scrivener masters, and the active-case marker. Two
// implementations exist, a single-file JSON store for standalone
// installs and a PostgreSQL JSONB store for shared ones.
package repository

import (
	"context"

	"github.com/ssuzuki/toukidocs/internal/models"
)

// AppState is the full persisted state, the same shape the
// export/import envelope carries.
type AppState struct {
	ActiveSiteID string
	Sites        []models.Site
	Contractors  []models.Contractor
	Scriveners   []models.Scrivener
}

// StateRepository defines the data access operations on the persisted
// application state. Lookup methods return nil, nil when the record
// does not exist; errors are reserved for storage failures.
type StateRepository interface {
	ListSites(ctx context.Context) ([]models.Site, error)
	GetSite(ctx context.Context, id string) (*models.Site, error)
	PutSite(ctx context.Context, site models.Site) error
	DeleteSite(ctx context.Context, id string) error

	ActiveSiteID(ctx context.Context) (string, error)
	SetActiveSiteID(ctx context.Context, id string) error

	ListContractors(ctx context.Context) ([]models.Contractor, error)
	PutContractor(ctx context.Context, c models.Contractor) error
	DeleteContractor(ctx context.Context, id string) error

	ListScriveners(ctx context.Context) ([]models.Scrivener, error)
	PutScrivener(ctx context.Context, s models.Scrivener) error
	DeleteScrivener(ctx context.Context, id string) error

	// ReplaceAll swaps the entire state in one operation; used by
	// import.
	ReplaceAll(ctx context.Context, st AppState) error
}
