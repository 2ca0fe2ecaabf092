package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ssuzuki/toukidocs/internal/database"
	"github.com/ssuzuki/toukidocs/internal/models"
)

// PostgresStore persists the state in PostgreSQL, one JSONB document
// per record. The document schema evolves with the application, so the
// tables stay schemaless apart from the id column.
type PostgresStore struct {
	db *database.Database
}

// NewPostgresStore creates a store over an open connection pool and
// makes sure its tables exist.
func NewPostgresStore(ctx context.Context, db *database.Database) (*PostgresStore, error) {
	s := &PostgresStore{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sites (
			id TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS contractors (
			id TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scriveners (
			id TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS app_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

const activeSiteKey = "active_site_id"

func (s *PostgresStore) ListSites(ctx context.Context) ([]models.Site, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT data FROM sites ORDER BY data->>'name', id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	sites := []models.Site{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan site row: %w", err)
		}
		var site models.Site
		if err := json.Unmarshal(raw, &site); err != nil {
			return nil, fmt.Errorf("failed to decode site document: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating site rows: %w", err)
	}
	return sites, nil
}

func (s *PostgresStore) GetSite(ctx context.Context, id string) (*models.Site, error) {
	var raw []byte
	err := s.db.Pool.QueryRow(ctx, `SELECT data FROM sites WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query site %s: %w", id, err)
	}
	var site models.Site
	if err := json.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("failed to decode site %s: %w", id, err)
	}
	return &site, nil
}

func (s *PostgresStore) PutSite(ctx context.Context, site models.Site) error {
	raw, err := json.Marshal(site)
	if err != nil {
		return fmt.Errorf("failed to encode site %s: %w", site.ID, err)
	}
	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO sites (id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, site.ID, raw)
	if err != nil {
		return fmt.Errorf("failed to upsert site %s: %w", site.ID, err)
	}
	return nil
}

func (s *PostgresStore) DeleteSite(ctx context.Context, id string) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete site %s: %w", id, err)
	}
	_, err := s.db.Pool.Exec(ctx,
		`DELETE FROM app_meta WHERE key = $1 AND value = $2`, activeSiteKey, id)
	if err != nil {
		return fmt.Errorf("failed to clear active site: %w", err)
	}
	return nil
}

func (s *PostgresStore) ActiveSiteID(ctx context.Context) (string, error) {
	var id string
	err := s.db.Pool.QueryRow(ctx,
		`SELECT value FROM app_meta WHERE key = $1`, activeSiteKey).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query active site: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) SetActiveSiteID(ctx context.Context, id string) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO app_meta (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, activeSiteKey, id)
	if err != nil {
		return fmt.Errorf("failed to set active site: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListContractors(ctx context.Context) ([]models.Contractor, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT data FROM contractors ORDER BY data->>'tradeName', id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contractors: %w", err)
	}
	defer rows.Close()

	out := []models.Contractor{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan contractor row: %w", err)
		}
		var c models.Contractor
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("failed to decode contractor document: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contractor rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) PutContractor(ctx context.Context, c models.Contractor) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode contractor %s: %w", c.ID, err)
	}
	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO contractors (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`, c.ID, raw)
	if err != nil {
		return fmt.Errorf("failed to upsert contractor %s: %w", c.ID, err)
	}
	return nil
}

func (s *PostgresStore) DeleteContractor(ctx context.Context, id string) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM contractors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete contractor %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) ListScriveners(ctx context.Context) ([]models.Scrivener, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT data FROM scriveners ORDER BY data->>'name', id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scriveners: %w", err)
	}
	defer rows.Close()

	out := []models.Scrivener{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan scrivener row: %w", err)
		}
		var sc models.Scrivener
		if err := json.Unmarshal(raw, &sc); err != nil {
			return nil, fmt.Errorf("failed to decode scrivener document: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scrivener rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) PutScrivener(ctx context.Context, sc models.Scrivener) error {
	raw, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode scrivener %s: %w", sc.ID, err)
	}
	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO scriveners (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`, sc.ID, raw)
	if err != nil {
		return fmt.Errorf("failed to upsert scrivener %s: %w", sc.ID, err)
	}
	return nil
}

func (s *PostgresStore) DeleteScrivener(ctx context.Context, id string) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM scriveners WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete scrivener %s: %w", id, err)
	}
	return nil
}

// ReplaceAll rewrites the whole state inside one transaction so a
// failed import never leaves half the previous data behind.
func (s *PostgresStore) ReplaceAll(ctx context.Context, st AppState) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"sites", "contractors", "scriveners", "app_meta"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	for _, site := range st.Sites {
		raw, err := json.Marshal(site)
		if err != nil {
			return fmt.Errorf("failed to encode site %s: %w", site.ID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO sites (id, data, updated_at) VALUES ($1, $2, now())`, site.ID, raw); err != nil {
			return fmt.Errorf("failed to insert site %s: %w", site.ID, err)
		}
	}
	for _, c := range st.Contractors {
		raw, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode contractor %s: %w", c.ID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO contractors (id, data) VALUES ($1, $2)`, c.ID, raw); err != nil {
			return fmt.Errorf("failed to insert contractor %s: %w", c.ID, err)
		}
	}
	for _, sc := range st.Scriveners {
		raw, err := json.Marshal(sc)
		if err != nil {
			return fmt.Errorf("failed to encode scrivener %s: %w", sc.ID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO scriveners (id, data) VALUES ($1, $2)`, sc.ID, raw); err != nil {
			return fmt.Errorf("failed to insert scrivener %s: %w", sc.ID, err)
		}
	}
	if st.ActiveSiteID != "" {
		if _, err := tx.Exec(ctx,
			`INSERT INTO app_meta (key, value) VALUES ($1, $2)`, activeSiteKey, st.ActiveSiteID); err != nil {
			return fmt.Errorf("failed to store active site: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}
	return nil
}
