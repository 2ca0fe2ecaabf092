package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ssuzuki/toukidocs/internal/models"
)

// fileState is the on-disk shape of the file store. It matches the
// export envelope so a data file doubles as a valid export.
type fileState struct {
	SchemaVersion int                 `json:"schemaVersion"`
	ActiveSiteID  string              `json:"activeSiteId"`
	Sites         []models.Site       `json:"sites"`
	Contractors   []models.Contractor `json:"contractors"`
	Scriveners    []models.Scrivener  `json:"scriveners"`
}

// FileStore keeps the whole application state in one JSON file. Every
// mutation rewrites the file through a temp-file rename so a crash
// mid-write never corrupts the previous state.
type FileStore struct {
	path string

	mu    sync.Mutex
	state fileState
}

// NewFileStore opens or creates the data file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.state = fileState{SchemaVersion: models.ExportSchemaVersion}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", s.path, err)
	}
	var st fileState
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("failed to parse data file %s: %w", s.path, err)
	}
	s.state = st
	return nil
}

// flush writes the current state atomically. Callers hold the mutex.
func (s *FileStore) flush() error {
	s.state.SchemaVersion = models.ExportSchemaVersion
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".toukidocs-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func (s *FileStore) ListSites(ctx context.Context) ([]models.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Site, len(s.state.Sites))
	copy(out, s.state.Sites)
	return out, nil
}

func (s *FileStore) GetSite(ctx context.Context, id string) (*models.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Sites {
		if s.state.Sites[i].ID == id {
			site := s.state.Sites[i]
			return &site, nil
		}
	}
	return nil, nil
}

func (s *FileStore) PutSite(ctx context.Context, site models.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.state.Sites {
		if s.state.Sites[i].ID == site.ID {
			s.state.Sites[i] = site
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.Sites = append(s.state.Sites, site)
	}
	return s.flush()
}

func (s *FileStore) DeleteSite(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.Sites[:0]
	for _, site := range s.state.Sites {
		if site.ID != id {
			kept = append(kept, site)
		}
	}
	s.state.Sites = kept
	if s.state.ActiveSiteID == id {
		s.state.ActiveSiteID = ""
	}
	return s.flush()
}

func (s *FileStore) ActiveSiteID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveSiteID, nil
}

func (s *FileStore) SetActiveSiteID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveSiteID = id
	return s.flush()
}

func (s *FileStore) ListContractors(ctx context.Context) ([]models.Contractor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Contractor, len(s.state.Contractors))
	copy(out, s.state.Contractors)
	return out, nil
}

func (s *FileStore) PutContractor(ctx context.Context, c models.Contractor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Contractors {
		if s.state.Contractors[i].ID == c.ID {
			s.state.Contractors[i] = c
			return s.flush()
		}
	}
	s.state.Contractors = append(s.state.Contractors, c)
	return s.flush()
}

func (s *FileStore) DeleteContractor(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.Contractors[:0]
	for _, c := range s.state.Contractors {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.state.Contractors = kept
	return s.flush()
}

func (s *FileStore) ListScriveners(ctx context.Context) ([]models.Scrivener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Scrivener, len(s.state.Scriveners))
	copy(out, s.state.Scriveners)
	return out, nil
}

func (s *FileStore) PutScrivener(ctx context.Context, sc models.Scrivener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Scriveners {
		if s.state.Scriveners[i].ID == sc.ID {
			s.state.Scriveners[i] = sc
			return s.flush()
		}
	}
	s.state.Scriveners = append(s.state.Scriveners, sc)
	return s.flush()
}

func (s *FileStore) DeleteScrivener(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.Scriveners[:0]
	for _, sc := range s.state.Scriveners {
		if sc.ID != id {
			kept = append(kept, sc)
		}
	}
	s.state.Scriveners = kept
	return s.flush()
}

func (s *FileStore) ReplaceAll(ctx context.Context, st AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fileState{
		SchemaVersion: models.ExportSchemaVersion,
		ActiveSiteID:  st.ActiveSiteID,
		Sites:         st.Sites,
		Contractors:   st.Contractors,
		Scriveners:    st.Scriveners,
	}
	return s.flush()
}
