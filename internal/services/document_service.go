package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ssuzuki/toukidocs/internal/docplan"
	"github.com/ssuzuki/toukidocs/internal/doctmpl"
	"github.com/ssuzuki/toukidocs/internal/logger"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/repository"
	"github.com/ssuzuki/toukidocs/internal/selector"
)

// DocumentPlan is a case's resolved document plan.
type DocumentPlan struct {
	Docs      []docplan.DocEntry `json:"docs"`
	Instances []docplan.Instance `json:"instances"`
}

// DocumentService resolves document plans, pick overrides and rendered
// documents for a case.
type DocumentService interface {
	// Plan returns the ordered document list and expanded instances.
	// Returns ErrSiteNotFound if the case does not exist.
	Plan(ctx context.Context, siteID string) (*DocumentPlan, error)

	// UpdatePick stores a pick override for one instance. An explicit
	// id list that would resolve to zero entities is refused with
	// ErrEmptySelection; the stored pick keeps its previous value.
	UpdatePick(ctx context.Context, siteID, instanceKey string, pick models.Pick) (*models.Site, error)

	// Render resolves one document instance into its display tree.
	// Returns ErrSiteNotFound if the case does not exist.
	Render(ctx context.Context, siteID, instanceKey string, isPrint bool) (*doctmpl.Document, error)

	// RenderAll renders every planned instance in plan order, the
	// batch print pass. Instances whose pick turns printing off are
	// skipped when isPrint is set.
	RenderAll(ctx context.Context, siteID string, isPrint bool) ([]doctmpl.Document, error)
}

type documentService struct {
	repo repository.StateRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewDocumentService creates a new instance of DocumentService. The
// clock is injected so rendered date blocks are reproducible in tests.
func NewDocumentService(repo repository.StateRepository, log *logger.Logger, now func() time.Time) DocumentService {
	return &documentService{repo: repo, log: log, now: now}
}

func (s *documentService) loadSite(ctx context.Context, siteID string) (*models.Site, error) {
	site, err := s.repo.GetSite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load site: %w", err)
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}
	return site, nil
}

func (s *documentService) Plan(ctx context.Context, siteID string) (*DocumentPlan, error) {
	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if docplan.Reconcile(site) {
		if err := s.repo.PutSite(ctx, *site); err != nil {
			return nil, fmt.Errorf("failed to store reconciled site: %w", err)
		}
	}
	return &DocumentPlan{
		Docs:      docplan.OrderedDocs(site.Applications),
		Instances: docplan.Instances(*site),
	}, nil
}

// splitInstanceKey parses "{name}__{index}". A missing or malformed
// index degrades to instance 1 of the whole key, matching the
// permissive treatment of stale keys elsewhere.
func splitInstanceKey(key string) (name string, index int) {
	i := strings.LastIndex(key, "__")
	if i < 0 {
		return key, 1
	}
	n, err := strconv.Atoi(key[i+2:])
	if err != nil || n < 1 {
		return key, 1
	}
	return key[:i], n
}

// selectionViable reports whether an explicit id list still matches at
// least one element of its pool. Empty lists are always viable: they
// mean "use the default selection".
func selectionViable(explicit []string, poolIDs map[string]bool) bool {
	if len(explicit) == 0 {
		return true
	}
	for _, id := range explicit {
		if poolIDs[id] {
			return true
		}
	}
	return false
}

func personIDSet(people []models.Person) map[string]bool {
	out := make(map[string]bool, len(people))
	for _, p := range people {
		out[p.ID] = true
	}
	return out
}

func (s *documentService) UpdatePick(ctx context.Context, siteID, instanceKey string, pick models.Pick) (*models.Site, error) {
	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	people := personIDSet(site.People)
	if !selectionViable(pick.ApplicantPersonIDs, people) ||
		!selectionViable(pick.StatementPersonIDs, people) ||
		!selectionViable(pick.ConfirmApplicantPersonIDs, people) ||
		!selectionViable(pick.LossCertOwnerIDs, people) {
		return nil, ErrEmptySelection
	}

	if site.DocPick == nil {
		site.DocPick = map[string]models.Pick{}
	}
	site.DocPick[instanceKey] = pick

	if err := s.repo.PutSite(ctx, *site); err != nil {
		s.log.WithSite(siteID).Error("Failed to store pick", err, map[string]interface{}{
			"instance_key": instanceKey,
		})
		return nil, fmt.Errorf("failed to store pick: %w", err)
	}

	s.log.WithSite(siteID).Debug("Pick updated", map[string]interface{}{
		"instance_key": instanceKey,
	})
	return site, nil
}

func (s *documentService) scrivenerFor(ctx context.Context, site *models.Site) (*models.Scrivener, error) {
	if site.ScrivenerID == "" {
		return nil, nil
	}
	list, err := s.repo.ListScriveners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scriveners: %w", err)
	}
	for i := range list {
		if list[i].ID == site.ScrivenerID {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (s *documentService) Render(ctx context.Context, siteID, instanceKey string, isPrint bool) (*doctmpl.Document, error) {
	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	scrivener, err := s.scrivenerFor(ctx, site)
	if err != nil {
		return nil, err
	}

	name, index := splitInstanceKey(instanceKey)
	raw, ok := site.DocPick[instanceKey]
	var stored *models.Pick
	if ok {
		stored = &raw
	}

	doc := doctmpl.Render(doctmpl.Input{
		Site:      *site,
		Name:      name,
		Index:     index,
		Pick:      selector.Normalize(stored),
		Scrivener: scrivener,
		Now:       s.now(),
		IsPrint:   isPrint,
	})
	return &doc, nil
}

func (s *documentService) RenderAll(ctx context.Context, siteID string, isPrint bool) ([]doctmpl.Document, error) {
	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	scrivener, err := s.scrivenerFor(ctx, site)
	if err != nil {
		return nil, err
	}

	instances := docplan.Instances(*site)
	now := s.now()
	docs := make([]doctmpl.Document, 0, len(instances))
	for _, inst := range instances {
		raw, ok := site.DocPick[inst.Key]
		var stored *models.Pick
		if ok {
			stored = &raw
		}
		pick := selector.Normalize(stored)
		if isPrint && !pick.PrintOn {
			continue
		}
		docs = append(docs, doctmpl.Render(doctmpl.Input{
			Site:      *site,
			Name:      inst.Name,
			Index:     inst.Index,
			Pick:      pick,
			Scrivener: scrivener,
			Now:       now,
			IsPrint:   isPrint,
		}))
	}

	s.log.WithSite(siteID).Info("Batch render completed", map[string]interface{}{
		"count": len(docs),
	})
	return docs, nil
}
