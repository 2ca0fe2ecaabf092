package services

import (
	"context"
	"testing"

	"github.com/ssuzuki/toukidocs/internal/logger"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/repository"
)

func newMasterService(t *testing.T) (MasterService, repository.StateRepository) {
	t.Helper()
	repo := newTestRepo(t)
	return NewMasterService(repo, logger.New("test"), sequentialIDs()), repo
}

func TestMasterService_SaveContractor(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMasterService(t)

	t.Run("fills a blank id", func(t *testing.T) {
		stored, err := svc.SaveContractor(ctx, models.Contractor{TradeName: "一番工務店"})
		if err != nil {
			t.Fatalf("SaveContractor() failed: %v", err)
		}
		if stored.ID == "" {
			t.Error("Expected generated id")
		}
	})

	t.Run("keeps an existing id", func(t *testing.T) {
		stored, err := svc.SaveContractor(ctx, models.Contractor{ID: "c1", TradeName: "二番工務店"})
		if err != nil {
			t.Fatalf("SaveContractor() failed: %v", err)
		}
		if stored.ID != "c1" {
			t.Errorf("Expected id preserved, got %q", stored.ID)
		}
	})
}

func TestMasterService_ContractorLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMasterService(t)

	stored, err := svc.SaveContractor(ctx, models.Contractor{TradeName: "工務店"})
	if err != nil {
		t.Fatalf("SaveContractor() failed: %v", err)
	}
	list, err := svc.ListContractors(ctx)
	if err != nil {
		t.Fatalf("ListContractors() failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 contractor, got %d", len(list))
	}

	if err := svc.DeleteContractor(ctx, stored.ID); err != nil {
		t.Fatalf("DeleteContractor() failed: %v", err)
	}
	list, _ = svc.ListContractors(ctx)
	if len(list) != 0 {
		t.Errorf("Expected empty list, got %+v", list)
	}
}

func TestMasterService_Scriveners(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMasterService(t)

	stored, err := svc.SaveScrivener(ctx, models.Scrivener{Name: "塩谷　和昭"})
	if err != nil {
		t.Fatalf("SaveScrivener() failed: %v", err)
	}
	if stored.ID == "" {
		t.Error("Expected generated id")
	}

	list, err := svc.ListScriveners(ctx)
	if err != nil {
		t.Fatalf("ListScriveners() failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "塩谷　和昭" {
		t.Errorf("Unexpected scriveners: %+v", list)
	}

	if err := svc.DeleteScrivener(ctx, stored.ID); err != nil {
		t.Fatalf("DeleteScrivener() failed: %v", err)
	}
}
