package docplan

import (
	"testing"

	"github.com/ssuzuki/toukidocs/internal/models"
)

func TestOrderedDocs(t *testing.T) {
	t.Run("no applications yields empty plan", func(t *testing.T) {
		got := OrderedDocs(map[string]int{})
		if len(got) != 0 {
			t.Errorf("Expected empty plan, got %v", got)
		}
	})

	t.Run("required precede optional within one application", func(t *testing.T) {
		got := OrderedDocs(map[string]int{"建物表題登記": 1})
		if len(got) == 0 {
			t.Fatal("Expected documents")
		}
		if got[0].Name != models.DocDelegationTitle || !got[0].Required {
			t.Errorf("Expected required title delegation first, got %+v", got[0])
		}
		for _, d := range got[1:] {
			if d.Required {
				t.Errorf("Expected only the delegation to be required, got %+v", d)
			}
		}
	})

	t.Run("shared document merges required flag and sources", func(t *testing.T) {
		// The address-change delegation is optional under both the
		// title and title-change applications.
		got := OrderedDocs(map[string]int{
			"建物表題登記":    1,
			"建物表題部変更登記": 1,
		})
		var addr *DocEntry
		count := 0
		for i := range got {
			if got[i].Name == models.DocDelegationAddressChange {
				addr = &got[i]
				count++
			}
		}
		if count != 1 {
			t.Fatalf("Expected one address-change entry, got %d", count)
		}
		if len(addr.Sources) != 2 {
			t.Errorf("Expected both source applications, got %v", addr.Sources)
		}
	})

	t.Run("zero-count applications contribute nothing", func(t *testing.T) {
		got := OrderedDocs(map[string]int{"建物滅失登記": 0})
		if len(got) != 0 {
			t.Errorf("Expected no documents, got %v", got)
		}
	})
}

func TestInstanceKey(t *testing.T) {
	if got := InstanceKey(models.DocDelegationTitle, 2); got != "委任状（表題）__2" {
		t.Errorf("InstanceKey() = %q", got)
	}
}

func TestInstances(t *testing.T) {
	site := models.Site{
		Applications: map[string]int{"建物表題登記": 2},
		Documents: map[string]int{
			models.DocDelegationTitle: 2,
			models.DocStatementShared: 1,
			"計画外の書類":                  1,
		},
	}
	got := Instances(site)

	if len(got) != 4 {
		t.Fatalf("Expected 4 instances, got %d: %+v", len(got), got)
	}
	if got[0].Key != "委任状（表題）__1" || got[1].Key != "委任状（表題）__2" {
		t.Errorf("Expected title delegations first, got %+v", got[:2])
	}
	if got[2].Name != models.DocStatementShared {
		t.Errorf("Expected statement next in plan order, got %+v", got[2])
	}
	// Counted documents outside the plan trail the planned ones.
	if got[3].Name != "計画外の書類" || got[3].Index != 1 {
		t.Errorf("Expected out-of-plan document last, got %+v", got[3])
	}
}

func TestReconcile(t *testing.T) {
	buildings := []models.Building{
		{ID: "b1", HouseNum: "2番"},
		{ID: "b2", HouseNum: "10番"},
	}

	t.Run("clamps title count to proposed buildings", func(t *testing.T) {
		site := models.Site{
			ProposedBuildings: buildings,
			Applications:      map[string]int{models.AppBuildingTitle: 5},
			Documents:         map[string]int{},
			DocPick:           map[string]models.Pick{},
		}
		if !Reconcile(&site) {
			t.Error("Expected a change to be reported")
		}
		if site.Applications[models.AppBuildingTitle] != 2 {
			t.Errorf("Expected clamped count 2, got %d", site.Applications[models.AppBuildingTitle])
		}
		if site.Documents[models.DocDelegationTitle] != 2 {
			t.Errorf("Expected delegation count to follow, got %d", site.Documents[models.DocDelegationTitle])
		}
	})

	t.Run("binds each title delegation to the i-th sorted building", func(t *testing.T) {
		site := models.Site{
			ProposedBuildings: buildings,
			Applications:      map[string]int{models.AppBuildingTitle: 2},
			Documents:         map[string]int{},
			DocPick:           map[string]models.Pick{},
		}
		Reconcile(&site)
		// Natural order puts 2番 before 10番.
		if pick := site.DocPick["委任状（表題）__1"]; pick.TargetPropBuildingID != "b1" {
			t.Errorf("Expected first instance bound to b1, got %q", pick.TargetPropBuildingID)
		}
		if pick := site.DocPick["委任状（表題）__2"]; pick.TargetPropBuildingID != "b2" {
			t.Errorf("Expected second instance bound to b2, got %q", pick.TargetPropBuildingID)
		}
	})

	t.Run("valid existing pick is untouched", func(t *testing.T) {
		site := models.Site{
			ProposedBuildings: buildings,
			Applications:      map[string]int{models.AppBuildingTitle: 1},
			Documents:         map[string]int{},
			DocPick: map[string]models.Pick{
				"委任状（表題）__1": {TargetPropBuildingID: "b2"},
			},
		}
		Reconcile(&site)
		if pick := site.DocPick["委任状（表題）__1"]; pick.TargetPropBuildingID != "b2" {
			t.Errorf("Expected explicit binding preserved, got %q", pick.TargetPropBuildingID)
		}
	})

	t.Run("statements default to the first building", func(t *testing.T) {
		site := models.Site{
			ProposedBuildings: buildings,
			Applications:      map[string]int{},
			Documents:         map[string]int{models.DocStatementShared: 1},
			DocPick:           map[string]models.Pick{},
		}
		Reconcile(&site)
		if pick := site.DocPick["申述書（共有）__1"]; pick.TargetPropBuildingID != "b1" {
			t.Errorf("Expected statement bound to first building, got %q", pick.TargetPropBuildingID)
		}
	})

	t.Run("stable state reports no change", func(t *testing.T) {
		site := models.Site{
			ProposedBuildings: buildings,
			Applications:      map[string]int{models.AppBuildingTitle: 1},
			Documents:         map[string]int{models.DocDelegationTitle: 1},
			DocPick: map[string]models.Pick{
				"委任状（表題）__1": {TargetPropBuildingID: "b1"},
			},
		}
		if Reconcile(&site) {
			t.Error("Expected no change on an already-consistent site")
		}
	})

	t.Run("nil site is a no-op", func(t *testing.T) {
		if Reconcile(nil) {
			t.Error("Expected no change for nil site")
		}
	})
}

func TestEnsureRequiredCounts(t *testing.T) {
	t.Run("raises required documents to one", func(t *testing.T) {
		site := models.Site{
			Applications: map[string]int{"建物滅失登記": 1},
			Documents:    map[string]int{},
		}
		if !EnsureRequiredCounts(&site) {
			t.Error("Expected a change to be reported")
		}
		if site.Documents[models.DocDelegationLoss] != 1 {
			t.Errorf("Expected loss delegation count 1, got %d", site.Documents[models.DocDelegationLoss])
		}
	})

	t.Run("title delegation is exempt", func(t *testing.T) {
		site := models.Site{
			Applications: map[string]int{models.AppBuildingTitle: 1},
			Documents:    map[string]int{},
		}
		EnsureRequiredCounts(&site)
		if site.Documents[models.DocDelegationTitle] != 0 {
			t.Errorf("Expected title delegation left at its mirrored count, got %d",
				site.Documents[models.DocDelegationTitle])
		}
	})

	t.Run("optional documents stay at zero", func(t *testing.T) {
		site := models.Site{
			Applications: map[string]int{"建物滅失登記": 1},
			Documents:    map[string]int{},
		}
		EnsureRequiredCounts(&site)
		if site.Documents[models.DocLossCert] != 0 {
			t.Errorf("Expected optional loss cert untouched, got %d", site.Documents[models.DocLossCert])
		}
	})
}
