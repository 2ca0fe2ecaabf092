package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/ssuzuki/toukidocs/internal/kozo"
)

func testIDGen() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestNewSite(t *testing.T) {
	s := NewSite("", testIDGen())
	if s.ID == "" {
		t.Error("Expected generated id")
	}
	if s.Name != DefaultSiteName {
		t.Errorf("Expected default name, got %q", s.Name)
	}
	if len(s.Applications) != len(ApplicationTypes) {
		t.Errorf("Expected %d application counters, got %d", len(ApplicationTypes), len(s.Applications))
	}
	for _, typ := range ApplicationTypes {
		if s.Applications[typ] != 0 {
			t.Errorf("Expected zero count for %s", typ)
		}
	}
	if s.Documents == nil || s.DocPick == nil {
		t.Error("Expected initialized document maps")
	}

	named := NewSite("砺波市現場", testIDGen())
	if named.Name != "砺波市現場" {
		t.Errorf("Expected given name, got %q", named.Name)
	}
}

func TestNewBuilding(t *testing.T) {
	b := NewBuilding(testIDGen())
	if b.ID == "" {
		t.Error("Expected generated id")
	}
	if len(b.FloorAreas) != 1 || b.FloorAreas[0].Floor != "１階" {
		t.Errorf("Expected single blank first-floor row, got %+v", b.FloorAreas)
	}
	if b.RegistrationDate.Era != "令和" {
		t.Errorf("Expected default era, got %q", b.RegistrationDate.Era)
	}
}

func TestParseRoles(t *testing.T) {
	tests := []struct {
		name   string
		legacy string
		want   []Role
	}{
		{
			name:   "single role",
			legacy: "申請人",
			want:   []Role{RoleApplicant},
		},
		{
			name:   "multiple roles with ideographic comma",
			legacy: "申請人、工事人",
			want:   []Role{RoleApplicant, RoleContractor},
		},
		{
			name:   "unknown label preserved",
			legacy: "相続人",
			want:   []Role{Role("相続人")},
		},
		{
			name:   "empty defaults to applicant",
			legacy: "",
			want:   []Role{RoleApplicant},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRoles(tt.legacy)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d roles, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Role %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSanitizeBuilding(t *testing.T) {
	t.Run("rows follow the structure string", func(t *testing.T) {
		b := Building{
			Struct: "木造スレート葺２階建",
			FloorAreas: []kozo.FloorArea{
				{ID: "r1", Floor: "１階", Area: "50.12"},
			},
		}
		got := SanitizeBuilding(b, testIDGen())
		if len(got.FloorAreas) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(got.FloorAreas))
		}
		if got.FloorAreas[0].Area != "50.12" {
			t.Errorf("Expected first-floor area preserved, got %+v", got.FloorAreas[0])
		}
		if got.FloorAreas[1].Floor != "２階" || got.FloorAreas[1].Area != "" {
			t.Errorf("Expected blank second-floor row, got %+v", got.FloorAreas[1])
		}
	})

	t.Run("split material field drives rows to the structure string", func(t *testing.T) {
		b := Building{
			StructMaterial: "木造かわらぶき",
			FloorAreas: []kozo.FloorArea{
				{ID: "r1", Floor: "１階", Area: "45.50"},
				{ID: "r2", Floor: "２階", Area: "30.00"},
			},
		}
		got := SanitizeBuilding(b, testIDGen())
		if got.StructFloor != "２階建" {
			t.Errorf("Expected floor suffix recomputed from rows, got %q", got.StructFloor)
		}
		if got.Struct != "木造かわらぶき２階建" {
			t.Errorf("Expected structure string reassembled, got %q", got.Struct)
		}
		if len(got.FloorAreas) != 3 {
			t.Fatalf("Expected a blank next row appended, got %d rows", len(got.FloorAreas))
		}
		if got.FloorAreas[2].Floor != "３階" || got.FloorAreas[2].Area != "" {
			t.Errorf("Expected blank third-floor row, got %+v", got.FloorAreas[2])
		}
	})

	t.Run("split material field with basement", func(t *testing.T) {
		b := Building{
			StructMaterial: "木造かわらぶき",
			HasBasement:    true,
			FloorAreas: []kozo.FloorArea{
				{ID: "r1", Floor: "１階", Area: "45.50"},
				{ID: "r2", Floor: "地下１階", Area: "20.00"},
			},
		}
		got := SanitizeBuilding(b, testIDGen())
		if got.StructFloor != "地下１階付平家建" {
			t.Errorf("Expected basement suffix, got %q", got.StructFloor)
		}
		if len(got.FloorAreas) != 4 {
			t.Fatalf("Expected blank ground and basement rows appended, got %d rows", len(got.FloorAreas))
		}
		if got.FloorAreas[3].Floor != "地下２階" {
			t.Errorf("Expected blank next basement row, got %+v", got.FloorAreas[3])
		}
	})

	t.Run("missing id and era are filled", func(t *testing.T) {
		got := SanitizeBuilding(Building{}, testIDGen())
		if got.ID == "" {
			t.Error("Expected generated id")
		}
		if got.RegistrationDate.Era != "令和" {
			t.Errorf("Expected default era, got %q", got.RegistrationDate.Era)
		}
		if got.Annexes == nil || got.AdditionalCauses == nil {
			t.Error("Expected initialized slices")
		}
	})

	t.Run("confirmation cert year normalized", func(t *testing.T) {
		b := Building{
			ConfirmationCert: &ConfirmationCert{Number: "1234"},
		}
		got := SanitizeBuilding(b, testIDGen())
		if got.ConfirmationCert.RNo != "01" {
			t.Errorf("Expected default RNo 01, got %q", got.ConfirmationCert.RNo)
		}
	})
}

func TestSanitizeAnnex(t *testing.T) {
	t.Run("basement flag adds a basement row", func(t *testing.T) {
		a := Annex{
			Struct:          "木造かわらぶき平家建",
			IncludeBasement: true,
		}
		got := SanitizeAnnex(a, testIDGen())
		if len(got.FloorAreas) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(got.FloorAreas))
		}
		if got.FloorAreas[1].Floor != "地下１階" {
			t.Errorf("Expected basement row, got %+v", got.FloorAreas[1])
		}
	})

	t.Run("structure basement marker is ignored", func(t *testing.T) {
		a := Annex{Struct: "木造地下１階付２階建"}
		got := SanitizeAnnex(a, testIDGen())
		if len(got.FloorAreas) != 2 {
			t.Errorf("Expected 2 ground rows only, got %+v", got.FloorAreas)
		}
	})
}

func TestSanitizeSite(t *testing.T) {
	t.Run("nil collections become empty", func(t *testing.T) {
		got := SanitizeSite(Site{Name: "現場"}, testIDGen())
		if got.Land == nil || got.Buildings == nil || got.ProposedBuildings == nil || got.People == nil {
			t.Error("Expected all entity lists non-nil")
		}
		if got.Documents == nil || got.DocPick == nil {
			t.Error("Expected document maps non-nil")
		}
		if len(got.Applications) != len(ApplicationTypes) {
			t.Errorf("Expected full application counter set, got %d", len(got.Applications))
		}
	})

	t.Run("unknown application keys are dropped", func(t *testing.T) {
		s := Site{
			Name:         "現場",
			Applications: map[string]int{AppBuildingTitle: 2, "古い申請": 1},
		}
		got := SanitizeSite(s, testIDGen())
		if got.Applications[AppBuildingTitle] != 2 {
			t.Errorf("Expected known counter preserved, got %d", got.Applications[AppBuildingTitle])
		}
		if _, ok := got.Applications["古い申請"]; ok {
			t.Error("Expected unknown counter dropped")
		}
	})

	t.Run("people get ids and default role", func(t *testing.T) {
		s := Site{
			Name:   "現場",
			People: []Person{{Name: "甲野太郎"}},
		}
		got := SanitizeSite(s, testIDGen())
		if got.People[0].ID == "" {
			t.Error("Expected generated person id")
		}
		if len(got.People[0].Roles) != 1 || got.People[0].Roles[0] != RoleApplicant {
			t.Errorf("Expected default applicant role, got %v", got.People[0].Roles)
		}
	})
}

func TestDefaultConfirmationCert(t *testing.T) {
	now := time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC)
	cert := DefaultConfirmationCert(now)
	if cert.RNo != "01" {
		t.Errorf("Expected RNo 01, got %q", cert.RNo)
	}
	if cert.Date.Era != "令和" || cert.Date.Year != "７" {
		t.Errorf("Expected 令和７, got %s%s", cert.Date.Era, cert.Date.Year)
	}
}

func TestSanitizeContractors(t *testing.T) {
	t.Run("missing ids are filled", func(t *testing.T) {
		list := []Contractor{{TradeName: "一番工務店"}, {ID: "c1", TradeName: "二番工務店"}}
		got := SanitizeContractors(list, testIDGen())
		if got[0].ID == "" {
			t.Error("Expected generated id for first contractor")
		}
		if got[1].ID != "c1" {
			t.Errorf("Expected existing id preserved, got %q", got[1].ID)
		}
	})

	t.Run("legacy name becomes the trade name", func(t *testing.T) {
		list := []Contractor{
			{ID: "c1", LegacyName: "旧型工務店"},
			{ID: "c2", TradeName: "新型工務店", LegacyName: "無視される名前"},
		}
		got := SanitizeContractors(list, testIDGen())
		if got[0].TradeName != "旧型工務店" {
			t.Errorf("Expected legacy name folded in, got %q", got[0].TradeName)
		}
		if got[1].TradeName != "新型工務店" {
			t.Errorf("Expected trade name untouched, got %q", got[1].TradeName)
		}
		for i, c := range got {
			if c.LegacyName != "" {
				t.Errorf("Expected legacy field cleared on contractor %d, got %q", i, c.LegacyName)
			}
		}
	})
}
