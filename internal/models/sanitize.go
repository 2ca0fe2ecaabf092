package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/ssuzuki/toukidocs/internal/jptext"
	"github.com/ssuzuki/toukidocs/internal/kozo"
	"github.com/ssuzuki/toukidocs/internal/wareki"
)

// DefaultSiteName is the name given to a freshly created case.
const DefaultSiteName = "新規現場"

// NewSite builds an empty case with zeroed application counts.
func NewSite(name string, newID IDGenerator) Site {
	if name == "" {
		name = DefaultSiteName
	}
	apps := make(map[string]int, len(ApplicationTypes))
	for _, t := range ApplicationTypes {
		apps[t] = 0
	}
	return Site{
		ID:                newID(),
		Name:              name,
		Land:              []Land{},
		Buildings:         []Building{},
		ProposedBuildings: []Building{},
		People:            []Person{},
		Applications:      apps,
		Documents:         map[string]int{},
		DocPick:           map[string]Pick{},
	}
}

// NewBuilding builds an empty building with a single blank first-floor
// row.
func NewBuilding(newID IDGenerator) Building {
	return Building{
		ID:               newID(),
		FloorAreas:       []kozo.FloorArea{{ID: newID(), Floor: kozo.FloorLabel(1)}},
		Annexes:          []Annex{},
		RegistrationDate: wareki.Date{Era: "令和"},
		AdditionalCauses: []CauseEntry{},
	}
}

// NewAnnex builds an empty annex.
func NewAnnex(newID IDGenerator) Annex {
	return Annex{
		ID:               newID(),
		FloorAreas:       []kozo.FloorArea{{ID: newID(), Floor: kozo.FloorLabel(1)}},
		RegistrationDate: wareki.Date{Era: "令和"},
		AdditionalCauses: []CauseEntry{},
	}
}

// NewPerson builds a person defaulting to the applicant role.
func NewPerson(newID IDGenerator) Person {
	return Person{ID: newID(), Roles: []Role{RoleApplicant}}
}

// DefaultConfirmationCert builds the confirmation-certificate stub
// presented when the user enables the section.
func DefaultConfirmationCert(now time.Time) *ConfirmationCert {
	today := wareki.Today(now)
	return &ConfirmationCert{
		RNo:  "01",
		Code: "確認建築富建セ",
		Date: wareki.Date{
			Era:  today.Era,
			Year: jptext.ToFullWidthDigits(strconv.Itoa(today.Year)),
		},
	}
}

// ParseRoles converts a legacy single-role string ("申請人、工事人")
// into a role list. Unknown labels are preserved rather than dropped;
// an empty result defaults to applicant.
func ParseRoles(legacy string) []Role {
	parts := strings.FieldsFunc(legacy, func(r rune) bool {
		return r == '、' || r == ','
	})
	roles := make([]Role, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			roles = append(roles, Role(p))
		}
	}
	if len(roles) == 0 {
		roles = []Role{RoleApplicant}
	}
	return roles
}

func sanitizeDate(d wareki.Date) wareki.Date {
	if d.Era == "" {
		d.Era = "令和"
	}
	return d
}

func sanitizeCause(c CauseEntry, newID IDGenerator) CauseEntry {
	if c.ID == "" {
		c.ID = newID()
	}
	c.Date = sanitizeDate(c.Date)
	return c
}

// SanitizeAnnex regenerates the annex's floor rows from its structure
// string (plus the basement flag) while preserving entered areas by
// label.
func SanitizeAnnex(a Annex, newID IDGenerator) Annex {
	if a.ID == "" {
		a.ID = newID()
	}
	labels := kozo.ParseAnnexFloors(a.Struct)
	if a.IncludeBasement {
		labels = append(labels, kozo.BasementLabel(1))
	}
	a.FloorAreas = kozo.RegenerateRows(labels, a.FloorAreas, func() string { return newID() })
	a.RegistrationDate = sanitizeDate(a.RegistrationDate)
	if a.AdditionalCauses == nil {
		a.AdditionalCauses = []CauseEntry{}
	}
	for i, c := range a.AdditionalCauses {
		a.AdditionalCauses[i] = sanitizeCause(c, newID)
	}
	return a
}

// SanitizeBuilding reconciles the building's structure string with its
// floor rows and normalizes nested records. A building edited with the
// split material field is row-driven: the floor suffix is recomputed
// from the filled rows and a blank next row is kept open for entry.
// Legacy single-field buildings go the other way, regenerating rows
// from the parsed structure string. Areas survive by label either way.
func SanitizeBuilding(b Building, newID IDGenerator) Building {
	if b.ID == "" {
		b.ID = newID()
	}
	gen := func() string { return newID() }
	if b.StructMaterial != "" {
		b.FloorAreas = kozo.EnsureNextFloors(b.FloorAreas, b.HasBasement, gen)
		b.StructFloor = kozo.ComputeStructFloor(b.FloorAreas)
		b.Struct = b.StructMaterial + b.StructFloor
	} else {
		b.FloorAreas = kozo.RegenerateRows(kozo.ParseFloors(b.Struct), b.FloorAreas, gen)
	}
	if b.Annexes == nil {
		b.Annexes = []Annex{}
	}
	for i, a := range b.Annexes {
		b.Annexes[i] = SanitizeAnnex(a, newID)
	}
	b.RegistrationDate = sanitizeDate(b.RegistrationDate)
	if b.AdditionalCauses == nil {
		b.AdditionalCauses = []CauseEntry{}
	}
	for i, c := range b.AdditionalCauses {
		b.AdditionalCauses[i] = sanitizeCause(c, newID)
	}
	if b.ConfirmationCert != nil {
		cc := *b.ConfirmationCert
		if cc.RNo == "" {
			cc.RNo = "01"
		}
		cc.Date.Year = jptext.ToFullWidthDigits(cc.Date.Year)
		b.ConfirmationCert = &cc
	}
	return b
}

// SanitizeSite normalizes a site loaded from storage or import so the
// core can assume every list, date record and role set is present.
func SanitizeSite(s Site, newID IDGenerator) Site {
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Name == "" {
		s.Name = DefaultSiteName
	}
	if s.Land == nil {
		s.Land = []Land{}
	}
	for i, l := range s.Land {
		if l.ID == "" {
			l.ID = newID()
			s.Land[i] = l
		}
	}
	if s.Buildings == nil {
		s.Buildings = []Building{}
	}
	for i, b := range s.Buildings {
		s.Buildings[i] = SanitizeBuilding(b, newID)
	}
	if s.ProposedBuildings == nil {
		s.ProposedBuildings = []Building{}
	}
	for i, b := range s.ProposedBuildings {
		s.ProposedBuildings[i] = SanitizeBuilding(b, newID)
	}
	if s.People == nil {
		s.People = []Person{}
	}
	for i, p := range s.People {
		if p.ID == "" {
			p.ID = newID()
		}
		if len(p.Roles) == 0 {
			p.Roles = []Role{RoleApplicant}
		}
		s.People[i] = p
	}
	apps := make(map[string]int, len(ApplicationTypes))
	for _, t := range ApplicationTypes {
		apps[t] = s.Applications[t]
	}
	s.Applications = apps
	if s.Documents == nil {
		s.Documents = map[string]int{}
	}
	if s.DocPick == nil {
		s.DocPick = map[string]Pick{}
	}
	return s
}

// SanitizeContractors fills missing ids and accepts the legacy name
// field for the trade name.
func SanitizeContractors(list []Contractor, newID IDGenerator) []Contractor {
	out := make([]Contractor, 0, len(list))
	for _, c := range list {
		if c.ID == "" {
			c.ID = newID()
		}
		if c.TradeName == "" {
			c.TradeName = c.LegacyName
		}
		c.LegacyName = ""
		out = append(out, c)
	}
	return out
}

// SanitizeScriveners fills missing ids.
func SanitizeScriveners(list []Scrivener, newID IDGenerator) []Scrivener {
	out := make([]Scrivener, 0, len(list))
	for _, s := range list {
		if s.ID == "" {
			s.ID = newID()
		}
		out = append(out, s)
	}
	return out
}
