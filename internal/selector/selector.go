// Package selector resolves the concrete entity sets a document
// instance renders: who signs, which building or parcels are shown,
// which contractor attests. Every selector is a pure function of the
// site data and the instance's pick, re-run for both interactive
// preview and batch print.
package selector

import (
	"strings"

	"github.com/ssuzuki/toukidocs/internal/jptext"
	"github.com/ssuzuki/toukidocs/internal/models"
)

// Pick is a pick with every field resolved: id lists non-nil, show and
// print flags concrete. Build one with Normalize before any selector
// or renderer runs.
type Pick struct {
	ApplicantPersonIDs         []string
	StatementPersonIDs         []string
	ConfirmApplicantPersonIDs  []string
	StatementApplicantPersonID string
	TargetPropBuildingID       string
	TargetContractorPersonID   string
	TargetLandIDs              []string
	LossBuildingIDs            []string
	LossCertOwnerIDs           []string
	ShowMain                   bool
	ShowAnnex                  bool
	PrintOn                    bool
	CustomText                 string
	HasCustomText              bool
	StampPositions             []models.StampPos
	SignerStampPositions       []models.StampPos
	BuildingSourceRegistered   bool
	SaleBuyerText              string
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Normalize merges the canonical empty pick under a stored partial
// pick. A nil input yields the pure default.
func Normalize(raw *models.Pick) Pick {
	if raw == nil {
		raw = &models.Pick{}
	}
	p := Pick{
		ApplicantPersonIDs:         orEmpty(raw.ApplicantPersonIDs),
		StatementPersonIDs:         orEmpty(raw.StatementPersonIDs),
		ConfirmApplicantPersonIDs:  orEmpty(raw.ConfirmApplicantPersonIDs),
		StatementApplicantPersonID: raw.StatementApplicantPersonID,
		TargetPropBuildingID:       raw.TargetPropBuildingID,
		TargetContractorPersonID:   raw.TargetContractorPersonID,
		TargetLandIDs:              orEmpty(raw.TargetLandIDs),
		LossBuildingIDs:            orEmpty(raw.LossBuildingIDs),
		LossCertOwnerIDs:           orEmpty(raw.LossCertOwnerIDs),
		ShowMain:                   boolOr(raw.ShowMain, true),
		ShowAnnex:                  boolOr(raw.ShowAnnex, true),
		PrintOn:                    boolOr(raw.PrintOn, true),
		StampPositions:             raw.StampPositions,
		SignerStampPositions:       raw.SignerStampPositions,
		BuildingSourceRegistered:   raw.BuildingSourceRegistered,
		SaleBuyerText:              raw.SaleBuyerText,
	}
	if raw.CustomText != nil {
		p.CustomText = *raw.CustomText
		p.HasCustomText = true
	}
	return p
}

// SignerStampOffset returns the stored offset for a signer slot, or
// zero when none was dragged.
func (p Pick) SignerStampOffset(idx int) (dx, dy float64) {
	for _, pos := range p.SignerStampPositions {
		if pos.I == idx {
			return pos.Dx, pos.Dy
		}
	}
	return 0, 0
}

// StampOffset returns the stored offset for a header stamp slot.
func (p Pick) StampOffset(idx int) (dx, dy float64) {
	for _, pos := range p.StampPositions {
		if pos.I == idx {
			return pos.Dx, pos.Dy
		}
	}
	return 0, 0
}

// resolveWithFallback filters pool to the explicit id set. An empty id
// set, or one that matches nothing, yields the pool itself, so a stale
// override can never shrink a signer list to zero.
func resolveWithFallback[T any](pool []T, explicitIDs []string, id func(T) string) []T {
	if len(explicitIDs) == 0 {
		return pool
	}
	want := make(map[string]bool, len(explicitIDs))
	for _, v := range explicitIDs {
		want[v] = true
	}
	filtered := make([]T, 0, len(pool))
	for _, item := range pool {
		if want[id(item)] {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return pool
	}
	return filtered
}

func peopleWithRole(people []models.Person, roles ...models.Role) []models.Person {
	out := make([]models.Person, 0, len(people))
	for _, p := range people {
		if p.HasAnyRole(roles...) {
			out = append(out, p)
		}
	}
	return out
}

func personID(p models.Person) string { return p.ID }

// Applicants resolves the delegation signer list: people with the
// applicant role, narrowed by the pick's id set when that still
// matches at least one of them.
func Applicants(people []models.Person, pick Pick) []models.Person {
	pool := peopleWithRole(people, models.RoleApplicant)
	return resolveWithFallback(pool, pick.ApplicantPersonIDs, personID)
}

// LandApplicants resolves the signer list for the land-category-change
// delegation: land owners by default, falling back to applicants, with
// the usual id-set narrowing over the combined candidate pool.
func LandApplicants(people []models.Person, pick Pick) []models.Person {
	candidates := peopleWithRole(people, models.RoleLandOwner, models.RoleApplicant)
	if len(pick.ApplicantPersonIDs) > 0 {
		return resolveWithFallback(candidates, pick.ApplicantPersonIDs, personID)
	}
	owners := peopleWithRole(people, models.RoleLandOwner)
	if len(owners) > 0 {
		return owners
	}
	return candidates
}

// LossApplicants resolves the signer list for the loss delegation:
// building owners by default, applicants as the wider pool.
func LossApplicants(people []models.Person, pick Pick) []models.Person {
	candidates := peopleWithRole(people, models.RoleBuildingOwner, models.RoleApplicant)
	if len(pick.ApplicantPersonIDs) > 0 {
		return resolveWithFallback(candidates, pick.ApplicantPersonIDs, personID)
	}
	owners := peopleWithRole(people, models.RoleBuildingOwner)
	if len(owners) > 0 {
		return owners
	}
	return candidates
}

// StatementSigners resolves the statement (申述書) signer block:
// construction applicants when any exist, otherwise applicants, then
// the id-set narrowing.
func StatementSigners(people []models.Person, pick Pick) []models.Person {
	pool := peopleWithRole(people, models.RoleConstructionApplicant)
	if len(pool) == 0 {
		pool = peopleWithRole(people, models.RoleApplicant)
	}
	return resolveWithFallback(pool, pick.StatementPersonIDs, personID)
}

// ConfirmApplicants resolves the 確認済証 name list on statements:
// construction applicants by default, applicants admitted through the
// explicit id set.
func ConfirmApplicants(people []models.Person, pick Pick) []models.Person {
	candidates := peopleWithRole(people, models.RoleApplicant, models.RoleConstructionApplicant)
	if len(pick.ConfirmApplicantPersonIDs) > 0 {
		return resolveWithFallback(candidates, pick.ConfirmApplicantPersonIDs, personID)
	}
	return peopleWithRole(people, models.RoleConstructionApplicant)
}

// CertOwners resolves the owner block on loss and non-listing
// certificates: building owners by default, the applicant pool
// reachable through the pick.
func CertOwners(people []models.Person, pick Pick) []models.Person {
	candidates := peopleWithRole(people, models.RoleBuildingOwner, models.RoleApplicant)
	if len(pick.LossCertOwnerIDs) > 0 {
		return resolveWithFallback(candidates, pick.LossCertOwnerIDs, personID)
	}
	owners := peopleWithRole(people, models.RoleBuildingOwner)
	if len(owners) > 0 {
		return owners
	}
	return candidates
}

// Contractor resolves the attesting contractor: the picked person when
// valid, else the first person holding the contractor role.
func Contractor(people []models.Person, pick Pick) *models.Person {
	pool := peopleWithRole(people, models.RoleContractor)
	if len(pool) == 0 {
		return nil
	}
	if pick.TargetContractorPersonID != "" {
		for i := range pool {
			if pool[i].ID == pick.TargetContractorPersonID {
				return &pool[i]
			}
		}
	}
	return &pool[0]
}

// SortedBuildings orders buildings by house number the way a clerk
// files them.
func SortedBuildings(buildings []models.Building) []models.Building {
	return jptext.SortByNatural(buildings, func(b models.Building) string { return b.HouseNum })
}

// SortedLand orders parcels by lot number.
func SortedLand(land []models.Land) []models.Land {
	return jptext.SortByNatural(land, func(l models.Land) string { return l.LotNumber })
}

// TargetBuilding resolves the single building a document is bound to:
// the picked id against the naturally-sorted list, else the first
// sorted building. Returns nil only when the list is empty.
func TargetBuilding(buildings []models.Building, pick Pick) *models.Building {
	sorted := SortedBuildings(buildings)
	if len(sorted) == 0 {
		return nil
	}
	if pick.TargetPropBuildingID != "" {
		for i := range sorted {
			if sorted[i].ID == pick.TargetPropBuildingID {
				return &sorted[i]
			}
		}
	}
	return &sorted[0]
}

// TargetLand resolves the parcel set for the address-change
// delegation: the naturally-sorted list narrowed by the pick.
func TargetLand(land []models.Land, pick Pick) []models.Land {
	sorted := SortedLand(land)
	return resolveWithFallback(sorted, pick.TargetLandIDs, func(l models.Land) string { return l.ID })
}

// lossCauses are the registration causes that mark a building as lost.
var lossCauses = []string{"取壊し", "焼失", "倒壊", "滅失"}

// IsLossCause reports whether a registration cause marks the building
// as lost or demolished.
func IsLossCause(cause string) bool {
	for _, c := range lossCauses {
		if strings.Contains(cause, c) {
			return true
		}
	}
	return false
}

// LossBuildings resolves the buildings listed on loss documents:
// naturally-sorted proposed buildings whose cause marks a loss,
// narrowed by the pick's id set.
func LossBuildings(buildings []models.Building, pick Pick) []models.Building {
	sorted := SortedBuildings(buildings)
	matches := make([]models.Building, 0, len(sorted))
	for _, b := range sorted {
		if IsLossCause(b.RegistrationCause) {
			matches = append(matches, b)
		}
	}
	return resolveWithFallback(matches, pick.LossBuildingIDs, func(b models.Building) string { return b.ID })
}

// PersonByID finds a person in the site, or nil.
func PersonByID(people []models.Person, id string) *models.Person {
	if id == "" {
		return nil
	}
	for i := range people {
		if people[i].ID == id {
			return &people[i]
		}
	}
	return nil
}
