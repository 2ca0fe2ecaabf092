// Package models defines the case (site) data consumed by the document
// engine, together with the sanitization that normalizes every record
// before the core ever sees it. Entities are site-local; ids never
// cross sites.
package models

import (
	"github.com/ssuzuki/toukidocs/internal/kozo"
	"github.com/ssuzuki/toukidocs/internal/wareki"
)

// IDGenerator produces entity ids. Injected so the core stays free of
// ambient globals and tests can use deterministic ids.
type IDGenerator func() string

// Role is a person's function within a filing. A person may hold
// several roles at once; role membership drives which documents list
// them as signer, owner or contractor.
type Role string

const (
	RoleApplicant             Role = "申請人"
	RoleLandOwner             Role = "土地所有者"
	RoleBuildingOwner         Role = "建物所有者"
	RoleConstructionApplicant Role = "建築申請人"
	RoleContractor            Role = "工事人"
	RoleOther                 Role = "その他"
)

// RoleOptions lists the selectable roles in form order.
var RoleOptions = []Role{
	RoleApplicant, RoleLandOwner, RoleBuildingOwner,
	RoleConstructionApplicant, RoleContractor, RoleOther,
}

// Person is anyone attached to a case: applicants, owners, the
// construction contractor, heirs.
type Person struct {
	ID                 string `json:"id"`
	Address            string `json:"address"`
	Name               string `json:"name"`
	Representative     string `json:"representative"`
	Share              string `json:"share"`
	Roles              []Role `json:"roles"`
	ContractorMasterID string `json:"contractorMasterId"`
	DecedentName       string `json:"decedentName,omitempty"`
}

// HasRole reports whether the person holds the given role.
func (p *Person) HasRole(r Role) bool {
	for _, have := range p.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the person holds at least one of the
// given roles.
func (p *Person) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

// CauseEntry is one additional registration cause with its own date,
// used by multi-cause change filings.
type CauseEntry struct {
	ID    string      `json:"id"`
	Cause string      `json:"cause"`
	Date  wareki.Date `json:"date"`
}

// ConfirmationCert is the building-confirmation certificate reference
// printed on statements (第Ｒ０１確認建築… 号).
type ConfirmationCert struct {
	RNo    string      `json:"rNo"`
	Code   string      `json:"code"`
	Number string      `json:"number"`
	Date   wareki.Date `json:"date"`
}

// Annex is a subordinate structure grouped under a main building.
type Annex struct {
	ID                    string           `json:"id"`
	Symbol                string           `json:"symbol"`
	Kind                  string           `json:"kind"`
	Struct                string           `json:"struct"`
	IncludeBasement       bool             `json:"includeBasement"`
	FloorAreas            []kozo.FloorArea `json:"floorAreas"`
	RegistrationCause     string           `json:"registrationCause"`
	RegistrationDate      wareki.Date      `json:"registrationDate"`
	AdditionalCauses      []CauseEntry     `json:"additionalCauses"`
	AdditionalUnknownDate bool             `json:"additionalUnknownDate"`
}

// Building is a registered or proposed building with its annex group.
// StructMaterial and StructFloor together form Struct. When
// StructMaterial is set the rows lead: StructFloor is recomputed from
// the filled floor areas. Legacy single-field buildings regenerate
// rows from Struct instead.
type Building struct {
	ID                    string            `json:"id"`
	Address               string            `json:"address"`
	Symbol                string            `json:"symbol"`
	HouseNum              string            `json:"houseNum"`
	Kind                  string            `json:"kind"`
	Struct                string            `json:"struct"`
	StructMaterial        string            `json:"structMaterial,omitempty"`
	StructFloor           string            `json:"structFloor,omitempty"`
	Owner                 string            `json:"owner"`
	HasBasement           bool              `json:"hasBasement,omitempty"`
	FloorAreas            []kozo.FloorArea  `json:"floorAreas"`
	Annexes               []Annex           `json:"annexes"`
	RegistrationCause     string            `json:"registrationCause"`
	RegistrationDate      wareki.Date       `json:"registrationDate"`
	AdditionalCauses      []CauseEntry      `json:"additionalCauses"`
	AdditionalUnknownDate bool              `json:"additionalUnknownDate"`
	ConfirmationCert      *ConfirmationCert `json:"confirmationCert"`
}

// Land is one registered parcel, with an optional category-change
// sub-record used by the land-category-change delegation.
type Land struct {
	ID                    string `json:"id"`
	Address               string `json:"address"`
	LotNumber             string `json:"lotNumber"`
	Category              string `json:"category"`
	Area                  string `json:"area"`
	Owner                 string `json:"owner"`
	CategoryChangeEnabled bool   `json:"categoryChangeEnabled"`
	NewCategory           string `json:"newCategory"`
	NewArea               string `json:"newArea"`
}

// StampPos is a draggable stamp offset for slot index I.
type StampPos struct {
	I  int     `json:"i"`
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
}

// Pick is the per-document-instance override set as persisted. Empty
// id lists mean "use the default selection", never "select zero".
// Show/print flags are pointers so an absent override can be told
// apart from an explicit false; resolve them through the selector
// package before rendering.
type Pick struct {
	ApplicantPersonIDs         []string   `json:"applicantPersonIds,omitempty"`
	StatementPersonIDs         []string   `json:"statementPersonIds,omitempty"`
	ConfirmApplicantPersonIDs  []string   `json:"confirmApplicantPersonIds,omitempty"`
	StatementApplicantPersonID string     `json:"statementApplicantPersonId,omitempty"`
	TargetPropBuildingID       string     `json:"targetPropBuildingId,omitempty"`
	TargetContractorPersonID   string     `json:"targetContractorPersonId,omitempty"`
	TargetLandIDs              []string   `json:"targetLandIds,omitempty"`
	LossBuildingIDs            []string   `json:"lossBuildingIds,omitempty"`
	LossCertOwnerIDs           []string   `json:"lossCertOwnerIds,omitempty"`
	ShowMain                   *bool      `json:"showMain,omitempty"`
	ShowAnnex                  *bool      `json:"showAnnex,omitempty"`
	PrintOn                    *bool      `json:"printOn,omitempty"`
	CustomText                 *string    `json:"customText,omitempty"`
	StampPositions             []StampPos `json:"stampPositions,omitempty"`
	SignerStampPositions       []StampPos `json:"signerStampPositions,omitempty"`
	BuildingSourceRegistered   bool       `json:"buildingSourceRegistered,omitempty"`
	SaleBuyerText              string     `json:"saleBuyerText,omitempty"`
}

// Site is one case: its parcels, buildings, people and the document
// plan built on top of them.
type Site struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	Land              []Land          `json:"land"`
	Buildings         []Building      `json:"buildings"`
	ProposedBuildings []Building      `json:"proposedBuildings"`
	People            []Person        `json:"people"`
	Applications      map[string]int  `json:"applications"`
	Documents         map[string]int  `json:"documents"`
	DocPick           map[string]Pick `json:"docPick"`
	ContractorID      string          `json:"contractorId"`
	ScrivenerID       string          `json:"scrivenerId"`
}

// Contractor is a master record for a construction company, linkable
// from any site.
type Contractor struct {
	ID             string `json:"id"`
	Address        string `json:"address"`
	TradeName      string `json:"tradeName"`
	Representative string `json:"representative"`

	// LegacyName is the pre-split field older exports carry instead of
	// tradeName. Sanitization folds it in and clears it.
	LegacyName string `json:"name,omitempty"`
}

// Scrivener is a master record for the scrivener named on delegation
// letters.
type Scrivener struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Export is the persisted envelope for backup and transfer between
// installations.
type Export struct {
	SchemaVersion int          `json:"schemaVersion"`
	ExportedAt    string       `json:"exportedAt"`
	App           string       `json:"app"`
	ActiveSiteID  string       `json:"activeSiteId"`
	Sites         []Site       `json:"sites"`
	Contractors   []Contractor `json:"contractors,omitempty"`
	Scriveners    []Scrivener  `json:"scriveners,omitempty"`
}

// ExportSchemaVersion is the current envelope version.
const ExportSchemaVersion = 1

// ExportAppName identifies the producing application in the envelope.
const ExportAppName = "toukidocs"
