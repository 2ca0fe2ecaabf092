package models

// Document names as they appear in the documents map and instance keys.
const (
	DocDelegationTitle           = "委任状（表題）"
	DocDelegationPreservation    = "委任状（保存）"
	DocDelegationLandCategory    = "委任状（地目変更）"
	DocDelegationLoss            = "委任状（滅失）"
	DocDelegationTitleChange     = "委任状（表題部変更）"
	DocDelegationAddressChange   = "委任状（住所変更）"
	DocDelegationTitleCorrection = "委任状（表題部更正）"
	DocDelegationMerge           = "委任状（合併）"
	DocDelegationSplit           = "委任状（分割）"
	DocDelegationCombine         = "委任状（合体）"
	DocCompletionCertTitle       = "工事完了引渡証明書（表題）"
	DocCompletionCertTitleChange = "工事完了引渡証明書（表題部変更）"
	DocLossCert                  = "滅失証明書（滅失）"
	DocLossCertTitleChange       = "滅失証明書（表題部変更）"
	DocNonListingCert            = "非登載証明書"
	DocStatementShared           = "申述書（共有）"
	DocStatementSole             = "申述書（単独）"
	DocSaleCert                  = "売渡証明書"
)

// Application (registration) types in form order.
var ApplicationTypes = []string{
	"建物表題登記",
	"土地地目変更登記",
	"建物滅失登記",
	"建物表題部変更登記",
	"建物表題部更正登記",
	"建物合併登記",
	"建物分割登記",
	"建物合体登記",
}

// AppBuildingTitle is the application type whose delegation count is
// clamped to the proposed-building count.
const AppBuildingTitle = "建物表題登記"

// DocSet lists the documents an application type can produce.
type DocSet struct {
	Required []string
	Optional []string
}

// ApplicationDocs maps each application type to its document sets.
var ApplicationDocs = map[string]DocSet{
	"建物表題登記": {
		Required: []string{DocDelegationTitle},
		Optional: []string{
			DocDelegationPreservation, DocDelegationAddressChange,
			DocCompletionCertTitle, DocStatementShared, DocStatementSole,
			DocSaleCert,
		},
	},
	"土地地目変更登記": {
		Required: []string{DocDelegationLandCategory},
	},
	"建物滅失登記": {
		Required: []string{DocDelegationLoss},
		Optional: []string{DocLossCert, DocNonListingCert},
	},
	"建物表題部変更登記": {
		Required: []string{DocDelegationTitleChange},
		Optional: []string{
			DocDelegationAddressChange, DocCompletionCertTitleChange,
			DocSaleCert, DocLossCertTitleChange, DocNonListingCert,
		},
	},
	"建物表題部更正登記": {
		Required: []string{DocDelegationTitleCorrection},
	},
	"建物合併登記": {
		Required: []string{DocDelegationMerge},
	},
	"建物分割登記": {
		Required: []string{DocDelegationSplit},
	},
	"建物合体登記": {
		Required: []string{DocDelegationCombine},
		Optional: []string{DocCompletionCertTitleChange},
	},
}
