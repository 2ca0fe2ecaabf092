package doctmpl

import "github.com/ssuzuki/toukidocs/internal/models"

// Kind is the closed set of document shapes the resolver can render.
// The kind is derived once from the document name at the boundary;
// internal logic never re-matches on name strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindDelegationTitle
	KindDelegationPreservation
	KindDelegationLandCategory
	KindDelegationLoss
	KindDelegationTitleChange
	KindDelegationAddressChange
	KindDelegationTitleCorrection
	KindDelegationMerge
	KindDelegationSplit
	KindDelegationCombine
	KindCompletionCertTitle
	KindCompletionCertTitleChange
	KindLossCert
	KindLossCertTitleChange
	KindNonListingCert
	KindStatementShared
	KindStatementSole
	KindSaleCert
)

var kindNames = map[Kind]string{
	KindUnknown:                   "unknown",
	KindDelegationTitle:           "delegation-title",
	KindDelegationPreservation:    "delegation-preservation",
	KindDelegationLandCategory:    "delegation-land-category",
	KindDelegationLoss:            "delegation-loss",
	KindDelegationTitleChange:     "delegation-title-change",
	KindDelegationAddressChange:   "delegation-address-change",
	KindDelegationTitleCorrection: "delegation-title-correction",
	KindDelegationMerge:           "delegation-merge",
	KindDelegationSplit:           "delegation-split",
	KindDelegationCombine:         "delegation-combine",
	KindCompletionCertTitle:       "completion-cert-title",
	KindCompletionCertTitleChange: "completion-cert-title-change",
	KindLossCert:                  "loss-cert",
	KindLossCertTitleChange:       "loss-cert-title-change",
	KindNonListingCert:            "non-listing-cert",
	KindStatementShared:           "statement-shared",
	KindStatementSole:             "statement-sole",
	KindSaleCert:                  "sale-cert",
}

// String returns a stable ASCII tag for logs and the render model.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var nameToKind = map[string]Kind{
	models.DocDelegationTitle:           KindDelegationTitle,
	models.DocDelegationPreservation:    KindDelegationPreservation,
	models.DocDelegationLandCategory:    KindDelegationLandCategory,
	models.DocDelegationLoss:            KindDelegationLoss,
	models.DocDelegationTitleChange:     KindDelegationTitleChange,
	models.DocDelegationAddressChange:   KindDelegationAddressChange,
	models.DocDelegationTitleCorrection: KindDelegationTitleCorrection,
	models.DocDelegationMerge:           KindDelegationMerge,
	models.DocDelegationSplit:           KindDelegationSplit,
	models.DocDelegationCombine:         KindDelegationCombine,
	models.DocCompletionCertTitle:       KindCompletionCertTitle,
	models.DocCompletionCertTitleChange: KindCompletionCertTitleChange,
	models.DocLossCert:                  KindLossCert,
	models.DocLossCertTitleChange:       KindLossCertTitleChange,
	models.DocNonListingCert:            KindNonListingCert,
	models.DocStatementShared:           KindStatementShared,
	models.DocStatementSole:             KindStatementSole,
	models.DocSaleCert:                  KindSaleCert,
}

// KindForName maps a document name to its kind, KindUnknown for
// anything unrecognized.
func KindForName(name string) Kind {
	return nameToKind[name]
}

// IsDelegation reports whether the kind belongs to the delegation
// letter family.
func (k Kind) IsDelegation() bool {
	return k >= KindDelegationTitle && k <= KindDelegationCombine
}
