package doctmpl

import (
	"time"

	"github.com/ssuzuki/toukidocs/internal/jptext"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/selector"
)

// Input carries everything one render needs. Now is injected so batch
// print and tests are reproducible; renderers perform no I/O.
type Input struct {
	Site      models.Site
	Name      string
	Index     int
	Pick      selector.Pick
	Scrivener *models.Scrivener
	Now       time.Time
	IsPrint   bool
}

type renderFunc func(in Input) Document

var renderers = map[Kind]renderFunc{
	KindDelegationTitle:           renderDelegationTitle,
	KindDelegationPreservation:    renderDelegationPreservation,
	KindDelegationLandCategory:    renderDelegationLandCategory,
	KindDelegationLoss:            renderDelegationLoss,
	KindDelegationTitleChange:     renderDelegationTitleChange,
	KindDelegationAddressChange:   renderDelegationAddressChange,
	KindDelegationTitleCorrection: renderDelegationTitleCorrection,
	KindDelegationMerge:           renderDelegationMerge,
	KindDelegationSplit:           renderDelegationSplit,
	KindDelegationCombine:         renderDelegationCombine,
	KindCompletionCertTitle:       renderCompletionCertTitle,
	KindCompletionCertTitleChange: renderCompletionCertTitleChange,
	KindLossCert:                  renderLossCert,
	KindLossCertTitleChange:       renderLossCertTitleChange,
	KindNonListingCert:            renderNonListingCert,
	KindStatementShared:           renderStatementShared,
	KindStatementSole:             renderStatementSole,
	KindSaleCert:                  renderSaleCert,
}

// Render resolves one document instance into its display tree. The
// result is a pure function of the input; unknown document names
// produce a visible unsupported-template placeholder rather than an
// error.
func Render(in Input) Document {
	kind := KindForName(in.Name)
	fn, ok := renderers[kind]
	if !ok {
		return Document{
			Name:        in.Name,
			Kind:        kind.String(),
			Index:       in.Index,
			Title:       in.Name,
			Unsupported: true,
			Blocks: []Block{
				paragraph("未対応の書類テンプレです：" + in.Name),
			},
			PrintOn: in.Pick.PrintOn,
		}
	}
	doc := fn(in)
	doc.Name = in.Name
	doc.Kind = kind.String()
	doc.Index = in.Index
	doc.PrintOn = in.Pick.PrintOn
	if in.Pick.HasCustomText {
		body := in.Pick.CustomText
		doc.CustomBody = &body
	}
	return doc
}

// mainBuildingLines renders a building's multi-line display: address,
// house number, kind/struct, floor areas. Preservation letters label
// the house number and suppress kind/struct/area detail.
func mainBuildingLines(b models.Building, preservation bool) []string {
	out := []string{jptext.OrBlankPlaceholder(b.Address)}
	if b.HouseNum != "" {
		if preservation {
			out = append(out, "家屋番号"+fws+b.HouseNum+fws+"の建物")
		} else {
			out = append(out, b.HouseNum)
		}
	}
	if !preservation {
		line := jptext.OrBlankPlaceholder(b.Kind)
		if b.Struct != "" {
			line += fws + b.Struct
		}
		out = append(out, line, floorAreaLines(b.FloorAreas))
	}
	return out
}

// annexLines renders an annex's multi-line display under its symbol.
func annexLines(a models.Annex, preservation bool) []string {
	sym := a.Symbol
	if jptext.IsBlank(sym) {
		sym = "無符号"
	}
	out := []string{sym}
	if !preservation {
		line := jptext.OrBlankPlaceholder(a.Kind)
		if a.Struct != "" {
			line += fws + a.Struct
		}
		out = append(out, line, floorAreaLines(a.FloorAreas))
	}
	return out
}

// mainBuildingInline renders the compact one-line-per-field display
// used by certificates and the title delegation: address, optional
// house number, then the symbol/kind/struct/area line.
func mainBuildingInline(b models.Building, showHouseNum, symbolOnly bool) []string {
	out := []string{jptext.OrBlankPlaceholder(b.Address)}
	if showHouseNum && b.HouseNum != "" {
		out = append(out, b.HouseNum)
	}
	out = append(out, kindStructAreaLine(mainSymbolPrefix(b), b.Kind, b.Struct, b.FloorAreas, symbolOnly))
	return out
}

func annexInline(a models.Annex, symbolOnly bool) string {
	return kindStructAreaLine(formatSymbolPrefix(a.Symbol), a.Kind, a.Struct, a.FloorAreas, symbolOnly)
}

// buildingDisplayBlock assembles the full main+annex display for one
// building under the show flags, skipping empty annexes.
func buildingDisplayBlock(b models.Building, pick selector.Pick, inline, symbolOnly bool) Block {
	var ls []string
	if pick.ShowMain {
		if inline {
			ls = append(ls, mainBuildingInline(b, false, symbolOnly)...)
		} else {
			ls = append(ls, mainBuildingLines(b, symbolOnly)...)
		}
	}
	if pick.ShowAnnex {
		for _, a := range nonEmptyAnnexes(b) {
			if inline {
				ls = append(ls, annexInline(a, symbolOnly))
			} else {
				ls = append(ls, annexLines(a, symbolOnly)...)
			}
		}
	}
	if len(ls) == 0 {
		ls = []string{fws}
	}
	return Block{Type: BlockLines, Lines: ls}
}

// signerBlock renders a signer list with per-slot stamp offsets. The
// share segment appears only when the list names several people.
func signerBlock(people []models.Person, pick selector.Pick) Block {
	withShare := len(people) >= 2
	signers := make([]SignerLine, 0, len(people))
	for i, p := range people {
		dx, dy := pick.SignerStampOffset(i)
		signers = append(signers, SignerLine{Text: signerLineText(p, withShare), Dx: dx, Dy: dy})
	}
	return Block{Type: BlockSigners, Signers: signers}
}

// headerStamps allocates one draggable header stamp slot per signer.
func headerStamps(count int, pick selector.Pick) []StampSlot {
	slots := make([]StampSlot, 0, count)
	for i := 0; i < count; i++ {
		dx, dy := pick.StampOffset(i)
		slots = append(slots, StampSlot{Index: i, Dx: dx, Dy: dy})
	}
	return slots
}
