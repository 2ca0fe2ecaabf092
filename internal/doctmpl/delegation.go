package doctmpl

import (
	"github.com/ssuzuki/toukidocs/internal/jptext"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/selector"
	"github.com/ssuzuki/toukidocs/internal/wareki"
)

// Delegation clauses. The preservation and address-change letters use
// the shorter wording without the identification-information
// encryption grant.
const (
	delegationClause = "私は上記の者を代理人と定め、下記に記載の登記を管轄法務局へ申請の全権及び登記識別情報の暗号化、復号化並びに登記識別情報通知書代理受領の件、原本還付請求並びに受領の件、申請の補正又は取下に関する件、復代理人選任の件を委任する。"

	delegationClauseShort = "私は上記の者を代理人と定め、下記に記載の登記を管轄法務局へ申請の全権及び登記識別情報代理受領の件、原本還付請求並びに受領の件、申請の補正又は取下に関する件、復代理人選任の件を委任する。"
)

// scrivenerBlock renders the agent named top right of every delegation
// letter: the linked scrivener's address and titled name, blank
// placeholder lines when no scrivener is linked.
func scrivenerBlock(s *models.Scrivener) Block {
	if s == nil {
		return Block{Type: BlockLines, Lines: []string{fws, fws}, Align: AlignRight}
	}
	return Block{
		Type: BlockLines,
		Lines: []string{
			jptext.OrBlankPlaceholder(s.Address),
			"土地家屋調査士" + fws + jptext.OrBlankPlaceholder(s.Name),
		},
		Align: AlignRight,
	}
}

// delegationParts is what varies between the letter subtypes.
type delegationParts struct {
	clause        string
	workBlock     Block
	propertyTitle string
	propertyBlock Block
	signers       []models.Person
}

// assembleDelegation wraps the per-subtype parts in the shared letter
// chrome: stamp slots, title, scrivener block, clause, work text,
// property display, date block, grantor signers.
func assembleDelegation(in Input, parts delegationParts) Document {
	title := "建物の表示"
	if parts.propertyTitle != "" {
		title = parts.propertyTitle
	}
	clause := parts.clause
	if clause == "" {
		clause = delegationClause
	}
	return Document{
		Title:        "委任状",
		HeaderStamps: headerStamps(len(parts.signers), in.Pick),
		Blocks: []Block{
			heading("委任状"),
			scrivenerBlock(in.Scrivener),
			paragraph(clause),
			parts.workBlock,
			{Type: BlockHeading, Text: title, Bold: true},
			parts.propertyBlock,
			paragraph(wareki.FormatTodayBlock(in.Now)),
			{Type: BlockHeading, Text: "委任者", Bold: true},
			signerBlock(parts.signers, in.Pick),
		},
	}
}

// commonBuildingBlock lists every proposed building with its annexes in
// the multi-line display, the default property block of the change-type
// letters.
func commonBuildingBlock(site models.Site, pick selector.Pick) Block {
	sorted := selector.SortedBuildings(site.ProposedBuildings)
	var ls []string
	for _, b := range sorted {
		blk := buildingDisplayBlock(b, pick, false, false)
		ls = append(ls, blk.Lines...)
	}
	if len(ls) == 0 {
		ls = []string{fws}
	}
	return Block{Type: BlockLines, Lines: ls}
}

func renderDelegationTitle(in Input) Document {
	target := selector.TargetBuilding(in.Site.ProposedBuildings, in.Pick)

	workText := "建物表題登記"
	propertyBlock := lines(fws)
	if target != nil {
		d := target.RegistrationDate
		workText = wareki.Format(&d) + target.RegistrationCause + "したので建物表題登記"
		propertyBlock = buildingDisplayBlock(*target, in.Pick, true, false)
	}

	signers := selector.Applicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		workBlock:     Block{Type: BlockParagraph, Text: workText, Bold: true},
		propertyBlock: propertyBlock,
		signers:       signers,
	})
}

func renderDelegationPreservation(in Input) Document {
	// The preservation letter identifies the building by house number
	// alone; annexes and kind/struct/area detail are suppressed.
	pick := in.Pick
	pick.ShowAnnex = false

	target := selector.TargetBuilding(in.Site.ProposedBuildings, pick)
	propertyBlock := lines(fws)
	if target != nil {
		propertyBlock = buildingDisplayBlock(*target, pick, false, true)
	}

	signers := selector.Applicants(in.Site.People, pick)
	return assembleDelegation(in, delegationParts{
		clause:        delegationClauseShort,
		workBlock:     Block{Type: BlockParagraph, Text: "登記の目的" + fws + "所有権保存登記", Bold: true},
		propertyBlock: propertyBlock,
		signers:       signers,
	})
}

// landLine renders "{address}{lot}　{category}　{area}㎡".
func landLine(l models.Land) string {
	return jptext.OrBlankPlaceholder(l.Address) +
		jptext.OrBlankPlaceholder(l.LotNumber) + fws +
		jptext.OrBlankPlaceholder(l.Category) + fws +
		jptext.OrBlankPlaceholder(l.Area) + "㎡"
}

func renderDelegationLandCategory(in Input) Document {
	parcels := selector.TargetLand(in.Site.Land, in.Pick)
	var ls []string
	for _, l := range parcels {
		ls = append(ls, landLine(l))
		if l.CategoryChangeEnabled {
			ls = append(ls, fws+fws+"変更後"+fws+
				jptext.OrBlankPlaceholder(l.NewCategory)+fws+
				jptext.OrBlankPlaceholder(l.NewArea)+"㎡")
		}
	}
	if len(ls) == 0 {
		ls = []string{fws}
	}

	signers := selector.LandApplicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		workBlock:     Block{Type: BlockParagraph, Text: "土地地目変更登記", Bold: true},
		propertyTitle: "土地の表示",
		propertyBlock: Block{Type: BlockLines, Lines: ls},
		signers:       signers,
	})
}

func renderDelegationLoss(in Input) Document {
	lost := selector.LossBuildings(in.Site.Buildings, in.Pick)
	var ls []string
	for _, b := range lost {
		blk := buildingDisplayBlock(b, in.Pick, false, false)
		ls = append(ls, blk.Lines...)
	}
	if len(ls) == 0 {
		ls = []string{fws}
	}

	workText := "建物滅失登記"
	if cause := mergedLossCauseLine(lost); cause != fws {
		workText = cause + "したので建物滅失登記"
	}

	signers := selector.LossApplicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		workBlock:     Block{Type: BlockParagraph, Text: workText, Bold: true},
		propertyBlock: Block{Type: BlockLines, Lines: ls},
		signers:       signers,
	})
}

func renderDelegationTitleChange(in Input) Document {
	target := selector.TargetBuilding(in.Site.Buildings, in.Pick)
	after := selector.TargetBuilding(in.Site.ProposedBuildings, in.Pick)

	workText := "建物表題部変更登記"
	if target != nil {
		if entries := collectCauses(*target); len(entries) > 0 {
			workText = mergeCauseText(entries, "したので建物表題部変更登記")
		}
	}

	ls := []string{"変更前"}
	if target != nil {
		blk := buildingDisplayBlock(*target, in.Pick, false, false)
		ls = append(ls, blk.Lines...)
	} else {
		ls = append(ls, fws)
	}
	ls = append(ls, "変更後")
	if after != nil {
		blk := buildingDisplayBlock(*after, in.Pick, false, false)
		ls = append(ls, blk.Lines...)
	} else {
		ls = append(ls, fws)
	}

	signers := selector.Applicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		workBlock:     Block{Type: BlockParagraph, Text: workText, Bold: true},
		propertyBlock: Block{Type: BlockLines, Lines: ls},
		signers:       signers,
	})
}

func renderDelegationAddressChange(in Input) Document {
	parcels := selector.TargetLand(in.Site.Land, in.Pick)
	var ls []string
	for _, l := range parcels {
		ls = append(ls, landLine(l))
	}
	if len(ls) == 0 {
		ls = []string{fws}
	}

	work := Block{
		Type:    BlockLines,
		PreWrap: true,
		Bold:    true,
		Lines: []string{
			"登 記 の 目 的" + fws + fws + fws + "所有権登記名義人住所変更",
			"原　　　　　因",
			"変更すべき事項",
			fws,
			fws,
		},
	}

	signers := selector.Applicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		clause:        delegationClauseShort,
		workBlock:     work,
		propertyTitle: "物件の表示",
		propertyBlock: Block{Type: BlockLines, Lines: ls},
		signers:       signers,
	})
}

func renderDelegationTitleCorrection(in Input) Document {
	signers := selector.Applicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		workBlock:     Block{Type: BlockParagraph, Text: "建物表題部更正登記", Bold: true},
		propertyBlock: commonBuildingBlock(in.Site, in.Pick),
		signers:       signers,
	})
}

func renderDelegationMerge(in Input) Document {
	signers := selector.Applicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		workBlock:     Block{Type: BlockParagraph, Text: "建物合併登記", Bold: true},
		propertyBlock: commonBuildingBlock(in.Site, in.Pick),
		signers:       signers,
	})
}

func renderDelegationSplit(in Input) Document {
	signers := selector.Applicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		workBlock:     Block{Type: BlockParagraph, Text: "建物分割登記", Bold: true},
		propertyBlock: commonBuildingBlock(in.Site, in.Pick),
		signers:       signers,
	})
}

func renderDelegationCombine(in Input) Document {
	signers := selector.Applicants(in.Site.People, in.Pick)
	return assembleDelegation(in, delegationParts{
		workBlock:     Block{Type: BlockParagraph, Text: "建物合体登記", Bold: true},
		propertyBlock: commonBuildingBlock(in.Site, in.Pick),
		signers:       signers,
	})
}
