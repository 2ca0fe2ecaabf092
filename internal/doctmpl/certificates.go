package doctmpl

import (
	"strconv"

	"github.com/ssuzuki/toukidocs/internal/jptext"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/selector"
	"github.com/ssuzuki/toukidocs/internal/wareki"
)

// contractorBlock renders the attesting contractor's address, name and
// representative with the company seal slot. All placeholder lines when
// no contractor is on the case.
func contractorBlock(c *models.Person, pick selector.Pick) Block {
	addr, name, rep := fws, fws, fws
	if c != nil {
		addr = jptext.OrBlankPlaceholder(c.Address)
		name = jptext.OrBlankPlaceholder(c.Name)
		rep = jptext.OrBlankPlaceholder(c.Representative)
	}
	dx, dy := pick.SignerStampOffset(0)
	return Block{
		Type:    BlockContractor,
		Lines:   []string{addr, name, rep},
		Signers: []SignerLine{{Dx: dx, Dy: dy}},
	}
}

// renderCompletionCertTitle is the contractor's attestation that the
// new building was completed and handed over.
func renderCompletionCertTitle(in Input) Document {
	target := selector.TargetBuilding(in.Site.ProposedBuildings, in.Pick)
	applicants := selector.Applicants(in.Site.People, in.Pick)

	buildingBlock := lines(fws)
	causeText := fws
	if target != nil {
		buildingBlock = buildingDisplayBlock(*target, in.Pick, true, false)
		d := target.RegistrationDate
		causeText = wareki.Format(&d) + fws + jptext.OrBlankPlaceholder(target.RegistrationCause)
	}

	return Document{
		Title:        "工事完了引渡証明書",
		HeaderStamps: headerStamps(len(applicants), in.Pick),
		Blocks: []Block{
			heading("工事完了引渡証明書"),
			{Type: BlockHeading, Text: "建物の表示"},
			buildingBlock,
			{Type: BlockHeading, Text: "登記の原因及びその日付"},
			paragraph(causeText),
			{Type: BlockHeading, Text: "申請人"},
			applicantLines(applicants),
			paragraph("上記のとおり工事を完了して引渡したものであることを証明します。"),
			paragraph(wareki.FormatTodayBlock(in.Now)),
			{Type: BlockHeading, Text: "工事人", Bold: true},
			contractorBlock(selector.Contractor(in.Site.People, in.Pick), in.Pick),
		},
	}
}

// renderCompletionCertTitleChange adds the before/after comparison and
// the prefixed cause list for extension and annex work on a registered
// building.
func renderCompletionCertTitleChange(in Input) Document {
	before := selector.TargetBuilding(in.Site.Buildings, in.Pick)
	after := selector.TargetBuilding(in.Site.ProposedBuildings, in.Pick)
	applicants := selector.Applicants(in.Site.People, in.Pick)

	ls := []string{"変更前"}
	if before != nil {
		blk := buildingDisplayBlock(*before, in.Pick, true, false)
		ls = append(ls, blk.Lines...)
	} else {
		ls = append(ls, fws)
	}
	ls = append(ls, "変更後")
	if after != nil {
		blk := buildingDisplayBlock(*after, in.Pick, true, false)
		ls = append(ls, blk.Lines...)
	} else {
		ls = append(ls, fws)
	}

	causeLines := []string{fws}
	if after != nil {
		if entries := collectCauses(*after); len(entries) > 0 {
			causeLines = causeLines[:0]
			for _, e := range entries {
				causeLines = append(causeLines, e.date+e.prefix+e.cause)
			}
		}
	}

	return Document{
		Title:        "工事完了引渡証明書",
		HeaderStamps: headerStamps(len(applicants), in.Pick),
		Blocks: []Block{
			heading("工事完了引渡証明書"),
			{Type: BlockHeading, Text: "建物の表示"},
			Block{Type: BlockLines, Lines: ls},
			{Type: BlockHeading, Text: "登記の原因及びその日付"},
			Block{Type: BlockLines, Lines: causeLines},
			{Type: BlockHeading, Text: "申請人"},
			applicantLines(applicants),
			paragraph("上記のとおり工事を完了して引渡したものであることを証明します。"),
			paragraph(wareki.FormatTodayBlock(in.Now)),
			{Type: BlockHeading, Text: "工事人", Bold: true},
			contractorBlock(selector.Contractor(in.Site.People, in.Pick), in.Pick),
		},
	}
}

// applicantLines renders a plain owner or applicant list without seal
// slots, share segment only when several people share.
func applicantLines(people []models.Person) Block {
	if len(people) == 0 {
		return lines(fws)
	}
	withShare := len(people) >= 2
	ls := make([]string, 0, len(people))
	for _, p := range people {
		ls = append(ls, signerLineText(p, withShare))
	}
	return Block{Type: BlockLines, Lines: ls}
}

// lossBuildingLines lists the lost buildings' full displays.
func lossBuildingLines(buildings []models.Building, pick selector.Pick) Block {
	var ls []string
	for _, b := range buildings {
		blk := buildingDisplayBlock(b, pick, false, false)
		ls = append(ls, blk.Lines...)
	}
	if len(ls) == 0 {
		ls = []string{fws}
	}
	return Block{Type: BlockLines, Lines: ls}
}

// renderLossCert is the contractor's certificate that the listed
// buildings were demolished.
func renderLossCert(in Input) Document {
	lost := selector.LossBuildings(in.Site.Buildings, in.Pick)
	owners := selector.CertOwners(in.Site.People, in.Pick)

	return Document{
		Title:        "建物滅失証明書",
		HeaderStamps: headerStamps(len(owners), in.Pick),
		Blocks: []Block{
			heading("建物滅失証明書"),
			{Type: BlockHeading, Text: "建物の表示"},
			lossBuildingLines(lost, in.Pick),
			{Type: BlockHeading, Text: "滅失の原因及びその日付"},
			paragraph(mergedLossCauseLine(lost)),
			{Type: BlockHeading, Text: "所有者"},
			applicantLines(owners),
			paragraph("上記のとおり建物を取壊したことを証明します。"),
			paragraph(wareki.FormatTodayBlock(in.Now)),
			{Type: BlockHeading, Text: "工事人", Bold: true},
			contractorBlock(selector.Contractor(in.Site.People, in.Pick), in.Pick),
		},
	}
}

// renderLossCertTitleChange covers partial demolition inside a title
// change filing: the lost structures are annexes or causes on the
// surviving building rather than whole registered buildings.
func renderLossCertTitleChange(in Input) Document {
	target := selector.TargetBuilding(in.Site.Buildings, in.Pick)
	owners := selector.CertOwners(in.Site.People, in.Pick)

	buildingBlock := lines(fws)
	causeText := fws
	if target != nil {
		buildingBlock = buildingDisplayBlock(*target, in.Pick, false, false)
		var lossEntries []causeEntry
		for _, e := range collectCauses(*target) {
			if selector.IsLossCause(e.cause) {
				lossEntries = append(lossEntries, e)
			}
		}
		causeText = mergeCauseText(lossEntries, "")
	}

	return Document{
		Title:        "建物滅失証明書",
		HeaderStamps: headerStamps(len(owners), in.Pick),
		Blocks: []Block{
			heading("建物滅失証明書"),
			{Type: BlockHeading, Text: "建物の表示"},
			buildingBlock,
			{Type: BlockHeading, Text: "滅失の原因及びその日付"},
			paragraph(causeText),
			{Type: BlockHeading, Text: "所有者"},
			applicantLines(owners),
			paragraph("上記のとおり建物を取壊したことを証明します。"),
			paragraph(wareki.FormatTodayBlock(in.Now)),
			{Type: BlockHeading, Text: "工事人", Bold: true},
			contractorBlock(selector.Contractor(in.Site.People, in.Pick), in.Pick),
		},
	}
}

// renderNonListingCert asks the municipality to certify that the lost
// buildings are not on the current fiscal year's fixed-asset ledger.
// The addressee is inferred from the building address.
func renderNonListingCert(in Input) Document {
	lost := selector.LossBuildings(in.Site.Buildings, in.Pick)
	owners := selector.CertOwners(in.Site.People, in.Pick)

	addr := in.Site.Address
	if addr == "" && len(lost) > 0 {
		addr = lost[0].Address
	}
	fy := wareki.FiscalYear(in.Now)
	fyText := fy.Era + jptext.ToFullWidthDigits(strconv.Itoa(fy.Year)) + "年度"

	return Document{
		Title:        "家屋台帳非登載証明書",
		HeaderStamps: headerStamps(len(owners), in.Pick),
		Blocks: []Block{
			heading("家屋台帳非登載証明書"),
			paragraph(mayorTitle(addr) + fws + "様"),
			{Type: BlockHeading, Text: "建物の表示"},
			lossBuildingLines(lost, in.Pick),
			{Type: BlockHeading, Text: "滅失の原因及びその日付"},
			paragraph(mergedLossCauseLine(lost)),
			{Type: BlockHeading, Text: "所有者"},
			applicantLines(owners),
			paragraph("上記の建物が" + fyText + "の家屋課税台帳に登載されていないことを証明願います。"),
			paragraph(wareki.FormatTodayBlock(in.Now)),
		},
	}
}

// renderSaleCert certifies the sale of a building, the sellers each
// sealing individually. The displayed building comes from either the
// registered or the proposed list depending on the pick.
func renderSaleCert(in Input) Document {
	source := in.Site.ProposedBuildings
	if in.Pick.BuildingSourceRegistered {
		source = in.Site.Buildings
	}
	target := selector.TargetBuilding(source, in.Pick)
	sellers := selector.CertOwners(in.Site.People, in.Pick)

	buildingBlock := lines(fws)
	if target != nil {
		buildingBlock = buildingDisplayBlock(*target, in.Pick, true, false)
	}

	buyer := jptext.OrBlankPlaceholder(in.Pick.SaleBuyerText)

	return Document{
		Title:        "売渡証明書",
		HeaderStamps: headerStamps(len(sellers), in.Pick),
		Blocks: []Block{
			heading("売渡証明書"),
			{Type: BlockHeading, Text: "建物の表示"},
			buildingBlock,
			paragraph("上記の建物を" + buyer + "に売り渡したことを証明します。"),
			paragraph(wareki.FormatTodayBlock(in.Now)),
			{Type: BlockHeading, Text: "売渡人", Bold: true},
			signerBlock(sellers, in.Pick),
		},
	}
}
