package doctmpl

import (
	"strings"

	"github.com/ssuzuki/toukidocs/internal/jptext"
	"github.com/ssuzuki/toukidocs/internal/selector"
	"github.com/ssuzuki/toukidocs/internal/wareki"
)

const statementTitle = "申　述　書"

// certNumberGap pads the gap between the label and the certificate
// number on the statement's reference line.
var certNumberGap = strings.Repeat(fws, 7)

// assembleStatement builds the shared statement layout around the
// subtype's body paragraph: date, building display, the
// confirmation-certificate reference, the named construction
// applicants, then the declarant signers.
func assembleStatement(in Input, body string) Document {
	target := selector.TargetBuilding(in.Site.ProposedBuildings, in.Pick)
	signers := selector.StatementSigners(in.Site.People, in.Pick)
	confirmNames := selector.ConfirmApplicants(in.Site.People, in.Pick)

	buildingBlock := lines(fws)
	certLine := certNumberGap + fws
	if target != nil {
		buildingBlock = buildingDisplayBlock(*target, in.Pick, true, false)
		certLine = certNumberGap + formatConfirmationCertLine(target.ConfirmationCert)
	}

	certBlock := []string{
		"確認済証の番号" + certLine,
		"確認済証記載の建築主名義",
	}
	if len(confirmNames) == 0 {
		certBlock = append(certBlock, fws)
	}
	for _, p := range confirmNames {
		certBlock = append(certBlock, jptext.OrBlankPlaceholder(p.Name))
	}

	return Document{
		Title:        statementTitle,
		HeaderStamps: headerStamps(len(signers), in.Pick),
		Blocks: []Block{
			heading(statementTitle),
			{Type: BlockParagraph, Text: wareki.FormatTodayBlock(in.Now), Align: AlignRight},
			{Type: BlockHeading, Text: "建物の表示", Bold: true},
			buildingBlock,
			Block{Type: BlockLines, Lines: certBlock},
			{Type: BlockParagraph, Text: body, PreWrap: true},
			{Type: BlockHeading, Text: "申述人", Bold: true},
			signerBlock(signers, in.Pick),
		},
	}
}

// renderStatementShared is the co-ownership share declaration.
func renderStatementShared(in Input) Document {
	return assembleStatement(in, "上記の建物は下記の通りの持分であることを証明します。")
}

// renderStatementSole declares that one person funded the building
// alone, so the others do not object to the sole-name filing. The
// literal placeholder survives when no person is picked.
func renderStatementSole(in Input) Document {
	who := "［申請人］"
	if p := selector.PersonByID(in.Site.People, in.Pick.StatementApplicantPersonID); p != nil && p.Name != "" {
		who = p.Name
	}
	body := "上記の建物は" + who + "が単独で全額出資したものです。\n" +
		"従って" + who + "の単独名義での表題登記を申請することに対し異議ありません。"
	return assembleStatement(in, body)
}
