package doctmpl

import (
	"regexp"
	"strings"

	"github.com/ssuzuki/toukidocs/internal/jptext"
	"github.com/ssuzuki/toukidocs/internal/kozo"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/wareki"
)

const fws = jptext.FullWidthSpace

// AnnexIsEmpty reports whether an annex carries no content worth
// printing: blank kind, blank structure, and no entered areas. Empty
// annexes are suppressed from every building display even when a
// symbol is set.
func AnnexIsEmpty(a models.Annex) bool {
	if !jptext.IsBlank(a.Kind) || !jptext.IsBlank(a.Struct) {
		return false
	}
	for _, fa := range a.FloorAreas {
		if !jptext.IsBlank(fa.Area) {
			return false
		}
	}
	return true
}

func nonEmptyAnnexes(b models.Building) []models.Annex {
	out := make([]models.Annex, 0, len(b.Annexes))
	for _, a := range b.Annexes {
		if !AnnexIsEmpty(a) {
			out = append(out, a)
		}
	}
	return out
}

// formatSymbolPrefix renders an annex-group symbol with its trailing
// padding. Bare digits get the 符 prefix; 主 passes through.
func formatSymbolPrefix(rawSymbol string) string {
	sym := jptext.StripAllWhitespace(rawSymbol)
	if sym == "" {
		return ""
	}
	if sym != "主" && !strings.HasPrefix(sym, "符") {
		sym = "符" + sym
	}
	return sym + fws + fws
}

// mainSymbolPrefix infers the main building's symbol: the explicit one
// when set, 主 when any non-empty annex exists, nothing otherwise.
func mainSymbolPrefix(b models.Building) string {
	if sym := jptext.StripAllWhitespace(b.Symbol); sym != "" {
		return formatSymbolPrefix(sym)
	}
	if len(nonEmptyAnnexes(b)) > 0 {
		return formatSymbolPrefix("主")
	}
	return ""
}

// floorAreaInline renders the floor-area segment of a one-line
// building display. Rows without an area are skipped; the common
// single-first-floor case collapses to the bare area.
func floorAreaInline(rows []kozo.FloorArea) string {
	filled := make([]kozo.FloorArea, 0, len(rows))
	for _, fa := range rows {
		if !jptext.IsBlank(fa.Area) {
			filled = append(filled, fa)
		}
	}
	if len(filled) == 0 {
		return fws
	}
	if len(filled) == 1 && jptext.ToHalfWidth(filled[0].Floor) == "1階" {
		return filled[0].Area + "㎡"
	}
	parts := make([]string, 0, len(filled))
	for _, fa := range filled {
		parts = append(parts, fa.Floor+" "+fa.Area+"㎡")
	}
	return strings.Join(parts, fws)
}

// floorAreaLines renders one "{floor} {area}㎡" line per row for the
// multi-line building displays, keeping blank-area rows as placeholder
// lines the way the delegation forms print them.
func floorAreaLines(rows []kozo.FloorArea) string {
	if len(rows) == 0 {
		return fws
	}
	parts := make([]string, 0, len(rows))
	for _, fa := range rows {
		parts = append(parts, fa.Floor+" "+jptext.OrBlankPlaceholder(fa.Area)+"㎡")
	}
	return strings.Join(parts, "  ")
}

// kindStructAreaLine builds the one-line kind/structure/area display.
// symbolOnly is the 委任状（保存） simplification where only the
// symbol prefix is printed.
func kindStructAreaLine(symbolPrefix, kind, structText string, rows []kozo.FloorArea, symbolOnly bool) string {
	if symbolOnly {
		if symbolPrefix == "" {
			return fws
		}
		return symbolPrefix
	}
	return symbolPrefix +
		jptext.OrBlankPlaceholder(kind) + fws +
		jptext.OrBlankPlaceholder(structText) + fws +
		floorAreaInline(rows)
}

// signerLineText renders "{address}　{share}　{name}", dropping the
// share segment when there is only one signer. The share goes through
// the 持分 formatter, so "1/2" prints as 持分２分の１ and a blank share
// prints the fill-in template.
func signerLineText(p models.Person, withShare bool) string {
	parts := []string{jptext.OrBlankPlaceholder(p.Address)}
	if withShare {
		parts = append(parts, jptext.FormatShare(p.Share))
	}
	parts = append(parts, jptext.OrBlankPlaceholder(p.Name))
	return strings.Join(parts, fws)
}

// causeLine renders "{houseNum} {cause}　{date}" for a building.
func causeLine(b models.Building) string {
	var sb strings.Builder
	if b.HouseNum != "" {
		sb.WriteString(b.HouseNum + " ")
	}
	sb.WriteString(jptext.OrBlankPlaceholder(b.RegistrationCause))
	sb.WriteString(fws)
	d := b.RegistrationDate
	sb.WriteString(wareki.FormatWithUnknown(&d, b.AdditionalUnknownDate))
	return sb.String()
}

// causeEntry is one (date, prefix, cause) triple of the merged cause
// list on change filings.
type causeEntry struct {
	date   string
	prefix string
	cause  string
}

// collectCauses walks a building's main record, additional causes and
// non-empty annexes, deduplicating by the (date, prefix, cause)
// triple in first-seen order. Prefixes distinguish the main building
// from each annex only when annexes are present at all.
func collectCauses(b models.Building) []causeEntry {
	annexes := nonEmptyAnnexes(b)
	mainPrefix := ""
	if len(annexes) > 0 {
		mainPrefix = "主である建物"
	}

	var out []causeEntry
	seen := map[causeEntry]bool{}
	add := func(date, prefix, cause string) {
		if jptext.IsBlank(cause) {
			return
		}
		e := causeEntry{date: date, prefix: prefix, cause: cause}
		if seen[e] {
			return
		}
		seen[e] = true
		out = append(out, e)
	}

	d := b.RegistrationDate
	add(wareki.FormatWithUnknown(&d, b.AdditionalUnknownDate), mainPrefix, b.RegistrationCause)
	for _, c := range b.AdditionalCauses {
		cd := c.Date
		add(wareki.Format(&cd), mainPrefix, c.Cause)
	}
	for _, a := range annexes {
		prefix := "附属建物"
		if sym := jptext.StripAllWhitespace(a.Symbol); sym != "" {
			prefix = "符号" + sym + "の附属建物"
		}
		ad := a.RegistrationDate
		add(wareki.FormatWithUnknown(&ad, a.AdditionalUnknownDate), prefix, a.RegistrationCause)
		for _, c := range a.AdditionalCauses {
			cd := c.Date
			add(wareki.Format(&cd), prefix, c.Cause)
		}
	}
	return out
}

// mergeCauseText joins a deduplicated cause list into one sentence,
// the closing suffix attached to the final entry.
func mergeCauseText(entries []causeEntry, suffix string) string {
	if len(entries) == 0 {
		return fws
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.date+e.prefix+e.cause)
	}
	return strings.Join(parts, "、") + suffix
}

// mergedLossCauseLine deduplicates the takedown cause/date of several
// loss buildings into one line.
func mergedLossCauseLine(buildings []models.Building) string {
	type pair struct{ date, cause string }
	seen := map[pair]bool{}
	var parts []string
	for _, b := range buildings {
		if jptext.IsBlank(b.RegistrationCause) {
			continue
		}
		d := b.RegistrationDate
		p := pair{date: wareki.FormatWithUnknown(&d, b.AdditionalUnknownDate), cause: b.RegistrationCause}
		if seen[p] {
			continue
		}
		seen[p] = true
		parts = append(parts, p.date+p.cause)
	}
	if len(parts) == 0 {
		return fws
	}
	return strings.Join(parts, "、")
}

var (
	cityRe    = regexp.MustCompile(`(?:.*県)?(.+?市)`)
	gunTownRe = regexp.MustCompile(`郡(.+?[町村])`)
)

// mayorTitle infers the addressee of the non-listing certificate from
// a building address: the city (or the town/village inside a county)
// followed by 長. Unmatchable addresses degrade to a placeholder.
func mayorTitle(address string) string {
	addr := jptext.StripAllWhitespace(address)
	if m := gunTownRe.FindStringSubmatch(addr); m != nil {
		return m[1] + "長"
	}
	if m := cityRe.FindStringSubmatch(addr); m != nil {
		return m[1] + "長"
	}
	return fws + "長"
}

// formatConfirmationCertNumber renders 第Ｒ{rNo}{code}{number}号.
func formatConfirmationCertNumber(cc *models.ConfirmationCert) string {
	if cc == nil {
		return ""
	}
	rNo := jptext.ToFullWidthDigits(jptext.ToHalfWidth(cc.RNo))
	num := jptext.ToFullWidthDigits(jptext.ToHalfWidth(cc.Number))
	return "第Ｒ" + rNo + cc.Code + num + "号"
}

// formatConfirmationCertLine renders the number and date of a
// confirmation certificate for the statement's reference line.
func formatConfirmationCertLine(cc *models.ConfirmationCert) string {
	if cc == nil {
		return fws
	}
	d := cc.Date
	return formatConfirmationCertNumber(cc) + fws + wareki.FormatYMD(&d)
}
