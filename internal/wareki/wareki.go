// Package wareki converts Gregorian dates to Japanese imperial era
// dates and formats the era/year/month/day blocks that registration
// forms print. Missing components render as full-width-space
// placeholders so the fixed column layout survives hand infill.
package wareki

import (
	"strconv"
	"time"

	"github.com/ssuzuki/toukidocs/internal/jptext"
)

// Date is an era-calendar date as entered on a form. Components are
// stored as strings because partially-filled dates are legal input.
type Date struct {
	Era     string `json:"era"`
	Year    string `json:"year"`
	Month   string `json:"month"`
	Day     string `json:"day"`
	Unknown bool   `json:"unknown"`
}

// EraYear is a resolved era name with its year-in-era.
type EraYear struct {
	Era  string
	Year int
}

type eraBoundary struct {
	name          string
	year, mon, da int
}

// Era start boundaries, newest first. Year-in-era is the Gregorian
// year minus the start year plus one.
var eras = []eraBoundary{
	{"令和", 2019, 5, 1},
	{"平成", 1989, 1, 8},
	{"昭和", 1926, 12, 25},
	{"大正", 1912, 7, 30},
	{"明治", 1868, 1, 25},
}

// ForDate resolves the era and year-in-era for a Gregorian date.
// Dates before 明治 fall back to 令和1 so callers never see an empty
// era on a printed form.
func ForDate(year, month, day int) EraYear {
	for _, e := range eras {
		if year > e.year ||
			(year == e.year && (month > e.mon || (month == e.mon && day >= e.da))) {
			return EraYear{Era: e.name, Year: year - e.year + 1}
		}
	}
	return EraYear{Era: "令和", Year: 1}
}

// Today resolves the era year for the given clock time.
func Today(now time.Time) EraYear {
	return ForDate(now.Year(), int(now.Month()), now.Day())
}

// FiscalYear resolves the era year of the Japanese fiscal year (年度)
// containing now. The fiscal year starts April 1, so January-March
// belong to the previous year's 年度.
func FiscalYear(now time.Time) EraYear {
	y := now.Year()
	if now.Month() < time.April {
		y--
	}
	return ForDate(y, 4, 1)
}

func zenOrBlank(v string) string {
	s := jptext.StripAllWhitespace(v)
	if s == "" {
		return jptext.FullWidthSpace
	}
	return jptext.ToFullWidthDigits(s)
}

// Format renders a date record as {era}{year}年{month}月{day}日.
// A nil record renders as a single placeholder space; a record marked
// unknown renders as 不詳; blank components render as full-width-space
// placeholders.
func Format(d *Date) string {
	if d == nil {
		return jptext.FullWidthSpace
	}
	if d.Unknown {
		return "不詳"
	}
	era := d.Era
	if era == "" {
		era = "令和"
	}
	return era + zenOrBlank(d.Year) + "年" + zenOrBlank(d.Month) + "月" + zenOrBlank(d.Day) + "日"
}

// FormatWithUnknown renders like Format but, when additionalUnknown is
// set, appends 不詳 after the day. Used for multi-cause change filings
// where the original completion date is not on record.
func FormatWithUnknown(d *Date, additionalUnknown bool) string {
	s := Format(d)
	if additionalUnknown && s != "不詳" {
		s += "不詳"
	}
	return s
}

// FormatYMD renders a date with no placeholder padding: blank
// components simply drop their digits ("令和年月日" at the extreme).
// Used for confirmation-certificate lines where alignment is not fixed.
func FormatYMD(d *Date) string {
	if d == nil {
		return ""
	}
	return d.Era + jptext.ToFullWidthDigits(d.Year) + "年" +
		jptext.ToFullWidthDigits(d.Month) + "月" +
		jptext.ToFullWidthDigits(d.Day) + "日"
}

// FormatTodayBlock renders today's era and year with blank month/day
// placeholders; the clerk fills the exact day in by hand at signing.
func FormatTodayBlock(now time.Time) string {
	w := Today(now)
	return FormatEraYearBlock(&Date{Era: w.Era, Year: strconv.Itoa(w.Year)})
}

// FormatEraYearBlock renders just the era and year of a date record
// with blank month/day placeholders, stripping whitespace from stored
// components first. A nil record keeps the era label so the form still
// shows where to write.
func FormatEraYearBlock(d *Date) string {
	if d == nil {
		return "令和年" + jptext.FullWidthSpace + jptext.FullWidthSpace + "月" +
			jptext.FullWidthSpace + jptext.FullWidthSpace + "日"
	}
	if d.Unknown {
		return "不詳"
	}
	era := jptext.StripAllWhitespace(d.Era)
	year := jptext.StripAllWhitespace(d.Year)
	if year == "" {
		year = jptext.FullWidthSpace
	}
	return jptext.ToFullWidthDigits(era+year) + "年" +
		jptext.FullWidthSpace + jptext.FullWidthSpace + "月" +
		jptext.FullWidthSpace + jptext.FullWidthSpace + "日"
}
