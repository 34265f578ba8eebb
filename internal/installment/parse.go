// Package installment derives display- and decision-ready views over raw
// payment items: period markers embedded in item names, due-date offsets,
// payment progress, and amortization schedules.
//
// This file is the free-text parsing layer. Period numbers and project
// totals ride inside user-entered name/notes strings; every pattern here has
// an explicit no-match fallback so malformed text degrades to the
// single-period defaults instead of failing.
package installment

import (
	"regexp"
	"strconv"

	"homeledger/internal/core"
)

var (
	// periodPattern matches 第N期/共M期 anywhere in an item name.
	periodPattern = regexp.MustCompile(`第(\d+)期/共(\d+)期`)

	// periodSuffixPattern strips only the parenthesized form with a leading
	// space, e.g. "裝修費 (第2期/共5期)". A bare 第N期/共M期 marker is
	// intentionally left in the base name; the extraction and stripping
	// patterns are not inverses of each other.
	periodSuffixPattern = regexp.MustCompile(` \(第\d+期/共\d+期\)`)

	// projectTotalPattern matches a 總費用= project-total marker in notes,
	// digits with optional thousands separators.
	projectTotalPattern = regexp.MustCompile(`總費用=([\d,]+)`)
)

// ExtractPeriods pulls the current and total period numbers out of an item
// name. An item without a marker is a single-period item: 1 of 1, and so is
// a marker with a zero period number; downstream math divides by the total.
func ExtractPeriods(itemName string) (current, total int) {
	m := periodPattern.FindStringSubmatch(itemName)
	if m == nil {
		return 1, 1
	}
	current, err := strconv.Atoi(m[1])
	if err != nil {
		return 1, 1
	}
	total, err = strconv.Atoi(m[2])
	if err != nil {
		return 1, 1
	}
	if current < 1 || total < 1 {
		return 1, 1
	}
	return current, total
}

// BaseName returns the item name with its parenthesized period suffix
// removed.
func BaseName(itemName string) string {
	return periodSuffixPattern.ReplaceAllString(itemName, "")
}

// ExtractProjectTotal parses a 總費用= marker from the notes field.
// The second return is false when no marker is present or it fails to parse.
func ExtractProjectTotal(notes string) (int64, bool) {
	m := projectTotalPattern.FindStringSubmatch(notes)
	if m == nil {
		return 0, false
	}
	v, err := core.ParseAmount(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}
