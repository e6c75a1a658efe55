package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

// Open-market option price rules: every option block needs a +0원 baseline
// option, no negative add-on prices, and the spread between options may not
// exceed a band derived from the market sale price. Sellers' source data
// regularly violates all three, so the mapper rewrites the numeric part of
// each option line while keeping the label text and line order intact.

// Trailing price token: optional separating comma, optional sign, digits with
// optional thousands separators, the 원 suffix. Examples that match:
// "+0원", "-100원", "+8,020원", ", 3040원".
var optionPriceRe = regexp.MustCompile(`(?:,\s*)?([+-]?)\s*(\d[\d,]*)\s*원\s*$`)

// CorrectionResult describes what a correction pass did to one option block.
type CorrectionResult struct {
	Changed         bool
	LinesChanged    int
	MaxDelta        float64
	OriginalDeltas  []int
	CorrectedDeltas []int
}

// ParseOptionLine splits an option line into its label text and the trailing
// price delta. Lines without a parseable trailing token return ok=false and
// must be passed through untouched; a malformed token is not an error.
func ParseOptionLine(line string) (textPart string, delta int, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return line, 0, false
	}

	m := optionPriceRe.FindStringSubmatchIndex(line)
	if m == nil {
		return line, 0, false
	}

	sign := line[m[2]:m[3]]
	numberStr := strings.ReplaceAll(line[m[4]:m[5]], ",", "")

	value, err := strconv.Atoi(numberStr)
	if err != nil {
		// Digits that do not fit an int (absurd input); keep the line as-is.
		return line, 0, false
	}
	if sign == "-" {
		value = -value
	}

	textPart = strings.TrimRight(line[:m[0]], " \t")
	// A separating comma may survive when the token carried its own comma.
	textPart = strings.TrimRight(strings.TrimSuffix(textPart, ","), " \t")
	return textPart, value, true
}

// MaxOptionDelta returns the maximum allowed option add-on for a market sale
// price. Below 10,000원 the full +100% band applies; from 10,000원 the band
// narrows to +50%. The negative side is always corrected to zero elsewhere.
func MaxOptionDelta(marketPrice float64) float64 {
	if marketPrice < 10000 {
		return marketPrice
	}
	return marketPrice * 0.5
}

// OptionRoundingUnit returns the floor-rounding granularity for corrected
// deltas, tiered by market sale price.
func OptionRoundingUnit(marketPrice float64) int {
	switch {
	case marketPrice > 60000:
		return 1000
	case marketPrice > 30000:
		return 500
	case marketPrice > 10000:
		return 100
	default:
		return 10
	}
}

// floorToUnit floors v to a multiple of unit using integer division, so every
// output is an exact multiple regardless of float artifacts.
func floorToUnit(v float64, unit int) int {
	if unit <= 0 {
		return int(v)
	}
	return int(v) / unit * unit
}

// redistributeDeltas rewrites a list of option deltas so they satisfy market
// policy. Negatives clamp to 0, a zero baseline is forced onto the smallest
// value when missing, and positive values either cap directly (single tier)
// or rescale proportionally so the largest lands on the allowed maximum.
func redistributeDeltas(deltas []int, maxDelta float64, hasZero bool, unit int) []int {
	if len(deltas) == 0 {
		return []int{}
	}

	corrected := make([]int, len(deltas))
	for i, d := range deltas {
		if d < 0 {
			d = 0
		}
		corrected[i] = d
	}

	allZero := true
	for _, d := range corrected {
		if d != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return corrected
	}

	if !hasZero && minOf(corrected) > 0 {
		corrected[minIndex(corrected)] = 0
		hasZero = true
	}

	positiveCount := 0
	maxPositive := 0
	for _, d := range corrected {
		if d > 0 {
			positiveCount++
			if d > maxPositive {
				maxPositive = d
			}
		}
	}
	if positiveCount == 0 {
		return corrected
	}

	cap := floorToUnit(maxDelta, unit)

	if positiveCount == 1 {
		// A single non-zero tier carries no ratio to preserve; pin it to the
		// cap directly.
		for i, d := range corrected {
			if d > 0 {
				corrected[i] = cap
			}
		}
		return corrected
	}

	// Two or more tiers: rescale so the largest hits maxDelta and the rest
	// keep their relative spread, then floor each to the rounding unit.
	scaleRatio := maxDelta / float64(maxPositive)
	for i, d := range corrected {
		if d == 0 {
			continue
		}
		scaled := floorToUnit(float64(d)*scaleRatio, unit)
		if scaled > cap {
			scaled = cap
		}
		if scaled < 0 {
			scaled = 0
		}
		corrected[i] = scaled
	}

	// Rounding can lift every value off zero again; restore the anchor.
	if !hasZero && minOf(corrected) > 0 {
		corrected[minIndex(corrected)] = 0
	}

	return corrected
}

func minOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func minIndex(values []int) int {
	idx := 0
	for i, v := range values {
		if v < values[idx] {
			idx = i
		}
	}
	return idx
}

type parsedOptionLine struct {
	textPart string
	delta    int
	ok       bool
}

// CorrectOptionText corrects the price tokens of a newline-separated option
// block against the market sale price. Lines without a parseable token are
// returned byte-identical; line order never changes. The function is pure:
// same inputs, same outputs, no shared state.
func CorrectOptionText(optionText string, marketPrice float64) (string, CorrectionResult) {
	if strings.TrimSpace(optionText) == "" {
		return optionText, CorrectionResult{}
	}
	if marketPrice < 0 {
		// Upstream rows occasionally carry garbage prices; a negative market
		// price would invert the policy band, so clamp at the boundary.
		marketPrice = 0
	}

	lines := strings.Split(optionText, "\n")
	parsed := make([]parsedOptionLine, len(lines))
	validDeltas := make([]int, 0, len(lines))
	hasZero := false

	for i, line := range lines {
		textPart, delta, ok := ParseOptionLine(line)
		parsed[i] = parsedOptionLine{textPart: textPart, delta: delta, ok: ok}
		if ok {
			validDeltas = append(validDeltas, delta)
			if delta == 0 {
				hasZero = true
			}
		}
	}

	maxDelta := MaxOptionDelta(marketPrice)
	unit := OptionRoundingUnit(marketPrice)
	redistributed := redistributeDeltas(validDeltas, maxDelta, hasZero, unit)

	result := CorrectionResult{MaxDelta: maxDelta}
	correctedLines := make([]string, len(lines))
	validIdx := 0

	for i, p := range parsed {
		if !p.ok {
			correctedLines[i] = lines[i]
			continue
		}

		newDelta := redistributed[validIdx]
		validIdx++

		result.OriginalDeltas = append(result.OriginalDeltas, p.delta)
		result.CorrectedDeltas = append(result.CorrectedDeltas, newDelta)
		if newDelta != p.delta {
			result.LinesChanged++
		}

		correctedLines[i] = formatOptionLine(p.textPart, newDelta)
	}

	result.Changed = result.LinesChanged > 0
	return strings.Join(correctedLines, "\n"), result
}

// formatOptionLine rebuilds a line from its label and corrected delta. The
// sign is embedded in the numeral for negatives; a price-only line gets no
// leading comma.
func formatOptionLine(textPart string, delta int) string {
	var token string
	if delta >= 0 {
		token = "+" + strconv.Itoa(delta) + "원"
	} else {
		token = strconv.Itoa(delta) + "원"
	}
	if textPart == "" {
		return token
	}
	return textPart + "," + token
}
