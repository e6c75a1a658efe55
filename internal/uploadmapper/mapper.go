package uploadmapper

import (
	"fmt"
	"strconv"
	"strings"
)

// Processed-sheet column names shared by every solution. The processed sheet
// is the output of the name-cleanup stages upstream of the mapper.
const (
	ColProductCode    = "상품코드"
	ColFinalName      = "ST4_최종결과"
	ColMarketPrice    = "마켓판매가격"
	ColSupplierPrice  = "공급가"
	ColListImageURL   = "사용URL"
	ColSearchKeywords = "search_keywords"
	ColShippingFee    = "배송비"
	ColOptionText     = "옵션"
	ColDetailHTML     = "상세정보"
	ColSellerDiscount = "판매자 부담 할인"
)

// Spreadsheet lookup artifacts that must never be copied into an upload file.
var invalidCellValues = map[string]struct{}{
	"#N/A": {}, "#NA": {}, "N/A": {}, "NA": {}, "NULL": {}, "NAN": {}, "NAN.0": {},
}

// validCell reports whether a processed-sheet value is usable, filtering the
// #N/A family that VLOOKUP-built sheets carry.
func validCell(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if _, bad := invalidCellValues[strings.ToUpper(v)]; bad {
		return "", false
	}
	return v, true
}

// indexByCode builds a product-code index over the processed rows. Later rows
// with a duplicate code are ignored, matching first-wins sheet semantics.
func indexByCode(rows []Row, codeCol string) map[string]Row {
	idx := make(map[string]Row, len(rows))
	for _, row := range rows {
		code := strings.TrimSpace(row[codeCol])
		if code == "" {
			continue
		}
		if _, exists := idx[code]; !exists {
			idx[code] = row
		}
	}
	return idx
}

// applyColumnMapping copies mapped processed-sheet values onto the result
// rows, matching rows by product code. Invalid cells leave the target value
// untouched.
func applyColumnMapping(result []Row, processed []Row, mapping map[string]string, resultCodeCol string) int {
	procIdx := indexByCode(processed, ColProductCode)
	mapped := 0

	for _, row := range result {
		code := strings.TrimSpace(row[resultCodeCol])
		src, ok := procIdx[code]
		if !ok {
			continue
		}
		mapped++
		for procCol, solCol := range mapping {
			if v, ok := validCell(src[procCol]); ok {
				row[solCol] = v
			}
		}
	}
	return mapped
}

// normalizeDiscountPercent renders a seller-discount cell as "NN%". Fractions
// (0.49) become percentages; bare numbers get the suffix; anything else passes
// through unchanged.
func normalizeDiscountPercent(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.Contains(v, "%") {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	if f >= 0 && f <= 1 {
		return fmt.Sprintf("%.0f%%", f*100)
	}
	if f > 1 && f <= 100 {
		return fmt.Sprintf("%.0f%%", f)
	}
	return v
}

// parsePrice reads a numeric cell, tolerating thousands separators and a 원
// suffix. Returns 0 for anything unparseable.
func parsePrice(v string) float64 {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "원")
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// formatPrice writes a whole-won amount back into a cell.
func formatPrice(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}

// newResultRows synthesizes result rows (one per processed row, code column
// prefilled) for runs without a pre-built solution sheet.
func newResultRows(processed []Row, cols []string, codeCol string) []Row {
	result := make([]Row, 0, len(processed))
	for _, src := range processed {
		code := strings.TrimSpace(src[ColProductCode])
		if code == "" {
			continue
		}
		row := make(Row, len(cols))
		for _, col := range cols {
			row[col] = ""
		}
		row[codeCol] = code
		result = append(result, row)
	}
	return result
}
