package uploadmapper

import (
	"strings"

	"mapper-backend/internal/pricing"
)

// DafalzaSolution maps the processed sheet into the 다팔자 bulk-registration
// layout. Dafalza carries the full shipping-fee rule set and runs the option
// price correction over its 옵션 column.
type DafalzaSolution struct{}

func init() { register(DafalzaSolution{}) }

func (DafalzaSolution) Name() string { return "dafalza" }

func (DafalzaSolution) Columns() []string {
	return []string{
		"상품코드", "상태", "작업", "오류 메시지", "마켓 상품코드", "소비자준수가", "노트",
		"관리코드", "상품명", "가격", "오너클랜 판매가격", "대표 이미지", "키워드",
		"브랜드", "제조사", "원산지", "면세", "카테고리", "성인전용 상품",
		"배송비", "배송타입", "반품배송비", "교환배송비", "판매시작일", "판매종료일",
		"판매자 부담 할인", "옵션", "상세정보",
	}
}

func (DafalzaSolution) DefaultMapping() map[string]string {
	return map[string]string{
		ColProductCode:    "상품코드",
		ColFinalName:      "상품명",
		ColListImageURL:   "대표 이미지",
		ColSearchKeywords: "키워드",
	}
}

func (DafalzaSolution) CodeColumn() string { return "상품코드" }

func (s DafalzaSolution) ApplyRules(result []Row, processed []Row, cfg MappingConfig) ([]Row, MappingStats) {
	stats := MappingStats{TotalRows: len(result)}

	stats.MappedRows = applyColumnMapping(result, processed, s.DefaultMapping(), s.CodeColumn())
	procIdx := indexByCode(processed, ColProductCode)

	for _, row := range result {
		src, ok := procIdx[strings.TrimSpace(row[s.CodeColumn()])]
		if !ok {
			continue
		}

		// Market sale price, derived from the processed sheet or recomputed
		// from the supplier price and the configured market rates when the
		// sheet has none.
		marketPrice := parsePrice(src[ColMarketPrice])
		if marketPrice == 0 {
			if cost := parsePrice(src[ColSupplierPrice]); cost > 0 {
				marketPrice = pricing.CalculatePrice(cost, cfg.Pricing)
			}
		}
		if marketPrice > 0 {
			row["가격"] = formatPrice(marketPrice)
		}

		// Shipping fee block: transformed fee, then return/exchange fees on
		// top of it.
		originalFee := parsePrice(src[ColShippingFee])
		fee := pricing.CalculateShippingFee(originalFee, cfg.ShippingMethod)
		returnFee := pricing.CalculateReturnFee(fee, cfg.ShippingMethod, originalFee)
		row["배송비"] = formatPrice(fee)
		if fee == 0 {
			row["배송타입"] = "무료배송"
		} else {
			row["배송타입"] = "유료배송"
		}
		row["반품배송비"] = formatPrice(returnFee)
		row["교환배송비"] = formatPrice(pricing.CalculateExchangeFee(returnFee))

		// Seller discount keeps percent notation.
		if v, ok := validCell(src[ColSellerDiscount]); ok {
			row["판매자 부담 할인"] = normalizeDiscountPercent(v)
		}

		// Option block correction against the market sale price.
		if optionText, ok := validCell(src[ColOptionText]); ok {
			corrected, res := pricing.CorrectOptionText(optionText, marketPrice)
			row["옵션"] = corrected
			if res.Changed {
				stats.CorrectedRows++
				if cfg.OnCorrection != nil {
					cfg.OnCorrection(row[s.CodeColumn()], marketPrice, optionText, corrected, res)
				}
			}
		}

		// Detail HTML with the configured footer appended.
		if detail, ok := validCell(src[ColDetailHTML]); ok {
			if cfg.DetailBottomText != "" {
				detail += "<br>" + cfg.DetailBottomText
			}
			row["상세정보"] = detail
		}
	}

	return result, stats
}
