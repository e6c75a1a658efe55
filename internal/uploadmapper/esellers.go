package uploadmapper

import (
	"strings"

	"mapper-backend/internal/pricing"
)

// EsellersSolution maps the processed sheet into the 이셀러스 registration
// layout. Esellers matches rows on the seller management code and corrects
// the option detail column against the sale price.
type EsellersSolution struct{}

func init() { register(EsellersSolution{}) }

func (EsellersSolution) Name() string { return "esellers" }

func (EsellersSolution) Columns() []string {
	return []string{
		"원본번호*", "판매자 관리코드", "폴더명", "카테고리 번호*", "상품명*", "판매가*", "수량*",
		"최대구매수량", "최소구매수량", "원산지*", "수입사",
		"목록 이미지*", "이미지1(대표/기본이미지)*", "이미지2", "이미지3",
		"상세설명*",
		"선택사항 타입", "선택사항 옵션명", "선택사항 상세정보", "선택사항 재고 사용여부",
		"추가구성 옵션명", "추가구성 상세정보",
		"브랜드", "모델명", "제조사", "과세여부",
		"홍보문구", "상품상태", "원가", "공급가",
		"검색어(태그)", "요약정보 상품군 코드*", "요약정보 전항목 상세설명 참조",
		"기본정보 오류메시지",
	}
}

func (EsellersSolution) DefaultMapping() map[string]string {
	return map[string]string{
		ColProductCode:    "판매자 관리코드",
		ColFinalName:      "상품명*",
		ColMarketPrice:    "판매가*",
		ColListImageURL:   "목록 이미지*",
		ColSearchKeywords: "검색어(태그)",
	}
}

func (EsellersSolution) CodeColumn() string { return "판매자 관리코드" }

func (s EsellersSolution) ApplyRules(result []Row, processed []Row, cfg MappingConfig) ([]Row, MappingStats) {
	stats := MappingStats{TotalRows: len(result)}

	stats.MappedRows = applyColumnMapping(result, processed, s.DefaultMapping(), s.CodeColumn())
	procIdx := indexByCode(processed, ColProductCode)

	for _, row := range result {
		src, ok := procIdx[strings.TrimSpace(row[s.CodeColumn()])]
		if !ok {
			continue
		}

		// The list image doubles as the primary detail image.
		if img, ok := validCell(src[ColListImageURL]); ok {
			row["이미지1(대표/기본이미지)*"] = img
		}

		marketPrice := parsePrice(row["판매가*"])
		if cost := parsePrice(src[ColSupplierPrice]); cost > 0 {
			row["공급가"] = formatPrice(cost)
			if marketPrice == 0 {
				marketPrice = pricing.CalculatePrice(cost, cfg.Pricing)
				row["판매가*"] = formatPrice(marketPrice)
			}
		}

		// Option detail correction against the sale price. Esellers keeps
		// options in the 선택사항 상세정보 column.
		if optionText, ok := validCell(src[ColOptionText]); ok {
			corrected, res := pricing.CorrectOptionText(optionText, marketPrice)
			row["선택사항 상세정보"] = corrected
			if row["선택사항 타입"] == "" {
				row["선택사항 타입"] = "조합형"
			}
			if res.Changed {
				stats.CorrectedRows++
				if cfg.OnCorrection != nil {
					cfg.OnCorrection(row[s.CodeColumn()], marketPrice, optionText, corrected, res)
				}
			}
		}

		if detail, ok := validCell(src[ColDetailHTML]); ok {
			if cfg.DetailBottomText != "" {
				detail += "<br>" + cfg.DetailBottomText
			}
			row["상세설명*"] = detail
		}
	}

	return result, stats
}
