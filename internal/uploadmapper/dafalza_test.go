package uploadmapper

import (
	"testing"

	"mapper-backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dafalzaProcessedRow(code string) Row {
	return Row{
		ColProductCode:    code,
		ColFinalName:      "프리미엄 수저세트 10P",
		ColMarketPrice:    "50,000원",
		ColListImageURL:   "https://cdn.example.com/p1.jpg",
		ColSearchKeywords: "수저,선물세트",
		ColShippingFee:    "2500",
		ColOptionText:     "기본,+0원\n고급형,+60000원",
		ColSellerDiscount: "0.49",
		ColDetailHTML:     "<p>상세설명</p>",
	}
}

func TestDafalzaApplyRules(t *testing.T) {
	s := DafalzaSolution{}
	processed := []Row{dafalzaProcessedRow("P1")}
	result := newResultRows(processed, s.Columns(), s.CodeColumn())

	var sunk []pricing.CorrectionResult
	cfg := MappingConfig{
		ShippingMethod:   pricing.ShippingStandard,
		DetailBottomText: "하단 고지문",
		OnCorrection: func(code string, price float64, orig, corr string, res pricing.CorrectionResult) {
			assert.Equal(t, "P1", code)
			assert.Equal(t, 50000.0, price)
			sunk = append(sunk, res)
		},
	}

	result, stats := s.ApplyRules(result, processed, cfg)
	require.Len(t, result, 1)
	row := result[0]

	assert.Equal(t, 1, stats.MappedRows)
	assert.Equal(t, 1, stats.CorrectedRows)

	assert.Equal(t, "프리미엄 수저세트 10P", row["상품명"])
	assert.Equal(t, "50000", row["가격"])
	assert.Equal(t, "https://cdn.example.com/p1.jpg", row["대표 이미지"])
	assert.Equal(t, "수저,선물세트", row["키워드"])

	// 2500 -> 3000 band; return 4000; exchange 8000.
	assert.Equal(t, "3000", row["배송비"])
	assert.Equal(t, "유료배송", row["배송타입"])
	assert.Equal(t, "4000", row["반품배송비"])
	assert.Equal(t, "8000", row["교환배송비"])

	assert.Equal(t, "49%", row["판매자 부담 할인"])

	// 60000 add-on exceeds the 25000 cap at price 50000; single positive
	// tier pins to the cap.
	assert.Equal(t, "기본,+0원\n고급형,+25000원", row["옵션"])
	require.Len(t, sunk, 1)
	assert.Equal(t, 1, sunk[0].LinesChanged)

	assert.Equal(t, "<p>상세설명</p><br>하단 고지문", row["상세정보"])
}

func TestDafalzaFreeShipping(t *testing.T) {
	s := DafalzaSolution{}
	processed := []Row{dafalzaProcessedRow("P1")}
	result := newResultRows(processed, s.Columns(), s.CodeColumn())

	result, _ = s.ApplyRules(result, processed, MappingConfig{ShippingMethod: pricing.ShippingFree})
	row := result[0]

	assert.Equal(t, "0", row["배송비"])
	assert.Equal(t, "무료배송", row["배송타입"])
	// Return fee falls back to the hidden original fee + 1000.
	assert.Equal(t, "3500", row["반품배송비"])
	assert.Equal(t, "7000", row["교환배송비"])
}

func TestDafalzaPriceFallback(t *testing.T) {
	s := DafalzaSolution{}
	processed := []Row{{
		ColProductCode:   "P2",
		ColFinalName:     "원목 도마",
		ColSupplierPrice: "10000",
	}}
	result := newResultRows(processed, s.Columns(), s.CodeColumn())

	cfg := MappingConfig{Pricing: pricing.PricingConfig{MarginRate: 33, CommissionRate: 10}}
	result, _ = s.ApplyRules(result, processed, cfg)

	// 10000 * 1.33 / 0.9 = 14777.78, rounded to whole won.
	assert.Equal(t, "14778", result[0]["가격"])
}

func TestDafalzaCompliantOptionsNotLogged(t *testing.T) {
	s := DafalzaSolution{}
	processed := []Row{{
		ColProductCode: "P1",
		ColMarketPrice: "5000",
		ColOptionText:  "색상:그린,+0원",
	}}
	result := newResultRows(processed, s.Columns(), s.CodeColumn())

	calls := 0
	cfg := MappingConfig{OnCorrection: func(string, float64, string, string, pricing.CorrectionResult) { calls++ }}

	result, stats := s.ApplyRules(result, processed, cfg)
	assert.Equal(t, "색상:그린,+0원", result[0]["옵션"])
	assert.Zero(t, stats.CorrectedRows)
	assert.Zero(t, calls)
}

func TestEsellersApplyRules(t *testing.T) {
	s := EsellersSolution{}
	processed := []Row{{
		ColProductCode:    "P7",
		ColFinalName:      "주방 정리 선반 2단",
		ColMarketPrice:    "30000",
		ColListImageURL:   "https://cdn.example.com/p7.jpg",
		ColSearchKeywords: "선반,주방수납",
		ColOptionText:     "2단,+500원\n3단,+1000원",
	}}
	result := newResultRows(processed, s.Columns(), s.CodeColumn())

	result, stats := s.ApplyRules(result, processed, MappingConfig{})
	require.Len(t, result, 1)
	row := result[0]

	assert.Equal(t, 1, stats.MappedRows)
	assert.Equal(t, "주방 정리 선반 2단", row["상품명*"])
	assert.Equal(t, "30000", row["판매가*"])
	assert.Equal(t, "https://cdn.example.com/p7.jpg", row["목록 이미지*"])
	assert.Equal(t, "https://cdn.example.com/p7.jpg", row["이미지1(대표/기본이미지)*"])
	assert.Equal(t, "선반,주방수납", row["검색어(태그)"])
	assert.Equal(t, "조합형", row["선택사항 타입"])

	// No zero baseline: 500 anchors to 0, the remaining tier pins to the
	// 15000 cap (price 30000, unit 100).
	assert.Equal(t, "2단,+0원\n3단,+15000원", row["선택사항 상세정보"])
	assert.Equal(t, 1, stats.CorrectedRows)
}
