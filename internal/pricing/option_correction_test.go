package pricing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantText string
		wantDel  int
		wantOK   bool
	}{
		{"plus zero", "색상:그린,+0원", "색상:그린", 0, true},
		{"negative", "선택:수저세트,-100원", "선택:수저세트", -100, true},
		{"thousands separator", "B타입,+8,020원", "B타입", 8020, true},
		{"no sign defaults plus", "A타입,3040원", "A타입", 3040, true},
		{"space before token", "A타입, +500원", "A타입", 500, true},
		{"price only line", "+500원", "", 500, true},
		{"no token", "Free gift included", "Free gift included", 0, false},
		{"won in the middle", "1000원짜리 옵션", "1000원짜리 옵션", 0, false},
		{"empty", "", "", 0, false},
		{"double comma before token", "A타입,,+500원", "A타입", 500, true},
		{"trailing whitespace after token", "A타입,+500원  ", "A타입", 500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, delta, ok := ParseOptionLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, text)
			if tt.wantOK {
				assert.Equal(t, tt.wantDel, delta)
			}
		})
	}
}

func TestMaxOptionDelta(t *testing.T) {
	assert.Equal(t, 1500.0, MaxOptionDelta(1500))
	assert.Equal(t, 5000.0, MaxOptionDelta(5000))
	assert.Equal(t, 9999.0, MaxOptionDelta(9999))
	assert.Equal(t, 5000.0, MaxOptionDelta(10000))
	assert.Equal(t, 25000.0, MaxOptionDelta(50000))
}

func TestOptionRoundingUnit(t *testing.T) {
	assert.Equal(t, 10, OptionRoundingUnit(5000))
	assert.Equal(t, 10, OptionRoundingUnit(10000))
	assert.Equal(t, 100, OptionRoundingUnit(10001))
	assert.Equal(t, 100, OptionRoundingUnit(30000))
	assert.Equal(t, 500, OptionRoundingUnit(30001))
	assert.Equal(t, 500, OptionRoundingUnit(60000))
	assert.Equal(t, 1000, OptionRoundingUnit(60001))
	assert.Equal(t, 1000, OptionRoundingUnit(100000))
}

func TestRedistributeDeltas(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, redistributeDeltas(nil, 5000, false, 10))
	})

	t.Run("negatives clamp to zero", func(t *testing.T) {
		got := redistributeDeltas([]int{0, -100}, 8000, true, 10)
		assert.Equal(t, []int{0, 0}, got)
	})

	t.Run("all zero stays zero", func(t *testing.T) {
		got := redistributeDeltas([]int{0, 0, 0}, 5000, true, 10)
		assert.Equal(t, []int{0, 0, 0}, got)
	})

	t.Run("missing baseline forces first minimum to zero", func(t *testing.T) {
		// 500 and 1000, market price 50000: 500 becomes the anchor, the one
		// remaining positive tier pins to the cap.
		got := redistributeDeltas([]int{500, 1000}, 25000, false, 500)
		assert.Equal(t, []int{0, 25000}, got)
	})

	t.Run("tie break picks first minimal value", func(t *testing.T) {
		got := redistributeDeltas([]int{300, 300, 900}, 5000, false, 10)
		assert.Equal(t, 0, got[0])
		assert.NotEqual(t, 0, got[1])
	})

	t.Run("single positive tier pins to cap", func(t *testing.T) {
		got := redistributeDeltas([]int{0, 20000}, 5000, false, 10)
		assert.Equal(t, []int{0, 5000}, got)
	})

	t.Run("two or more tiers keep proportions", func(t *testing.T) {
		// 1000:2000:4000 with max 5000, unit 10 -> 1250:2500:5000.
		got := redistributeDeltas([]int{0, 1000, 2000, 4000}, 5000, true, 10)
		assert.Equal(t, []int{0, 1250, 2500, 5000}, got)
	})

	t.Run("scaled values floor to rounding unit", func(t *testing.T) {
		got := redistributeDeltas([]int{0, 333, 999}, 25000, true, 500)
		for _, d := range got {
			assert.Zero(t, d%500, "delta %d not a multiple of 500", d)
		}
		assert.Equal(t, 25000, got[2])
	})

	t.Run("cap respected by every output", func(t *testing.T) {
		got := redistributeDeltas([]int{100, 50000, 70000}, 25000, false, 500)
		for _, d := range got {
			assert.LessOrEqual(t, d, 25000)
			assert.GreaterOrEqual(t, d, 0)
		}
	})
}

func TestCorrectOptionText(t *testing.T) {
	t.Run("scenario A single compliant option unchanged", func(t *testing.T) {
		out, res := CorrectOptionText("Color: Red,+0원", 5000)
		assert.Equal(t, "Color: Red,+0원", out)
		assert.False(t, res.Changed)
		assert.Zero(t, res.LinesChanged)
	})

	t.Run("scenario B single positive tier caps directly", func(t *testing.T) {
		out, res := CorrectOptionText("A,+0원\nB,+20000원", 5000)
		assert.Equal(t, "A,+0원\nB,+5000원", out)
		assert.True(t, res.Changed)
		assert.Equal(t, 1, res.LinesChanged)
		assert.Equal(t, []int{0, 20000}, res.OriginalDeltas)
		assert.Equal(t, []int{0, 5000}, res.CorrectedDeltas)
	})

	t.Run("scenario C negative clamps to zero", func(t *testing.T) {
		out, res := CorrectOptionText("A,+0원\nB,-100원", 8000)
		assert.Equal(t, "A,+0원\nB,+0원", out)
		assert.Equal(t, 1, res.LinesChanged)
	})

	t.Run("scenario D no baseline in original", func(t *testing.T) {
		out, res := CorrectOptionText("A,+500원\nB,+1000원", 50000)
		assert.Equal(t, "A,+0원\nB,+25000원", out)
		assert.Equal(t, 2, res.LinesChanged)
		assert.Equal(t, 25000.0, res.MaxDelta)
	})

	t.Run("scenario E unparseable line passes through verbatim", func(t *testing.T) {
		out, res := CorrectOptionText("Free gift included", 30000)
		assert.Equal(t, "Free gift included", out)
		assert.False(t, res.Changed)
		assert.Empty(t, res.OriginalDeltas)
	})

	t.Run("mixed block preserves order and opaque lines", func(t *testing.T) {
		in := "사은품 증정\nA,+500원\n옵션 문의는 고객센터로\nB,+1000원"
		out, _ := CorrectOptionText(in, 50000)
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "사은품 증정", lines[0])
		assert.Equal(t, "옵션 문의는 고객센터로", lines[2])
		assert.True(t, strings.HasPrefix(lines[1], "A,"))
		assert.True(t, strings.HasPrefix(lines[3], "B,"))
	})

	t.Run("empty block untouched", func(t *testing.T) {
		out, res := CorrectOptionText("", 5000)
		assert.Equal(t, "", out)
		assert.False(t, res.Changed)
	})

	t.Run("negative market price treated as zero", func(t *testing.T) {
		out, res := CorrectOptionText("A,+0원\nB,+500원", -1000)
		assert.Equal(t, "A,+0원\nB,+0원", out)
		assert.Equal(t, 0.0, res.MaxDelta)
	})

	t.Run("price only line keeps no leading comma", func(t *testing.T) {
		out, _ := CorrectOptionText("+20000원", 5000)
		assert.Equal(t, "+5000원", out)
	})
}

// Policy invariants over a spread of inputs: outputs are non-negative, capped,
// multiples of the rounding unit, and contain a zero anchor whenever the
// block had any non-zero parseable delta.
func TestCorrectOptionTextInvariants(t *testing.T) {
	prices := []float64{0, 1500, 5000, 9999, 10000, 25000, 30001, 50000, 60001, 120000}
	blocks := [][]int{
		{0},
		{500},
		{-300, 700},
		{100, 200, 300},
		{999, 123456},
		{0, 10, 20, 30, 40},
		{70000, 70000, 1},
	}

	for _, price := range prices {
		for _, deltas := range blocks {
			var b strings.Builder
			for i, d := range deltas {
				if i > 0 {
					b.WriteByte('\n')
				}
				fmt.Fprintf(&b, "옵션%d,%+d원", i+1, d)
			}
			in := b.String()

			out, res := CorrectOptionText(in, price)
			unit := OptionRoundingUnit(price)
			cap := int(res.MaxDelta) / unit * unit

			require.Len(t, res.CorrectedDeltas, len(deltas), "price=%v in=%q", price, in)

			hasZero := false
			allZero := true
			for _, d := range res.CorrectedDeltas {
				assert.GreaterOrEqual(t, d, 0, "price=%v in=%q", price, in)
				assert.LessOrEqual(t, d, cap, "price=%v in=%q", price, in)
				if d == 0 {
					hasZero = true
				} else {
					allZero = false
					assert.Zero(t, d%unit, "price=%v in=%q delta=%d", price, in, d)
				}
			}
			if !allZero {
				assert.True(t, hasZero, "no baseline: price=%v in=%q out=%q", price, in, out)
			}

			assert.Len(t, strings.Split(out, "\n"), len(deltas))
		}
	}
}

// Two positive tiers keep their relative ordering and approximate ratio after
// rescaling (within one rounding unit of error on each side).
func TestCorrectOptionTextProportionality(t *testing.T) {
	out, res := CorrectOptionText("기본,+0원\n소,+1000원\n대,+3000원", 50000)
	require.Equal(t, []int{0, 1000, 3000}, res.OriginalDeltas)

	small, large := res.CorrectedDeltas[1], res.CorrectedDeltas[2]
	assert.Less(t, small, large)
	assert.Equal(t, 25000, large)

	// 1000/3000 of 25000 is 8333.33; floored to the 500 unit.
	assert.Equal(t, 8000, small)
	_ = out
}

func TestCorrectOptionTextIdempotent(t *testing.T) {
	in := "A,+500원\nB,+1000원\nC,사은품"
	once, _ := CorrectOptionText(in, 50000)
	twice, res := CorrectOptionText(once, 50000)
	assert.Equal(t, once, twice)
	assert.False(t, res.Changed)
}
