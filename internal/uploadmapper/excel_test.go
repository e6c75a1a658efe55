package uploadmapper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	cols := []string{"상품코드", "상품명", "가격"}
	rows := []Row{
		{"상품코드": "P1", "상품명": "수저세트", "가격": "12000"},
		{"상품코드": "P2", "상품명": "정리선반", "가격": ""},
	}

	require.NoError(t, WriteSheet(path, cols, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gotCols, gotRows, err := ReadSheet(f)
	require.NoError(t, err)
	assert.Equal(t, cols, gotCols)
	require.Len(t, gotRows, 2)
	assert.Equal(t, "수저세트", gotRows[0]["상품명"])
	assert.Equal(t, "12000", gotRows[0]["가격"])
	assert.Equal(t, "P2", gotRows[1]["상품코드"])
}

func TestReadSheetRejectsGarbage(t *testing.T) {
	_, _, err := ReadSheet(strings.NewReader("not an xlsx"))
	assert.Error(t, err)
}
