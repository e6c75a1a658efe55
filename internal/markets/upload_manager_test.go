package markets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextFreeIndex(t *testing.T) {
	t.Run("empty usage picks zero", func(t *testing.T) {
		assert.Equal(t, 0, nextFreeIndex(map[int]bool{}, 3))
	})

	t.Run("skips used indices", func(t *testing.T) {
		assert.Equal(t, 2, nextFreeIndex(map[int]bool{0: true, 1: true}, 3))
	})

	t.Run("wraps when exhausted", func(t *testing.T) {
		used := map[int]bool{0: true, 1: true, 2: true}
		assert.Equal(t, 0, nextFreeIndex(used, 3))
	})

	t.Run("zero candidates", func(t *testing.T) {
		assert.Equal(t, 0, nextFreeIndex(map[int]bool{}, 0))
	})
}
