package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Size: DefaultPageSize}, Normalize(0, 0), "zero values take defaults")
	assert.Equal(t, Page{Number: 1, Size: DefaultPageSize}, Normalize(-3, -1), "negative values take defaults")
	assert.Equal(t, Page{Number: 4, Size: MaxPageSize}, Normalize(4, 1000), "size is capped")
	assert.Equal(t, Page{Number: 2, Size: 5}, Normalize(2, 5))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 20, Page{Number: 3, Size: 10}.Offset())
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Slice(items, Page{Number: 1, Size: 3}))
	assert.Equal(t, []int{7}, Slice(items, Page{Number: 3, Size: 3}), "last page is partial")
	assert.Empty(t, Slice(items, Page{Number: 4, Size: 3}), "page past the end is empty")
	assert.NotNil(t, Slice([]int(nil), Page{Number: 1, Size: 3}))
}
