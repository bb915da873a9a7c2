package paginate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/yatube/internal/paginate"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}
	return out
}

func TestSlice_FirstPageOfThirteen(t *testing.T) {
	p := paginate.New(10)
	page := paginate.Slice(p, seq(13), 1)

	require.Equal(t, 10, page.Len())
	assert.Equal(t, 13, page.Total)
	assert.Equal(t, 13, page.Items[0], "newest item leads the first page")
	assert.Equal(t, 2, page.NumPages())
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrevious())
}

func TestSlice_LastPage(t *testing.T) {
	page := paginate.Slice(paginate.New(10), seq(13), 2)

	require.Equal(t, 3, page.Len())
	assert.Equal(t, []int{3, 2, 1}, page.Items)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrevious())
	assert.Equal(t, 1, page.PreviousNumber())
}

func TestSlice_BeyondRangeIsEmpty(t *testing.T) {
	page := paginate.Slice(paginate.New(10), seq(13), 7)

	assert.Equal(t, 0, page.Len())
	assert.Equal(t, 13, page.Total)
	assert.Equal(t, 7, page.Number)
}

func TestSlice_Empty(t *testing.T) {
	page := paginate.Slice(paginate.New(10), []int{}, 1)

	assert.Equal(t, 0, page.Len())
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.NumPages())
	assert.False(t, page.HasNext())
}

func TestWindow(t *testing.T) {
	p := paginate.New(10)

	tests := []struct {
		number     int
		wantLimit  int
		wantOffset int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{0, 10, 0},
		{-3, 10, 0},
		{math.MaxInt / 10, 10, math.MaxInt/10*10 - 10},
		{math.MaxInt/10 + 2, 10, math.MaxInt - 10},
		{1_000_000_000_000_000_000, 10, math.MaxInt - 10},
		{math.MaxInt, 10, math.MaxInt - 10},
	}
	for _, tc := range tests {
		limit, offset := p.Window(tc.number)
		assert.Equal(t, tc.wantLimit, limit, "page %d", tc.number)
		assert.Equal(t, tc.wantOffset, offset, "page %d", tc.number)
	}
}

func TestWindow_HugePageNeverWraps(t *testing.T) {
	for _, size := range []int{1, 3, 10, 1000} {
		p := paginate.New(size)
		for _, number := range []int{math.MaxInt, math.MaxInt / 2, math.MaxInt / size} {
			limit, offset := p.Window(number)
			assert.GreaterOrEqual(t, offset, 0, "size %d page %d", size, number)
			assert.LessOrEqual(t, offset, math.MaxInt-limit, "size %d page %d", size, number)
		}
	}
}

func TestSlice_HugePageIsEmpty(t *testing.T) {
	page := paginate.Slice(paginate.New(10), seq(13), paginate.ParseNumber("1000000000000000000"))

	assert.Equal(t, 0, page.Len())
	assert.Equal(t, 13, page.Total)
	assert.False(t, page.HasNext())
}

func TestNew_NonPositiveSizeFallsBack(t *testing.T) {
	limit, _ := paginate.New(0).Window(1)
	assert.Equal(t, paginate.DefaultSize, limit)
	limit, _ = paginate.New(3).Window(1)
	assert.Equal(t, 3, limit)
}

func TestNewPage_TruncatesToSize(t *testing.T) {
	page := paginate.NewPage(paginate.New(2), []string{"a", "b", "c"}, 1, 3)
	assert.Equal(t, []string{"a", "b"}, page.Items)
}

func TestParseNumber(t *testing.T) {
	tests := map[string]int{
		"":     1,
		"1":    1,
		"4":    4,
		"0":    1,
		"-2":   1,
		"last": 1,
	}
	for raw, want := range tests {
		assert.Equal(t, want, paginate.ParseNumber(raw), "raw %q", raw)
	}
}
