package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReinsert(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{name: "first to last", from: 0, to: 3, want: []string{"b", "c", "d", "a"}},
		{name: "last to first", from: 3, to: 0, want: []string{"d", "a", "b", "c"}},
		{name: "forward uses shortened index", from: 0, to: 2, want: []string{"b", "c", "a", "d"}},
		{name: "backward", from: 2, to: 1, want: []string{"a", "c", "b", "d"}},
		{name: "to past end is clamped", from: 1, to: 99, want: []string{"a", "c", "d", "b"}},
		{name: "negative to is clamped", from: 2, to: -5, want: []string{"c", "a", "b", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []string{"a", "b", "c", "d"}
			got := Reinsert(in, tt.from, tt.to)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"a", "b", "c", "d"}, in, "input must not change")
		})
	}
}

func TestReinsertNoop(t *testing.T) {
	in := []string{"a", "b", "c"}

	assert.True(t, Same(in, Reinsert(in, -1, 0)))
	assert.True(t, Same(in, Reinsert(in, 3, 0)))
	assert.True(t, Same(in, Reinsert(in, 1, 1)))
	assert.True(t, Same(in, Reinsert(in, 2, 10)), "clamped onto itself")

	var empty []string
	assert.Nil(t, Reinsert(empty, 0, 0))
}

func TestSame(t *testing.T) {
	a := []int{1, 2, 3}
	assert.True(t, Same(a, a))
	assert.False(t, Same(a, []int{1, 2, 3}))
	assert.False(t, Same(a, a[:2]))
	assert.True(t, Same([]int{}, nil))
}

func TestAppendNewDoesNotAlias(t *testing.T) {
	base := make([]int, 2, 10)
	x := appendNew(base, 7)
	y := appendNew(base, 8)
	assert.Equal(t, []int{0, 0, 7}, x)
	assert.Equal(t, []int{0, 0, 8}, y)
}

func TestRemoveWhere(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	kept, removed := removeWhere(in, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{1, 3, 5}, kept)
	assert.Equal(t, []int{2, 4}, removed)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, in)

	kept, removed = removeWhere(in, func(int) bool { return false })
	assert.True(t, Same(in, kept))
	assert.Nil(t, removed)
}
