package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandedState(t *testing.T) {
	var zero ExpandedState
	assert.False(t, zero.IsExpanded("a"))
	assert.Empty(t, zero.IDs())

	s := NewExpandedState("b")
	assert.True(t, s.Toggle("a"))
	assert.Equal(t, []string{"a", "b"}, s.IDs())
	assert.False(t, s.Toggle("a"))
	assert.False(t, s.IsExpanded("a"))

	s.Expand("c")
	s.Expand("c")
	s.Collapse("b")
	s.Collapse("missing")
	assert.Equal(t, []string{"c"}, s.IDs())
}
