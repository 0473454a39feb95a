package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_PushAndTraverse(t *testing.T) {
	s := NewStack()
	assert.Equal(t, "", s.Current())
	assert.False(t, s.CanBack())
	assert.False(t, s.CanForward())

	s.Push("a=1")
	s.Push("a=2")
	assert.Equal(t, "a=2", s.Current())
	assert.True(t, s.CanBack())

	loc, ok := s.Back()
	require.True(t, ok)
	assert.Equal(t, "a=1", loc)
	assert.True(t, s.CanForward())

	loc, ok = s.Forward()
	require.True(t, ok)
	assert.Equal(t, "a=2", loc)
}

func TestStack_BackAtRootIsNoOp(t *testing.T) {
	s := NewStack()
	loc, ok := s.Back()
	assert.False(t, ok)
	assert.Equal(t, "", loc)
}

func TestStack_ForwardAtHeadIsNoOp(t *testing.T) {
	s := NewStack()
	s.Push("a=1")
	_, ok := s.Forward()
	assert.False(t, ok)
}

func TestStack_PushAfterBackTruncatesForwardTail(t *testing.T) {
	s := NewStack()
	s.Push("a=1")
	s.Push("a=2")
	_, ok := s.Back()
	require.True(t, ok)

	s.Push("a=3")
	assert.Equal(t, "a=3", s.Current())
	assert.False(t, s.CanForward(), "forward tail must be dropped")

	loc, ok := s.Back()
	require.True(t, ok)
	assert.Equal(t, "a=1", loc)
}

func TestStack_Replace(t *testing.T) {
	s := NewStack()
	s.Push("a=1")
	s.Replace("a=9")
	assert.Equal(t, "a=9", s.Current())

	loc, ok := s.Back()
	require.True(t, ok)
	assert.Equal(t, "", loc, "replace must not grow the log")
}
