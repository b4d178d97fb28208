package recency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList_OrderAndIndexAgree(t *testing.T) {
	t.Parallel()

	l := New[string, int](3)
	l.PushFront("a", 1)
	l.PushFront("b", 2)
	l.PushFront("c", 3)
	require.True(t, l.Full())
	require.Equal(t, []string{"c", "b", "a"}, l.Keys())

	e, ok := l.Touch("a")
	require.True(t, ok)
	require.Equal(t, 1, e.Value)
	require.Equal(t, []string{"a", "c", "b"}, l.Keys())

	k, v, ok := l.PopBack()
	require.True(t, ok)
	require.Equal(t, "b", k)
	require.Equal(t, 2, v)
	require.False(t, l.Contains("b"))
	require.Equal(t, 2, l.Len())

	v, ok = l.Remove("c")
	require.True(t, ok)
	require.Equal(t, 3, v)
	_, ok = l.Remove("c")
	require.False(t, ok)
	require.Equal(t, []string{"a"}, l.Keys())
}

func TestList_PeekDoesNotReorder(t *testing.T) {
	t.Parallel()

	l := New[string, int](2)
	l.PushFront("a", 1)
	l.PushFront("b", 2)

	e, ok := l.Peek("a")
	require.True(t, ok)
	require.Equal(t, 1, e.Value)
	require.Equal(t, []string{"b", "a"}, l.Keys())

	_, ok = l.Peek("zzz")
	require.False(t, ok)
}

func TestList_ResetAndSetCap(t *testing.T) {
	t.Parallel()

	l := New[int, int](1)
	l.PushFront(1, 1)
	require.True(t, l.Full())
	l.SetCap(2)
	require.False(t, l.Full())

	l.Reset()
	require.Equal(t, 0, l.Len())
	require.False(t, l.Contains(1))
	_, _, ok := l.PopBack()
	require.False(t, ok)
}

func TestGhosts_BoundedAndOldestFirst(t *testing.T) {
	t.Parallel()

	g := NewGhosts[string](2)
	g.Add("a")
	g.Add("b")
	g.Add("a") // refresh a; b is now the oldest
	g.Add("c")

	require.Equal(t, 2, g.Len())
	require.True(t, g.Contains("a"))
	require.True(t, g.Contains("c"))
	require.False(t, g.Contains("b"))

	require.True(t, g.Remove("a"))
	require.False(t, g.Remove("a"))

	zero := NewGhosts[string](0)
	zero.Add("x")
	require.Equal(t, 0, zero.Len())
}
