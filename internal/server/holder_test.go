package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getsignpost/signpost/internal/router"
)

func TestTableHolder(t *testing.T) {
	t.Parallel()

	first := router.New()
	require.NoError(t, first.Add(router.Route{Name: "a", Path: "/a"}))

	holder := NewTableHolder(first)
	assert.Same(t, first, holder.Load())

	second := router.New()
	require.NoError(t, second.Add(router.Route{Name: "b", Path: "/b"}))

	previous := holder.Swap(second)
	assert.Same(t, first, previous)
	assert.Same(t, second, holder.Load())
}
