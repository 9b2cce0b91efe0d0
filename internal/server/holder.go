package server

import (
	"sync/atomic"

	"github.com/getsignpost/signpost/internal/router"
)

// TableHolder publishes the active route table. Reloads build a fresh
// router and swap the pointer atomically, so in-flight matches keep
// the table they started with.
type TableHolder struct {
	table atomic.Pointer[router.Router]
}

// NewTableHolder creates a holder publishing the given table.
func NewTableHolder(r *router.Router) *TableHolder {
	h := &TableHolder{}
	h.table.Store(r)
	return h
}

// Load returns the active route table.
func (h *TableHolder) Load() *router.Router {
	return h.table.Load()
}

// Swap publishes a new route table and returns the previous one.
func (h *TableHolder) Swap(r *router.Router) *router.Router {
	return h.table.Swap(r)
}
