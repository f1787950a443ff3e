package derive

import (
	"sync"

	"github.com/angelmondragon/shopstate/internal/store"
)

// Memo caches fn's result for one snapshot version. A snapshot with any other
// version recomputes.
type Memo[T any] struct {
	fn func(store.State) T

	mu      sync.Mutex
	version uint64
	valid   bool
	value   T
}

func NewMemo[T any](fn func(store.State) T) *Memo[T] {
	return &Memo[T]{fn: fn}
}

func (m *Memo[T]) Get(s store.State) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.version == s.Version {
		return m.value
	}
	m.value = m.fn(s)
	m.version = s.Version
	m.valid = true
	return m.value
}

// Selectors bundles the memoized reads the presentation layer uses. Versions are
// per store, so one Selectors value must only see snapshots of one store.
type Selectors struct {
	summary *Memo[OrderSummary]
	home    *Memo[Home]
	count   *Memo[int]
}

func NewSelectors() *Selectors {
	return &Selectors{
		summary: NewMemo(func(s store.State) OrderSummary { return CartSummary(s.Cart) }),
		home:    NewMemo(HomeSections),
		count:   NewMemo(func(s store.State) int { return CartItemCount(s.Cart) }),
	}
}

func (sel *Selectors) CartSummary(s store.State) OrderSummary {
	return sel.summary.Get(s)
}

func (sel *Selectors) Home(s store.State) Home {
	return sel.home.Get(s)
}

func (sel *Selectors) CartItemCount(s store.State) int {
	return sel.count.Get(s)
}
