package store

import (
	"context"
	"sync"

	"github.com/angelmondragon/shopstate/internal/catalog"
	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
	"github.com/angelmondragon/shopstate/pkg/logger"
	"github.com/angelmondragon/shopstate/pkg/metrics"
)

// Ticket identifies one issuance of a fetch kind. Resolutions must carry its Seq.
type Ticket struct {
	Kind FetchKind
	Seq  uint64
}

// Store is the single mutable holder of State. All writes go through Dispatch.
type Store struct {
	mu      sync.Mutex
	state   State
	lastSeq uint64

	subMu       sync.Mutex
	subscribers map[int]func(State)
	nextSubID   int

	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

type Option func(*Store)

func WithLogger(logg *logger.Logger) Option {
	return func(s *Store) { s.logg = logg }
}

func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

func New(opts ...Option) *Store {
	s := &Store{
		state:       Initial(),
		subscribers: map[int]func(State){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state. The returned value is never mutated afterwards.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every new snapshot. Listeners run on the
// dispatching goroutine after the store lock is released, so concurrent dispatches
// may deliver out of order; compare Version when that matters.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// Issue starts a request of kind with a fresh sequence number, superseding any
// request of the same kind still in flight.
func (s *Store) Issue(kind FetchKind) Ticket {
	return s.issue(kind, func(seq uint64) Action { return FetchIssued{Kind: kind, Seq: seq} })
}

// IssueSelect starts a product lookup. A selected product with another id is cleared.
func (s *Store) IssueSelect(productID string) Ticket {
	return s.issue(KindSelectedProduct, func(seq uint64) Action {
		return FetchIssued{Kind: KindSelectedProduct, Seq: seq, ProductID: productID}
	})
}

// ClearProducts empties the product list and supersedes in-flight searches.
func (s *Store) ClearProducts() Ticket {
	return s.issue(KindProducts, func(seq uint64) Action { return ProductsCleared{Seq: seq} })
}

// IssueOrder starts an order placement unless one is already loading. check runs
// under the store lock against the current state; an error from it aborts with no
// transition. The returned State is the snapshot right after issuance.
func (s *Store) IssueOrder(check func(State) error) (Ticket, State, error) {
	s.mu.Lock()
	if s.state.Order.Loading() {
		s.mu.Unlock()
		return Ticket{}, State{}, pkgerrors.New(pkgerrors.CodeConflict, "order already in progress")
	}
	if check != nil {
		if err := check(s.state); err != nil {
			s.mu.Unlock()
			return Ticket{}, State{}, err
		}
	}
	s.lastSeq++
	seq := s.lastSeq
	next, changed := s.applyLocked(FetchIssued{Kind: KindOrder, Seq: seq})
	s.mu.Unlock()

	if changed {
		s.notify(next)
	}
	return Ticket{Kind: KindOrder, Seq: seq}, next, nil
}

func (s *Store) issue(kind FetchKind, build func(seq uint64) Action) Ticket {
	s.mu.Lock()
	s.lastSeq++
	seq := s.lastSeq
	next, changed := s.applyLocked(build(seq))
	s.mu.Unlock()

	if changed {
		s.notify(next)
	}
	return Ticket{Kind: kind, Seq: seq}
}

// Fail resolves t with err. Message overrides the text readers see.
func (s *Store) Fail(t Ticket, err error, message string) bool {
	return s.Dispatch(FetchFailed{Kind: t.Kind, Seq: t.Seq, Err: err, Message: message})
}

// Dispatch applies a and reports whether the state changed. Stale resolutions are
// discarded without a version bump.
func (s *Store) Dispatch(a Action) bool {
	s.mu.Lock()
	if Stale(s.state, a) {
		kind, seq, _ := resolution(a)
		latest := latestSeq(s.state, kind)
		s.mu.Unlock()
		s.discardStale(kind, seq, latest)
		return false
	}
	next, changed := s.applyLocked(a)
	s.mu.Unlock()

	if changed {
		s.notify(next)
	}
	return changed
}

func (s *Store) applyLocked(a Action) (State, bool) {
	next, changed := Reduce(s.state, a)
	if !changed {
		return s.state, false
	}
	next.Version = s.state.Version + 1
	s.state = next
	s.metrics.IncApplied(a.actionName(), next.Version)
	return next, true
}

func (s *Store) discardStale(kind FetchKind, seq, latest uint64) {
	s.metrics.IncStale(string(kind))
	ctx := s.logg.WithFetch(context.Background(), string(kind), seq)
	s.logg.Debug(s.logg.WithField(ctx, "latest_seq", latest), "store.resolution.stale_discarded")
}

func (s *Store) notify(next State) {
	s.subMu.Lock()
	listeners := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// AddToCart adds quantity units of product. A quantity of zero or less is ignored.
func (s *Store) AddToCart(product catalog.Product, quantity int) bool {
	return s.Dispatch(CartLineAdded{Product: product, Quantity: quantity})
}

func (s *Store) UpdateQuantity(productID string, quantity int) bool {
	return s.Dispatch(QuantityUpdated{ProductID: productID, Quantity: quantity})
}

func (s *Store) RemoveFromCart(productID string) bool {
	return s.Dispatch(CartLineRemoved{ProductID: productID})
}

func (s *Store) ClearCart() bool {
	return s.Dispatch(CartCleared{})
}

func (s *Store) ChoosePaymentMethod(id string) bool {
	return s.Dispatch(PaymentMethodChosen{ID: id})
}
