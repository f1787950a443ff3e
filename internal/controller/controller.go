package controller

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/internal/store"
	"github.com/angelmondragon/shopstate/pkg/config"
	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
	"github.com/angelmondragon/shopstate/pkg/logger"
	"github.com/angelmondragon/shopstate/pkg/timing"
)

const (
	defaultSearchDebounce   = 300 * time.Millisecond
	defaultQuantityThrottle = 300 * time.Millisecond
)

// Params groups the controller dependencies. Clock, Navigator and Timing fall back
// to the system clock, a no-op navigator and 300ms windows.
type Params struct {
	Store          *store.Store
	Gateway        catalog.Gateway
	Logger         *logger.Logger
	Clock          timing.Clock
	Navigator      Navigator
	Timing         config.TimingConfig
	RequestTimeout time.Duration
}

// Controller turns presentation intents into store mutations and gateway calls.
// Gateway failures end up in the store as failed slices and are also returned to
// the caller; they never panic.
type Controller struct {
	store          *store.Store
	gateway        catalog.Gateway
	logg           *logger.Logger
	clock          timing.Clock
	nav            Navigator
	timing         config.TimingConfig
	requestTimeout time.Duration

	search   *timing.Debouncer[searchRequest]
	adjuster *QuantityAdjuster

	bgMu       sync.Mutex
	closed     bool
	background sync.WaitGroup
}

func New(params Params) (*Controller, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store required")
	}
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog gateway required")
	}
	if params.Clock == nil {
		params.Clock = timing.SystemClock()
	}
	if params.Navigator == nil {
		params.Navigator = NoopNavigator{}
	}
	if params.Timing.SearchDebounce <= 0 {
		params.Timing.SearchDebounce = defaultSearchDebounce
	}
	if params.Timing.QuantityThrottle <= 0 {
		params.Timing.QuantityThrottle = defaultQuantityThrottle
	}

	c := &Controller{
		store:          params.Store,
		gateway:        params.Gateway,
		logg:           params.Logger,
		clock:          params.Clock,
		nav:            params.Navigator,
		timing:         params.Timing,
		requestTimeout: params.RequestTimeout,
	}
	c.search = timing.NewDebouncer(c.startSearch, c.timing.SearchDebounce, c.clock)
	c.adjuster = c.newAdjuster(screenCart)
	return c, nil
}

// Store exposes the state container for reads.
func (c *Controller) Store() *store.Store {
	return c.store
}

// Wait blocks until background resolutions (debounced searches, refreshes) finish.
func (c *Controller) Wait() {
	c.background.Wait()
}

// Close drops any pending debounced search and waits for background work.
// Work scheduled after Close has started is skipped.
func (c *Controller) Close() {
	c.bgMu.Lock()
	c.closed = true
	c.bgMu.Unlock()
	c.search.CancelPending()
	c.Wait()
}

func (c *Controller) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout > 0 {
		return context.WithTimeout(ctx, c.requestTimeout)
	}
	return context.WithCancel(ctx)
}

// resolve runs one gateway call for ticket and writes the outcome to the store.
// A stale outcome is discarded by the store; the error is still returned.
func resolve[T any](ctx context.Context, c *Controller, ticket store.Ticket, messageFor func(error) string, call func(context.Context) (T, error), succeed func(seq uint64, value T) store.Action) error {
	_, err := resolveApplied(ctx, c, ticket, messageFor, call, succeed)
	return err
}

// resolveApplied is resolve that also reports whether a successful outcome was
// written to the store rather than discarded as superseded.
func resolveApplied[T any](ctx context.Context, c *Controller, ticket store.Ticket, messageFor func(error) string, call func(context.Context) (T, error), succeed func(seq uint64, value T) store.Action) (bool, error) {
	ctx = c.logg.WithFetch(ctx, string(ticket.Kind), ticket.Seq)
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	value, err := call(callCtx)
	if err != nil {
		err = catalog.AsFailure(catalog.Operation(ticket.Kind), err)
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			c.logg.Info(ctx, "controller.fetch.not_found")
		} else {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "controller.fetch.failed")
		}
		c.store.Fail(ticket, err, messageFor(err))
		return false, err
	}

	if !c.store.Dispatch(succeed(ticket.Seq, value)) {
		c.logg.Debug(ctx, "controller.fetch.superseded")
		return false, nil
	}
	c.logg.Debug(ctx, "controller.fetch.resolved")
	return true, nil
}

func fixedMessage(message string) func(error) string {
	return func(error) string { return message }
}

func (c *Controller) isClosed() bool {
	c.bgMu.Lock()
	defer c.bgMu.Unlock()
	return c.closed
}

func (c *Controller) goBackground(fn func()) {
	c.bgMu.Lock()
	if c.closed {
		c.bgMu.Unlock()
		c.logg.Debug(context.Background(), "controller.background.skipped_closed")
		return
	}
	c.background.Add(1)
	c.bgMu.Unlock()
	go func() {
		defer c.background.Done()
		fn()
	}()
}
