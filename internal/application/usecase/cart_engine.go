// internal/application/usecase/cart_engine.go
package usecase

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
	iddom "github.com/caerux/e-commerce-website/internal/domain/identity"
	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
	"github.com/caerux/e-commerce-website/internal/infra/telemetry"
)

var (
	ErrCartInvalidBarcode = errors.New("cart_engine: invalid barcode")
	ErrCartEngineClosed   = errors.New("cart_engine: closed")
)

// Notifier surfaces cart policy decisions the shopper should see.
// Silent self-healing (validation drops) stays out of here on purpose;
// only the quantity cap is a user-visible policy.
type Notifier interface {
	QuantityCapped(barcode string, max int)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) QuantityCapped(string, int) {}

// CartEngineOptions tunes an engine instance.
type CartEngineOptions struct {
	// MaxQuantity caps every cart line. <= 0 means cartdom.DefaultMaxQuantity.
	MaxQuantity int
	// Notifier receives quantity-capped notices. nil means NopNotifier.
	Notifier Notifier
	// Logger for recoverable warnings. nil means a no-op logger.
	Logger *zap.Logger
}

// CartEngine owns the authoritative barcode -> quantity mapping for the
// active identity, persists it per cart key, reconciles guest/user carts on
// login transitions, and validates it against the product catalog.
//
// Concurrency model: every cart-mutating operation (mutations, identity
// transitions, merges) serializes through one mutex, so publishes observe
// issuance order and last write wins. The asynchronous revalidation pass
// (Refresh) runs its catalog fetch outside the lock and re-checks a
// sequence token before writing, so a stale result never clobbers newer
// state. Single-process only; the persisted blob is a per-user local cache.
//
// Nothing in here is fatal: storage and catalog failures degrade to a
// smaller or empty snapshot, never to an error that blocks the shopper.
type CartEngine struct {
	store    cartdom.Store
	catalog  proddom.Catalog
	ids      iddom.Provider
	notifier Notifier
	log      *zap.Logger
	maxQty   int

	mu       sync.Mutex
	current  cartdom.Snapshot
	active   iddom.Identity
	seq      uint64
	closed   bool
	cancelID func()

	subMu   sync.Mutex
	subs    map[int]func(cartdom.Snapshot)
	nextSub int
}

// NewCartEngine constructs an engine. Call Start to bind it to the identity
// stream and load the initial snapshot, and Close to release the binding.
func NewCartEngine(store cartdom.Store, catalog proddom.Catalog, ids iddom.Provider, opts CartEngineOptions) *CartEngine {
	maxQty := opts.MaxQuantity
	if maxQty <= 0 {
		maxQty = cartdom.DefaultMaxQuantity
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartEngine{
		store:    store,
		catalog:  catalog,
		ids:      ids,
		notifier: notifier,
		log:      logger,
		maxQty:   maxQty,
		current:  cartdom.NewSnapshot(),
		active:   iddom.Guest(),
		subs:     map[int]func(cartdom.Snapshot){},
	}
}

// Start loads the snapshot for the current identity and subscribes to
// identity changes. The provider delivers the current identity immediately,
// which doubles as the initial load.
func (e *CartEngine) Start(ctx context.Context) error {
	if e == nil || e.store == nil || e.catalog == nil {
		return errors.New("cart_engine: not initialized")
	}
	if e.ids == nil {
		// No identity collaborator: stay on the guest cart.
		e.mu.Lock()
		e.loadAndActivateLocked(ctx, iddom.Guest())
		e.mu.Unlock()
		return nil
	}

	first := true
	e.cancelID = e.ids.Subscribe(func(id iddom.Identity) {
		e.onIdentity(ctx, id, first)
		first = false
	})
	return nil
}

// Close releases the identity subscription. Mutations after Close fail
// with ErrCartEngineClosed.
func (e *CartEngine) Close() {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.closed = true
	cancel := e.cancelID
	e.cancelID = nil
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// ─────────────────────────────────
// Published state surface
// ─────────────────────────────────

// Snapshot returns a copy of the active snapshot.
func (e *CartEngine) Snapshot() cartdom.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.Clone()
}

// TotalItems returns the summed quantity of the active snapshot.
func (e *CartEngine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.TotalItems()
}

// Quantity returns the quantity stored for barcode (0 when absent).
func (e *CartEngine) Quantity(barcode string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current[barcode]
}

// Subscribe registers fn for snapshot changes and delivers the current
// snapshot immediately. Listeners run on the mutating goroutine in
// publish order; they must not call back into engine mutations.
func (e *CartEngine) Subscribe(fn func(cartdom.Snapshot)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.subMu.Unlock()

	fn(e.Snapshot())

	var once sync.Once
	return func() {
		once.Do(func() {
			e.subMu.Lock()
			delete(e.subs, id)
			e.subMu.Unlock()
		})
	}
}

// publishLocked pushes a copy of the current snapshot to every subscriber.
// Caller holds e.mu, which is what keeps deliveries in issuance order.
func (e *CartEngine) publishLocked() {
	snap := e.current.Clone()
	telemetry.SetCartItems(snap.TotalItems())

	e.subMu.Lock()
	fns := make([]func(cartdom.Snapshot), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subMu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
}

// ─────────────────────────────────
// Mutation API
// ─────────────────────────────────

// Add increments barcode by one (1 when absent), clamped to the cap.
func (e *CartEngine) Add(ctx context.Context, barcode string) error {
	if !cartdom.ValidBarcode(barcode) {
		return ErrCartInvalidBarcode
	}
	telemetry.ObserveCartMutation("add")

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrCartEngineClosed
	}

	if e.current.Add(barcode, e.maxQty) {
		telemetry.ObserveClamp()
		e.notifier.QuantityCapped(barcode, e.maxQty)
	}
	e.persistLocked(ctx)
	e.publishLocked()
	return nil
}

// Remove deletes barcode from the cart. Absent lines are a no-op.
func (e *CartEngine) Remove(ctx context.Context, barcode string) error {
	telemetry.ObserveCartMutation("remove")

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrCartEngineClosed
	}

	e.current.Remove(barcode)
	e.persistLocked(ctx)
	e.publishLocked()
	return nil
}

// SetQuantity sets barcode to qty (clamped). qty <= 0 removes the line.
func (e *CartEngine) SetQuantity(ctx context.Context, barcode string, qty int) error {
	if !cartdom.ValidBarcode(barcode) {
		return ErrCartInvalidBarcode
	}
	telemetry.ObserveCartMutation("set")

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrCartEngineClosed
	}

	if e.current.SetQty(barcode, qty, e.maxQty) {
		telemetry.ObserveClamp()
		e.notifier.QuantityCapped(barcode, e.maxQty)
	}
	e.persistLocked(ctx)
	e.publishLocked()
	return nil
}

// Clear resets the cart to empty.
func (e *CartEngine) Clear(ctx context.Context) error {
	telemetry.ObserveCartMutation("clear")

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrCartEngineClosed
	}

	e.current = cartdom.NewSnapshot()
	e.persistLocked(ctx)
	e.publishLocked()
	return nil
}

// persistLocked writes the active snapshot under the active cart key.
// A write failure is logged and swallowed: the in-memory state stays
// authoritative and the next mutation retries the write.
func (e *CartEngine) persistLocked(ctx context.Context) {
	e.seq++
	if err := e.store.Save(ctx, e.active.CartKey(), e.current); err != nil {
		e.log.Warn("cart snapshot save failed",
			zap.String("cartKey", e.active.CartKey()),
			zap.Error(err))
	}
}

// ─────────────────────────────────
// Validation
// ─────────────────────────────────

// Refresh revalidates the active snapshot against the catalog.
//
// The catalog fetch runs without the lock (it is the suspension point);
// the sequence token is re-checked before writing so a result that lost
// the race against a newer mutation or identity switch is discarded.
func (e *CartEngine) Refresh(ctx context.Context) {
	e.mu.Lock()
	startSeq := e.seq
	startKey := e.active.CartKey()
	snap := e.current.Clone()
	e.mu.Unlock()

	cleaned := e.cleanAgainstCatalog(ctx, snap)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.seq != startSeq || e.active.CartKey() != startKey {
		// Stale: newer state won.
		return
	}
	if cleaned.Equal(e.current) {
		return
	}
	e.current = cleaned
	e.persistLocked(ctx)
	e.publishLocked()
}

// membership fetches the catalog once and builds the barcode membership
// set for a validation pass. A catalog failure fails closed: the nil set
// verifies nothing, so unverifiable entries get dropped.
func (e *CartEngine) membership(ctx context.Context) map[string]struct{} {
	products, err := e.catalog.Products(ctx)
	if err != nil {
		e.log.Warn("catalog fetch failed during validation; dropping unverifiable entries",
			zap.Error(err))
		return nil
	}
	return proddom.BarcodeSet(products)
}

// cleanAgainstCatalog runs one validation pass: one catalog fetch, one
// membership set, one Clean.
func (e *CartEngine) cleanAgainstCatalog(ctx context.Context, snap cartdom.Snapshot) cartdom.Snapshot {
	return e.cleanWithSet(snap, e.membership(ctx))
}

func (e *CartEngine) cleanWithSet(snap cartdom.Snapshot, known map[string]struct{}) cartdom.Snapshot {
	return cartdom.Clean(snap, known, func(barcode string, reason cartdom.DropReason) {
		telemetry.ObserveValidationDrop(string(reason))
		e.log.Warn("cart entry dropped",
			zap.String("barcode", barcode),
			zap.String("reason", string(reason)))
	})
}

// ─────────────────────────────────
// Identity binding + reconciliation
// ─────────────────────────────────

// onIdentity classifies an identity emission and applies the transition.
// Runs fully serialized: the catalog fetches inside load/merge happen with
// the lock held, which is the "single queue" policy for transitions.
func (e *CartEngine) onIdentity(ctx context.Context, next iddom.Identity, initial bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	prev := e.active
	if !initial && prev.Equal(next) {
		return
	}

	switch {
	case initial:
		// First emission after Start: plain load of whatever is active.
		e.loadAndActivateLocked(ctx, next)

	case prev.IsGuest() && !next.IsGuest():
		// Login: fold the guest cart into the user cart.
		e.mergeLocked(ctx, iddom.Guest().CartKey(), next)

	case !prev.IsGuest() && next.IsGuest():
		// Logout: the user's cart stays stored under their own key.
		e.persistLocked(ctx)
		e.loadAndActivateLocked(ctx, next)

	default:
		// User A -> User B without an intervening logout: persist A, then
		// load B. A's items must not leak into B, so no merge here.
		e.persistLocked(ctx)
		e.loadAndActivateLocked(ctx, next)
	}
}

// loadAndActivateLocked loads key's snapshot, cleans it and makes it the
// active snapshot. Load failures degrade to an empty cart.
func (e *CartEngine) loadAndActivateLocked(ctx context.Context, id iddom.Identity) {
	snap, err := e.store.Load(ctx, id.CartKey())
	if err != nil {
		e.log.Warn("cart snapshot load failed; starting empty",
			zap.String("cartKey", id.CartKey()),
			zap.Error(err))
		snap = cartdom.NewSnapshot()
	}

	e.active = id
	e.current = e.cleanAgainstCatalog(ctx, snap)
	e.seq++
	e.publishLocked()
}

// mergeLocked folds srcKey's snapshot into the cart of dst and deletes the
// source entry. Both sides are cleaned before merging so corrupt entries
// never propagate. Safe to invoke twice: the second call sees an empty
// source and is a no-op merge.
func (e *CartEngine) mergeLocked(ctx context.Context, srcKey string, dst iddom.Identity) {
	src, err := e.store.Load(ctx, srcKey)
	if err != nil {
		e.log.Warn("merge source load failed; treating as empty",
			zap.String("cartKey", srcKey), zap.Error(err))
		src = cartdom.NewSnapshot()
	}
	dstSnap, err := e.store.Load(ctx, dst.CartKey())
	if err != nil {
		e.log.Warn("merge destination load failed; treating as empty",
			zap.String("cartKey", dst.CartKey()), zap.Error(err))
		dstSnap = cartdom.NewSnapshot()
	}

	// One catalog fetch validates both sides.
	known := e.membership(ctx)
	src = e.cleanWithSet(src, known)
	dstSnap = e.cleanWithSet(dstSnap, known)

	for _, barcode := range dstSnap.Merge(src, e.maxQty) {
		telemetry.ObserveClamp()
		e.notifier.QuantityCapped(barcode, e.maxQty)
	}
	telemetry.ObserveMerge()

	e.active = dst
	e.current = dstSnap
	e.persistLocked(ctx)

	// The guest cart does not persist once merged.
	if err := e.store.Delete(ctx, srcKey); err != nil {
		e.log.Warn("merge source delete failed",
			zap.String("cartKey", srcKey), zap.Error(err))
	}

	e.publishLocked()
}
