package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"CryptoBoard/internal/calculator"
	"CryptoBoard/internal/collector"
	"CryptoBoard/internal/model"
	"CryptoBoard/internal/scheduler"
	"CryptoBoard/internal/selector"
)

var (
	// ErrUnknownAsset is returned for pointer or focus events on an id that is not in the snapshot.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrStopped is returned once the controller has been torn down.
	ErrStopped = errors.New("dashboard stopped")
	// ErrSuperseded is returned when a fetch completed after a newer one was applied.
	ErrSuperseded = errors.New("response superseded by a newer snapshot")
)

// Options configures a Controller.
type Options struct {
	Limit           int
	VsCurrency      string
	RefreshInterval time.Duration
	TimeFrame       model.TimeFrame
	ShowRSI         bool
	RSIPeriod       int
	Location        *time.Location
}

func (o *Options) applyDefaults() {
	if o.Limit <= 0 {
		o.Limit = 10
	}
	if o.VsCurrency == "" {
		o.VsCurrency = "usd"
	}
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = 60 * time.Second
	}
	if o.TimeFrame == "" {
		o.TimeFrame = model.TimeFrame7D
	}
	if o.RSIPeriod <= 0 {
		o.RSIPeriod = calculator.DefaultRSIPeriod
	}
	if o.Location == nil {
		o.Location = time.Local
	}
}

// Controller owns the snapshot, the display settings and one RangeSelector
// per visible asset, and refreshes the snapshot on a schedule.
type Controller struct {
	fetcher  collector.Fetcher
	opts     Options
	now      func() time.Time
	onUpdate func(model.DashboardView)

	// lifecycle serializes Start and Stop.
	lifecycle sync.Mutex

	// hookMu orders update hook calls; deliveredSeq is the last seq handed out.
	hookMu       sync.Mutex
	deliveredSeq uint64

	mu         sync.Mutex
	snapshot   *model.Snapshot
	selectors  map[string]*selector.RangeSelector
	timeFrame  model.TimeFrame
	showRSI    bool
	focused    string
	lastErr    error
	nextSeq    uint64
	appliedSeq uint64
	started    bool
	stopped    bool

	sched  *scheduler.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces time.Now, used for chart labels.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithUpdateHook registers a callback invoked with the new view after every applied refresh.
func WithUpdateHook(fn func(model.DashboardView)) Option {
	return func(c *Controller) { c.onUpdate = fn }
}

// NewController creates a Controller. Nothing is fetched until Start or Refresh.
func NewController(fetcher collector.Fetcher, opts Options, extra ...Option) *Controller {
	opts.applyDefaults()
	c := &Controller{
		fetcher:   fetcher,
		opts:      opts,
		now:       time.Now,
		selectors: make(map[string]*selector.RangeSelector),
		timeFrame: opts.TimeFrame,
		showRSI:   opts.ShowRSI,
	}
	for _, o := range extra {
		o(c)
	}
	return c
}

// Start fetches immediately and then on every refresh interval until Stop.
func (c *Controller) Start(ctx context.Context) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrStopped
	}
	if c.started {
		c.mu.Unlock()
		return errors.New("dashboard already started")
	}
	runCtx, cancel := context.WithCancel(ctx)
	sched := scheduler.NewScheduler()
	c.mu.Unlock()

	if err := sched.Every(c.opts.RefreshInterval, "refresh", c.tick); err != nil {
		cancel()
		return fmt.Errorf("schedule refresh: %w", err)
	}

	c.mu.Lock()
	c.started = true
	c.ctx, c.cancel = runCtx, cancel
	c.sched = sched
	c.mu.Unlock()

	sched.Start()
	go c.tick()
	return nil
}

// Stop clears the schedule. Fetches still in flight are discarded on arrival.
func (c *Controller) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	sched, cancel := c.sched, c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if sched != nil {
		ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		sched.Stop(ctx)
	}
	log.Println("[INFO] dashboard stopped")
}

func (c *Controller) tick() {
	err := c.Refresh(c.ctx)
	switch {
	case err == nil, errors.Is(err, ErrSuperseded), errors.Is(err, ErrStopped):
	default:
		log.Printf("[ERROR] refresh: %v", err)
	}
}

// Refresh fetches a new snapshot and applies it unless a newer fetch already
// landed or the controller was stopped meanwhile. On failure the last good
// snapshot is kept and the error is surfaced in the view.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrStopped
	}
	c.nextSeq++
	seq := c.nextSeq
	days := c.timeFrame.Days()
	c.mu.Unlock()

	snap, err := c.fetcher.FetchTopAssets(ctx, c.opts.Limit, c.opts.VsCurrency, days)

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		log.Printf("[INFO] refresh #%d arrived after stop, discarded", seq)
		return ErrStopped
	}
	if seq < c.appliedSeq {
		c.mu.Unlock()
		log.Printf("[INFO] refresh #%d arrived after #%d was applied, discarded", seq, c.appliedSeq)
		return ErrSuperseded
	}
	if err == nil && snap == nil {
		err = &collector.DecodeError{Err: errors.New("empty snapshot")}
	}
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		return fmt.Errorf("refresh #%d: %w", seq, err)
	}
	snap.Seq = seq
	c.snapshot = snap
	c.appliedSeq = seq
	c.lastErr = nil
	c.pruneSelectors()
	log.Printf("[INFO] refresh #%d applied: %d assets from %s", seq, len(snap.Assets), c.fetcher.Name())
	hook := c.onUpdate
	var view model.DashboardView
	if hook != nil {
		view = c.viewLocked()
	}
	c.mu.Unlock()

	if hook != nil {
		c.deliver(hook, view)
	}
	return nil
}

// deliver hands view to the hook unless a newer view was already delivered.
func (c *Controller) deliver(hook func(model.DashboardView), view model.DashboardView) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	if view.Seq <= c.deliveredSeq {
		return
	}
	c.deliveredSeq = view.Seq
	hook(view)
}

// pruneSelectors keeps measurements of assets still present in the snapshot.
func (c *Controller) pruneSelectors() {
	for id := range c.selectors {
		if _, ok := c.snapshot.Find(id); !ok {
			delete(c.selectors, id)
		}
	}
	if c.focused != "" {
		if _, ok := c.snapshot.Find(c.focused); !ok {
			c.focused = ""
		}
	}
}

// SetTimeFrame changes the lookback window. The next refresh fetches the new window.
func (c *Controller) SetTimeFrame(tf model.TimeFrame) error {
	if _, err := model.ParseTimeFrame(string(tf)); err != nil {
		return fmt.Errorf("%w: %q", err, tf)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeFrame = tf
	return nil
}

// SetShowRSI toggles the RSI overlay.
func (c *Controller) SetShowRSI(show bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showRSI = show
}

// Focus marks one asset as focused; an empty id clears the focus.
func (c *Controller) Focus(assetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if assetID != "" {
		if _, ok := c.snapshot.Find(assetID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAsset, assetID)
		}
	}
	c.focused = assetID
	return nil
}

// PointerDown starts a measurement on an asset's chart.
func (c *Controller) PointerDown(assetID string, value float64) error {
	return c.withSelector(assetID, func(r *selector.RangeSelector) { r.PointerDown(value) })
}

// PointerMove extends a live measurement on an asset's chart.
func (c *Controller) PointerMove(assetID string, value float64) error {
	return c.withSelector(assetID, func(r *selector.RangeSelector) { r.PointerMove(value) })
}

// PointerUp freezes the measurement on an asset's chart.
func (c *Controller) PointerUp(assetID string) error {
	return c.withSelector(assetID, func(r *selector.RangeSelector) { r.PointerUp() })
}

func (c *Controller) withSelector(assetID string, fn func(*selector.RangeSelector)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.snapshot.Find(assetID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, assetID)
	}
	r, ok := c.selectors[assetID]
	if !ok {
		r = selector.New()
		c.selectors[assetID] = r
	}
	fn(r)
	return nil
}

// View returns the render-ready state of the whole dashboard.
func (c *Controller) View() model.DashboardView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// AssetView returns the render-ready state of a single asset.
func (c *Controller) AssetView(assetID string) (model.AssetView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.snapshot.Find(assetID)
	if !ok {
		return model.AssetView{}, fmt.Errorf("%w: %s", ErrUnknownAsset, assetID)
	}
	return c.buildAssetView(a, c.settingsLocked()), nil
}

func (c *Controller) settingsLocked() viewSettings {
	return viewSettings{
		timeFrame: c.timeFrame,
		showRSI:   c.showRSI,
		period:    c.opts.RSIPeriod,
		now:       c.now(),
		location:  c.opts.Location,
	}
}

func (c *Controller) viewLocked() model.DashboardView {
	v := model.DashboardView{
		Loading:   c.snapshot == nil,
		TimeFrame: c.timeFrame,
		ShowRSI:   c.showRSI,
	}
	if c.lastErr != nil {
		v.Error = c.lastErr.Error()
		v.Stale = c.snapshot != nil
	}
	if c.snapshot == nil {
		return v
	}
	v.UpdatedAt = c.snapshot.FetchedAt
	v.Seq = c.snapshot.Seq
	settings := c.settingsLocked()
	v.Assets = make([]model.AssetView, 0, len(c.snapshot.Assets))
	for _, a := range c.snapshot.Assets {
		v.Assets = append(v.Assets, c.buildAssetView(a, settings))
	}
	return v
}

func (c *Controller) buildAssetView(a model.Asset, s viewSettings) model.AssetView {
	av := assembleAssetView(a, s)
	av.Focused = a.ID == c.focused
	if r, ok := c.selectors[a.ID]; ok {
		av.Selection = r.View()
	}
	return av
}
