// Package roster owns the chef-approval state: the fetched roster, the
// platform-wide stats, the active status filter, and the in-flight markers
// the UI needs to disable controls. It is the only writer of that state.
//
// The controller is deliberately dumb about failures: a failed call leaves
// the previous roster untouched and is logged, never retried. Mutations
// (approve, reject, extend trial) never patch local records; on success they
// trigger a full reload, which is the single path that replaces the roster.
package roster

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/feastly/chefdeck/internal/api"
)

// Service is the slice of the API client the controller drives.
type Service interface {
	ListChefs(ctx context.Context, filter api.StatusFilter) ([]api.ChefRecord, api.ChefStats, error)
	ApproveChef(ctx context.Context, chefID string) error
	RejectChef(ctx context.Context, chefID, reason string) error
	ExtendChefTrial(ctx context.Context, chefID string) error
}

// Recorder receives operator-visible activity lines. *logbook.Logbook
// satisfies it; tests may pass nil.
type Recorder interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// RejectDialog is the state of the reject-confirmation prompt. It stays open
// when the reject request fails so the operator can retry with the reason
// text intact.
type RejectDialog struct {
	Open   bool
	ChefID string
	Reason string
}

// Controller orchestrates roster fetches and chef actions.
type Controller struct {
	svc  Service
	log  *zap.Logger
	feed Recorder

	mu            sync.Mutex
	chefs         []api.ChefRecord
	stats         api.ChefStats
	filter        api.StatusFilter
	loading       bool
	actionLoading string
	dialog        RejectDialog
}

// New creates a controller starting on the given filter. feed may be nil.
func New(svc Service, filter api.StatusFilter, log *zap.Logger, feed Recorder) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if filter == "" {
		filter = api.FilterAll
	}
	return &Controller{svc: svc, log: log, feed: feed, filter: filter}
}

// Chefs returns the current roster snapshot in server order.
func (c *Controller) Chefs() []api.ChefRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.ChefRecord, len(c.chefs))
	copy(out, c.chefs)
	return out
}

// Stats returns the platform-wide counters from the last successful fetch.
func (c *Controller) Stats() api.ChefStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Filter returns the active status filter.
func (c *Controller) Filter() api.StatusFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Loading reports whether a roster fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ActionLoading returns the id of the chef with an action in flight, or "".
func (c *Controller) ActionLoading() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actionLoading
}

// Dialog returns the reject-dialog state.
func (c *Controller) Dialog() RejectDialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog
}

// OpenRejectDialog targets a chef for rejection.
func (c *Controller) OpenRejectDialog(chefID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = RejectDialog{Open: true, ChefID: chefID}
}

// SetDialogReason keeps the typed reason in the controller so it survives a
// failed submit.
func (c *Controller) SetDialogReason(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog.Reason = reason
}

// CloseRejectDialog abandons the prompt without rejecting.
func (c *Controller) CloseRejectDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = RejectDialog{}
}

// Fetch reloads the roster for the active filter. On success the roster and
// stats are replaced wholesale; on any failure the previous state stands.
// There is no sequencing between overlapping fetches: the last response to
// complete wins.
func (c *Controller) Fetch(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	filter := c.filter
	c.mu.Unlock()

	chefs, stats, err := c.svc.ListChefs(ctx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.log.Error("roster fetch failed",
			zap.String("filter", string(filter)),
			zap.Error(err),
		)
		c.record(func(r Recorder) { r.Warn("roster reload failed (%s filter)", filter) })
		return
	}
	c.chefs = chefs
	c.stats = stats
}

// SetFilter switches the active filter and reloads.
func (c *Controller) SetFilter(ctx context.Context, filter api.StatusFilter) {
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()
	c.Fetch(ctx)
}

// Approve verifies a chef and resynchronizes via a full reload. Approving an
// already-approved chef is not rejected here; the server decides.
func (c *Controller) Approve(ctx context.Context, chefID string) {
	c.beginAction(chefID)
	defer c.endAction(chefID)

	if err := c.svc.ApproveChef(ctx, chefID); err != nil {
		c.log.Error("approve failed", zap.String("chef_id", chefID), zap.Error(err))
		c.record(func(r Recorder) { r.Error("approve failed for chef %s", chefID) })
		return
	}
	c.record(func(r Recorder) { r.Info("chef %s approved", chefID) })
	c.Fetch(ctx)
}

// Reject records a rejection with the given reason (may be empty). On
// success the dialog state is cleared before the reload; on failure the
// dialog stays open with the reason retained.
func (c *Controller) Reject(ctx context.Context, chefID, reason string) {
	c.beginAction(chefID)
	defer c.endAction(chefID)

	if err := c.svc.RejectChef(ctx, chefID, reason); err != nil {
		c.log.Error("reject failed", zap.String("chef_id", chefID), zap.Error(err))
		c.record(func(r Recorder) { r.Error("reject failed for chef %s", chefID) })
		return
	}

	c.mu.Lock()
	c.dialog = RejectDialog{}
	c.mu.Unlock()

	c.record(func(r Recorder) { r.Info("chef %s rejected", chefID) })
	c.Fetch(ctx)
}

// ExtendTrial pushes the chef's trial out by the server-fixed increment.
func (c *Controller) ExtendTrial(ctx context.Context, chefID string) {
	c.beginAction(chefID)
	defer c.endAction(chefID)

	if err := c.svc.ExtendChefTrial(ctx, chefID); err != nil {
		c.log.Error("extend trial failed", zap.String("chef_id", chefID), zap.Error(err))
		c.record(func(r Recorder) { r.Error("trial extension failed for chef %s", chefID) })
		return
	}
	c.record(func(r Recorder) { r.Info("trial extended for chef %s", chefID) })
	c.Fetch(ctx)
}

func (c *Controller) beginAction(chefID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actionLoading = chefID
}

// endAction clears the guard only if it still belongs to this chef, so an
// overlapping action on another row is not clobbered.
func (c *Controller) endAction(chefID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.actionLoading == chefID {
		c.actionLoading = ""
	}
}

func (c *Controller) record(fn func(Recorder)) {
	if c.feed == nil {
		return
	}
	fn(c.feed)
}
