package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"cashify/internal/core"
	"cashify/internal/log"
	"cashify/internal/metrics"
)

// FilterGateway is what the period filter needs from the API.
type FilterGateway interface {
	SummaryForPeriod(ctx context.Context, userID string, p core.Period) (core.Summary, error)
	ListTransactionsBetween(ctx context.Context, userID string, p core.Period) ([]core.Transaction, error)
}

// FilterView is the data the summary tab renders.
type FilterView struct {
	Filtered     bool
	Input        core.PeriodInput
	Label        string
	Summary      core.Summary
	Transactions []core.Transaction
	Error        string
}

// PeriodFilter switches the summary between all-time data, supplied by the
// dashboard, and data fetched for an explicit date range.
//
// Unfiltered -> Filtered only through a successful Apply. Clear goes back
// to Unfiltered without touching the network.
type PeriodFilter struct {
	gw     FilterGateway
	userID string
	loc    *time.Location
	logger *log.Logger

	issued atomic.Uint64

	mu      sync.Mutex
	applied uint64

	allSummary core.Summary
	allTxs     []core.Transaction

	filtered bool
	input    core.PeriodInput
	period   core.Period
	summary  core.Summary
	txs      []core.Transaction
	errMsg   string
}

func NewPeriodFilter(gw FilterGateway, userID string, loc *time.Location, logger *log.Logger) *PeriodFilter {
	if loc == nil {
		loc = time.Local
	}
	return &PeriodFilter{
		gw:     gw,
		userID: userID,
		loc:    loc,
		logger: logger.WithComponent(log.ComponentFilter).With(log.FieldUserID, userID),
	}
}

// SetAllTime stores the data shown while unfiltered.
func (f *PeriodFilter) SetAllTime(summary core.Summary, txs []core.Transaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allSummary = summary
	f.allTxs = slices.Clone(txs)
}

// Apply validates the inputs and, when they are usable, fetches the period
// summary and the period transactions concurrently. Invalid input never
// reaches the network. Any failure leaves the current state in place and
// records a message for the view.
func (f *PeriodFilter) Apply(ctx context.Context, in core.PeriodInput) error {
	p, err := in.Resolve(f.loc)

	f.mu.Lock()
	f.input = in
	if err != nil {
		f.errMsg = UserMessage(err, MsgFilterFailed)
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	return f.fetch(ctx, p, false)
}

// Refresh re-fetches the applied period, so a filtered view follows
// changes made since it was applied. It does nothing while unfiltered.
func (f *PeriodFilter) Refresh(ctx context.Context) error {
	f.mu.Lock()
	filtered, p := f.filtered, f.period
	f.mu.Unlock()
	if !filtered {
		return nil
	}
	return f.fetch(ctx, p, true)
}

// fetch loads p and commits it unless a later call already committed. A
// refresh is also dropped when the filter was cleared meanwhile.
func (f *PeriodFilter) fetch(ctx context.Context, p core.Period, refresh bool) error {
	seq := f.issued.Add(1)
	var (
		summary core.Summary
		txs     []core.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = f.gw.SummaryForPeriod(gctx, f.userID, p)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = f.gw.ListTransactionsBetween(gctx, f.userID, p)
		return err
	})
	err := g.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq < f.applied || (refresh && !f.filtered) {
		metrics.StaleDiscarded.WithLabelValues(log.ComponentFilter).Inc()
		f.logger.DebugContext(ctx, "Discarding stale period result", log.FieldSeq, seq, "applied", f.applied)
		return nil
	}
	if err != nil {
		f.errMsg = UserMessage(err, MsgFilterFailed)
		f.logger.Err(ctx, "Period filter failed", log.OpFilter, err,
			log.FieldPeriodStart, p.Start, log.FieldPeriodEnd, p.End)
		return fmt.Errorf("apply period filter: %w", err)
	}

	f.applied = seq
	f.filtered = true
	f.period = p
	f.summary = summary
	f.txs = txs
	f.errMsg = ""
	return nil
}

// QuickRange fills the inputs with the last week, month or year up to now.
// It does not apply them.
func (f *PeriodFilter) QuickRange(unit core.RangeUnit, now time.Time) error {
	start, end, err := core.QuickRange(unit, now.In(f.loc))
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = core.PeriodInput{Start: start, End: end}
	f.errMsg = ""
	return nil
}

// Clear drops the filtered data and returns to the all-time view. Results
// of Apply calls still in flight are discarded.
func (f *PeriodFilter) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = f.issued.Load() + 1
	f.filtered = false
	f.input = core.PeriodInput{}
	f.period = core.Period{}
	f.summary = core.Summary{}
	f.txs = nil
	f.errMsg = ""
}

// View returns what the summary tab shows.
func (f *PeriodFilter) View() FilterView {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.filtered {
		return FilterView{
			Input:        f.input,
			Summary:      f.allSummary,
			Transactions: slices.Clone(f.allTxs),
			Error:        f.errMsg,
		}
	}
	label := f.summary.Period
	if label == "" {
		label = f.period.Label()
	}
	return FilterView{
		Filtered:     true,
		Input:        f.input,
		Label:        label,
		Summary:      f.summary,
		Transactions: slices.Clone(f.txs),
		Error:        f.errMsg,
	}
}
