package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"cashify/internal/core"
	"cashify/internal/log"
	"cashify/internal/metrics"
)

// DashboardGateway is what a dashboard load needs from the API.
type DashboardGateway interface {
	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	Summary(ctx context.Context, userID string) (core.Summary, error)
}

// DashboardView is what the dashboard shows right now.
type DashboardView struct {
	Loaded   bool
	Snapshot core.Snapshot
	Error    string // last load failure, cleared by the next success
}

// Dashboard loads categories, transactions and the all-time summary of one
// user. Loads may overlap; each takes a sequence number and a result older
// than the last applied one is dropped.
type Dashboard struct {
	gw       DashboardGateway
	userID   string
	logger   *log.Logger
	onCommit func(core.Snapshot)

	issued atomic.Uint64

	mu       sync.Mutex
	applied  uint64
	loaded   bool
	snapshot core.Snapshot
	errMsg   string
}

// NewDashboard returns an empty dashboard. onCommit, when set, receives every
// snapshot that gets applied, in application order.
func NewDashboard(gw DashboardGateway, userID string, logger *log.Logger, onCommit func(core.Snapshot)) *Dashboard {
	return &Dashboard{
		gw:       gw,
		userID:   userID,
		logger:   logger.WithComponent(log.ComponentDashboard).With(log.FieldUserID, userID),
		onCommit: onCommit,
	}
}

// Load fetches the three lists concurrently and applies them only if all
// three succeed. On failure the previous data stays in place.
func (d *Dashboard) Load(ctx context.Context) error {
	seq := d.issued.Add(1)

	var snap core.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := d.gw.ListCategories(gctx, d.userID)
		snap.Categories = cats
		return err
	})
	g.Go(func() error {
		txs, err := d.gw.ListTransactions(gctx, d.userID)
		snap.Transactions = txs
		return err
	})
	g.Go(func() error {
		sum, err := d.gw.Summary(gctx, d.userID)
		snap.Summary = sum
		return err
	})
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()

	if seq < d.applied {
		metrics.StaleDiscarded.WithLabelValues(log.ComponentDashboard).Inc()
		d.logger.DebugContext(ctx, "Discarding stale dashboard load", log.FieldSeq, seq, "applied", d.applied)
		return nil
	}
	if err != nil {
		d.errMsg = UserMessage(err, MsgLoadFailed)
		d.logger.Err(ctx, "Dashboard load failed", log.OpLoad, err, log.FieldSeq, seq)
		return fmt.Errorf("load dashboard: %w", err)
	}

	d.applied = seq
	d.loaded = true
	d.snapshot = snap
	d.errMsg = ""
	if d.onCommit != nil {
		d.onCommit(snap.Clone())
	}
	d.logger.DebugContext(ctx, "Dashboard loaded",
		log.FieldSeq, seq,
		"categories", len(snap.Categories),
		"transactions", len(snap.Transactions))
	return nil
}

// View returns a copy of the current state.
func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DashboardView{Loaded: d.loaded, Snapshot: d.snapshot.Clone(), Error: d.errMsg}
}
