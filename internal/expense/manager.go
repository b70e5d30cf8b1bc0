// Package expense owns the client-side cache of expense records. The cache
// is a read-through, write-through mirror of the remote service: every
// mutation goes to the server first and is applied locally only after the
// server acknowledged it, so the cache never diverges from the last server
// response. Pure local views (totals, filter, sort, category lookup) are
// what the dashboard reads.
package expense

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"spendly/internal/core"
	"spendly/internal/events"
	"spendly/internal/gateway"
	applog "spendly/internal/log"
	"spendly/internal/notify"
)

type (
	// Manager mediates between the gateway and the in-memory cache. It does
	// not serialize user-initiated mutations; overlapping completions apply
	// last-write-wins, and drivers are expected to gate concurrent edits.
	Manager struct {
		gw       *gateway.Client
		notifier notify.Notifier
		bus      *events.Publisher
		logger   *applog.Logger

		mu    sync.Mutex
		cache []core.Expense
	}

	// ListFilters narrows the server-side listing.
	ListFilters struct {
		StartDate string
		EndDate   string
		Category  string
	}

	// Draft is the client-authored part of an expense, sent on create and
	// update; the server assigns the id and returns the canonical record.
	Draft struct {
		Amount      float64   `json:"amount"`
		Category    string    `json:"category"`
		Description string    `json:"description,omitempty"`
		Date        core.Date `json:"date"`
	}

	// Form is the raw command payload any driver (web, CLI, test harness)
	// submits; an empty ID means create, otherwise update.
	Form struct {
		ID          string
		Amount      string
		Category    string
		Description string
		Date        string
	}

	// ListResult is the outcome of List.
	ListResult struct {
		Success  bool
		Expenses []core.Expense
		Error    string
	}

	// Result is the outcome of a single-record operation.
	Result struct {
		Success bool
		Expense core.Expense
		Error   string
	}

	// StatsResult carries the server-computed statistics unmodified.
	StatsResult struct {
		Success    bool
		Statistics json.RawMessage
		Error      string
	}

	// DashboardResult bundles a concurrent list + statistics load.
	DashboardResult struct {
		Success    bool
		Expenses   []core.Expense
		Statistics json.RawMessage
		Error      string
	}
)

func NewManager(gw *gateway.Client, notifier notify.Notifier, bus *events.Publisher, logger *applog.Logger) *Manager {
	return &Manager{
		gw:       gw,
		notifier: notifier,
		bus:      bus,
		logger:   logger.WithComponent("expense"),
	}
}

// List replaces the cache wholesale with the server's result set for the
// given filters.
func (m *Manager) List(ctx context.Context, filters ListFilters) ListResult {
	env, err := m.gw.Get(ctx, "/expenses"+filters.query())
	if err != nil {
		m.fail(err)
		return ListResult{Error: err.Error()}
	}

	list := env.Expenses
	if list == nil {
		list = []core.Expense{}
	}

	m.mu.Lock()
	m.cache = list
	m.mu.Unlock()

	return ListResult{Success: true, Expenses: m.Expenses()}
}

// Create sends the draft and prepends the server's canonical record to the
// cache, keeping the most-recent-first convention.
func (m *Manager) Create(ctx context.Context, draft Draft) Result {
	env, err := m.gw.Post(ctx, "/expenses", draft)
	if err != nil {
		m.fail(err)
		return Result{Error: err.Error()}
	}
	if env.Expense == nil {
		err := errors.New("create response missing expense")
		m.fail(err)
		return Result{Error: err.Error()}
	}

	created := *env.Expense
	m.mu.Lock()
	m.cache = append([]core.Expense{created}, m.cache...)
	m.mu.Unlock()

	m.publish(ctx, events.ActionCreated, created)
	m.notifier.Notify(notify.New(notify.LevelSuccess, "Expense added successfully!"))
	return Result{Success: true, Expense: created}
}

// Update sends the draft for id and replaces the matching cache entry with
// the server's canonical record. When the id is absent locally the server
// mutation still succeeded but the cache view is left untouched.
func (m *Manager) Update(ctx context.Context, id string, draft Draft) Result {
	env, err := m.gw.Put(ctx, "/expenses/"+url.PathEscape(id), draft)
	if err != nil {
		m.fail(err)
		return Result{Error: err.Error()}
	}
	if env.Expense == nil {
		err := errors.New("update response missing expense")
		m.fail(err)
		return Result{Error: err.Error()}
	}

	updated := *env.Expense
	m.mu.Lock()
	for i := range m.cache {
		if m.cache[i].ID == id {
			m.cache[i] = updated
			break
		}
	}
	m.mu.Unlock()

	m.publish(ctx, events.ActionUpdated, updated)
	m.notifier.Notify(notify.New(notify.LevelSuccess, "Expense updated!"))
	return Result{Success: true, Expense: updated}
}

// Remove deletes on the server, then drops the matching cache entry.
func (m *Manager) Remove(ctx context.Context, id string) Result {
	if _, err := m.gw.Delete(ctx, "/expenses/"+url.PathEscape(id)); err != nil {
		m.fail(err)
		return Result{Error: err.Error()}
	}

	var removed core.Expense
	m.mu.Lock()
	kept := m.cache[:0]
	for _, e := range m.cache {
		if e.ID == id {
			removed = e
			continue
		}
		kept = append(kept, e)
	}
	m.cache = kept
	m.mu.Unlock()

	removed.ID = id
	m.publish(ctx, events.ActionDeleted, removed)
	m.notifier.Notify(notify.New(notify.LevelSuccess, "Expense deleted!"))
	return Result{Success: true, Expense: removed}
}

// RequestDelete is the command-interface name for Remove.
func (m *Manager) RequestDelete(ctx context.Context, id string) Result {
	return m.Remove(ctx, id)
}

// Statistics delegates aggregation to the server and passes its payload
// through unmodified.
func (m *Manager) Statistics(ctx context.Context, period string) StatsResult {
	env, err := m.gw.Get(ctx, "/expenses/statistics?period="+url.QueryEscape(period))
	if err != nil {
		m.fail(err)
		return StatsResult{Error: err.Error()}
	}
	return StatsResult{Success: true, Statistics: env.Statistics}
}

// LoadDashboard fetches the expense list and the server statistics
// concurrently.
func (m *Manager) LoadDashboard(ctx context.Context, filters ListFilters, period string) DashboardResult {
	var (
		listRes  ListResult
		statsRes StatsResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listRes = m.List(gctx, filters)
		if !listRes.Success {
			return errors.New(listRes.Error)
		}
		return nil
	})
	g.Go(func() error {
		statsRes = m.Statistics(gctx, period)
		if !statsRes.Success {
			return errors.New(statsRes.Error)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardResult{Error: err.Error()}
	}
	return DashboardResult{
		Success:    true,
		Expenses:   listRes.Expenses,
		Statistics: statsRes.Statistics,
	}
}

// SubmitForm validates and submits a raw form: create when the form carries
// no id, update otherwise. Local validation failures settle to a failed
// Result with one error notification, same as remote failures.
func (m *Manager) SubmitForm(ctx context.Context, form Form) Result {
	draft, err := form.draft()
	if err != nil {
		m.fail(err)
		return Result{Error: err.Error()}
	}
	if form.ID == "" {
		return m.Create(ctx, draft)
	}
	return m.Update(ctx, form.ID, draft)
}

// Expenses returns a copy of the current cache, most recent first.
func (m *Manager) Expenses() []core.Expense {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Expense(nil), m.cache...)
}

// Totals aggregates the full cache locally.
func (m *Manager) Totals() core.Totals {
	return core.SumTotals(m.Expenses())
}

// Filter applies criteria to the cache locally.
func (m *Manager) Filter(criteria core.FilterCriteria) []core.Expense {
	return core.FilterExpenses(m.Expenses(), criteria)
}

// Sort returns a new ordering of the given expenses.
func (m *Manager) Sort(list []core.Expense, key core.SortKey, order core.SortOrder) []core.Expense {
	return core.SortExpenses(list, key, order)
}

// ResolveCategory returns the catalog entry for id, or the fallback.
func (m *Manager) ResolveCategory(id string) core.Category {
	return core.ResolveCategory(id)
}

func (m *Manager) fail(err error) {
	m.notifier.Notify(notify.New(notify.LevelError, err.Error()))
}

func (m *Manager) publish(ctx context.Context, action events.Action, e core.Expense) {
	if m.bus == nil {
		return
	}
	if err := m.bus.PublishExpenseEvent(ctx, events.NewExpenseEventMessage(action, e)); err != nil {
		// The mutation already succeeded; the bus is best effort.
		m.logger.Warn("publish expense event failed", "action", string(action), "id", e.ID, "error", err)
	}
}

func (f ListFilters) query() string {
	params := url.Values{}
	if f.StartDate != "" {
		params.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		params.Set("endDate", f.EndDate)
	}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

func (f Form) draft() (Draft, error) {
	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		return Draft{}, &gateway.ValidationError{Message: "Please enter a valid amount"}
	}
	if strings.TrimSpace(f.Category) == "" {
		return Draft{}, &gateway.ValidationError{Message: "Please choose a category"}
	}
	date, err := core.ParseDate(f.Date)
	if err != nil {
		return Draft{}, &gateway.ValidationError{Message: "Please enter a valid date"}
	}
	return Draft{
		Amount:      amount,
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
		Date:        date,
	}, nil
}
