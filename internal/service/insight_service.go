package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashcrush/internal/cache"
	"github.com/mmynk/cashcrush/internal/calculator"
	"github.com/mmynk/cashcrush/internal/insights"
	"github.com/mmynk/cashcrush/internal/storage"
	"github.com/mmynk/cashcrush/pkg/api"
	"github.com/mmynk/cashcrush/pkg/api/apiconnect"
)

// insightWindow is how far back spending insights look.
const insightWindow = 30 * 24 * time.Hour

var (
	errNoExpenses         = errors.New("no expenses found")
	errInsightsNotEnabled = errors.New("spending insights are not configured")
)

// InsightService implements the Connect InsightService
type InsightService struct {
	store     storage.Store
	generator insights.Generator
	cache     cache.Cache
	ttl       time.Duration
	now       func() time.Time
}

var _ apiconnect.InsightServiceHandler = (*InsightService)(nil)

// NewInsightService creates an InsightService. A nil generator disables
// generation; generated HTML is cached for ttl.
func NewInsightService(store storage.Store, generator insights.Generator, c cache.Cache, ttl time.Duration) *InsightService {
	if c == nil {
		c = cache.Noop{}
	}
	return &InsightService{store: store, generator: generator, cache: c, ttl: ttl, now: time.Now}
}

// GetSpendingInsights analyses the caller's share of the last 30 days of
// expenses.
func (s *InsightService) GetSpendingInsights(ctx context.Context, req *connect.Request[api.GetSpendingInsightsRequest]) (*connect.Response[api.GetSpendingInsightsResponse], error) {
	me, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{
		Involving: []string{me.ID},
		From:      now.Add(-insightWindow).UnixMilli(),
		To:        now.UnixMilli(),
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	if len(expenses) == 0 {
		return nil, connect.NewError(connect.CodeNotFound, errNoExpenses)
	}

	report := insights.Report{
		Lines:      make([]insights.Line, len(expenses)),
		Total:      decimal.Zero,
		Categories: calculator.CategoryTotals(me.ID, expenses),
	}
	for i := range expenses {
		e := &expenses[i]
		share := calculator.ShareOf(me.ID, e)
		report.Lines[i] = insights.Line{
			Description: e.Description,
			Category:    e.Category,
			Date:        e.Date,
			Share:       share,
		}
		report.Total = report.Total.Add(share)
	}

	resp := &api.GetSpendingInsightsResponse{
		Total:      report.Total,
		Categories: make([]api.CategoryTotal, 0, len(report.Categories)),
	}
	for _, name := range report.SortedCategories() {
		resp.Categories = append(resp.Categories, api.CategoryTotal{Category: name, Amount: report.Categories[name]})
	}

	key := "insights:" + me.ID + ":" + now.UTC().Format(time.DateOnly)
	html, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Insight cache lookup failed", "user_id", me.ID, "error", err)
	}
	if ok {
		resp.HTML = html
		resp.Cached = true
		return connect.NewResponse(resp), nil
	}

	if s.generator == nil {
		return nil, connect.NewError(connect.CodeUnavailable, errInsightsNotEnabled)
	}

	html, err = s.generator.Generate(ctx, insights.BuildPrompt(report))
	if err != nil {
		slog.Error("Insight generation failed", "user_id", me.ID, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	if err := s.cache.Set(ctx, key, html, s.ttl); err != nil {
		slog.Warn("Insight cache store failed", "user_id", me.ID, "error", err)
	}

	resp.HTML = html
	return connect.NewResponse(resp), nil
}
