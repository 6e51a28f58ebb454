package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/cashcrush/internal/insights"
	"github.com/mmynk/cashcrush/pkg/api"
)

func TestGetSpendingInsights(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := insights.NewMockGenerator(ctrl)
	c := newMemoryCache()
	env := newTestEnv(t, envOptions{generator: generator, cache: c})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	ctx := context.Background()

	recent := time.Now().Add(-48 * time.Hour).UnixMilli()
	old := time.Now().Add(-60 * 24 * time.Hour).UnixMilli()
	addExpenseAt(t, alice, "", recent, "100", alice, "40", bob, "60")
	addExpenseAt(t, bob, "", recent, "30", alice, "30")
	addExpenseAt(t, alice, "", old, "500", alice, "500")

	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "Total spent: ₹70.00")
			assert.Contains(t, prompt, "- Other: ₹70.00")
			return "<h3>Monthly Overview</h3>", nil
		}).
		Times(1)

	resp, err := alice.insights.GetSpendingInsights(ctx, connect.NewRequest(&api.GetSpendingInsightsRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "<h3>Monthly Overview</h3>", resp.Msg.HTML)
	assert.False(t, resp.Msg.Cached)
	assertAmount(t, "70", resp.Msg.Total)
	require.Len(t, resp.Msg.Categories, 1)
	assert.Equal(t, "Other", resp.Msg.Categories[0].Category)

	// Same day: served from the cache without calling the model again.
	resp, err = alice.insights.GetSpendingInsights(ctx, connect.NewRequest(&api.GetSpendingInsightsRequest{}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.Cached)
	assert.Equal(t, "<h3>Monthly Overview</h3>", resp.Msg.HTML)
}

func TestGetSpendingInsights_NoExpenses(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, envOptions{generator: insights.NewMockGenerator(ctrl)})
	alice := env.signIn("Alice")

	_, err := alice.insights.GetSpendingInsights(context.Background(), connect.NewRequest(&api.GetSpendingInsightsRequest{}))
	assertCode(t, connect.CodeNotFound, err)
}

func TestGetSpendingInsights_Unavailable(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	addExpense(t, alice, "", "10", alice, "5", bob, "5")

	_, err := alice.insights.GetSpendingInsights(context.Background(), connect.NewRequest(&api.GetSpendingInsightsRequest{}))
	assertCode(t, connect.CodeUnavailable, err)
}

func TestGetSpendingInsights_GeneratorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := insights.NewMockGenerator(ctrl)
	c := newMemoryCache()
	env := newTestEnv(t, envOptions{generator: generator, cache: c})
	alice := env.signIn("Alice")
	bob := env.signIn("Bob")
	addExpense(t, alice, "", "10", alice, "5", bob, "5")

	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded"))

	_, err := alice.insights.GetSpendingInsights(context.Background(), connect.NewRequest(&api.GetSpendingInsightsRequest{}))
	assertCode(t, connect.CodeUnavailable, err)
	assert.Empty(t, c.values, "failures are not cached")
}
