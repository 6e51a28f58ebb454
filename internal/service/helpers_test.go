package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashcrush/internal/auth"
	"github.com/mmynk/cashcrush/internal/cache"
	"github.com/mmynk/cashcrush/internal/email"
	"github.com/mmynk/cashcrush/internal/insights"
	"github.com/mmynk/cashcrush/internal/middleware"
	"github.com/mmynk/cashcrush/internal/models"
	"github.com/mmynk/cashcrush/internal/storage/sqlstore"
	"github.com/mmynk/cashcrush/pkg/api"
	"github.com/mmynk/cashcrush/pkg/api/apiconnect"
)

// envOptions configures the optional collaborators of a test server.
type envOptions struct {
	generator insights.Generator
	sender    email.Sender
	cache     cache.Cache
	cooldown  time.Duration
}

type testEnv struct {
	t     *testing.T
	store *sqlstore.Store
	jwt   *auth.JWTManager
	url   string

	insightSvc *InsightService
}

// newTestEnv serves every service over a temp SQLite database behind the
// real auth interceptor.
func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	store, err := sqlstore.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	jwt := auth.NewJWTManager("test-secret", "")
	handlerOpts := connect.WithInterceptors(middleware.RequireAuth(jwt, store))

	insightSvc := NewInsightService(store, opts.generator, opts.cache, time.Hour)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(store), handlerOpts))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), handlerOpts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store), handlerOpts))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store), handlerOpts))
	mux.Handle(apiconnect.NewDashboardServiceHandler(NewDashboardService(store), handlerOpts))
	mux.Handle(apiconnect.NewInsightServiceHandler(insightSvc, handlerOpts))
	mux.Handle(apiconnect.NewReminderServiceHandler(
		NewReminderService(store, opts.sender, opts.cache, opts.cooldown), handlerOpts))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{t: t, store: store, jwt: jwt, url: server.URL, insightSvc: insightSvc}
}

// testUser is a signed-in user with a client for every service.
type testUser struct {
	*models.User

	users       *apiconnect.UserServiceClient
	groups      *apiconnect.GroupServiceClient
	expenses    *apiconnect.ExpenseServiceClient
	settlements *apiconnect.SettlementServiceClient
	dashboard   *apiconnect.DashboardServiceClient
	insights    *apiconnect.InsightServiceClient
	reminders   *apiconnect.ReminderServiceClient
}

func withToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}))
}

// signIn creates the user named name and returns its clients.
func (e *testEnv) signIn(name string) *testUser {
	e.t.Helper()

	slug := strings.ToLower(name)
	identity := auth.Identity{
		TokenIdentifier: "tok-" + slug,
		Name:            name,
		Email:           slug + "@example.com",
	}
	token, err := e.jwt.Issue(identity, time.Hour)
	require.NoError(e.t, err)

	user, err := e.store.EnsureUser(context.Background(), models.NewUser(identity.TokenIdentifier, identity.Name, identity.Email, ""))
	require.NoError(e.t, err)

	opt := withToken(token)
	return &testUser{
		User:        user,
		users:       apiconnect.NewUserServiceClient(http.DefaultClient, e.url, opt),
		groups:      apiconnect.NewGroupServiceClient(http.DefaultClient, e.url, opt),
		expenses:    apiconnect.NewExpenseServiceClient(http.DefaultClient, e.url, opt),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, e.url, opt),
		dashboard:   apiconnect.NewDashboardServiceClient(http.DefaultClient, e.url, opt),
		insights:    apiconnect.NewInsightServiceClient(http.DefaultClient, e.url, opt),
		reminders:   apiconnect.NewReminderServiceClient(http.DefaultClient, e.url, opt),
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "amount: want %s, got %s", want, got)
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}

// addExpense records an expense paid by payer now, with exact splits of
// (user, amount) pairs.
func addExpense(t *testing.T, payer *testUser, groupID, amount string, pairs ...any) api.Expense {
	t.Helper()
	return addExpenseAt(t, payer, groupID, 0, amount, pairs...)
}

// addExpenseAt is addExpense with an explicit date in Unix milliseconds.
func addExpenseAt(t *testing.T, payer *testUser, groupID string, date int64, amount string, pairs ...any) api.Expense {
	t.Helper()
	var splits []api.Split
	for i := 0; i < len(pairs); i += 2 {
		splits = append(splits, api.Split{
			UserID: pairs[i].(*testUser).ID,
			Amount: d(pairs[i+1].(string)),
		})
	}
	resp, err := payer.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Dinner",
		Amount:      d(amount),
		Date:        date,
		SplitType:   string(models.SplitExact),
		Splits:      splits,
		GroupID:     groupID,
	}))
	require.NoError(t, err)
	return resp.Msg.Expense
}

// settle records from paying to the given amount.
func settle(t *testing.T, from, to *testUser, groupID, amount string) api.Settlement {
	t.Helper()
	resp, err := from.settlements.CreateSettlement(context.Background(), connect.NewRequest(&api.CreateSettlementRequest{
		Amount:     d(amount),
		PaidBy:     from.ID,
		ReceivedBy: to.ID,
		GroupID:    groupID,
	}))
	require.NoError(t, err)
	return resp.Msg.Settlement
}

// newGroup creates a group owned by admin with the given members.
func newGroup(t *testing.T, admin *testUser, name string, members ...*testUser) api.Group {
	t.Helper()
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	resp, err := admin.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:      name,
		MemberIDs: ids,
	}))
	require.NoError(t, err)
	return resp.Msg.Group
}

// memoryCache is an in-process cache.Cache.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = "1"
	return true, nil
}

func (c *memoryCache) Release(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }
