package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitapp/internal/auth"
	"github.com/mmynk/splitapp/internal/metrics"
	"github.com/mmynk/splitapp/internal/middleware"
	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/reminder"
	"github.com/mmynk/splitapp/internal/storage"
	"github.com/mmynk/splitapp/internal/storage/sqlite"
	"github.com/mmynk/splitapp/pkg/api"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

type fakeExtractor struct {
	result *models.ReceiptExtraction
	err    error
}

func (f *fakeExtractor) Extract(context.Context, []byte, string) (*models.ReceiptExtraction, error) {
	return f.result, f.err
}

type fakeSender struct {
	mu   sync.Mutex
	sent []*reminder.Reminder
	err  error
}

func (f *fakeSender) Send(_ context.Context, r *reminder.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, r)
	return nil
}

type testEnv struct {
	server    *httptest.Server
	jwt       *auth.JWTManager
	store     storage.Store
	sender    *fakeSender
	extractor *fakeExtractor
	metrics   *metrics.Metrics
}

type clients struct {
	groups    apiconnect.GroupServiceClient
	expenses  apiconnect.ExpenseServiceClient
	balances  apiconnect.BalanceServiceClient
	receipts  apiconnect.ReceiptServiceClient
	reminders apiconnect.ReminderServiceClient
}

// setupTestServer serves every RPC service behind the real auth interceptor.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	env := &testEnv{
		jwt:       auth.NewJWTManager("test-secret", time.Hour),
		store:     store,
		sender:    &fakeSender{},
		extractor: &fakeExtractor{},
		metrics:   metrics.New(),
	}
	notifier := reminder.NewNotifier(store, env.sender, reminder.NewMemoryThrottle(), time.Hour, env.metrics)
	receipts := NewReceiptService(store, env.extractor, env.metrics)

	opts := connect.WithInterceptors(
		middleware.MetricsInterceptor(env.metrics),
		middleware.RequireAuth(env.jwt),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), opts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store), opts))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store), opts))
	mux.Handle(apiconnect.NewReceiptServiceHandler(receipts, opts))
	mux.Handle(apiconnect.NewReminderServiceHandler(NewReminderService(store, notifier), opts))
	mux.Handle("/api/receipts/scan", middleware.RequireAuthHTTP(env.jwt, receipts.UploadHandler()))

	env.server = httptest.NewServer(mux)
	t.Cleanup(func() {
		env.server.Close()
		store.Close()
	})
	return env
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	token, err := e.jwt.Generate(email, "")
	require.NoError(t, err)
	return token
}

// as returns clients that authenticate as email. An empty email sends no token.
func (e *testEnv) as(t *testing.T, email string) clients {
	t.Helper()

	var opts []connect.ClientOption
	if email != "" {
		token := e.token(t, email)
		opts = append(opts, connect.WithInterceptors(connect.UnaryInterceptorFunc(
			func(next connect.UnaryFunc) connect.UnaryFunc {
				return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
					req.Header().Set("Authorization", "Bearer "+token)
					return next(ctx, req)
				}
			},
		)))
	}

	c := e.server.Client()
	return clients{
		groups:    apiconnect.NewGroupServiceClient(c, e.server.URL, opts...),
		expenses:  apiconnect.NewExpenseServiceClient(c, e.server.URL, opts...),
		balances:  apiconnect.NewBalanceServiceClient(c, e.server.URL, opts...),
		receipts:  apiconnect.NewReceiptServiceClient(c, e.server.URL, opts...),
		reminders: apiconnect.NewReminderServiceClient(c, e.server.URL, opts...),
	}
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	var connectErr *connect.Error
	require.True(t, errors.As(err, &connectErr), "expected connect error, got %v", err)
	assert.Equal(t, want, connectErr.Code(), connectErr.Message())
}

const ownerEmail = "alice@example.com"

// createTripGroup makes a group owned by Alice with Bob (email) and
// Charlie (no email).
func createTripGroup(t *testing.T, c clients) *api.Group {
	t.Helper()
	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name: "Trip",
		Members: []*api.Member{
			{Name: "Alice", Email: ownerEmail},
			{Name: "Bob", Email: "bob@example.com"},
			{Name: "Charlie"},
		},
	}))
	require.NoError(t, err)
	return resp.Msg.Group
}
