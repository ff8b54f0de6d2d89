package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"wallet_admin/internal/domain"
	"wallet_admin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret"
	testAdminID = "admin-1"
)

// fakeStore is an in-memory Store with the same outcomes as the gorm store
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	settings  map[string]json.RawMessage
	flags     map[string]*domain.FeatureFlag
	txns      map[string]*domain.Transaction
	balances  map[string]int64
	tickets   map[string]*domain.SupportTicket
	cards     map[string]*domain.VirtualCard
	netWorth  map[string][]domain.CurrencyNetWorth
	readErr   error
	settingsW int // number of successful settings batches
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*domain.User{testAdminID: {ID: testAdminID, Email: "admin@wallet.test", Role: domain.RoleAdmin}},
		settings: map[string]json.RawMessage{},
		flags:    map[string]*domain.FeatureFlag{},
		txns:     map[string]*domain.Transaction{},
		balances: map[string]int64{},
		tickets:  map[string]*domain.SupportTicket{},
		cards:    map[string]*domain.VirtualCard{},
		netWorth: map[string][]domain.CurrencyNetWorth{},
	}
}

func (f *fakeStore) ListSettings(context.Context) (map[string]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make(map[string]json.RawMessage, len(f.settings))
	for k, v := range f.settings {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) UpsertSettings(_ context.Context, values map[string]json.RawMessage, _ string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(values) == 0 {
		return nil, fmt.Errorf("no settings supplied: %w", domain.ErrValidation)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "" {
			return nil, fmt.Errorf("setting key must not be empty: %w", domain.ErrValidation)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.settings[k] = values[k]
	}
	f.settingsW++
	return keys, nil
}

func (f *fakeStore) ListFeatureFlags(context.Context) ([]domain.FeatureFlag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.FeatureFlag
	for _, flag := range f.flags {
		out = append(out, *flag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FeatureName < out[j].FeatureName })
	return out, nil
}

func (f *fakeStore) SetFeatureFlag(_ context.Context, name string, enabled bool, adminID string) (*domain.FeatureFlag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "" {
		return nil, fmt.Errorf("feature_name is required: %w", domain.ErrValidation)
	}
	flag, ok := f.flags[name]
	if !ok {
		flag = &domain.FeatureFlag{ID: "flag-" + name, FeatureName: name}
		f.flags[name] = flag
	}
	flag.Enabled = enabled
	flag.UpdatedBy = adminID
	out := *flag
	return &out, nil
}

func (f *fakeStore) GetTransaction(_ context.Context, id string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	txn, ok := f.txns[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	out := *txn
	return &out, nil
}

func (f *fakeStore) CompleteTransaction(_ context.Context, req domain.CompletionRequest) (*domain.CompletionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.TransactionID == "" || req.UserID == "" || req.AdminUserID == "" {
		return nil, fmt.Errorf("transactionId, userId and adminUserId are required: %w", domain.ErrValidation)
	}
	txn, ok := f.txns[req.TransactionID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", req.TransactionID, domain.ErrNotFound)
	}
	if txn.UserID != req.UserID {
		return nil, fmt.Errorf("transaction does not belong to user: %w", domain.ErrValidation)
	}
	if txn.Status != domain.TransactionPending {
		return nil, fmt.Errorf("transaction %s is %s: %w", txn.ID, txn.Status, domain.ErrAlreadyCompleted)
	}
	now := time.Now()
	txn.Status = domain.TransactionCompleted
	txn.CompletedBy = &req.AdminUserID
	txn.CompletedAt = &now
	previous := f.balances[req.UserID]
	f.balances[req.UserID] = previous + txn.Amount
	return &domain.CompletionResult{
		TransactionID:   txn.ID,
		PreviousBalance: previous,
		NewBalance:      previous + txn.Amount,
		Amount:          txn.Amount,
	}, nil
}

func (f *fakeStore) ListTickets(_ context.Context, status string) ([]domain.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.SupportTicket
	for _, t := range f.tickets {
		if status == "" || t.Status == status {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) ResolveTicket(_ context.Context, id, adminID string) (*domain.SupportTicket, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "" {
		return nil, false, fmt.Errorf("ticket id is required: %w", domain.ErrValidation)
	}
	t, ok := f.tickets[id]
	if !ok {
		return nil, false, fmt.Errorf("support ticket %s: %w", id, domain.ErrNotFound)
	}
	if t.Status == domain.TicketResolved {
		out := *t
		return &out, false, nil
	}
	now := time.Now()
	t.Status = domain.TicketResolved
	t.ResolvedBy = &adminID
	t.ResolvedAt = &now
	out := *t
	return &out, true, nil
}

func (f *fakeStore) GetCard(_ context.Context, id string) (*domain.VirtualCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "" {
		return nil, fmt.Errorf("card id is required: %w", domain.ErrValidation)
	}
	for _, card := range f.cards {
		if card.ID == id || card.ProviderRef == id {
			out := *card
			return &out, nil
		}
	}
	return nil, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
}

func (f *fakeStore) SetCardStatus(_ context.Context, id, status, adminID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	card, ok := f.cards[id]
	if !ok {
		return fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	card.Status = status
	card.UpdatedBy = adminID
	return nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

func (f *fakeStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	out := *u
	return &out, nil
}

func (f *fakeStore) NetWorth(_ context.Context, userID string) ([]domain.CurrencyNetWorth, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.netWorth[userID], nil
}

// fakeProvider records issuer calls
type fakeProvider struct {
	configured bool
	err        error
	calls      []string
}

func (p *fakeProvider) Configured() bool { return p.configured }

func (p *fakeProvider) Freeze(_ context.Context, ref string) error {
	p.calls = append(p.calls, "freeze:"+ref)
	return p.err
}

func (p *fakeProvider) Unfreeze(_ context.Context, ref string) error {
	p.calls = append(p.calls, "unfreeze:"+ref)
	return p.err
}

// fakeNotifier counts resolution emails
type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) TicketResolved(t *domain.SupportTicket) error {
	n.sent = append(n.sent, t.ID)
	return n.err
}

type testEnv struct {
	router   *gin.Engine
	store    *fakeStore
	cards    *fakeProvider
	notifier *fakeNotifier
	token    string
}

func setupRouter(t *testing.T, opts ...func(*Deps)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		store:    newFakeStore(),
		cards:    &fakeProvider{},
		notifier: &fakeNotifier{},
	}
	deps := Deps{
		Store:      env.store,
		CacheTTL:   time.Minute,
		JWTSecret:  testSecret,
		JWTTTL:     time.Hour,
		Cards:      env.cards,
		Notifier:   env.notifier,
		LoginRate:  100,
		LoginBurst: 100,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	env.router = NewRouter(deps)

	token, err := utils.GenerateJWT(testAdminID, domain.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	env.token = token
	return env
}

// do sends an authenticated request with an optional JSON body
func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
