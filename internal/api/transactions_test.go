package api

import (
	"net/http"
	"sync"
	"testing"

	"wallet_admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPending(env *testEnv) {
	env.store.txns["T1"] = &domain.Transaction{ID: "T1", UserID: "U1", Amount: 10000, Status: domain.TransactionPending}
	env.store.balances["U1"] = 50000
}

func TestCompleteTransaction(t *testing.T) {
	env := setupRouter(t)
	seedPending(env)

	w := env.do(http.MethodPost, "/admin/transactions/complete",
		`{"transactionId":"T1","userId":"U1","adminUserId":"`+testAdminID+`"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"transaction_id":"T1","previous_balance":50000,"new_balance":60000,"amount":10000}`, w.Body.String())
	assert.Equal(t, domain.TransactionCompleted, env.store.txns["T1"].Status)
	assert.Equal(t, testAdminID, *env.store.txns["T1"].CompletedBy)
}

func TestCompleteTransaction_SnakeCaseAndTokenAdmin(t *testing.T) {
	env := setupRouter(t)
	seedPending(env)

	w := env.do(http.MethodPost, "/admin/transactions/complete", `{"transaction_id":"T1","user_id":"U1"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, testAdminID, *env.store.txns["T1"].CompletedBy)
}

func TestCompleteTransaction_Twice(t *testing.T) {
	env := setupRouter(t)
	seedPending(env)
	body := `{"transactionId":"T1","userId":"U1"}`

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/admin/transactions/complete", body).Code)
	w := env.do(http.MethodPost, "/admin/transactions/complete", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w)["error"], "already completed")
	assert.Equal(t, int64(60000), env.store.balances["U1"])
}

func TestCompleteTransaction_ConcurrentRequests(t *testing.T) {
	env := setupRouter(t)
	seedPending(env)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	start := make(chan struct{})
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			codes[i] = env.do(http.MethodPost, "/admin/transactions/complete", `{"transactionId":"T1","userId":"U1"}`).Code
		}(i)
	}
	close(start)
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, codes)
	assert.Equal(t, int64(60000), env.store.balances["U1"])
}

func TestCompleteTransaction_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "unknown transaction", body: `{"transactionId":"T9","userId":"U1"}`, want: http.StatusNotFound},
		{name: "missing user", body: `{"transactionId":"T1"}`, want: http.StatusBadRequest},
		{name: "wrong owner", body: `{"transactionId":"T1","userId":"U2"}`, want: http.StatusBadRequest},
		{name: "other admin", body: `{"transactionId":"T1","userId":"U1","adminUserId":"admin-2"}`, want: http.StatusForbidden},
		{name: "malformed", body: `{"transactionId":`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupRouter(t)
			seedPending(env)

			w := env.do(http.MethodPost, "/admin/transactions/complete", tt.body)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Equal(t, domain.TransactionPending, env.store.txns["T1"].Status)
			assert.Equal(t, int64(50000), env.store.balances["U1"])
		})
	}
}

func TestGetTransaction(t *testing.T) {
	env := setupRouter(t)
	seedPending(env)

	w := env.do(http.MethodGet, "/admin/transactions/T1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", decode(t, w)["status"])

	w = env.do(http.MethodGet, "/admin/transactions/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
