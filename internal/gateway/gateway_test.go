package gateway

import (
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mock_chain "github.com/fiboy83/vibesphere--sub000/internal/chain/mocks"
	"github.com/fiboy83/vibesphere--sub000/internal/ratelimit"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const addr = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

func newTestHandler(t *testing.T, upstream string, max int) (*Handler, *mock_chain.MockClient) {
	t.Helper()
	client := mock_chain.NewMockClient(gomock.NewController(t))
	h := NewHandler(HandlerOpts{
		Chain:           client,
		Limiter:         ratelimit.NewSlidingWindow(max, 30*time.Second, clockwork.NewFakeClock()),
		UpstreamURL:     upstream,
		FallbackBalance: "0.00",
		Logger:          logger.NewNop(),
	})
	return h, client
}

func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBalance(t *testing.T) {
	h, client := newTestHandler(t, "", 10)
	wei, _ := new(big.Int).SetString("1234567800000000000", 10)
	client.EXPECT().Balance(gomock.Any(), addr).Return(wei, nil)

	rec := do(h.Routes(), http.MethodGet, "/api/balance?address="+addr, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":"1.2346"}`, rec.Body.String())
}

func TestBalance_Fallback(t *testing.T) {
	h, client := newTestHandler(t, "", 10)
	client.EXPECT().Balance(gomock.Any(), addr).Return(nil, errors.New("rpc down"))

	rec := do(h.Routes(), http.MethodGet, "/api/balance?address="+addr, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":"0.00"}`, rec.Body.String())
}

func TestBalance_BadRequest(t *testing.T) {
	h, _ := newTestHandler(t, "", 10)

	rec := do(h.Routes(), http.MethodGet, "/api/balance", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Address is required"}`, rec.Body.String())

	rec = do(h.Routes(), http.MethodGet, "/api/balance?address=0x123", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h, _ := newTestHandler(t, "", 10)
	routes := h.Routes()

	for i := 0; i < 10; i++ {
		rec := do(routes, http.MethodGet, "/api/balance", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, "request %d", i+1)
	}
	rec := do(routes, http.MethodGet, "/api/balance", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests. Please slow down.", rec.Body.String())

	rec = do(routes, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "non api routes are not limited")
}

func TestRPC_RelaysUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"eth_chainId","params":[]}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x3d8"}`))
	}))
	defer upstream.Close()

	h, _ := newTestHandler(t, upstream.URL, 10)
	rec := do(h.Routes(), http.MethodPost, "/api/rpc",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"eth_chainId","params":[]}`))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, `{"jsonrpc":"2.0","id":1,"result":"0x3d8"}`, rec.Body.String())
}

func TestRPC_TransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	h, _ := newTestHandler(t, url, 10)
	rec := do(h.Routes(), http.MethodPost, "/api/rpc", strings.NewReader(`{}`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
