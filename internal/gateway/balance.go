package gateway

import (
	"math/big"
	"net/http"
	"strings"

	"github.com/fiboy83/vibesphere--sub000/internal/metrics"
	"github.com/fiboy83/vibesphere--sub000/pkg/formatter"
)

type balanceQuery struct {
	Address string `validate:"required,eth_addr"`
}

// balance answers GET /api/balance?address=0x... with the ether balance.
// Upstream failures answer with the fallback so callers stay stable.
func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	q := balanceQuery{Address: strings.TrimSpace(r.URL.Query().Get("address"))}
	if q.Address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Address is required"})
		return
	}
	if err := h.validate.Struct(q); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid address"})
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.breaker.Execute(func() (interface{}, error) {
		return h.chain.Balance(ctx, q.Address)
	})
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("balance", metrics.ResultFailed).Inc()
		h.logger.Warn("Balance lookup failed, serving fallback", "address", q.Address, "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"balance": h.fallback})
		return
	}

	metrics.UpstreamRequests.WithLabelValues("balance", metrics.ResultOK).Inc()
	wei, _ := res.(*big.Int)
	writeJSON(w, http.StatusOK, map[string]string{"balance": formatter.Ether(wei, balanceDecimals)})
}
