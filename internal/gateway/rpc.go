package gateway

import (
	"bytes"
	"io"
	"net/http"

	"github.com/fiboy83/vibesphere--sub000/internal/metrics"
)

const maxRPCBody = 1 << 20

// rpc forwards a raw JSON-RPC body upstream and relays status and body
// as they came back.
func (h *Handler) rpc(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRPCBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to read request body"})
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	if err := h.throttle.Wait(ctx); err != nil {
		h.proxyFailed(w, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.upstream, bytes.NewReader(body))
	if err != nil {
		h.proxyFailed(w, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		h.proxyFailed(w, err)
		return
	}
	defer resp.Body.Close()

	metrics.UpstreamRequests.WithLabelValues("rpc", metrics.ResultOK).Inc()
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Debug("Failed to relay upstream body", "error", err)
	}
}

func (h *Handler) proxyFailed(w http.ResponseWriter, err error) {
	metrics.UpstreamRequests.WithLabelValues("rpc", metrics.ResultFailed).Inc()
	h.logger.Error("RPC proxy failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "RPC proxy failed"})
}
