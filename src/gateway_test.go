package btccw

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayMempoolBroadcast(t *testing.T) {
	var got_body string
	var got_type string

	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body, _ = io.ReadAll(r.Body)
		got_body = string(body)
		got_type = r.Header.Get("Content-Type")
		w.Write([]byte("deadbeefcafe\n"))
	}))
	defer server.Close()

	var cfg = gateway_config_default()
	cfg.mempool_url = server.URL

	var txid = gateway_open(cfg).broadcast("0200aabb")

	assert.Equal(t, "deadbeefcafe", txid)
	assert.Equal(t, "0200aabb", got_body, "raw hex travels as the body")
	assert.Equal(t, "text/plain", got_type)
}

func TestGatewayMempoolRejection(t *testing.T) {
	var server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sendrawtransaction RPC error", http.StatusBadRequest)
	}))
	defer server.Close()

	var cfg = gateway_config_default()
	cfg.mempool_url = server.URL

	assert.Empty(t, gateway_open(cfg).broadcast("0200aabb"))
}

func TestGatewayMempoolUnreachable(t *testing.T) {
	var cfg = gateway_config_default()
	cfg.mempool_url = "http://127.0.0.1:1/api/tx"

	assert.Empty(t, gateway_open(cfg).broadcast("0200aabb"))
}

func test_rpc_gateway(t *testing.T, handler http.HandlerFunc) *gateway_s {
	t.Helper()

	var server = httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var u, err = url.Parse(server.URL)
	require.NoError(t, err)
	var port, _ = strconv.Atoi(u.Port())

	var cfg = gateway_config_default()
	cfg.backend = BROADCAST_BITCOIN_RPC
	cfg.rpc_host = u.Hostname()
	cfg.rpc_port = port
	cfg.rpc_user = "rpcuser"
	cfg.rpc_pass = "rpcpass"

	return gateway_open(cfg)
}

func TestGatewayRPCBroadcast(t *testing.T) {
	var g = test_rpc_gateway(t, func(w http.ResponseWriter, r *http.Request) {
		var user, pass, ok = r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rpcuser", user)
		assert.Equal(t, "rpcpass", pass)

		var req rpc_request_s
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sendrawtransaction", req.Method)
		require.Len(t, req.Params, 1)
		assert.Equal(t, "0200aabb", req.Params[0])

		json.NewEncoder(w).Encode(rpc_response_s{Result: "cafebabe"})
	})

	assert.Equal(t, "cafebabe", g.broadcast("0200aabb"))
}

func TestGatewayRPCError(t *testing.T) {
	var g = test_rpc_gateway(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpc_response_s{
			Error: &rpc_error_s{Code: -26, Message: "txn-mempool-conflict"},
		})
	})

	assert.Empty(t, g.broadcast("0200aabb"))
}

func TestGatewayRPCGarbageResponse(t *testing.T) {
	var g = test_rpc_gateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	assert.Empty(t, g.broadcast("0200aabb"))
}
