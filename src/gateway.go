package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Hand a recovered transaction to the Bitcoin network.
 *
 * Description:	Two backends, selected by a tag in the configuration:
 *
 *		mempool  - POST the raw hex, text/plain, to the
 *			   mempool.space API.  The 2xx response body
 *			   is the txid.
 *
 *		bitcoind - JSON-RPC 1.0 sendrawtransaction against a
 *			   local Bitcoin Core node with basic auth.
 *
 *		The set is closed, so this is a switch, not an
 *		interface.
 *
 *---------------------------------------------------------------*/

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type broadcast_backend_e int

const (
	BROADCAST_MEMPOOL_SPACE broadcast_backend_e = iota
	BROADCAST_BITCOIN_RPC
)

const MEMPOOL_DEFAULT_URL = "https://mempool.space/api/tx"

type gateway_config_s struct {
	backend broadcast_backend_e

	/* mempool.space */
	mempool_url string

	/* Bitcoin Core RPC */
	rpc_host string
	rpc_port int
	rpc_user string
	rpc_pass string
}

func gateway_config_default() gateway_config_s {
	return gateway_config_s{
		backend:     BROADCAST_MEMPOOL_SPACE,
		mempool_url: MEMPOOL_DEFAULT_URL,
		rpc_host:    "127.0.0.1",
		rpc_port:    8332,
	}
}

type gateway_s struct {
	cfg    gateway_config_s
	client *http.Client
}

/*-------------------------------------------------------------------
 *
 * Name:        gateway_open
 *
 * Purpose:    	Build the HTTP client for the configured backend.
 *
 *--------------------------------------------------------------------*/

func gateway_open(cfg gateway_config_s) *gateway_s {
	return &gateway_s{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        broadcast
 *
 * Purpose:    	Send a raw hex transaction to the network.
 *
 * Returns:	txid on success, "" on any failure.
 *
 *--------------------------------------------------------------------*/

func (g *gateway_s) broadcast(raw_tx_hex string) string {

	switch g.cfg.backend {
	case BROADCAST_MEMPOOL_SPACE:
		return g.broadcast_mempool(raw_tx_hex)
	case BROADCAST_BITCOIN_RPC:
		return g.broadcast_rpc(raw_tx_hex)
	}
	return ""
}

func (g *gateway_s) broadcast_mempool(raw_tx_hex string) string {

	var resp, err = g.client.Post(g.cfg.mempool_url, "text/plain",
		strings.NewReader(raw_tx_hex))
	if err != nil {
		log.Error("mempool broadcast failed", "err", err)
		return ""
	}
	defer resp.Body.Close()

	var body, _ = io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("mempool broadcast rejected",
			"status", resp.StatusCode, "body", strings.TrimSpace(string(body)))
		return ""
	}

	return strings.TrimSpace(string(body))
}

type rpc_request_s struct {
	Jsonrpc string   `json:"jsonrpc"`
	ID      string   `json:"id"`
	Method  string   `json:"method"`
	Params  []string `json:"params"`
}

type rpc_error_s struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpc_response_s struct {
	Result string       `json:"result"`
	Error  *rpc_error_s `json:"error"`
}

func (g *gateway_s) broadcast_rpc(raw_tx_hex string) string {

	var payload, err = json.Marshal(rpc_request_s{
		Jsonrpc: "1.0",
		ID:      "btccw",
		Method:  "sendrawtransaction",
		Params:  []string{raw_tx_hex},
	})
	if err != nil {
		return ""
	}

	var url = fmt.Sprintf("http://%s:%d", g.cfg.rpc_host, g.cfg.rpc_port)

	var req *http.Request
	req, err = http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Error("rpc request build failed", "err", err)
		return ""
	}
	req.SetBasicAuth(g.cfg.rpc_user, g.cfg.rpc_pass)
	req.Header.Set("Content-Type", "application/json")

	var resp *http.Response
	resp, err = g.client.Do(req)
	if err != nil {
		log.Error("rpc broadcast failed", "err", err)
		return ""
	}
	defer resp.Body.Close()

	var body, _ = io.ReadAll(resp.Body)

	var decoded rpc_response_s
	if json.Unmarshal(body, &decoded) != nil {
		log.Error("rpc response unreadable", "body", strings.TrimSpace(string(body)))
		return ""
	}
	if decoded.Error != nil {
		log.Error("rpc error", "code", decoded.Error.Code, "message", decoded.Error.Message)
		return ""
	}

	return decoded.Result
}
