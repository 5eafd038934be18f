package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	turinghttp "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flipDocument = `{
	"name": "flip",
	"states": ["flip", "halt"],
	"alphabet": ["0", "1"],
	"blank": "_",
	"start_state": "flip",
	"accepting_states": ["halt"],
	"transitions": [
		{"from_state": "flip", "read_symbol": "0", "to_state": "flip", "write_symbol": "1", "move": "R"},
		{"from_state": "flip", "read_symbol": "1", "to_state": "flip", "write_symbol": "0", "move": "R"},
		{"from_state": "flip", "read_symbol": "_", "to_state": "halt", "write_symbol": "_", "move": "S"}
	]
}`

func newHandler(t *testing.T, opts ...turinghttp.Option) http.Handler {
	t.Helper()
	machines := registry.NewRegistry(cipher.NewCatalog(cipher.New()))
	return turinghttp.NewHandler(machines, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[map[string]any](t, w)
	assert.Equal(t, "turing-http", info["app"])
	assert.Equal(t, false, info["store"])
}

func TestEncryptDecrypt(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, "POST", "/encrypt", `{"key":"3","message":"HELLO"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[turinghttp.RunResponse](t, w)
	assert.Equal(t, "KHOOR", resp.Output)
	assert.Equal(t, domain.OutcomeAccepted, resp.Outcome)
	assert.Equal(t, 6, resp.Steps)
	require.NotNil(t, resp.Shift)
	assert.Equal(t, 3, *resp.Shift)

	w = do(t, h, "POST", "/decrypt", `{"key":"C","message":"KHOOR"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HELLO", decode[turinghttp.RunResponse](t, w).Output)
}

func TestEncrypt_BadRequests(t *testing.T) {
	h := newHandler(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/encrypt", `{"key":"??","message":"HELLO"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/encrypt", `{"key":"3","message":"hello"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/encrypt", `not json`).Code)
}

func TestMachines(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, "GET", "/machines", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[map[string][]string](t, w)
	assert.Len(t, list["machines"], 52)

	w = do(t, h, "GET", "/machines/caesar-encrypt-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[map[string]any](t, w)
	assert.Equal(t, "scan", doc["start_state"])
	assert.Len(t, doc["transitions"], 28)

	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/machines/unknown", "").Code)

	w = do(t, h, "POST", "/machines/caesar-decrypt-1/run", `{"input":"IBM"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HAL", decode[turinghttp.RunResponse](t, w).Output)
}

func TestRunDocument(t *testing.T) {
	h := newHandler(t, turinghttp.WithStepLimit(2))

	w := do(t, h, "POST", "/run", `{"machine":`+flipDocument+`,"input":"01"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[turinghttp.RunResponse](t, w)
	assert.Equal(t, "10", resp.Output)
	assert.Equal(t, domain.OutcomeLimitExceeded, resp.Outcome, "the halting move needs a third step")

	invalid := strings.Replace(flipDocument, `"to_state": "halt"`, `"to_state": "nowhere"`, 1)
	w = do(t, h, "POST", "/run", `{"machine":`+invalid+`,"input":"01"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "nowhere")

	w = do(t, h, "POST", "/run", `{"machine":{"nmae":"typo"},"input":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, "POST", "/run", `{"input":"01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRuns(t *testing.T) {
	store := memory.NewStore()
	h := newHandler(t, turinghttp.WithStore(store))

	w := do(t, h, "POST", "/encrypt", `{"key":"1","message":"HAL"}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := decode[turinghttp.RunResponse](t, w).ID
	require.NotEmpty(t, id)

	w = do(t, h, "GET", "/runs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{id}, decode[map[string][]string](t, w)["runs"])

	w = do(t, h, "GET", "/runs/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IBM", decode[turinghttp.RunResponse](t, w).Output)

	assert.Equal(t, http.StatusNoContent, do(t, h, "DELETE", "/runs/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/runs/"+id, "").Code)
}

func TestRuns_NoStore(t *testing.T) {
	h := newHandler(t)
	assert.Equal(t, http.StatusNotImplemented, do(t, h, "GET", "/runs", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	h := newHandler(t,
		turinghttp.WithLifecycleHooks(metrics.Hooks()),
		turinghttp.WithMetrics(metrics.Handler()),
	)

	require.Equal(t, http.StatusOK, do(t, h, "POST", "/encrypt", `{"key":"2","message":"AB"}`).Code)

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `turing_runs_total{machine="caesar-encrypt-2",outcome="accepted"} 1`)
}

func TestSubscribeEvents(t *testing.T) {
	srv := httptest.NewServer(newHandler(t))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/events?machine=caesar-encrypt-3", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	readUntil := func(prefix string) string {
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), prefix) {
				return lines.Text()
			}
		}
		t.Fatalf("stream ended before %q", prefix)
		return ""
	}
	readUntil("data: connected")

	// Runs of other machines are filtered out.
	post := func(body string) {
		r, err := http.Post(srv.URL+"/encrypt", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		r.Body.Close()
	}
	post(`{"key":"4","message":"SKIP"}`)
	post(`{"key":"3","message":"HELLO"}`)

	readUntil("event: run_end")
	data := strings.TrimPrefix(readUntil("data: "), "data: ")

	var ev domain.RunEvent
	require.NoError(t, json.Unmarshal([]byte(data), &ev))
	assert.Equal(t, "caesar-encrypt-3", ev.Machine)
	require.NotNil(t, ev.Result)
	assert.Equal(t, "KHOOR", ev.Result.Output)
}
