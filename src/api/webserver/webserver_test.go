package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	defer goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
	os.Exit(m.Run())
}

func get(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, NewRouter(nil), "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","module":"stackbuddy"}`, rec.Body.String())
}

func TestListCommands(t *testing.T) {
	rec := get(t, NewRouter(nil), "/v1/commands", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Commands []commandView `json:"commands"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Commands, 9)
	assert.Equal(t, commandView{Token: "!help", Animated: false}, body.Commands[0])
	assert.Equal(t, commandView{Token: "!get-calendar", Animated: true}, body.Commands[8])
}

func TestCORS(t *testing.T) {
	r := NewRouter([]string{"https://dash.example"})

	rec := get(t, r, "/healthz", http.Header{"Origin": {"https://dash.example"}})
	assert.Equal(t, "https://dash.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(t, r, "/healthz", http.Header{"Origin": {"https://evil.example"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_StartStop(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil, nil)
	require.NoError(t, s.Start(context.Background()))
	s.Stop(context.Background())
}

func TestServer_StopWithoutStart(t *testing.T) {
	NewServer("127.0.0.1:0", nil, nil).Stop(context.Background())
}
