package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Girder/internal/config"
	"Girder/internal/repo"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func server(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.FromEnv(func(k string) string {
		return map[string]string{"TOKEN_KEY": "test", "RATE_LIMIT": "1000", "RATE_BURST": "1000"}[k]
	})
	require.NoError(t, err)
	r := mux.NewRouter()
	HandleList(r, cfg, repo.NewMemory())
	return CORS(r)
}

func do(h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAnalyzeThenListRuns(t *testing.T) {
	h := server(t)

	w := do(h, http.MethodGet, "/api/materials", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A36 Steel")

	w = do(h, http.MethodPost, "/api/user/tools/beam/analyze", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(h, http.MethodPost, "/api/register", `{"login":"ada","email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	body := `{"material":"A36 Steel","section":{"type":"rectangular","dimensions":{"width":100,"height":150}},
"profile":{"samples":[{"position_m":0,"shear_kn":25,"moment_knm":0},{"position_m":2,"shear_kn":25,"moment_knm":50}]}}`
	w = do(h, http.MethodPost, "/api/user/tools/beam/analyze", body, cookies...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"SAFE"`)

	w = do(h, http.MethodGet, "/api/user/runs", "", cookies...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"analysis"`)
}

func TestPreflight(t *testing.T) {
	w := do(server(t), http.MethodOptions, "/api/user/tools/beam/analyze", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
