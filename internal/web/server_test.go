package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspell/internal/model"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fox.hpp")
	require.NoError(t, os.WriteFile(path, []byte("// one\n/// Teh quikc fox\nint f();\n"), 0o644))

	var result model.RunResult
	fr := model.FileReport{Path: path}
	fr.Reject(2, "Teh")
	fr.Reject(2, "quikc")
	result.Add(fr)

	return NewServer(result, slog.New(slog.NewTextHandler(io.Discard, nil))), path
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Text(t *testing.T) {
	t.Parallel()

	s, path := newTestServer(t)
	rec := get(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "file "+path+":\n  line #2, unrecognized words: [\"Teh\" \"quikc\"]\n  2 unrecognized words\n", rec.Body.String())
}

func TestServer_Report(t *testing.T) {
	t.Parallel()

	s, path := newTestServer(t)
	rec := get(t, s, "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Files []struct {
			Path string `json:"path"`
		} `json:"files"`
		Rejections int    `json:"rejections"`
		Report     string `json:"report"`
		Version    string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Rejections)
	require.Len(t, body.Files, 1)
	assert.Equal(t, path, body.Files[0].Path)
	assert.Equal(t, model.Version, body.Version)
	assert.Contains(t, body.Report, "2 unrecognized words")
}

func TestServer_LineContext(t *testing.T) {
	t.Parallel()

	s, path := newTestServer(t)

	rec := get(t, s, "/api/line-context?path="+path+"&line=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var ctx model.LineContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ctx))
	assert.Equal(t, "/// Teh quikc fox", ctx.Target)
	assert.Equal(t, "// one", ctx.Before1)

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"missing params", "/api/line-context", http.StatusBadRequest},
		{"unchecked file", "/api/line-context?path=/etc/passwd&line=1", http.StatusNotFound},
		{"bad line", "/api/line-context?path=" + path + "&line=two", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
