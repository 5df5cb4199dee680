//nolint:wrapcheck,nolintlint,gocritic,errcheck,dupl,forcetypeassert
package rest

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"readtime/internal/core/application"
	"readtime/internal/core/model"
	"readtime/internal/infra/store"
	"readtime/internal/infra/store/memory"
)

type MockServerService struct {
	mock.Mock
}

func (m *MockServerService) Render(ctx context.Context, req model.Request, body io.Reader) model.Page {
	args := m.Called(ctx, req, body)
	return args.Get(0).(model.Page)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAPI(t *testing.T, server ServerService, cgiDir string) *API {
	t.Helper()

	return NewServerAPI(Config{
		Server: server,
		Logger: *zap.NewNop().Sugar(),
		CGIDir: cgiDir,
		Port:   8080,
	})
}

func TestNewServerAPI(t *testing.T) {
	mockServerService := new(MockServerService)

	api := newTestAPI(t, mockServerService, "")

	assert.NotNil(t, api)
	assert.NotNil(t, api.srv)
	assert.Equal(t, ":8080", api.srv.Addr)
}

func TestServerAPI_Page(t *testing.T) {
	t.Run("request metadata is passed through", func(t *testing.T) {
		mockServerService := new(MockServerService)
		api := newTestAPI(t, mockServerService, "")

		mockServerService.On("Render", mock.Anything, model.Request{
			Method:        http.MethodPost,
			QueryString:   "x=1",
			ContentLength: "9",
		}, mock.Anything).Return(model.Page{ContentType: model.ContentTypeHTML, Body: "<p>ok</p>"})

		req := httptest.NewRequest(http.MethodPost, "/?x=1", strings.NewReader("msg=hello"))
		rec := httptest.NewRecorder()

		api.srv.Handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, model.ContentTypeHTML, rec.Header().Get("Content-Type"))
		assert.Equal(t, "<p>ok</p>", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

		mockServerService.AssertExpectations(t)
	})

	t.Run("other methods are served", func(t *testing.T) {
		mockServerService := new(MockServerService)
		api := newTestAPI(t, mockServerService, "")

		mockServerService.On("Render", mock.Anything, mock.MatchedBy(func(r model.Request) bool {
			return r.Method == http.MethodDelete
		}), mock.Anything).Return(model.Page{ContentType: model.ContentTypeHTML, Body: "page"})

		rec := httptest.NewRecorder()
		api.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "page", rec.Body.String())

		mockServerService.AssertExpectations(t)
	})

	t.Run("gzip", func(t *testing.T) {
		mockServerService := new(MockServerService)
		api := newTestAPI(t, mockServerService, "")

		mockServerService.On("Render", mock.Anything, mock.Anything, mock.Anything).
			Return(model.Page{ContentType: model.ContentTypeHTML, Body: "<p>compressed</p>"})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()

		api.srv.Handler.ServeHTTP(rec, req)

		assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

		gz, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		body, err := io.ReadAll(gz)
		require.NoError(t, err)

		assert.Equal(t, "<p>compressed</p>", string(body))
	})
}

func TestServerAPI_Page_WithApplication(t *testing.T) {
	templates, err := store.NewStore(store.Config{Memory: &memory.Config{
		Template: "{{MESSAGE}}|{{COUNT}}|{{TIME_MS}}|{{TIME_S}}",
	}})
	require.NoError(t, err)

	app := application.NewApplication(application.DefaultConfig(), templates, *zap.NewNop().Sugar())
	api := newTestAPI(t, app, "")

	tests := []struct {
		name string
		req  *http.Request
		want string
	}{
		{
			name: "get",
			req:  httptest.NewRequest(http.MethodGet, "/?msg=%3Cscript%3E", nil),
			want: "&lt;script&gt;|8|400|0.40",
		},
		{
			name: "post",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("msg=a%0D%0Ab"))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return r
			}(),
			want: "a\nb|3|150|0.15",
		},
		{
			name: "empty",
			req:  httptest.NewRequest(http.MethodGet, "/", nil),
			want: "—|0|0|0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			api.srv.Handler.ServeHTTP(rec, tt.req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestServerAPI_Ping(t *testing.T) {
	api := newTestAPI(t, new(MockServerService), "")

	rec := httptest.NewRecorder()
	api.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_ResolveScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.sh"), []byte("#!/bin/sh\n"), 0o700))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	h := handler{cgiDir: dir, logger: *zap.NewNop().Sugar()}

	t.Run("script inside dir", func(t *testing.T) {
		path, err := h.resolveScript("script.sh")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "script.sh"), path)
	})

	for _, script := range []string{"", "../script.sh", "sub/../../etc/passwd", "sub", "missing.sh"} {
		t.Run("rejected "+script, func(t *testing.T) {
			_, err := h.resolveScript(script)
			assert.Error(t, err)
		})
	}
}

func TestServerAPI_CGIScriptNotFound(t *testing.T) {
	api := newTestAPI(t, new(MockServerService), t.TempDir())

	rec := httptest.NewRecorder()
	api.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cgi-bin/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

const echoScript = `#!/bin/sh
body=$(cat)
printf 'Content-Type: text/plain\n\n'
printf '%s %s %s' "$REQUEST_METHOD" "$QUERY_STRING" "$body"
`

func TestServerAPI_CGIScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported")
	}

	tests := []struct {
		name         string
		perm         os.FileMode
		interpreters map[string]string
	}{
		{
			name: "executable script",
			perm: 0o700,
		},
		{
			name:         "script run by interpreter",
			perm:         0o600,
			interpreters: map[string]string{".sh": "/bin/sh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "s.sh"), []byte(echoScript), tt.perm))

			api := NewServerAPI(Config{
				Server:       new(MockServerService),
				Logger:       *zap.NewNop().Sugar(),
				CGIDir:       dir,
				Interpreters: tt.interpreters,
			})

			t.Run("get", func(t *testing.T) {
				rec := httptest.NewRecorder()
				api.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cgi-bin/s.sh?msg=hi", nil))

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "GET msg=hi ", rec.Body.String())
			})

			t.Run("post", func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/cgi-bin/s.sh?msg=hi", strings.NewReader("msg=there"))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				rec := httptest.NewRecorder()

				api.srv.Handler.ServeHTTP(rec, req)

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "POST msg=hi msg=there", rec.Body.String())
			})
		})
	}
}
