package rest

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	httpcgi "net/http/cgi"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"readtime/internal/core/model"
)

type ServerService interface {
	Render(ctx context.Context, req model.Request, body io.Reader) model.Page
}

type Config struct {
	Server       ServerService
	Logger       zap.SugaredLogger
	Interpreters map[string]string // расширение скрипта -> интерпретатор
	CGIDir       string
	Port         int64
	Pprof        bool
}

type API struct {
	srv    *http.Server
	logger zap.SugaredLogger
}

func NewServerAPI(conf Config) *API {
	h := handler{
		server:       conf.Server,
		logger:       conf.Logger,
		cgiDir:       conf.CGIDir,
		interpreters: conf.Interpreters,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.MwLog())

	if conf.Pprof {
		pprof.Register(router)
	}

	router.GET("/ping", h.ping)

	if conf.CGIDir != "" {
		router.Any("/cgi-bin/*script", h.cgiScript)
	}

	page := router.Group("/")
	page.Use(h.responseGzipMiddleware())
	page.Any("/", h.page)

	return &API{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", conf.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: conf.Logger,
	}
}

func (a *API) Run() error {
	a.logger.Infof("Server started on port %s", a.srv.Addr)

	if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to listen and serve: %w", err)
	}

	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	if err := a.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

type handler struct {
	server       ServerService
	interpreters map[string]string
	logger       zap.SugaredLogger
	cgiDir       string
}

func (h *handler) MwLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()

		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-Id", requestID)

		c.Next()

		h.logger.Infow("request",
			"id", requestID,
			"uri", c.Request.RequestURI,
			"method", c.Request.Method,
			"latency", time.Since(now).String(),
			"status", c.Writer.Status(),
			"size", c.Writer.Size(),
		)
	}
}

func (h *handler) ping(ginCtx *gin.Context) {
	ginCtx.Writer.WriteHeader(http.StatusOK)
}

// page отдает страницу с оценкой. Метод, строка запроса и Content-Length
// передаются как есть, разбор делает приложение.
func (h *handler) page(ginCtx *gin.Context) {
	contentLength := ginCtx.GetHeader("Content-Length")
	if contentLength == "" && ginCtx.Request.ContentLength > 0 {
		contentLength = strconv.FormatInt(ginCtx.Request.ContentLength, 10)
	}

	req := model.Request{
		Method:        ginCtx.Request.Method,
		QueryString:   ginCtx.Request.URL.RawQuery,
		ContentLength: contentLength,
	}

	page := h.server.Render(ginCtx.Request.Context(), req, ginCtx.Request.Body)

	ginCtx.Data(http.StatusOK, page.ContentType, []byte(page.Body))
}

// cgiScript запускает скрипт из каталога CGI, как это делает обычный веб-сервер.
func (h *handler) cgiScript(ginCtx *gin.Context) {
	script := strings.TrimPrefix(ginCtx.Param("script"), "/")

	path, err := h.resolveScript(script)
	if err != nil {
		h.logger.Debugw("cgi script rejected", "script", script, "error", err)
		ginCtx.Writer.WriteHeader(http.StatusNotFound)
		return
	}

	cgiHandler := &httpcgi.Handler{
		Path: path,
		Dir:  filepath.Dir(path),
		Root: "/cgi-bin/" + script,
		Env:  []string{"SCRIPT_FILENAME=" + path},
	}

	if interpreter, ok := h.interpreters[strings.ToLower(filepath.Ext(path))]; ok {
		cgiHandler.Path = interpreter
		cgiHandler.Args = []string{path}
	}

	cgiHandler.ServeHTTP(ginCtx.Writer, ginCtx.Request)
}

var errScriptNotFound = errors.New("script not found")

// resolveScript возвращает абсолютный путь скрипта внутри каталога CGI.
func (h *handler) resolveScript(script string) (string, error) {
	if script == "" {
		return "", errScriptNotFound
	}

	root, err := filepath.Abs(h.cgiDir)
	if err != nil {
		return "", fmt.Errorf("can't resolve cgi dir: %w", err)
	}

	path := filepath.Join(root, filepath.FromSlash(script))

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("script %s outside of cgi dir: %w", script, errScriptNotFound)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("can't stat script: %w", err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("script %s is a directory: %w", script, errScriptNotFound)
	}

	return path, nil
}

func (h *handler) responseGzipMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		c.Writer.Header().Set("Content-Encoding", "gzip")
		c.Writer.Header().Add("Vary", "Accept-Encoding")

		gz := gzip.NewWriter(c.Writer)
		defer func() {
			if err := gz.Close(); err != nil {
				h.logger.Errorw("failed to close gzip writer", "error", err)
			}
		}()

		c.Writer = &gzipResponseWriter{Writer: gz, ResponseWriter: c.Writer}

		c.Next()
	}
}

type gzipResponseWriter struct {
	io.Writer
	gin.ResponseWriter
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.Writer.Write(data) //nolint:wrapcheck
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.Writer.Write([]byte(s)) //nolint:wrapcheck
}
