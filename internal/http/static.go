package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"articleprompts/internal/logger"
)

//go:embed web
var embeddedWeb embed.FS

// registerStatic serves the generator page. An APP_STATIC_DIR with an index.html
// replaces the embedded page.
func registerStatic(e *echo.Echo, dir string) {
	assets := webAssets(dir)
	fileServer := nethttp.FileServer(nethttp.FS(assets))

	e.GET("/*", func(c echo.Context) error {
		requestPath := c.Request().URL.Path
		if requestPath == "/api" || strings.HasPrefix(requestPath, "/api/") {
			return echo.ErrNotFound
		}

		cleanPath := strings.TrimPrefix(path.Clean(requestPath), "/")
		if cleanPath == "." || cleanPath == "" {
			return serveIndex(c, assets)
		}

		info, err := fs.Stat(assets, cleanPath)
		if err == nil && !info.IsDir() {
			logger.Debug("static file served", "module", "http", "action", "fetch", "resource", "http", "result", "ok", "path", requestPath)
			fileServer.ServeHTTP(c.Response(), c.Request())
			return nil
		}

		return serveIndex(c, assets)
	})
}

func webAssets(dir string) fs.FS {
	if dir != "" {
		indexPath := filepath.Join(dir, "index.html")
		info, err := os.Stat(indexPath)
		if err == nil && !info.IsDir() {
			logger.Info("static assets enabled", "module", "http", "action", "request", "resource", "http", "result", "ok", "dir", dir)
			return os.DirFS(dir)
		}
		logger.Warn("static index missing", "module", "http", "action", "request", "resource", "http", "result", "failed", "path", indexPath)
	}

	sub, err := fs.Sub(embeddedWeb, "web")
	if err != nil {
		panic(err)
	}
	return sub
}

func serveIndex(c echo.Context, assets fs.FS) error {
	data, err := fs.ReadFile(assets, "index.html")
	if err != nil {
		return echo.ErrNotFound
	}
	return c.HTMLBlob(nethttp.StatusOK, data)
}
