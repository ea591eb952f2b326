// Package httpapi exposes the download gateway's HTTP surface.
package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"musicdl/server"
	"musicdl/server/provider"
	"musicdl/server/state"
	"musicdl/server/stream"
)

// API wires the request handlers to their collaborators.
type API struct {
	store      *state.Store
	resolver   *provider.Resolver
	qq         *provider.QQClient
	streamer   *stream.Streamer
	qqStreamer *stream.Streamer
	logger     server.Logger
	staticDir  string
	version    string
}

type Options struct {
	Store      *state.Store
	Resolver   *provider.Resolver
	QQ         *provider.QQClient
	Streamer   *stream.Streamer
	QQStreamer *stream.Streamer
	Logger     server.Logger
	StaticDir  string
	Version    string
}

// New creates the API.
func New(opts Options) *API {
	return &API{
		store:      opts.Store,
		resolver:   opts.Resolver,
		qq:         opts.QQ,
		streamer:   opts.Streamer,
		qqStreamer: opts.QQStreamer,
		logger:     opts.Logger,
		staticDir:  opts.StaticDir,
		version:    opts.Version,
	}
}

// Router builds the gin engine with all routes registered.
func (a *API) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), a.loggingMiddleware())

	api := engine.Group("/api")
	api.GET("/config", a.handleGetConfig)
	api.POST("/config", a.handleSaveConfig)
	api.POST("/playlist/fetch", a.handlePlaylistFetch)
	api.POST("/single/info", a.handleSingleInfo)
	api.POST("/download/url", a.handleDownloadURL)
	api.GET("/download/file", a.handleDownloadFile)
	api.GET("/health", a.handleHealth)

	qq := api.Group("/qq")
	qq.GET("/search", a.handleQQSearch)
	qq.GET("/song/url", a.handleQQSongURL)
	qq.GET("/song/detail", a.handleQQSongDetail)
	qq.GET("/song/cover", a.handleQQSongCover)
	qq.GET("/lyric", a.handleQQLyric)
	qq.GET("/album", a.handleQQAlbum)
	qq.GET("/playlist", a.handleQQPlaylist)
	qq.GET("/singer", a.handleQQSinger)
	qq.GET("/top", a.handleQQTop)
	qq.GET("/download/file", a.handleQQDownloadFile)

	engine.NoRoute(a.handleNoRoute)
	return engine
}

func (a *API) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if a.logger != nil {
			a.logger.Info("http request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"duration", time.Since(start).String(),
			)
		}
	}
}

// handleNoRoute serves the static UI for unmatched GETs and a JSON 404 for
// everything else.
func (a *API) handleNoRoute(c *gin.Context) {
	if c.Request.Method == http.MethodGet && a.staticDir != "" {
		requestPath := c.Request.URL.Path
		if requestPath == "/" {
			requestPath = "/index.html"
		}
		full := filepath.Join(a.staticDir, filepath.Clean("/"+requestPath))
		absDir, _ := filepath.Abs(a.staticDir)
		absFull, _ := filepath.Abs(full)
		if strings.HasPrefix(absFull, absDir) {
			if info, err := os.Stat(absFull); err == nil && !info.IsDir() {
				c.File(absFull)
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, errorBody("未找到请求的资源"))
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": a.version,
		"config":  a.store.Snapshot(),
	})
}
