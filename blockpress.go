// Package blockpress is a self-hosted authoring service for structured
// blog posts, built with Go and Echo. A post is composed from typed
// content blocks (paragraphs, headings, images, video embeds, code,
// quotes, lists); blockpress renders a live preview on every mutation,
// persists a single draft slot in SQLite, and exports two artifacts: a
// self-contained post page and an index-card snippet for the blog's
// front page.
//
// The browser UI is a thin collaborator: all document state lives
// server-side behind the /api routes and the UI is a projection of it.
package blockpress

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/levkoz/blockpress/render"
)

// App is the central blockpress application. It wires together the
// draft store, the editor session registry, the renderer, middleware,
// and routes.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Drafts *DraftStore

	renderer     render.Renderer
	registry     *sessionRegistry
	loginLimiter *LoginLimiter
	sessionTTL   time.Duration
	customRoutes []func(*App)
}

// New creates a new blockpress App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:     cfg,
		Echo:       echo.New(),
		sessionTTL: 12 * time.Hour,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes the draft store, session registry, middleware, and
// routes, then starts the server.
func (a *App) Start() error {
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("blockpress: config: %w", err)
	}

	drafts, err := NewDraftStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("blockpress: init draft store: %w", err)
	}
	a.Drafts = drafts

	a.renderer = render.Renderer{SiteName: a.Config.Name}
	a.registry = newSessionRegistry(a.sessionTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded shell assets.
	staticFS, _ := fs.Sub(EmbeddedAssets, "static")
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/admin/")
	})

	// Admin shell + auth.
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	// Editor API.
	api := e.Group("/api", requireAdmin)
	api.POST("/documents/", a.handleCreateDocument)
	api.GET("/documents/:id/", a.handleGetDocument)
	api.DELETE("/documents/:id/", a.handleDeleteDocument)
	api.PUT("/documents/:id/meta/", a.handleSetMetadata)
	api.POST("/documents/:id/blocks/", a.handleAppendBlock)
	api.PUT("/documents/:id/blocks/:blockID/", a.handleUpdateBlock)
	api.PUT("/documents/:id/blocks/:blockID/type/", a.handleChangeBlockType)
	api.POST("/documents/:id/blocks/:blockID/move/", a.handleMoveBlock)
	api.DELETE("/documents/:id/blocks/:blockID/", a.handleRemoveBlock)
	api.POST("/documents/:id/blocks/:blockID/image/", a.handleBlockImage)
	api.POST("/documents/:id/blocks/:blockID/video/", a.handleSetVideo)
	api.PUT("/documents/:id/references/", a.handleSetReferences)
	api.GET("/documents/:id/preview/", a.handlePreview)
	api.POST("/documents/:id/export/", a.handleExport)
	api.GET("/documents/:id/download/", a.handleDownload)
	api.POST("/documents/:id/draft/save/", a.handleDraftSave)
	api.POST("/documents/:id/draft/load/", a.handleDraftLoad)
	api.DELETE("/draft/", a.handleDraftClear)
}

// serveStatic writes one embedded asset as an HTML response.
func (a *App) serveStatic(c echo.Context, name string) error {
	data, err := EmbeddedAssets.ReadFile(name)
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, data)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Drafts != nil {
		return a.Drafts.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback
// if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("blockpress: required environment variable %s is not set", key)
	}
	return v
}
