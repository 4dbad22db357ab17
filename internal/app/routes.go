package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flicktrack/flicktrack/internal/auth"
	"github.com/flicktrack/flicktrack/internal/catalog"
	"github.com/flicktrack/flicktrack/internal/friends"
	"github.com/flicktrack/flicktrack/internal/profile"
	"github.com/flicktrack/flicktrack/internal/watched"
)

// RegisterRoutes constructs every feature package and wires its routes.
// This is the single place where the dependency graph is assembled: the
// session codec feeds both the auth service and the page guard, and the
// catalog client is wrapped in the Redis cache before any handler sees it.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Auth: repository -> token codec -> service.
	userRepo := auth.NewUserRepository(a.DB)
	codec := auth.NewCodec(a.Config.Session.SecretKey)
	authService := auth.NewAuthService(userRepo, codec, a.Config.Session.TTL)
	authHandler := auth.NewHandler(authService)

	// Watched movies.
	watchedService := watched.NewWatchedService(watched.NewWatchedRepository(a.DB))
	watchedHandler := watched.NewHandler(watchedService)

	// Profile and streaming providers.
	profileService := profile.NewProfileService(profile.NewProfileRepository(a.DB))
	profileHandler := profile.NewHandler(profileService)

	// Catalog proxy, read-through cached in Redis.
	catalogClient := catalog.NewClient(a.Config.Catalog)
	cached := catalog.NewCache(catalogClient, a.Redis, a.Config.Catalog.CacheTTL)
	catalogHandler := catalog.NewHandler(cached)

	friendsHandler := friends.NewHandler()

	// Health check endpoint for container orchestration.
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Page routes ---
	// The UI is a separate frontend; these shells exist so the access guard
	// has real routes to gate and browsers land somewhere sensible.
	guard := auth.PageGuard(authService, auth.GuardConfig{
		Protected: []string{"/movies", "/profile", "/watchlist", "/find", "/friends"},
		Public:    []string{"/", "/login"},
	})

	pages := e.Group("", guard)
	registerPage(pages, "/", "Welcome to Flicktrack")
	registerPage(pages, "/login", "Sign in to Flicktrack")
	registerPage(pages, "/movies", "Browse movies")
	registerPage(pages, "/movie/:id", "Movie details")
	registerPage(pages, "/profile", "Your profile")
	registerPage(pages, "/watchlist", "Your watched movies")
	registerPage(pages, "/find", "Find movies")
	registerPage(pages, "/friends", "Friends")

	// --- API routes ---
	api := e.Group("/api")

	// Public: session issuance and catalog browsing.
	auth.RegisterRoutes(api, authHandler)
	catalog.RegisterRoutes(api, catalogHandler)
	friends.RegisterRoutes(api, friendsHandler)

	// Per-user resources require a valid session.
	user := api.Group("/user", auth.RequireSession(authService))
	watched.RegisterRoutes(user, watchedHandler)
	profile.RegisterRoutes(user, profileHandler)
}

// registerPage serves a minimal static shell at the given path.
func registerPage(g *echo.Group, path, title string) {
	g.GET(path, func(c echo.Context) error {
		return c.HTML(http.StatusOK, pageShell(title))
	})
}

// pageShell renders the placeholder page markup.
func pageShell(title string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Flicktrack</title></head>
<body><h1>` + title + `</h1></body>
</html>`
}
