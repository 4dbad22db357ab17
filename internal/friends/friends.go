// Package friends serves a placeholder friends list. There is no social
// graph yet; the list is static so the friends page has data to render.
package friends

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Friend is a placeholder friend entry.
type Friend struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Watching  string `json:"watching"`
}

// mockFriends is the static list served to every user.
var mockFriends = []Friend{
	{ID: "1", Name: "Alex Rivera", AvatarURL: "/avatars/alex.png", Watching: "Dune: Part Two"},
	{ID: "2", Name: "Sam Chen", AvatarURL: "/avatars/sam.png", Watching: "Oppenheimer"},
	{ID: "3", Name: "Jordan Blake", AvatarURL: "/avatars/jordan.png", Watching: "The Batman"},
	{ID: "4", Name: "Casey Morgan", AvatarURL: "/avatars/casey.png", Watching: "Past Lives"},
}

// Handler handles HTTP requests for the friends list.
type Handler struct{}

// NewHandler creates a new friends handler.
func NewHandler() *Handler {
	return &Handler{}
}

// List returns the static friends list (GET /api/friends).
func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"friends": mockFriends})
}

// RegisterRoutes sets up friends routes on the given API group.
func RegisterRoutes(api *echo.Group, h *Handler) {
	api.GET("/friends", h.List)
}
