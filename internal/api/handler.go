package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"seatapp-web/internal/logging"
	"seatapp-web/internal/render"
	"seatapp-web/internal/upstream"
)

// Upstream is the subset of the upstream client the handlers use.
type Upstream interface {
	Login(ctx context.Context, username, password string) ([]*http.Cookie, error)
	Logout(ctx context.Context, cookie string) error
	Me(ctx context.Context, cookie string) (*upstream.User, error)
	Floors(ctx context.Context, cookie string) ([]upstream.Floor, error)
	Seats(ctx context.Context, cookie string, floorID int64) ([]upstream.Seat, error)
	Report(ctx context.Context, cookie string, period upstream.Period) (json.RawMessage, error)
}

// Handler holds shared dependencies for the page handlers.
type Handler struct {
	upstream      Upstream
	sessionCookie string
}

// NewHandler creates a new page handler.
func NewHandler(u Upstream, sessionCookie string) *Handler {
	return &Handler{
		upstream:      u,
		sessionCookie: sessionCookie,
	}
}

// cookieHeader is the caller's Cookie header, forwarded verbatim upstream.
func cookieHeader(c *gin.Context) string {
	return c.GetHeader("Cookie")
}

// currentUser checks the session with the upstream. When it returns false
// the response has already been written: a redirect to /login for an
// invalid session, an error page for anything else.
func (h *Handler) currentUser(c *gin.Context) (*upstream.User, bool) {
	user, err := h.upstream.Me(c.Request.Context(), cookieHeader(c))
	if err != nil {
		if upstream.IsStatus(err) {
			c.Redirect(http.StatusFound, "/login")
			return nil, false
		}
		h.renderError(c, err)
		return nil, false
	}
	return user, true
}

// renderError answers 500 with the error text inside the page shell.
func (h *Handler) renderError(c *gin.Context, err error) {
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.HTML(http.StatusInternalServerError, render.PageError, render.ErrorView{
		Title:   "Error",
		Message: err.Error(),
	})
}
