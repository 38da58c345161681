package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seatapp-web/internal/logging"
	"seatapp-web/internal/render"
	"seatapp-web/internal/upstream"
)

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Login handles POST /login. Credentials are forwarded as-is; the upstream
// decides whether they are acceptable.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, render.PageError, render.ErrorView{
			Title:   "Bad request",
			Message: err.Error(),
		})
		return
	}

	cookies, err := h.upstream.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if body, ok := upstream.StatusBody(err); ok {
			c.HTML(http.StatusUnauthorized, render.PageLoginFailed, render.LoginFailed{Detail: body})
			return
		}
		h.renderError(c, err)
		return
	}

	for _, cookie := range cookies {
		if v := upstream.SetCookieHeader(cookie); v != "" {
			c.Writer.Header().Add("Set-Cookie", v)
		}
	}
	c.Redirect(http.StatusFound, "/map")
}

// Logout handles GET /logout. The upstream answer is not shown to the user:
// the local cookie is always cleared and the browser sent home.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.upstream.Logout(c.Request.Context(), cookieHeader(c)); err != nil {
		logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("upstream logout failed")
	}

	http.SetCookie(c.Writer, upstream.ExpiredCookie(h.sessionCookie))
	c.Redirect(http.StatusFound, "/")
}
