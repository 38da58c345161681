package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seatapp-web/internal/render"
)

// Home handles GET /.
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, render.PageHome, nil)
}

// LoginForm handles GET /login.
func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, render.PageLogin, render.DefaultLoginForm)
}

// Health reports that this process is serving. It does not call upstream.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound renders unknown paths inside the page shell.
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, render.PageError, render.ErrorView{
		Title:   "Not found",
		Message: c.Request.URL.Path,
	})
}

// TooManyRequests is the page shown by the login rate limiter.
func (h *Handler) TooManyRequests(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, render.PageError, render.ErrorView{
		Title:   "Too many requests",
		Message: "Too many login attempts. Try again in a moment.",
	})
}
