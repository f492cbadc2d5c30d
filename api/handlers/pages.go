package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agriprofit/agriprofit/internal/auth"
)

// PageHandler renders the HTML pages. The prediction page is gated on a
// valid auth cookie; everything else is public.
type PageHandler struct {
	authService *auth.Service
	cookieName  string
}

func NewPageHandler(authService *auth.Service, cookieName string) *PageHandler {
	return &PageHandler{authService: authService, cookieName: cookieName}
}

func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"title": "AgriProfit"})
}

func (h *PageHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{"title": "About"})
}

func (h *PageHandler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact"})
}

func (h *PageHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func (h *PageHandler) Register(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Register"})
}

func (h *PageHandler) Prediction(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err != nil || token == "" {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "prediction.html", gin.H{
		"title":    "Prediction",
		"username": claims.Username,
	})
}
