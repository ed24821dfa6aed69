package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Срок жизни cookie темы — 30 дней
const themeCookieMaxAge = 30 * 24 * 3600

// PageHandler содержит обработчики статических страниц и переключения темы
type PageHandler struct{}

// NewPageHandler создает новый экземпляр PageHandler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home отображает главную страницу
func (h *PageHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "home.html", gin.H{})
}

// SetTheme устанавливает cookie темы и возвращает на страницу, с которой пришли
func (h *PageHandler) SetTheme(c *gin.Context) {
	theme := c.Param("theme")
	if theme != ThemeDark {
		theme = ThemeLight
	}

	c.SetCookie("theme", theme, themeCookieMaxAge, "/", "", false, false)

	target := c.Request.Referer()
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusFound, target)
}
