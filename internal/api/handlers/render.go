package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Темы оформления
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// currentTheme читает тему из cookie; по умолчанию светлая
func currentTheme(c *gin.Context) string {
	theme, err := c.Cookie("theme")
	if err != nil || theme != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// render отображает страницу, добавляя тему и одноразовые flash-сообщения
func render(c *gin.Context, status int, name string, data gin.H) {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) > 0 {
		_ = session.Save()
	}

	theme := currentTheme(c)
	data["Theme"] = theme
	data["ThemeCSS"] = theme + ".css"
	data["Flashes"] = flashes

	c.HTML(status, name, data)
}

// flashAndRedirect сохраняет flash-сообщение и перенаправляет на location.
// Redirect после успешного POST защищает от повторной отправки формы.
func flashAndRedirect(c *gin.Context, message, location string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()

	c.Redirect(http.StatusFound, location)
}
