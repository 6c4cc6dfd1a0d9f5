package blockpress

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleAdmin serves the editor shell, or the login page while the
// session is not authenticated. The shell is a thin static page; all
// document state lives behind the /api routes.
func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return a.serveStatic(c, "static/login.html")
	}
	return a.serveStatic(c, "static/admin.html")
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return c.Redirect(http.StatusSeeOther, "/admin/?error=1")
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// requireAdmin guards the editor API.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		}
		return next(c)
	}
}
