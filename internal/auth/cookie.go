package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// SetTokenCookie writes the session cookie. Secure and SameSite=Lax are
// only set in production so local http development keeps working.
func SetTokenCookie(c echo.Context, token string, maxAge time.Duration, production bool) {
	c.SetCookie(tokenCookie(token, int(maxAge.Seconds()), production))
}

// ClearTokenCookie expires the session cookie on the client.
func ClearTokenCookie(c echo.Context, production bool) {
	cookie := tokenCookie("", -1, production)
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
}

func tokenCookie(value string, maxAge int, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	}
	if production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteLaxMode
	}
	return cookie
}
