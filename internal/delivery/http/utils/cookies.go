package utils

import (
	"net/http"
	"time"
)

const AdminCookieName = "admin_session"

// adminCookieMaxAge - у признака входа нет срока действия, cookie живёт до выхода
const adminCookieMaxAge = 10 * 365 * 24 * time.Hour

type CookieManager struct {
	secureCookies bool
}

func NewCookieManager(secureCookies bool) *CookieManager {
	return &CookieManager{secureCookies: secureCookies}
}

func (c *CookieManager) NewAdminCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(adminCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *CookieManager) ClearAdminCookie() *http.Cookie {
	return &http.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
