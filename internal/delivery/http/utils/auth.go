package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/usecase"
)

type Auth interface {
	// Login проверяет пароль администратора и возвращает значение cookie сессии
	Login(password string) (string, error)
	CheckAuth(tokenString string) (*entity.AdminSession, error)
	CheckAuthFromContext(c echo.Context) (*entity.AdminSession, error)
	// RequireAdmin пропускает запрос дальше только с действующей сессией администратора
	RequireAdmin() echo.MiddlewareFunc
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAdminNotConfigured = errors.New("admin password not configured")
)

const adminSessionKey = "admin_session"

type jwtAdminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// AuthManager хранит признак входа администратора в подписанной cookie без срока действия.
// Ролей и серверных сессий нет: доступ либо есть целиком, либо его нет.
type AuthManager struct {
	secretKey []byte
	admin     usecase.Admin
}

func NewAuthManager(secretKey []byte, admin usecase.Admin) *AuthManager {
	return &AuthManager{
		secretKey: secretKey,
		admin:     admin,
	}
}

func (a *AuthManager) Login(password string) (string, error) {
	err := a.admin.Authenticate(password)
	switch {
	case errors.Is(err, usecase.ErrAdminNotConfigured):
		return "", ErrAdminNotConfigured
	case err != nil:
		return "", ErrUnauthorized
	}
	claims := jwtAdminClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secretKey)
}

// CheckAuth проверяет значение cookie и возвращает сессию администратора.
// Если подпись неверна или признака admin нет, возвращается ErrUnauthorized.
func (a *AuthManager) CheckAuth(tokenString string) (*entity.AdminSession, error) {
	claims := jwtAdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return a.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || !claims.Admin {
		return nil, ErrUnauthorized
	}
	session := &entity.AdminSession{Authenticated: true}
	if claims.IssuedAt != nil {
		since := claims.IssuedAt.Time
		session.Since = &since
	}
	return session, nil
}

func (a *AuthManager) CheckAuthFromContext(c echo.Context) (*entity.AdminSession, error) {
	cookie, err := c.Cookie(AdminCookieName)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return a.CheckAuth(cookie.Value)
}

func (a *AuthManager) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := a.CheckAuthFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Admin authentication required",
				})
			}
			c.Set(adminSessionKey, session)
			return next(c)
		}
	}
}

// AdminSessionFromContext возвращает сессию, положенную RequireAdmin
func AdminSessionFromContext(c echo.Context) (*entity.AdminSession, bool) {
	session, ok := c.Get(adminSessionKey).(*entity.AdminSession)
	return session, ok && session.Authenticated
}
