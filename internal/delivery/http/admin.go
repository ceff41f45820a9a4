package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"exampocket-backend/internal/delivery/http/utils"
	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/usecase"
)

type Admin struct {
	materialUseCase usecase.Material
	authManager     utils.Auth
	cookieManager   *utils.CookieManager
}

func NewAdmin(materialUseCase usecase.Material, authManager utils.Auth, cookieManager *utils.CookieManager) *Admin {
	return &Admin{
		materialUseCase: materialUseCase,
		authManager:     authManager,
		cookieManager:   cookieManager,
	}
}

// Configure регистрирует вход и выход. Управление материалами доступно только через protected.
func (h *Admin) Configure(server *echo.Group, protected *echo.Group) {
	server.POST("/auth", h.Login)
	server.POST("/logout", h.Logout)
	server.GET("/session", h.Session)

	protected.GET("/materials", h.ListMaterials)
	protected.DELETE("/materials/:id", h.DeleteMaterial)
	protected.GET("/stats", h.Stats)
}

func (h *Admin) Login(c echo.Context) error {
	request := &entity.AdminLoginRequest{}
	if err := utils.ReadJSON(c, request); err != nil {
		return utils.WriteError(c, http.StatusBadRequest, "Invalid request format")
	}
	token, err := h.authManager.Login(request.Password)
	switch {
	case errors.Is(err, utils.ErrAdminNotConfigured):
		c.Logger().Error("Пароль администратора не задан")
		return utils.WriteError(c, http.StatusInternalServerError, "Admin password not configured")
	case errors.Is(err, utils.ErrUnauthorized):
		return utils.WriteError(c, http.StatusUnauthorized, "Invalid password")
	case err != nil:
		c.Logger().Errorf("Ошибка при входе администратора: %v", err)
		return utils.WriteError(c, http.StatusInternalServerError, "Internal server error")
	}
	c.SetCookie(h.cookieManager.NewAdminCookie(token))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
	})
}

func (h *Admin) Logout(c echo.Context) error {
	c.SetCookie(h.cookieManager.ClearAdminCookie())
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
	})
}

func (h *Admin) Session(c echo.Context) error {
	session, err := h.authManager.CheckAuthFromContext(c)
	if err != nil {
		return c.JSON(http.StatusOK, entity.AdminSession{})
	}
	return c.JSON(http.StatusOK, session)
}

func (h *Admin) ListMaterials(c echo.Context) error {
	materials, err := h.materialUseCase.ListMaterials(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"materials": materials,
	})
}

func (h *Admin) DeleteMaterial(c echo.Context) error {
	id := c.Param("id")
	if err := h.materialUseCase.DeleteMaterial(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"id":     id,
	})
}

func (h *Admin) Stats(c echo.Context) error {
	stats, err := h.materialUseCase.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
