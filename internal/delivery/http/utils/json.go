package utils

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
)

func ReadJSON(c echo.Context, v any) error {
	return json.NewDecoder(c.Request().Body).Decode(v)
}

// WriteError отдаёт ошибку в едином формате {"error": "..."}
func WriteError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"error": message,
	})
}
