package middleware

import (
	"net/http"

	"gamestore/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleが指定ロールかどうかを確認します。

func RoleGuard(required model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != string(required) {
				return c.JSON(http.StatusForbidden, errorJSON(string(required)+" only"))
			}

			return next(c)
		}
	}
}
