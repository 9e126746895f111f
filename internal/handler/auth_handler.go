package handler

import (
	"net/http"

	"gamestore/internal/config"
	"gamestore/internal/domain/model"
	"gamestore/internal/middleware"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /authのHTTP
type AuthHandler struct {
	uc *usecase.AccountUsecase
}

// DI
func NewAuthHandler(uc *usecase.AccountUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/signup", h.signUp)
	e.POST("/auth/login", h.logIn)

	g := e.Group("/auth")
	g.Use(middleware.AuthJWT(cfg))
	g.DELETE("/account", h.deleteAccount)

	//管理者による強制退会
	adm := e.Group("/admin/accounts")
	adm.Use(middleware.AuthJWT(cfg))
	adm.Use(middleware.RoleGuard(model.RoleAdmin))
	adm.DELETE("", h.deleteAnyAccount)
}

func (h *AuthHandler) signUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SignUp(c.Request().Context(), usecase.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) logIn(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.LogIn(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) deleteAccount(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	role, ok := getUserRoleFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), userID, model.Role(role)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) deleteAnyAccount(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email required"})
	}

	if err := h.uc.DeleteAnyAccount(c.Request().Context(), adminID, email); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
