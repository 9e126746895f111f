package handler

import (
	"net/http"

	"gamestore/internal/config"
	"gamestore/internal/domain/model"
	"gamestore/internal/middleware"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP。カートIDはJWTのカスタマーIDから引く。
type CartHandler struct {
	uc       *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, checkout *usecase.CheckoutUsecase) *CartHandler {
	return &CartHandler{uc: uc, checkout: checkout}
}

type AddCartRequest struct {
	GameID int64 `json:"game_id"`
}

type CartTotalResponse struct {
	Total float64 `json:"total"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(model.RoleCustomer))

	g.GET("", h.getCart)
	g.GET("/total", h.getTotal)
	g.POST("/games", h.addGame)
	g.DELETE("/games/:id", h.removeGame)
	g.POST("/clear", h.clear)
	g.POST("/reset", h.reset)
	g.POST("/checkout", h.doCheckout)
}

// JWTのカスタマーIDからカートIDを解決する
func (h *CartHandler) cartID(c echo.Context) (int64, error) {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return 0, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return h.uc.CartIDFor(c.Request().Context(), customerID)
}

func (h *CartHandler) getCart(c echo.Context) error {
	cartID, err := h.cartID(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.GetCart(c.Request().Context(), cartID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) getTotal(c echo.Context) error {
	cartID, err := h.cartID(c)
	if err != nil {
		return writeError(c, err)
	}

	total, err := h.uc.TotalPrice(c.Request().Context(), cartID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CartTotalResponse{Total: total})
}

func (h *CartHandler) addGame(c echo.Context) error {
	cartID, err := h.cartID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddGame(c.Request().Context(), cartID, req.GameID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeGame(c echo.Context) error {
	cartID, err := h.cartID(c)
	if err != nil {
		return writeError(c, err)
	}

	gameID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.RemoveGame(c.Request().Context(), cartID, gameID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	cartID, err := h.cartID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Clear(c.Request().Context(), cartID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) reset(c echo.Context) error {
	cartID, err := h.cartID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Reset(c.Request().Context(), cartID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) doCheckout(c echo.Context) error {
	cartID, err := h.cartID(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.checkout.Checkout(c.Request().Context(), cartID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
