package handler

import (
	"net/http"

	"gamestore/internal/config"
	"gamestore/internal/domain/model"
	"gamestore/internal/middleware"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /ordersのHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(model.RoleCustomer))
	g.GET("", h.listMyOrders)
	g.GET("/:id", h.getOrder)

	adm := e.Group("/admin/orders")
	adm.Use(middleware.AuthJWT(cfg))
	adm.Use(middleware.RoleGuard(model.RoleAdmin))
	adm.GET("", h.listAllOrders)
}

func (h *OrderHandler) listMyOrders(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ForCustomer(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) getOrder(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ByID(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}

	//他人の注文は「存在しない扱い」にする
	if out.CustomerID != customerID {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listAllOrders(c echo.Context) error {
	out, err := h.uc.All(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
