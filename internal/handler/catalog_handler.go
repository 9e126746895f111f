package handler

import (
	"net/http"
	"strconv"

	"gamestore/internal/config"
	"gamestore/internal/domain/model"
	"gamestore/internal/middleware"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /gamesの公開API＋開発者・管理者のカタログ操作
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

type PublishGameRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Price       float64 `json:"price"`
}

type ApplyDiscountRequest struct {
	Percentage float64 `json:"percentage"`
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//公開API
	e.GET("/games", h.listGames)
	e.GET("/games/:id", h.getGame)

	//開発者のみ
	dev := e.Group("/developer/games")
	dev.Use(middleware.AuthJWT(cfg))
	dev.Use(middleware.RoleGuard(model.RoleDeveloper))
	dev.POST("", h.publishGame)
	dev.PUT("/:id", h.modifyGame)

	//管理者のみ
	adm := e.Group("/admin/games")
	adm.Use(middleware.AuthJWT(cfg))
	adm.Use(middleware.RoleGuard(model.RoleAdmin))
	adm.DELETE("/:id", h.deleteGame)
	adm.POST("/:id/discount", h.applyDiscount)
}

// 一覧。クエリパラメータで検索・並び替え・絞り込みを切り替える。
//   q=...            名前の部分一致
//   genre=...        ジャンルの完全一致
//   min_price/max_price  定価の範囲（両端含む）
//   sort=name|price_desc 並び替え
func (h *CatalogHandler) listGames(c echo.Context) error {
	ctx := c.Request().Context()

	if q := c.QueryParam("q"); q != "" {
		out, err := h.uc.SearchByName(ctx, q)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	if genre := c.QueryParam("genre"); genre != "" {
		out, err := h.uc.FilterByGenre(ctx, genre)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	minRaw, maxRaw := c.QueryParam("min_price"), c.QueryParam("max_price")
	if minRaw != "" || maxRaw != "" {
		minPrice, err := strconv.ParseFloat(minRaw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		maxPrice, err := strconv.ParseFloat(maxRaw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		out, err := h.uc.FilterByPriceRange(ctx, minPrice, maxPrice)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	switch c.QueryParam("sort") {
	case "name":
		out, err := h.uc.SortByNameAsc(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	case "price_desc":
		out, err := h.uc.SortByPriceDesc(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	case "":
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sort"})
	}

	out, err := h.uc.ListGames(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) getGame(c echo.Context) error {
	gameID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetGame(c.Request().Context(), gameID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) publishGame(c echo.Context) error {
	developerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PublishGameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.PublishGame(c.Request().Context(), developerID, usecase.PublishGameInput{
		Name:        req.Name,
		Description: req.Description,
		Genre:       req.Genre,
		Price:       req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CatalogHandler) modifyGame(c echo.Context) error {
	developerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	gameID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PublishGameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ModifyGame(c.Request().Context(), developerID, gameID, usecase.PublishGameInput{
		Name:        req.Name,
		Description: req.Description,
		Genre:       req.Genre,
		Price:       req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) deleteGame(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	gameID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteGame(c.Request().Context(), adminID, gameID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) applyDiscount(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	gameID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ApplyDiscountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ApplyDiscount(c.Request().Context(), adminID, gameID, req.Percentage)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
