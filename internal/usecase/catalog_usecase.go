package usecase

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
)

// CatalogUsecaseはゲーム一覧の管理と検索・並び替え・絞り込みを担当する。
type CatalogUsecase struct {
	games      repo.Store[model.Game]
	discounts  repo.Store[model.Discount]
	developers repo.Store[model.Developer]
}

func NewCatalogUsecase(
	games repo.Store[model.Game],
	discounts repo.Store[model.Discount],
	developers repo.Store[model.Developer],
) *CatalogUsecase {
	return &CatalogUsecase{
		games:      games,
		discounts:  discounts,
		developers: developers,
	}
}

type GameOutput struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Genre           model.Genre `json:"genre"`
	Price           float64     `json:"price"`
	DiscountedPrice float64     `json:"discounted_price"`
}

type PublishGameInput struct {
	Name        string
	Description string
	Genre       string
	Price       float64
}

// ゲームを公開する。名前はカタログ全体で一意（大文字小文字は区別しない）。
func (u *CatalogUsecase) PublishGame(ctx context.Context, developerID int64, in PublishGameInput) (GameOutput, error) {
	if developerID <= 0 {
		return GameOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	developer, err := u.developers.Get(ctx, developerID)
	if err == repo.ErrNotFound {
		return GameOutput{}, NewHTTPError(http.StatusNotFound, "developer not found")
	}
	if err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	game, err := u.buildGame(ctx, 0, in)
	if err != nil {
		return GameOutput{}, err
	}

	id, err := repo.NextID(ctx, u.games)
	if err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	game.ID = id

	if err := u.games.Create(ctx, game); err != nil {
		if err == repo.ErrDuplicateID {
			return GameOutput{}, NewHTTPError(http.StatusConflict, "game already exists")
		}
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	developer.PublishedGameIDs = append(developer.PublishedGameIDs, game.ID)
	if err := u.developers.Update(ctx, developer); err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	return toGameOutput(game), nil
}

// 自分が公開したゲームだけ編集できる
func (u *CatalogUsecase) ModifyGame(ctx context.Context, developerID int64, gameID int64, in PublishGameInput) (GameOutput, error) {
	if developerID <= 0 {
		return GameOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	developer, err := u.developers.Get(ctx, developerID)
	if err == repo.ErrNotFound {
		return GameOutput{}, NewHTTPError(http.StatusNotFound, "developer not found")
	}
	if err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	if !developer.HasPublished(gameID) {
		return GameOutput{}, NewHTTPError(http.StatusForbidden, "not your game")
	}

	current, err := u.games.Get(ctx, gameID)
	if err == repo.ErrNotFound {
		return GameOutput{}, NewHTTPError(http.StatusNotFound, "game not found")
	}
	if err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	updated, err := u.buildGame(ctx, gameID, in)
	if err != nil {
		return GameOutput{}, err
	}
	updated.ID = current.ID
	updated.Discount = current.Discount
	updated.ReviewIDs = current.ReviewIDs

	if err := u.games.Update(ctx, updated); err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return toGameOutput(updated), nil
}

// 管理者によるゲーム削除。過去の注文・レビューに残る参照はそのまま
// （ひも付けの後始末はしない）。
func (u *CatalogUsecase) DeleteGame(ctx context.Context, adminUserID int64, gameID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if _, err := u.games.Get(ctx, gameID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "game not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "store error")
	}

	if err := u.games.Delete(ctx, gameID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return nil
}

// 管理者がゲームへ割引を設定する。割引はゲームと1:1で、2回目以降は差し替え。
func (u *CatalogUsecase) ApplyDiscount(ctx context.Context, adminUserID int64, gameID int64, percentage float64) (GameOutput, error) {
	if adminUserID <= 0 {
		return GameOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if percentage < 0 || percentage > 100 {
		return GameOutput{}, NewHTTPError(http.StatusBadRequest, "percentage must be between 0 and 100")
	}

	game, err := u.games.Get(ctx, gameID)
	if err == repo.ErrNotFound {
		return GameOutput{}, NewHTTPError(http.StatusNotFound, "game not found")
	}
	if err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	discount := model.Discount{ID: gameID, Percentage: percentage}

	err = u.discounts.Create(ctx, discount)
	if err == repo.ErrDuplicateID {
		err = u.discounts.Update(ctx, discount)
	}
	if err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	game.Discount = &discount
	if err := u.games.Update(ctx, game); err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return toGameOutput(game), nil
}

func (u *CatalogUsecase) GetGame(ctx context.Context, gameID int64) (GameOutput, error) {
	if gameID <= 0 {
		return GameOutput{}, NewHTTPError(http.StatusBadRequest, "invalid game id")
	}

	game, err := u.games.Get(ctx, gameID)
	if err == repo.ErrNotFound {
		return GameOutput{}, NewHTTPError(http.StatusNotFound, "game not found")
	}
	if err != nil {
		return GameOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return toGameOutput(game), nil
}

func (u *CatalogUsecase) ListGames(ctx context.Context) ([]GameOutput, error) {
	games, err := u.games.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return toGameOutputs(games), nil
}

// 名前の部分一致（大文字小文字を区別しない）
func (u *CatalogUsecase) SearchByName(ctx context.Context, name string) ([]GameOutput, error) {
	games, err := u.games.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	matched := make([]model.Game, 0)
	for _, g := range games {
		if strings.Contains(strings.ToLower(g.Name), needle) {
			matched = append(matched, g)
		}
	}
	return toGameOutputs(matched), nil
}

// 名前の昇順
func (u *CatalogUsecase) SortByNameAsc(ctx context.Context) ([]GameOutput, error) {
	games, err := u.games.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	sort.Slice(games, func(i, j int) bool {
		return strings.ToLower(games[i].Name) < strings.ToLower(games[j].Name)
	})
	return toGameOutputs(games), nil
}

// 定価の降順
func (u *CatalogUsecase) SortByPriceDesc(ctx context.Context) ([]GameOutput, error) {
	games, err := u.games.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Price > games[j].Price
	})
	return toGameOutputs(games), nil
}

// ジャンルの完全一致
func (u *CatalogUsecase) FilterByGenre(ctx context.Context, genre string) ([]GameOutput, error) {
	if strings.TrimSpace(genre) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "genre required")
	}
	g, ok := model.ParseGenre(strings.ToUpper(strings.TrimSpace(genre)))
	if !ok {
		return nil, NewHTTPError(http.StatusBadRequest, "unknown genre")
	}

	games, err := u.games.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	matched := make([]model.Game, 0)
	for _, game := range games {
		if game.Genre == g {
			matched = append(matched, game)
		}
	}
	return toGameOutputs(matched), nil
}

// 定価の範囲絞り込み（両端を含む）
func (u *CatalogUsecase) FilterByPriceRange(ctx context.Context, minPrice float64, maxPrice float64) ([]GameOutput, error) {
	if minPrice < 0 || maxPrice < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if minPrice > maxPrice {
		return nil, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}

	games, err := u.games.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	matched := make([]model.Game, 0)
	for _, g := range games {
		if g.Price >= minPrice && g.Price <= maxPrice {
			matched = append(matched, g)
		}
	}
	return toGameOutputs(matched), nil
}

// 入力検証と名前の一意チェック。selfIDは編集時の自分自身の除外用。
func (u *CatalogUsecase) buildGame(ctx context.Context, selfID int64, in PublishGameInput) (model.Game, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Game{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Game{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	genre, ok := model.ParseGenre(strings.ToUpper(strings.TrimSpace(in.Genre)))
	if !ok {
		return model.Game{}, NewHTTPError(http.StatusBadRequest, "unknown genre")
	}

	all, err := u.games.List(ctx)
	if err != nil {
		return model.Game{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	for _, g := range all {
		if g.ID != selfID && strings.EqualFold(g.Name, name) {
			return model.Game{}, NewHTTPError(http.StatusConflict, "a game with this name already exists")
		}
	}

	return model.Game{
		Name:        name,
		Description: in.Description,
		Genre:       genre,
		Price:       in.Price,
	}, nil
}

func toGameOutput(g model.Game) GameOutput {
	return GameOutput{
		ID:              g.ID,
		Name:            g.Name,
		Description:     g.Description,
		Genre:           g.Genre,
		Price:           g.Price,
		DiscountedPrice: g.DiscountedPrice(),
	}
}

func toGameOutputs(games []model.Game) []GameOutput {
	outs := make([]GameOutput, 0, len(games))
	for _, g := range games {
		outs = append(outs, toGameOutput(g))
	}
	return outs
}
