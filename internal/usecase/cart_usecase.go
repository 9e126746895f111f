package usecase

import (
	"context"
	"net/http"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
)

// CartUsecaseはカートの状態遷移と明細の増減を担当する。
// カートはゲームIDしか持たないので、表示や合計のたびにカタログを引き直す。
// チェックアウト本体はCheckoutUsecase。
type CartUsecase struct {
	carts     repo.Store[model.Cart]
	games     repo.Store[model.Game]
	customers repo.Store[model.Customer]
}

func NewCartUsecase(
	carts repo.Store[model.Cart],
	games repo.Store[model.Game],
	customers repo.Store[model.Customer],
) *CartUsecase {
	return &CartUsecase{
		carts:     carts,
		games:     games,
		customers: customers,
	}
}

type CartGameResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CartResponse struct {
	ID     int64              `json:"id"`
	Status model.CartStatus   `json:"status"`
	Games  []CartGameResponse `json:"games"`
}

// カスタマーIDからカートIDを引く
func (u *CartUsecase) CartIDFor(ctx context.Context, customerID int64) (int64, error) {
	if customerID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	customer, err := u.customers.Get(ctx, customerID)
	if err == repo.ErrNotFound {
		return 0, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return customer.CartID, nil
}

func (u *CartUsecase) GetCart(ctx context.Context, cartID int64) (CartResponse, error) {
	cart, err := u.getCart(ctx, cartID)
	if err != nil {
		return CartResponse{}, err
	}
	return u.toCartResponse(ctx, cart)
}

// カートにゲームを追加する。
// 所持済み・カート内重複・存在しないゲームは受け付けない。
// CHECKED_OUTのカートは中身を空にしてACTIVEへ戻してから追加する。
func (u *CartUsecase) AddGame(ctx context.Context, cartID int64, gameID int64) (CartResponse, error) {
	cart, err := u.getCart(ctx, cartID)
	if err != nil {
		return CartResponse{}, err
	}

	customer, err := u.customers.Get(ctx, cart.CustomerID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	if customer.OwnsGame(gameID) {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "game already in library")
	}
	if cart.Contains(gameID) {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "game already in cart")
	}

	// チェックアウト済みカートは次の追加で自動的に再利用する
	if cart.Status == model.CartStatusCheckedOut {
		cart.Status = model.CartStatusActive
		cart.GameIDs = nil
		if err := u.carts.Update(ctx, cart); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}
	}

	if _, err := u.games.Get(ctx, gameID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "game not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	cart.GameIDs = append(cart.GameIDs, gameID)
	if err := u.carts.Update(ctx, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	return u.toCartResponse(ctx, cart)
}

// カートからゲームを外す
func (u *CartUsecase) RemoveGame(ctx context.Context, cartID int64, gameID int64) (CartResponse, error) {
	cart, err := u.getCart(ctx, cartID)
	if err != nil {
		return CartResponse{}, err
	}

	removed := false
	kept := cart.GameIDs[:0]
	for _, id := range cart.GameIDs {
		if id == gameID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "game not in cart")
	}

	cart.GameIDs = kept
	if err := u.carts.Update(ctx, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return u.toCartResponse(ctx, cart)
}

// カート内の定価合計。カタログの現在価格で数えるので、
// カート投入後の値上げ・値下げはここにも反映される。
// チェックアウトは割引後で精算するが、ここは昔から定価合計のまま。
func (u *CartUsecase) TotalPrice(ctx context.Context, cartID int64) (float64, error) {
	cart, err := u.getCart(ctx, cartID)
	if err != nil {
		return 0, err
	}

	games, err := u.resolveGames(ctx, cart.GameIDs)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, g := range games {
		total += g.Price
	}
	return total, nil
}

// ACTIVEなカートの中身を空にする
func (u *CartUsecase) Clear(ctx context.Context, cartID int64) error {
	cart, err := u.getCart(ctx, cartID)
	if err != nil {
		return err
	}

	if cart.Status != model.CartStatusActive {
		return NewHTTPError(http.StatusConflict, "cannot clear a checked-out cart")
	}

	cart.GameIDs = nil
	if err := u.carts.Update(ctx, cart); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return nil
}

// CHECKED_OUTのカートを空のACTIVEへ戻す
func (u *CartUsecase) Reset(ctx context.Context, cartID int64) error {
	cart, err := u.getCart(ctx, cartID)
	if err != nil {
		return err
	}

	if cart.Status != model.CartStatusCheckedOut {
		return NewHTTPError(http.StatusConflict, "cart is already active")
	}

	cart.GameIDs = nil
	cart.Status = model.CartStatusActive
	if err := u.carts.Update(ctx, cart); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return nil
}

func (u *CartUsecase) getCart(ctx context.Context, cartID int64) (model.Cart, error) {
	if cartID <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid cart id")
	}
	cart, err := u.carts.Get(ctx, cartID)
	if err == repo.ErrNotFound {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "shopping cart not found")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return cart, nil
}

// IDの列をカタログの現在内容に引き直す。削除済みのゲームは読み飛ばす。
func (u *CartUsecase) resolveGames(ctx context.Context, gameIDs []int64) ([]model.Game, error) {
	games := make([]model.Game, 0, len(gameIDs))
	for _, id := range gameIDs {
		game, err := u.games.Get(ctx, id)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "store error")
		}
		games = append(games, game)
	}
	return games, nil
}

func (u *CartUsecase) toCartResponse(ctx context.Context, cart model.Cart) (CartResponse, error) {
	resolved, err := u.resolveGames(ctx, cart.GameIDs)
	if err != nil {
		return CartResponse{}, err
	}

	games := make([]CartGameResponse, 0, len(resolved))
	for _, g := range resolved {
		games = append(games, CartGameResponse{
			ID:    g.ID,
			Name:  g.Name,
			Price: g.Price,
		})
	}
	return CartResponse{
		ID:     cart.ID,
		Status: cart.Status,
		Games:  games,
	}, nil
}
