package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
)

// WalletUsecaseはウォレット残高と所持ゲームの参照を担当する。
// 入金は残高加算のみで、外部決済との連携はしない。
type WalletUsecase struct {
	customers repo.Store[model.Customer]
	payments  repo.Store[model.PaymentMethod]
	games     repo.Store[model.Game]
}

func NewWalletUsecase(
	customers repo.Store[model.Customer],
	payments repo.Store[model.PaymentMethod],
	games repo.Store[model.Game],
) *WalletUsecase {
	return &WalletUsecase{
		customers: customers,
		payments:  payments,
		games:     games,
	}
}

type AddFundsInput struct {
	Method string
	Amount float64
}

type WalletResponse struct {
	Balance float64 `json:"balance"`
}

func (u *WalletUsecase) AddFunds(ctx context.Context, customerID int64, in AddFundsInput) (WalletResponse, error) {
	if customerID <= 0 {
		return WalletResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Method) == "" {
		return WalletResponse{}, NewHTTPError(http.StatusBadRequest, "payment method required")
	}
	if in.Amount <= 0 {
		return WalletResponse{}, NewHTTPError(http.StatusBadRequest, "amount must be > 0")
	}

	customer, err := u.customers.Get(ctx, customerID)
	if err == repo.ErrNotFound {
		return WalletResponse{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return WalletResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	id, err := repo.NextID(ctx, u.payments)
	if err != nil {
		return WalletResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	payment := model.PaymentMethod{
		ID:         id,
		CustomerID: customerID,
		Method:     strings.TrimSpace(in.Method),
		Amount:     in.Amount,
		CreatedAt:  time.Now(),
	}
	if err := u.payments.Create(ctx, payment); err != nil {
		return WalletResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	customer.Wallet += in.Amount
	if err := u.customers.Update(ctx, customer); err != nil {
		return WalletResponse{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	return WalletResponse{Balance: customer.Wallet}, nil
}

func (u *WalletUsecase) Balance(ctx context.Context, customerID int64) (WalletResponse, error) {
	customer, err := u.getCustomer(ctx, customerID)
	if err != nil {
		return WalletResponse{}, err
	}
	return WalletResponse{Balance: customer.Wallet}, nil
}

// 所持ゲームの一覧。ライブラリはIDしか持たないので、
// 名前や価格はカタログの現在内容で返す。削除済みは読み飛ばす。
func (u *WalletUsecase) Library(ctx context.Context, customerID int64) ([]GameOutput, error) {
	customer, err := u.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	games := make([]model.Game, 0, len(customer.LibraryGameIDs))
	for _, id := range customer.LibraryGameIDs {
		game, err := u.games.Get(ctx, id)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "store error")
		}
		games = append(games, game)
	}
	return toGameOutputs(games), nil
}

func (u *WalletUsecase) getCustomer(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	customer, err := u.customers.Get(ctx, customerID)
	if err == repo.ErrNotFound {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return customer, nil
}
