package usecase

import (
	"context"
	"net/http"
	"time"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
)

// CheckoutUsecaseはカートの中身を注文へ確定する。
// 残高検証→残高減算→ライブラリ移動→注文作成→カートのCHECKED_OUT化を
// 1つのWithinTxで実行する。DBバックエンドなら全体が1トランザクション、
// メモリバックエンドでは途中失敗で部分更新が残り得る（回復は呼び出し側）。
type CheckoutUsecase struct {
	tx repo.TxManager
}

func NewCheckoutUsecase(tx repo.TxManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

type OrderGameOutput struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	CustomerID int64             `json:"customer_id"`
	TotalPrice float64           `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
	Games      []OrderGameOutput `json:"games"`
}

func (u *CheckoutUsecase) Checkout(ctx context.Context, cartID int64) (OrderOutput, error) {
	if cartID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(s repo.Stores) error {
		cart, err := s.Carts().Get(ctx, cartID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "shopping cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}

		if len(cart.GameIDs) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		customer, err := s.Customers().Get(ctx, cart.CustomerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "no customer associated with this cart")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}

		// カートはIDしか持たないので、精算時点のカタログ内容に引き直す。
		// カート投入後の割引や価格改定はここで効く。削除済みは読み飛ばす。
		games := make([]model.Game, 0, len(cart.GameIDs))
		for _, id := range cart.GameIDs {
			game, err := s.Games().Get(ctx, id)
			if err == repo.ErrNotFound {
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "store error")
			}
			games = append(games, game)
		}
		if len(games) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		// 精算は割引後の価格で行う
		var total float64
		for _, g := range games {
			total += g.DiscountedPrice()
		}

		// 残高不足ならここで打ち切り。状態は一切変えない。
		if customer.Wallet < total {
			return NewHTTPError(http.StatusPaymentRequired, "insufficient funds")
		}

		customer.Wallet -= total
		for _, g := range games {
			customer.LibraryGameIDs = append(customer.LibraryGameIDs, g.ID)
		}

		orderID, err := repo.NextID(ctx, s.Orders())
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}

		// 注文だけは精算時点の値コピーを保存する。以後のカタログ編集の影響を受けない。
		order := model.Order{
			ID:         orderID,
			CustomerID: customer.ID,
			Games:      games,
			TotalPrice: total,
			CreatedAt:  time.Now(),
		}
		if err := s.Orders().Create(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}

		cart.GameIDs = nil
		cart.Status = model.CartStatusCheckedOut

		if err := s.Customers().Update(ctx, customer); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}
		if err := s.Carts().Update(ctx, cart); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}

		out = toOrderOutput(order)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	games := make([]OrderGameOutput, 0, len(o.Games))
	for _, g := range o.Games {
		games = append(games, OrderGameOutput{
			ID:    g.ID,
			Name:  g.Name,
			Price: g.DiscountedPrice(),
		})
	}
	return OrderOutput{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		Games:      games,
	}
}
