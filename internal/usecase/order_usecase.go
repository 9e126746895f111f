package usecase

import (
	"context"
	"net/http"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
)

// OrderUsecaseは確定済み注文の参照だけを担当する。注文の作成はCheckoutUsecase。
type OrderUsecase struct {
	orders    repo.Store[model.Order]
	customers repo.Store[model.Customer]
}

func NewOrderUsecase(
	orders repo.Store[model.Order],
	customers repo.Store[model.Customer],
) *OrderUsecase {
	return &OrderUsecase{
		orders:    orders,
		customers: customers,
	}
}

// 全注文
func (u *OrderUsecase) All(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs, nil
}

// 指定カスタマーの注文だけを返す
func (u *OrderUsecase) ForCustomer(ctx context.Context, customerID int64) ([]OrderOutput, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid customer")
	}
	if _, err := u.customers.Get(ctx, customerID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid customer")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	outs := make([]OrderOutput, 0)
	for _, o := range orders {
		if o.CustomerID == customerID {
			outs = append(outs, toOrderOutput(o))
		}
	}
	return outs, nil
}

func (u *OrderUsecase) ByID(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := u.orders.Get(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return toOrderOutput(o), nil
}
