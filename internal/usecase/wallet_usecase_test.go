package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"gamestore/internal/domain/model"
	infraRepo "gamestore/internal/infra/repository"
	"gamestore/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func newWalletFixture(t *testing.T) (*usecase.WalletUsecase, *infraRepo.MemoryStores) {
	t.Helper()
	ctx := context.Background()
	stores := newStores()

	assert.NoError(t, stores.Games().Create(ctx, model.Game{
		ID: 10, Name: "Portal", Genre: model.GenrePuzzle, Price: 9.99,
	}))
	assert.NoError(t, stores.Customers().Create(ctx, model.Customer{
		User:           model.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleCustomer},
		Wallet:         10,
		LibraryGameIDs: []int64{10},
		CartID:         1,
	}))

	uc := usecase.NewWalletUsecase(stores.Customers(), stores.Payments(), stores.Games())
	return uc, stores
}

func TestWalletUsecase_AddFunds_Accumulates(t *testing.T) {
	ctx := context.Background()
	uc, stores := newWalletFixture(t)

	out, err := uc.AddFunds(ctx, 1, usecase.AddFundsInput{Method: "VISA", Amount: 25})
	assert.NoError(t, err)
	assert.InDelta(t, 35, out.Balance, 1e-9)

	out, err = uc.AddFunds(ctx, 1, usecase.AddFundsInput{Method: "PAYPAL", Amount: 5})
	assert.NoError(t, err)
	assert.InDelta(t, 40, out.Balance, 1e-9)

	//入金履歴も残る
	payments, err := stores.Payments().List(ctx)
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestWalletUsecase_AddFunds_Validation(t *testing.T) {
	ctx := context.Background()
	uc, _ := newWalletFixture(t)

	_, err := uc.AddFunds(ctx, 1, usecase.AddFundsInput{Method: "", Amount: 25})
	assertHTTPError(t, err, http.StatusBadRequest, "method")

	_, err = uc.AddFunds(ctx, 1, usecase.AddFundsInput{Method: "VISA", Amount: 0})
	assertHTTPError(t, err, http.StatusBadRequest, "amount")

	_, err = uc.AddFunds(ctx, 1, usecase.AddFundsInput{Method: "VISA", Amount: -5})
	assertHTTPError(t, err, http.StatusBadRequest, "amount")
}

func TestWalletUsecase_AddFunds_CustomerNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newWalletFixture(t)

	_, err := uc.AddFunds(ctx, 999, usecase.AddFundsInput{Method: "VISA", Amount: 25})
	assertHTTPError(t, err, http.StatusNotFound, "customer not found")
}

func TestWalletUsecase_Balance(t *testing.T) {
	ctx := context.Background()
	uc, _ := newWalletFixture(t)

	out, err := uc.Balance(ctx, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 10, out.Balance, 1e-9)

	_, err = uc.Balance(ctx, 999)
	assertHTTPError(t, err, http.StatusNotFound, "customer not found")
}

func TestWalletUsecase_Library(t *testing.T) {
	ctx := context.Background()
	uc, _ := newWalletFixture(t)

	out, err := uc.Library(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Portal", out[0].Name)
}

// ライブラリはIDの参照なので、カタログ編集後の内容で返る
func TestWalletUsecase_Library_ReflectsCatalogEdits(t *testing.T) {
	ctx := context.Background()
	uc, stores := newWalletFixture(t)

	game, err := stores.Games().Get(ctx, 10)
	assert.NoError(t, err)
	game.Name = "Portal 2"
	game.Price = 14.99
	assert.NoError(t, stores.Games().Update(ctx, game))

	out, err := uc.Library(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Portal 2", out[0].Name)
	assert.InDelta(t, 14.99, out[0].Price, 1e-9)
}
