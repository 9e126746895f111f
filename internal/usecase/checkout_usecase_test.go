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

// ウォレット残高walletのカスタマー（ID=1、カートID=1）を作る。
// カートには50ドル・20%引きのゲーム1本（精算額40）が入っている。
func newCheckoutFixture(t *testing.T, wallet float64) (*usecase.CheckoutUsecase, *infraRepo.MemoryStores) {
	t.Helper()
	ctx := context.Background()
	stores := newStores()

	game := model.Game{
		ID:       11,
		Name:     "Elden Ring",
		Genre:    model.GenreRPG,
		Price:    50,
		Discount: &model.Discount{ID: 11, Percentage: 20},
	}
	assert.NoError(t, stores.Games().Create(ctx, game))

	assert.NoError(t, stores.Customers().Create(ctx, model.Customer{
		User:   model.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleCustomer},
		Wallet: wallet,
		CartID: 1,
	}))
	assert.NoError(t, stores.Carts().Create(ctx, model.Cart{
		ID:         1,
		CustomerID: 1,
		Status:     model.CartStatusActive,
		GameIDs:    []int64{game.ID},
	}))

	uc := usecase.NewCheckoutUsecase(infraRepo.NewMemoryTxManager(stores))
	return uc, stores
}

// 割引後の合計で精算されること（定価50、20%引き→40）
func TestCheckoutUsecase_Checkout_SettlesDiscountedTotal(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 100)

	out, err := uc.Checkout(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.InDelta(t, 40, out.TotalPrice, 1e-9)

	customer, err := stores.Customers().Get(ctx, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 60, customer.Wallet, 1e-9)
	assert.True(t, customer.OwnsGame(11))

	cart, err := stores.Carts().Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, model.CartStatusCheckedOut, cart.Status)
	assert.Empty(t, cart.GameIDs)
}

// 残高ちょうどでも通る
func TestCheckoutUsecase_Checkout_ExactBalanceSucceeds(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 40)

	_, err := uc.Checkout(ctx, 1)
	assert.NoError(t, err)

	customer, err := stores.Customers().Get(ctx, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 0, customer.Wallet, 1e-9)
}

// 1セント足りなければ402。カートもウォレットもライブラリも動かない。
func TestCheckoutUsecase_Checkout_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 39.99)

	_, err := uc.Checkout(ctx, 1)
	assertHTTPError(t, err, http.StatusPaymentRequired, "insufficient funds")

	customer, err := stores.Customers().Get(ctx, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 39.99, customer.Wallet, 1e-9)
	assert.Empty(t, customer.LibraryGameIDs)

	cart, err := stores.Carts().Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, model.CartStatusActive, cart.Status)
	assert.Len(t, cart.GameIDs, 1)

	orders, err := stores.Orders().List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutUsecase_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 100)

	cart, err := stores.Carts().Get(ctx, 1)
	assert.NoError(t, err)
	cart.GameIDs = nil
	assert.NoError(t, stores.Carts().Update(ctx, cart))

	_, err = uc.Checkout(ctx, 1)
	assertHTTPError(t, err, http.StatusBadRequest, "cart is empty")
}

// 中身が全部削除済みになったカートも空扱い
func TestCheckoutUsecase_Checkout_AllGamesDeleted(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 100)

	assert.NoError(t, stores.Games().Delete(ctx, 11))

	_, err := uc.Checkout(ctx, 1)
	assertHTTPError(t, err, http.StatusBadRequest, "cart is empty")

	orders, err := stores.Orders().List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutUsecase_Checkout_CartNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCheckoutFixture(t, 100)

	_, err := uc.Checkout(ctx, 999)
	assertHTTPError(t, err, http.StatusNotFound, "cart not found")
}

func TestCheckoutUsecase_Checkout_OrphanCart(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 100)

	assert.NoError(t, stores.Customers().Delete(ctx, 1))

	_, err := uc.Checkout(ctx, 1)
	assertHTTPError(t, err, http.StatusNotFound, "no customer associated")
}

// カート投入後に付いた割引は精算に反映される。
// 定価50・残高40でも、20%引きが始まっていれば通る。
func TestCheckoutUsecase_Checkout_DiscountAfterAddToCartIsHonored(t *testing.T) {
	ctx := context.Background()
	stores := newStores()

	//割引なしの定価50をカートに入れた状態
	assert.NoError(t, stores.Games().Create(ctx, model.Game{
		ID: 11, Name: "Elden Ring", Genre: model.GenreRPG, Price: 50,
	}))
	assert.NoError(t, stores.Customers().Create(ctx, model.Customer{
		User:   model.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleCustomer},
		Wallet: 40,
		CartID: 1,
	}))
	assert.NoError(t, stores.Carts().Create(ctx, model.Cart{
		ID: 1, CustomerID: 1, Status: model.CartStatusActive, GameIDs: []int64{11},
	}))

	//あとからセールが始まる
	game, err := stores.Games().Get(ctx, 11)
	assert.NoError(t, err)
	game.Discount = &model.Discount{ID: 11, Percentage: 20}
	assert.NoError(t, stores.Games().Update(ctx, game))

	uc := usecase.NewCheckoutUsecase(infraRepo.NewMemoryTxManager(stores))

	out, err := uc.Checkout(ctx, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 40, out.TotalPrice, 1e-9)

	customer, err := stores.Customers().Get(ctx, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 0, customer.Wallet, 1e-9)
	assert.True(t, customer.OwnsGame(11))
}

// カート投入後の値上げも精算に反映される
func TestCheckoutUsecase_Checkout_PriceRaiseAfterAddToCartIsCharged(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 40)

	//40で足りていたはずが、値上げで割引後48になる
	game, err := stores.Games().Get(ctx, 11)
	assert.NoError(t, err)
	game.Price = 60
	assert.NoError(t, stores.Games().Update(ctx, game))

	_, err = uc.Checkout(ctx, 1)
	assertHTTPError(t, err, http.StatusPaymentRequired, "insufficient funds")
}

// 注文は精算時点の値コピー。後からカタログを書き換えても過去の注文は変わらない。
func TestCheckoutUsecase_Checkout_OrderSnapshotIsIndependent(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 100)

	out, err := uc.Checkout(ctx, 1)
	assert.NoError(t, err)

	game, err := stores.Games().Get(ctx, 11)
	assert.NoError(t, err)
	game.Name = "Elden Ring: Deluxe"
	game.Price = 80
	assert.NoError(t, stores.Games().Update(ctx, game))

	order, err := stores.Orders().Get(ctx, out.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Elden Ring", order.Games[0].Name)
	assert.Equal(t, float64(50), order.Games[0].Price)
}

// 注文IDは単調増加
func TestCheckoutUsecase_Checkout_OrderIDsIncrement(t *testing.T) {
	ctx := context.Background()
	uc, stores := newCheckoutFixture(t, 100)

	first, err := uc.Checkout(ctx, 1)
	assert.NoError(t, err)

	//カートを手で積み直して2回目
	cart, err := stores.Carts().Get(ctx, 1)
	assert.NoError(t, err)
	cart.Status = model.CartStatusActive
	cart.GameIDs = []int64{11}
	assert.NoError(t, stores.Carts().Update(ctx, cart))

	//所持済みチェックはカート側の責務なのでここでは通る
	second, err := uc.Checkout(ctx, 1)
	assert.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}
