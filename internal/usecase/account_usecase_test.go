package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"gamestore/internal/domain/model"
	infraRepo "gamestore/internal/infra/repository"
	repo "gamestore/internal/repository"
	"gamestore/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func newAccountFixture(t *testing.T) (*usecase.AccountUsecase, *infraRepo.MemoryStores) {
	t.Helper()
	stores := newStores()
	uc := usecase.NewAccountUsecase(
		stores.Admins(), stores.Developers(), stores.Customers(), stores.Carts(), stubIssuer{},
	)
	return uc, stores
}

// ロールはメールドメインで決まる
func TestAccountUsecase_SignUp_RoleByEmailDomain(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAccountFixture(t)

	admin, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "root", Email: "root@adm.com", Password: "password1",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	dev, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "studio", Email: "studio@dev.com", Password: "password1",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleDeveloper, dev.Role)

	cust, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, cust.Role)
}

// カスタマーには空のACTIVEカートが1つ付く
func TestAccountUsecase_SignUp_CustomerGetsCart(t *testing.T) {
	ctx := context.Background()
	uc, stores := newAccountFixture(t)

	out, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	assert.NoError(t, err)

	customer, err := stores.Customers().Get(ctx, out.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(0), customer.Wallet)

	cart, err := stores.Carts().Get(ctx, customer.CartID)
	assert.NoError(t, err)
	assert.Equal(t, model.CartStatusActive, cart.Status)
	assert.Equal(t, customer.ID, cart.CustomerID)
	assert.Empty(t, cart.GameIDs)
}

// メールはロールをまたいで一意（大文字小文字は区別しない）
func TestAccountUsecase_SignUp_DuplicateEmailAcrossRoles(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAccountFixture(t)

	_, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "root", Email: "shared@adm.com", Password: "password1",
	})
	assert.NoError(t, err)

	_, err = uc.SignUp(ctx, usecase.SignUpInput{
		Username: "other", Email: "SHARED@ADM.COM", Password: "password1",
	})
	assertHTTPError(t, err, http.StatusConflict, "already in use")
}

func TestAccountUsecase_SignUp_Validation(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAccountFixture(t)

	_, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "", Email: "a@example.com", Password: "password1",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "username")

	_, err = uc.SignUp(ctx, usecase.SignUpInput{
		Username: "alice", Email: "not-an-email", Password: "password1",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "email")

	_, err = uc.SignUp(ctx, usecase.SignUpInput{
		Username: "alice", Email: "a@example.com", Password: "short",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "password")
}

func TestAccountUsecase_LogIn_Success(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAccountFixture(t)

	_, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	assert.NoError(t, err)

	out, err := uc.LogIn(ctx, usecase.LoginInput{
		Email: "alice@example.com", Password: "password1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "test-token", out.AccessToken)
	assert.Equal(t, model.RoleCustomer, out.User.Role)
}

func TestAccountUsecase_LogIn_WrongPassword(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAccountFixture(t)

	_, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	assert.NoError(t, err)

	_, err = uc.LogIn(ctx, usecase.LoginInput{
		Email: "alice@example.com", Password: "password2",
	})
	assertHTTPError(t, err, http.StatusUnauthorized, "wrong email or password")
}

func TestAccountUsecase_LogIn_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAccountFixture(t)

	_, err := uc.LogIn(ctx, usecase.LoginInput{
		Email: "ghost@example.com", Password: "password1",
	})
	assertHTTPError(t, err, http.StatusUnauthorized, "wrong email or password")
}

// カスタマーの退会でカートも消える
func TestAccountUsecase_DeleteAccount_CustomerCascadesCart(t *testing.T) {
	ctx := context.Background()
	uc, stores := newAccountFixture(t)

	out, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	assert.NoError(t, err)

	customer, err := stores.Customers().Get(ctx, out.ID)
	assert.NoError(t, err)

	assert.NoError(t, uc.DeleteAccount(ctx, out.ID, model.RoleCustomer))

	_, err = stores.Customers().Get(ctx, out.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = stores.Carts().Get(ctx, customer.CartID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestAccountUsecase_DeleteAccount_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAccountFixture(t)

	err := uc.DeleteAccount(ctx, 999, model.RoleAdmin)
	assertHTTPError(t, err, http.StatusNotFound, "account not found")
}

func TestAccountUsecase_DeleteAnyAccount_ByEmail(t *testing.T) {
	ctx := context.Background()
	uc, stores := newAccountFixture(t)

	out, err := uc.SignUp(ctx, usecase.SignUpInput{
		Username: "studio", Email: "studio@dev.com", Password: "password1",
	})
	assert.NoError(t, err)

	assert.NoError(t, uc.DeleteAnyAccount(ctx, 1, "studio@dev.com"))

	_, err = stores.Developers().Get(ctx, out.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	err = uc.DeleteAnyAccount(ctx, 1, "ghost@example.com")
	assertHTTPError(t, err, http.StatusNotFound, "no account")
}
