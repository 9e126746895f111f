package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// アクセストークンを発行する約束。実装はcmd/api側。
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error)
}

// AccountUsecaseはサインアップ・ログイン・退会を担当する。
// ログイン状態はサーバ側に持たず、JWTのクレームだけで引き回す。
type AccountUsecase struct {
	admins     repo.Store[model.Admin]
	developers repo.Store[model.Developer]
	customers  repo.Store[model.Customer]
	carts      repo.Store[model.Cart]
	issuer     TokenIssuer
	bcryptCost int
}

func NewAccountUsecase(
	admins repo.Store[model.Admin],
	developers repo.Store[model.Developer],
	customers repo.Store[model.Customer],
	carts repo.Store[model.Cart],
	issuer TokenIssuer,
) *AccountUsecase {
	return &AccountUsecase{
		admins:     admins,
		developers: developers,
		customers:  customers,
		carts:      carts,
		issuer:     issuer,
		bcryptCost: bcrypt.DefaultCost,
	}
}

type SignUpInput struct {
	Username string
	Email    string
	Password string
}

type UserDTO struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User        UserDTO   `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ロールはメールドメインで決まる
func roleForEmail(email string) model.Role {
	switch {
	case strings.HasSuffix(email, "@adm.com"):
		return model.RoleAdmin
	case strings.HasSuffix(email, "@dev.com"):
		return model.RoleDeveloper
	default:
		return model.RoleCustomer
	}
}

// サインアップ。カスタマーには残高0のウォレットと空のACTIVEカートを1つ作る。
func (u *AccountUsecase) SignUp(ctx context.Context, in SignUpInput) (UserDTO, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "username required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if len(in.Password) < 8 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	used, err := u.isEmailUsed(ctx, email)
	if err != nil {
		return UserDTO{}, err
	}
	if used {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	role := roleForEmail(email)

	switch role {
	case model.RoleAdmin:
		id, err := repo.NextID(ctx, u.admins)
		if err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}
		admin := model.Admin{User: model.User{
			ID: id, Username: username, Email: email,
			PasswordHash: string(hash), Role: role,
		}}
		if err := u.admins.Create(ctx, admin); err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}
		return toUserDTO(admin.User), nil

	case model.RoleDeveloper:
		id, err := repo.NextID(ctx, u.developers)
		if err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}
		developer := model.Developer{User: model.User{
			ID: id, Username: username, Email: email,
			PasswordHash: string(hash), Role: role,
		}}
		if err := u.developers.Create(ctx, developer); err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}
		return toUserDTO(developer.User), nil

	default:
		id, err := repo.NextID(ctx, u.customers)
		if err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}
		cartID, err := repo.NextID(ctx, u.carts)
		if err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}

		customer := model.Customer{
			User: model.User{
				ID: id, Username: username, Email: email,
				PasswordHash: string(hash), Role: role,
			},
			Wallet: 0,
			CartID: cartID,
		}
		if err := u.customers.Create(ctx, customer); err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}

		cart := model.Cart{
			ID:         cartID,
			CustomerID: id,
			Status:     model.CartStatusActive,
		}
		if err := u.carts.Create(ctx, cart); err != nil {
			return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "store error")
		}
		return toUserDTO(customer.User), nil
	}
}

// ログイン。3つのロールのStoreを順に探す。
func (u *AccountUsecase) LogIn(ctx context.Context, in LoginInput) (LoginResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginResult{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, found, err := u.findByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if !found {
		return LoginResult{}, NewHTTPError(http.StatusUnauthorized, "wrong email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return LoginResult{}, NewHTTPError(http.StatusUnauthorized, "wrong email or password")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, time.Now())
	if err != nil {
		return LoginResult{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return LoginResult{
		User:        toUserDTO(user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// 自分のアカウントを消す。カスタマーはカートも一緒に消える。
func (u *AccountUsecase) DeleteAccount(ctx context.Context, userID int64, role model.Role) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	switch role {
	case model.RoleAdmin:
		if _, err := u.admins.Get(ctx, userID); err != nil {
			return notFoundOrStoreError(err, "account not found")
		}
		if err := u.admins.Delete(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}
	case model.RoleDeveloper:
		if _, err := u.developers.Get(ctx, userID); err != nil {
			return notFoundOrStoreError(err, "account not found")
		}
		if err := u.developers.Delete(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}
	case model.RoleCustomer:
		customer, err := u.customers.Get(ctx, userID)
		if err != nil {
			return notFoundOrStoreError(err, "account not found")
		}
		if err := u.carts.Delete(ctx, customer.CartID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}
		if err := u.customers.Delete(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "store error")
		}
	default:
		return NewHTTPError(http.StatusBadRequest, "unknown role")
	}
	return nil
}

// 管理者がメールアドレス指定で任意のアカウントを消す
func (u *AccountUsecase) DeleteAnyAccount(ctx context.Context, adminUserID int64, email string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, found, err := u.findByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if !found {
		return NewHTTPError(http.StatusNotFound, "no account with this email")
	}
	return u.DeleteAccount(ctx, user.ID, user.Role)
}

func (u *AccountUsecase) isEmailUsed(ctx context.Context, email string) (bool, error) {
	_, found, err := u.findByEmail(ctx, email)
	return found, err
}

func (u *AccountUsecase) findByEmail(ctx context.Context, email string) (model.User, bool, error) {
	admins, err := u.admins.List(ctx)
	if err != nil {
		return model.User{}, false, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	for _, a := range admins {
		if strings.EqualFold(a.Email, email) {
			return a.User, true, nil
		}
	}

	developers, err := u.developers.List(ctx)
	if err != nil {
		return model.User{}, false, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	for _, d := range developers {
		if strings.EqualFold(d.Email, email) {
			return d.User, true, nil
		}
	}

	customers, err := u.customers.List(ctx)
	if err != nil {
		return model.User{}, false, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	for _, c := range customers {
		if strings.EqualFold(c.Email, email) {
			return c.User, true, nil
		}
	}

	return model.User{}, false, nil
}

func notFoundOrStoreError(err error, msg string) error {
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, msg)
	}
	return NewHTTPError(http.StatusInternalServerError, "store error")
}

func toUserDTO(u model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
