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

// ゲーム10を所持するカスタマー1人（ID=1）と、未所持のゲーム11を作る
func newReviewFixture(t *testing.T) (*usecase.ReviewUsecase, *infraRepo.MemoryStores) {
	t.Helper()
	ctx := context.Background()
	stores := newStores()

	owned := model.Game{ID: 10, Name: "Portal", Genre: model.GenrePuzzle, Price: 9.99}
	assert.NoError(t, stores.Games().Create(ctx, owned))
	assert.NoError(t, stores.Games().Create(ctx, model.Game{
		ID: 11, Name: "Elden Ring", Genre: model.GenreRPG, Price: 50,
	}))

	assert.NoError(t, stores.Customers().Create(ctx, model.Customer{
		User:           model.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleCustomer},
		LibraryGameIDs: []int64{owned.ID},
		CartID:         1,
	}))

	uc := usecase.NewReviewUsecase(stores.Reviews(), stores.Customers(), stores.Games())
	return uc, stores
}

func TestReviewUsecase_LeaveReview_Success(t *testing.T) {
	ctx := context.Background()
	uc, stores := newReviewFixture(t)

	out, err := uc.LeaveReview(ctx, 1, 10, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, 5, out.Rating)

	//ゲームとカスタマーの両方にレビューIDがつながる
	game, err := stores.Games().Get(ctx, 10)
	assert.NoError(t, err)
	assert.Contains(t, game.ReviewIDs, out.ID)

	customer, err := stores.Customers().Get(ctx, 1)
	assert.NoError(t, err)
	assert.Contains(t, customer.ReviewIDs, out.ID)
}

// レビューできるのは所持しているゲームだけ
func TestReviewUsecase_LeaveReview_GameNotOwned(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReviewFixture(t)

	_, err := uc.LeaveReview(ctx, 1, 11, 4)
	assertHTTPError(t, err, http.StatusBadRequest, "not in library")
}

// 同じゲームへの2件目は弾く
func TestReviewUsecase_LeaveReview_Duplicate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReviewFixture(t)

	_, err := uc.LeaveReview(ctx, 1, 10, 5)
	assert.NoError(t, err)

	_, err = uc.LeaveReview(ctx, 1, 10, 3)
	assertHTTPError(t, err, http.StatusConflict, "already reviewed")
}

func TestReviewUsecase_LeaveReview_RatingOutOfRange(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReviewFixture(t)

	_, err := uc.LeaveReview(ctx, 1, 10, 0)
	assertHTTPError(t, err, http.StatusBadRequest, "between 1 and 5")

	_, err = uc.LeaveReview(ctx, 1, 10, 6)
	assertHTTPError(t, err, http.StatusBadRequest, "between 1 and 5")
}

func TestReviewUsecase_LeaveReview_GameNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReviewFixture(t)

	_, err := uc.LeaveReview(ctx, 1, 999, 4)
	assertHTTPError(t, err, http.StatusNotFound, "game not found")
}

func TestReviewUsecase_ForGame(t *testing.T) {
	ctx := context.Background()
	uc, stores := newReviewFixture(t)

	_, err := uc.LeaveReview(ctx, 1, 10, 5)
	assert.NoError(t, err)

	//別ゲームのレビューは直接流し込む
	assert.NoError(t, stores.Reviews().Create(ctx, model.Review{
		ID: 99, Rating: 2, CustomerID: 2, GameID: 11,
	}))

	out, err := uc.ForGame(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(10), out[0].GameID)
}

func TestReviewUsecase_ByCustomer(t *testing.T) {
	ctx := context.Background()
	uc, stores := newReviewFixture(t)

	_, err := uc.LeaveReview(ctx, 1, 10, 5)
	assert.NoError(t, err)

	assert.NoError(t, stores.Reviews().Create(ctx, model.Review{
		ID: 99, Rating: 2, CustomerID: 2, GameID: 11,
	}))

	out, err := uc.ByCustomer(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].CustomerID)
}

func TestReviewUsecase_Delete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReviewFixture(t)

	out, err := uc.LeaveReview(ctx, 1, 10, 5)
	assert.NoError(t, err)

	assert.NoError(t, uc.Delete(ctx, 1, out.ID))

	err = uc.Delete(ctx, 1, out.ID)
	assertHTTPError(t, err, http.StatusNotFound, "review not found")
}
