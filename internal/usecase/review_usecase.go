package usecase

import (
	"context"
	"errors"
	"net/http"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
)

// ReviewUsecaseはレビューの投稿と参照を担当する。
// 投稿できるのは所持しているゲームに対してだけで、(customer, game)につき1件。
type ReviewUsecase struct {
	reviews   repo.Store[model.Review]
	customers repo.Store[model.Customer]
	games     repo.Store[model.Game]
}

func NewReviewUsecase(
	reviews repo.Store[model.Review],
	customers repo.Store[model.Customer],
	games repo.Store[model.Game],
) *ReviewUsecase {
	return &ReviewUsecase{
		reviews:   reviews,
		customers: customers,
		games:     games,
	}
}

type ReviewOutput struct {
	ID         int64 `json:"id"`
	Rating     int   `json:"rating"`
	CustomerID int64 `json:"customer_id"`
	GameID     int64 `json:"game_id"`
}

func (u *ReviewUsecase) LeaveReview(ctx context.Context, customerID int64, gameID int64, rating int) (ReviewOutput, error) {
	if customerID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	customer, err := u.customers.Get(ctx, customerID)
	if err == repo.ErrNotFound {
		return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	game, err := u.games.Get(ctx, gameID)
	if err == repo.ErrNotFound {
		return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "game not found")
	}
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	if !customer.OwnsGame(gameID) {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "game not in library")
	}

	all, err := u.reviews.List(ctx)
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	for _, r := range all {
		if r.CustomerID == customerID && r.GameID == gameID {
			return ReviewOutput{}, NewHTTPError(http.StatusConflict, "game already reviewed")
		}
	}

	id, err := repo.NextID(ctx, u.reviews)
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	review, err := model.NewReview(id, rating, customerID, gameID)
	if errors.Is(err, model.ErrRatingOutOfRange) {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.reviews.Create(ctx, review); err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	// ゲーム側とカスタマー側の参照リストにもつなぐ
	game.ReviewIDs = append(game.ReviewIDs, review.ID)
	if err := u.games.Update(ctx, game); err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}
	customer.ReviewIDs = append(customer.ReviewIDs, review.ID)
	if err := u.customers.Update(ctx, customer); err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	return toReviewOutput(review), nil
}

func (u *ReviewUsecase) ForGame(ctx context.Context, gameID int64) ([]ReviewOutput, error) {
	if gameID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid game id")
	}

	all, err := u.reviews.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	outs := make([]ReviewOutput, 0)
	for _, r := range all {
		if r.GameID == gameID {
			outs = append(outs, toReviewOutput(r))
		}
	}
	return outs, nil
}

func (u *ReviewUsecase) ByCustomer(ctx context.Context, customerID int64) ([]ReviewOutput, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	all, err := u.reviews.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "store error")
	}

	outs := make([]ReviewOutput, 0)
	for _, r := range all {
		if r.CustomerID == customerID {
			outs = append(outs, toReviewOutput(r))
		}
	}
	return outs, nil
}

// 管理者によるレビュー削除
func (u *ReviewUsecase) Delete(ctx context.Context, adminUserID int64, reviewID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if _, err := u.reviews.Get(ctx, reviewID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "review not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "store error")
	}
	if err := u.reviews.Delete(ctx, reviewID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "store error")
	}
	return nil
}

func toReviewOutput(r model.Review) ReviewOutput {
	return ReviewOutput{
		ID:         r.ID,
		Rating:     r.Rating,
		CustomerID: r.CustomerID,
		GameID:     r.GameID,
	}
}
