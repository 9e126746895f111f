package model

import "errors"

// 評価の範囲外
var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

// レビューは(customer, game)の組につき1件
type Review struct {
	ID         int64 `json:"id"`
	Rating     int   `json:"rating"`
	CustomerID int64 `json:"customer_id"`
	GameID     int64 `json:"game_id"`
}

func (r Review) EntityID() int64 { return r.ID }

// 評価は1〜5のみ受け付ける
func NewReview(id int64, rating int, customerID int64, gameID int64) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrRatingOutOfRange
	}
	return Review{
		ID:         id,
		Rating:     rating,
		CustomerID: customerID,
		GameID:     gameID,
	}, nil
}
