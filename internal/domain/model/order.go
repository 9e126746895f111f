package model

import "time"

// Orderはチェックアウト成功時に1度だけ作られ、以後変更されない。
// Gamesは購入時点のスナップショットで、カタログの後続編集の影響を受けない。
type Order struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Games      []Game    `json:"games"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

func (o Order) EntityID() int64 { return o.ID }
