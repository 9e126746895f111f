package model

import "time"

// ウォレット入金の記録。決済ゲートウェイ連携はせず残高加算のみ。
type PaymentMethod struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Method     string    `json:"method"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p PaymentMethod) EntityID() int64 { return p.ID }
