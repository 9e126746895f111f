package model

type CartStatus string

const (
	CartStatusActive     CartStatus = "ACTIVE"
	CartStatusCheckedOut CartStatus = "CHECKED_OUT"
)

// 1カスタマーにつきカートは1つ。CustomerIDは作成後変わらない。
// 中身はゲームIDの参照だけ。価格や名前は参照のたびにカタログから引き直すので、
// カート投入後の値下げや割引はチェックアウトにそのまま効く。
type Cart struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customer_id"`
	Status     CartStatus `json:"status"`
	GameIDs    []int64    `json:"game_ids"`
}

func (c Cart) EntityID() int64 { return c.ID }

// 同じゲームは2回入らない
func (c Cart) Contains(gameID int64) bool {
	for _, id := range c.GameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}
