package model

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDeveloper Role = "DEVELOPER"
	RoleCustomer  Role = "CUSTOMER"
)

// 全ロール共通のアカウント項目
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
}

func (u User) EntityID() int64 { return u.ID }

// Adminは追加項目を持たない
type Admin struct {
	User
}

// Developerは自分が公開したゲームのIDを持つ
type Developer struct {
	User
	PublishedGameIDs []int64 `json:"published_game_ids"`
}

// CustomerはウォレットとライブラリとカートID（1:1）を持つ。
// ライブラリもカートと同じくゲームIDの参照で持つ。
type Customer struct {
	User
	Wallet         float64 `json:"wallet"`
	LibraryGameIDs []int64 `json:"library_game_ids"`
	ReviewIDs      []int64 `json:"review_ids"`
	CartID         int64   `json:"cart_id"`
}

// ライブラリに同じゲームは2本入らない
func (c Customer) OwnsGame(gameID int64) bool {
	for _, id := range c.LibraryGameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}

// Developerがそのゲームを公開したかどうか
func (d Developer) HasPublished(gameID int64) bool {
	for _, id := range d.PublishedGameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}
