package model

type Genre string

const (
	GenreAction     Genre = "ACTION"
	GenreStrategy   Genre = "STRATEGY"
	GenreAdventure  Genre = "ADVENTURE"
	GenreHorror     Genre = "HORROR"
	GenreRPG        Genre = "RPG"
	GenreSimulation Genre = "SIMULATION"
	GenreSports     Genre = "SPORTS"
	GenreShooter    Genre = "SHOOTER"
	GenreFighting   Genre = "FIGHTING"
	GenrePuzzle     Genre = "PUZZLE"
	GenreSurvival   Genre = "SURVIVAL"
	GenreRacing     Genre = "RACING"
	GenrePlatformer Genre = "PLATFORMER"
)

var genres = map[Genre]bool{
	GenreAction: true, GenreStrategy: true, GenreAdventure: true,
	GenreHorror: true, GenreRPG: true, GenreSimulation: true,
	GenreSports: true, GenreShooter: true, GenreFighting: true,
	GenrePuzzle: true, GenreSurvival: true, GenreRacing: true,
	GenrePlatformer: true,
}

// ジャンル文字列の検証
func ParseGenre(s string) (Genre, bool) {
	g := Genre(s)
	return g, genres[g]
}

// 割引はゲームと1:1。IDは対象ゲームのIDと同じ。
type Discount struct {
	ID         int64   `json:"id"`
	Percentage float64 `json:"percentage"`
}

func (d Discount) EntityID() int64 { return d.ID }

type Game struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Genre       Genre     `json:"genre"`
	Price       float64   `json:"price"`
	Discount    *Discount `json:"discount,omitempty"`
	ReviewIDs   []int64   `json:"review_ids"`
}

func (g Game) EntityID() int64 { return g.ID }

// 割引適用後の価格。保存せず毎回計算する。
func (g Game) DiscountedPrice() float64 {
	if g.Discount != nil {
		return g.Price * (1 - g.Discount.Percentage/100)
	}
	return g.Price
}
