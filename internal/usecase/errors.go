package usecase

import (
	"errors"
	"fmt"
)

// usecase層のエラーはHTTPステータスで分類する。
//   - 400: 入力不正（範囲外の評価・逆転した価格帯など）
//   - 402: 残高不足
//   - 404: 対象が存在しない
//   - 409: 競合（重複ID・所持済み・カート状態の不一致など）
// いずれも呼び出し側で回復可能。プロセスは落とさない。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
