package usecase_test

import (
	"testing"
	"time"

	"gamestore/internal/domain/model"
	infraRepo "gamestore/internal/infra/repository"
	"gamestore/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func newStores() *infraRepo.MemoryStores {
	return infraRepo.NewMemoryStores()
}

func assertHTTPError(t *testing.T, err error, status int, contains string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if !assert.True(t, ok, "expected HTTPError, got %v", err) {
		return
	}
	assert.Equal(t, status, he.Status)
	assert.Contains(t, he.Message, contains)
}

// テスト用のトークン発行。固定文字列を返すだけ。
type stubIssuer struct{}

func (stubIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "test-token", now.Add(15 * time.Minute), nil
}
