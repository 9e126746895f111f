package config

import (
	"fmt"
	"os"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	StoreBackend string // 永続化バックエンド（memory / postgres）

	JWTSecret string // JWT署名シークレット

	GoEnv string // dev/prod
}

// Loadは環境変数から設定を組み立てる。
// Postgres接続情報はinfra/dbが直接環境変数を読む。
func Load() (Config, error) {
	cfg := Config{
		Port:         os.Getenv("PORT"),
		StoreBackend: os.Getenv("STORE_BACKEND"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GoEnv:        os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = StoreBackendMemory
	}
	if cfg.StoreBackend != StoreBackendMemory && cfg.StoreBackend != StoreBackendPostgres {
		return Config{}, fmt.Errorf("STORE_BACKEND must be %q or %q", StoreBackendMemory, StoreBackendPostgres)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	return cfg, nil
}
