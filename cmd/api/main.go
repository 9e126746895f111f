package main

import (
	"log"
	"time"

	"gamestore/internal/config"
	"gamestore/internal/domain/model"
	"gamestore/internal/handler"
	"gamestore/internal/infra/db"
	infraRepo "gamestore/internal/infra/repository"
	repo "gamestore/internal/repository"
	"gamestore/internal/server"
	"gamestore/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envはあれば読む
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//ストアの組み立て。memoryはプロセス内、postgresはGORM経由。
	var stores repo.Stores
	var tx repo.TxManager
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		mem := infraRepo.NewMemoryStores()
		stores = mem
		tx = infraRepo.NewMemoryTxManager(mem)
	case config.StoreBackendPostgres:
		gormDB, err := db.Connect()
		if err != nil {
			log.Fatal(err)
		}
		if err := infraRepo.Migrate(gormDB); err != nil {
			log.Fatal(err)
		}
		stores = infraRepo.NewGormStores(gormDB)
		tx = infraRepo.NewGormTxManager(gormDB)
	default:
		log.Fatalf("unknown store backend: %s", cfg.StoreBackend)
	}

	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	accountUC := usecase.NewAccountUsecase(stores.Admins(), stores.Developers(), stores.Customers(), stores.Carts(), issuer)
	catalogUC := usecase.NewCatalogUsecase(stores.Games(), stores.Discounts(), stores.Developers())
	cartUC := usecase.NewCartUsecase(stores.Carts(), stores.Games(), stores.Customers())
	checkoutUC := usecase.NewCheckoutUsecase(tx)
	orderUC := usecase.NewOrderUsecase(stores.Orders(), stores.Customers())
	reviewUC := usecase.NewReviewUsecase(stores.Reviews(), stores.Customers(), stores.Games())
	walletUC := usecase.NewWalletUsecase(stores.Customers(), stores.Payments(), stores.Games())

	//Handler生成
	e := server.New(cfg, server.Handlers{
		Auth:    handler.NewAuthHandler(accountUC),
		Catalog: handler.NewCatalogHandler(catalogUC),
		Cart:    handler.NewCartHandler(cartUC, checkoutUC),
		Order:   handler.NewOrderHandler(orderUC),
		Review:  handler.NewReviewHandler(reviewUC),
		Wallet:  handler.NewWalletHandler(walletUC),
	})

	addr := ":" + cfg.Port
	if err := server.Start(e, addr); err != nil {
		log.Fatal(err)
	}
}
