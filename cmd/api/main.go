package main

import (
	"time"

	"pharmacy/internal/config"
	"pharmacy/internal/domain/model"
	"pharmacy/internal/handler"
	"pharmacy/internal/infra/db"
	infraRepo "pharmacy/internal/infra/repository"
	"pharmacy/internal/logger"
	"pharmacy/internal/server"
	"pharmacy/internal/usecase"
	auth "pharmacy/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(username string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envがあれば読む
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	lg, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		lg.Error("db connect failed", zap.Error(err))
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Bill{},
		&model.BillItem{},
	); err != nil {
		lg.Error("auto migrate failed", zap.Error(err))
		panic(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	billRepo := infraRepo.NewBillGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//設定由来の管理者クレデンシャル（起動時にハッシュ化）
	hasher := auth.NewBcryptPasswordHasher(12)
	adminHash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		panic(err)
	}
	creds := auth.Credentials{
		Username:     cfg.AdminUsername,
		PasswordHash: adminHash,
	}
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 1 * time.Hour,
	}

	//Usecase生成
	loginUC := auth.NewLoginUsecase(creds, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, clock)
	billUC := usecase.NewBillUsecase(billRepo, productRepo, inventoryRepo, txManager, idGen, clock)
	analyticsUC := usecase.NewAnalyticsUsecase(billRepo, productRepo, clock)

	//Handler生成
	handlers := server.Handlers{
		Auth:      handler.NewAuthHandler(loginUC),
		Products:  handler.NewProductHandler(productUC),
		Bills:     handler.NewBillHandler(billUC),
		Analytics: handler.NewAnalyticsHandler(analyticsUC),
	}

	//Server起動
	addr := ":" + cfg.Port
	lg.Info("server starting", zap.String("addr", addr))
	if err := server.Start(addr, cfg, lg, handlers); err != nil {
		lg.Error("server stopped", zap.Error(err))
		panic(err)
	}
}
