package main

import (
	"database/sql"
	"log"
	"net/http"

	"otherproteins-be/internal/cart"
	"otherproteins-be/internal/category"
	"otherproteins-be/internal/config"
	"otherproteins-be/internal/db"
	"otherproteins-be/internal/logger"
	"otherproteins-be/internal/order"
	"otherproteins-be/internal/product"
	"otherproteins-be/internal/stock"
	"otherproteins-be/internal/transport"
	"otherproteins-be/internal/user"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(database)

	log.Printf("🚀 server running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(database *sql.DB) http.Handler {
	ledger := stock.NewLedger(database)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	categoryRepo := category.NewRepository(database)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, ledger)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, order.RolePaymentPolicy{})

	h := transport.New(userSvc, categoryRepo, productSvc, cartSvc, orderSvc)
	return transport.NewRouter(h)
}
