package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/avercroft/car-rental-api/internal/booking"
    "github.com/avercroft/car-rental-api/internal/config"
    "github.com/avercroft/car-rental-api/internal/database"
    "github.com/avercroft/car-rental-api/internal/handler"
    "github.com/avercroft/car-rental-api/internal/middleware"
    "github.com/avercroft/car-rental-api/internal/queue"
    "github.com/avercroft/car-rental-api/internal/repository"
    "github.com/avercroft/car-rental-api/internal/router"
    "github.com/avercroft/car-rental-api/internal/service"
)

func main() {
    // .env is optional; real deployments set variables directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBMaxConns)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: a nil client disables caching and rate limiting.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; response cache and rate limiting disabled")
    }

    // Repositories.
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    customers := repository.NewCustomerRepo(db)
    cars := repository.NewCarRepo(db)
    rentals := repository.NewRentalRepo(db)
    insurance := repository.NewInsuranceRepo(db)
    payments := repository.NewPaymentRepo(db)
    locations := repository.NewLocationRepo(db)
    maintenance := repository.NewMaintenanceRepo(db)

    // Booking engine and consistency services.
    store := booking.NewSQLStore(db, cars, customers, rentals, insurance, payments)
    engine := booking.NewEngine(store)
    runner := &service.SQLRunner{DB: db}
    accounts := service.NewAccountService(runner, customers, rentals, cars)
    rentalSvc := service.NewRentalService(runner, rentals, cars)

    // Handlers.
    authH := handler.NewAuthHandler(cfg, db, users, customers, tokens)
    carH := handler.NewCarHandler(cars, locations, maintenance)
    bookingH := handler.NewBookingHandler(engine, cars)
    profileH := handler.NewProfileHandler(customers, rentals, accounts)
    adminH := handler.NewAdminHandler(rentals, customers, rentalSvc, accounts)

    e := echo.New()
    e.HideBanner = true
    e.Validator = handler.NewRequestValidator()
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, carH, cache)
    router.RegisterCustomer(e, bookingH, profileH, cfg.JWTSecret)
    router.RegisterAdmin(e, carH, adminH, customers, cfg.JWTSecret)

    // Background consumer writing confirmed rentals to logs/rental.log.
    go func() {
        if err := queue.StartRentalConsumer(); err != nil {
            log.Printf("rental consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
