package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/lodging-reservation/internal/config"
	"github.com/iliyamo/lodging-reservation/internal/database"
	"github.com/iliyamo/lodging-reservation/internal/handler"
	"github.com/iliyamo/lodging-reservation/internal/middleware"
	"github.com/iliyamo/lodging-reservation/internal/queue"
	"github.com/iliyamo/lodging-reservation/internal/repository"
	"github.com/iliyamo/lodging-reservation/internal/router"
	"github.com/iliyamo/lodging-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: when unreachable, caching and rate limiting
	// degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	accommodations := repository.NewAccommodationRepo(db)
	roomTypes := repository.NewRoomTypeRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)
	favorites := repository.NewFavoriteRepo(db)

	catalogSvc := service.NewCatalogService(users, accommodations, roomTypes)
	bookingSvc := service.NewBookingService(users, bookings)
	reviewSvc := service.NewReviewService(users, accommodations, reviews)
	favoriteSvc := service.NewFavoriteService(users, accommodations, favorites)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	browseH := handler.NewBrowseHandler(catalogSvc)
	bookingH := handler.NewBookingHandler(bookingSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	favoriteH := handler.NewFavoriteHandler(favoriteSvc)
	ownerCatalogH := handler.NewOwnerCatalogHandler(catalogSvc)
	ownerBookingH := handler.NewOwnerBookingHandler(bookingSvc)
	adminH := handler.NewAdminHandler(catalogSvc, bookingSvc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, browseH, reviewH, cache)
	router.RegisterCustomer(e, bookingH, reviewH, favoriteH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerCatalogH, ownerBookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Booking event consumer runs for the life of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
