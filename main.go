package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookStore/config"
	"bookStore/handlers"
	"bookStore/repository"
	"bookStore/services"

	gorillaHandlers "github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var db *sql.DB
var rdb *redis.Client

func main() {
	cf, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	initLogger(cf)

	initDB(cf)
	defer db.Close()
	defer rdb.Close()

	if err = repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx := context.Background()
	uR, err := repository.NewUserRepository(db)
	if err != nil {
		log.Fatal().Err(err).Msg("db is not working")
	}
	log.Info().Msg("db connected")
	sR, err := repository.NewSessionRepository(rdb, ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("redis is not working")
	}
	log.Info().Msg("redis connected")
	bR, _ := repository.NewBookRepository(db)
	oR, _ := repository.NewOrderRepository(db)
	fR, _ := repository.NewFavoriteRepository(db)
	cR, _ := repository.NewCheckoutRepository(rdb, ctx)
	iR, err := repository.NewImageRepository(cf.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir")
	}

	if err = uR.EnsureAdmin(cf.AdminUsername, cf.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin seed")
	}

	if cf.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is empty, online payments are disabled")
	}

	hp := handlers.HandlerParams{
		BookService:    services.NewBookService(bR, iR),
		OrdService:     services.NewOrderService(oR, bR),
		FavService:     services.NewFavoriteService(fR, bR),
		PaymentService: services.NewPaymentService(services.NewStripeGateway(cf.StripeSecretKey), oR, bR, cR, cf.FrontendUrl),
		AuthService:    services.NewAuthService(uR, sR, cf.JwtSecret),
		StatsService:   services.NewStatsService(bR, oR),
	}
	ha := handlers.NewHandler(hp)
	router := ha.Router(cf.UploadDir)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cf.Origins()),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.AllowCredentials(),
	)

	srv := &http.Server{
		Addr:              ":" + cf.ServerPort,
		Handler:           cors(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func initLogger(cf *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cf.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func initDB(cf *config.Config) {
	var err error

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cf.DbUser, cf.DbPassword, cf.DbHost, cf.DbPort, cf.DbName)
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres")
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     cf.RedisHost + ":" + cf.RedisPort,
		Password: cf.RedisPassword,
		DB:       0,
	})
	ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
	defer cncl()
	if status := rdb.Ping(ctx); status.Err() != nil {
		log.Fatal().Err(status.Err()).Msg("redis is not working")
	}
}
