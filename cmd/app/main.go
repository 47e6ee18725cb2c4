package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/travelbook/api"
	"github.com/Domenick1991/travelbook/config"
	"github.com/Domenick1991/travelbook/internal/bootstrap"
	"github.com/Domenick1991/travelbook/internal/cache"
	"github.com/Domenick1991/travelbook/internal/email"
	"github.com/Domenick1991/travelbook/internal/kafka"
	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/Domenick1991/travelbook/internal/service/auth"
	"github.com/Domenick1991/travelbook/internal/service/bookings"
	"github.com/Domenick1991/travelbook/internal/service/hotels"
	"github.com/Domenick1991/travelbook/internal/service/trips"
	"github.com/Domenick1991/travelbook/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := store.Open(cfg.Store.Path)

	flightRepo := repository.NewFlightRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	airlineRepo := repository.NewAirlineRepository(db)
	userRepo := repository.NewUserRepository(db)

	var flightsCache trips.Cache
	if cfg.Redis.Addr != "" {
		flightsCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	}

	var producer bookings.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	var sender email.Sender
	if cfg.Email.MailjetAPIKey != "" {
		sender = email.NewMailjetSender(cfg.Email)
	} else {
		sender = email.NewLogSender()
	}

	flightService := trips.NewFlightService(flightRepo, flightsCache)
	hotelService := hotels.NewHotelService(hotelRepo)
	bookingService := bookings.NewBookingService(userRepo, flightRepo, producer, cfg.Kafka.BookingEventsTopic)
	authService := auth.NewAuthService(userRepo, sender, cfg.Auth)

	handlers := api.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Flights:  api.NewFlightHandler(flightService),
		Hotels:   api.NewHotelHandler(hotelService),
		Places:   api.NewPlaceHandler(placeRepo),
		Airlines: api.NewAirlineHandler(airlineRepo),
		Users:    api.NewUserHandler(userRepo, authService),
		Bookings: api.NewBookingHandler(bookingService, authService),
	}

	if err := bootstrap.Run(ctx, cfg, authService, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
