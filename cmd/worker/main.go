package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/travelbook/config"
	"github.com/Domenick1991/travelbook/internal/email"
	"github.com/Domenick1991/travelbook/internal/kafka"
	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/Domenick1991/travelbook/internal/store"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker consumes booking events and mails confirmations, and
// periodically sweeps expired password-reset tokens out of the store.
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := store.Open(cfg.Store.Path)
	userRepo := repository.NewUserRepository(db)

	var sender email.Sender
	if cfg.Email.MailjetAPIKey != "" {
		sender = email.NewMailjetSender(cfg.Email)
	} else {
		sender = email.NewLogSender()
	}

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
		defer consumer.Close()

		go func() {
			if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
				var event kafka.BookingEvent
				if err := json.Unmarshal(msg.Value, &event); err != nil {
					log.Printf("decode event error: %v", err)
					return nil
				}
				return notify(ctx, sender, event)
			}); err != nil {
				log.Printf("consumer stopped: %v", err)
			}
		}()
	}

	sweepEvery := time.Duration(cfg.Worker.ResetSweepMinutes) * time.Minute
	if sweepEvery <= 0 {
		sweepEvery = 15 * time.Minute
	}
	sweepTicker := time.NewTicker(sweepEvery)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			cleared, err := userRepo.ClearExpiredResetTokens(ctx, time.Now().UnixMilli())
			if err != nil {
				log.Printf("sweep reset tokens error: %v", err)
				continue
			}
			if cleared > 0 {
				log.Printf("cleared %d expired reset tokens", cleared)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

func notify(ctx context.Context, sender email.Sender, event kafka.BookingEvent) error {
	if event.UserEmail == "" {
		return nil
	}

	var subject, body string
	switch event.Type {
	case kafka.EventFlightBooked:
		subject = "Flight booking confirmed"
		body = fmt.Sprintf("Your flight booking %s is confirmed. Amount charged: %.2f.", event.BookingID, event.Amount)
	case kafka.EventFlightCanceled:
		subject = "Flight booking cancelled"
		body = fmt.Sprintf("Your flight booking %s has been cancelled.", event.BookingID)
	case kafka.EventHotelBooked:
		subject = "Hotel booking confirmed"
		body = fmt.Sprintf("Your hotel booking %s is confirmed. Total cost: %.2f.", event.BookingID, event.Amount)
	case kafka.EventHotelCanceled:
		subject = "Hotel booking cancelled"
		body = fmt.Sprintf("Your hotel booking %s has been cancelled and the rooms were returned.", event.BookingID)
	default:
		log.Printf("skipping unknown event type %q", event.Type)
		return nil
	}

	return sender.Send(ctx, event.UserEmail, subject, body)
}
