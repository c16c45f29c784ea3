package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hossamfarag/boutique-backend/internal/bot"
	"github.com/hossamfarag/boutique-backend/internal/config"
	"github.com/hossamfarag/boutique-backend/internal/mongodb"
	"github.com/hossamfarag/boutique-backend/internal/notify"
	"github.com/hossamfarag/boutique-backend/internal/order"
	"github.com/hossamfarag/boutique-backend/internal/product"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("[config] TELEGRAM_BOT_TOKEN is not set")
	}
	if len(cfg.AdminUsernames) == 0 {
		log.Fatal("[config] ADMIN_USERNAMES is not set")
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := mongodb.Connect(connectCtx, cfg.MongoURI, cfg.DBName)
	cancel()
	if err != nil {
		log.Fatalf("[mongodb] %v", err)
	}
	log.Printf("[mongodb] connected, db=%s", cfg.DBName)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongodb.Disconnect(shutdownCtx, db)
	}()

	api, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, tgbotapi.APIEndpoint, &http.Client{Timeout: 40 * time.Second})
	if err != nil {
		log.Fatalf("[bot] telegram init: %v", err)
	}
	log.Printf("[bot] authorized as @%s", api.Self.UserName)

	notifier := notify.NewTelegram(cfg.TelegramToken, cfg.AdminChatIDs)
	products := product.NewService(product.NewMongoRepo(db))
	orders := order.NewService(order.NewMongoRepo(db), products, notifier)

	b := bot.New(api, products, orders, cfg.AdminUsernames)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[bot] %v", err)
	}
	log.Println("[bot] stopped")
}
