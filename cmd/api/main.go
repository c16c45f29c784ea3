package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hossamfarag/boutique-backend/internal/config"
	"github.com/hossamfarag/boutique-backend/internal/mongodb"
	"github.com/hossamfarag/boutique-backend/internal/notify"
	"github.com/hossamfarag/boutique-backend/internal/order"
	"github.com/hossamfarag/boutique-backend/internal/product"
	"github.com/hossamfarag/boutique-backend/internal/review"
)

// @title           E-Commerce Backend API
// @version         1.0
// @description     Public storefront API: catalog, orders and reviews. Admin routes require the X-Admin-Key header.
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.DBName)
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

	notifier := notify.NewTelegram(cfg.TelegramToken, cfg.AdminChatIDs)

	products := product.NewService(product.NewMongoRepo(db))
	orders := order.NewService(order.NewMongoRepo(db), products, notifier)
	reviews := review.NewService(review.NewMongoRepo(db), products)

	router := newRouter(products, orders, reviews, cfg.AdminKeyHeader, cfg.AdminAPIKey)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("[http] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[http] listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("[http] shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
