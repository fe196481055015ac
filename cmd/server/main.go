// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brandcasthq/brandcast-backend/internal/ai"
	"github.com/brandcasthq/brandcast-backend/internal/config"
	"github.com/brandcasthq/brandcast-backend/internal/controller"
	"github.com/brandcasthq/brandcast-backend/internal/db"
	"github.com/brandcasthq/brandcast-backend/internal/logging"
	"github.com/brandcasthq/brandcast-backend/internal/queue"
	"github.com/brandcasthq/brandcast-backend/internal/repository"
	"github.com/brandcasthq/brandcast-backend/internal/scheduler"
	"github.com/brandcasthq/brandcast-backend/internal/service"
	"github.com/brandcasthq/brandcast-backend/internal/telegram"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	conn, err := db.Connect(cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer conn.Close()
	log.Info().Msg("connected to database")

	userRepo := &repository.UserRepository{DB: conn}
	brandRepo := &repository.BrandRepository{DB: conn}
	postRepo := &repository.PostRepository{DB: conn}

	userService := &service.UserService{UserRepo: userRepo}
	postService := &service.PostService{PostRepo: postRepo, BrandRepo: brandRepo}
	billingService := &service.BillingService{
		UserRepo: userRepo,
		Secret:   cfg.BillingSecret,
		Log:      log.With().Str("component", "billing").Logger(),
	}

	// Durable queue is optional; without it the scheduler sends directly.
	var jobQueue scheduler.JobQueue
	if cfg.AMQPURL != "" {
		pub, err := queue.Dial(cfg.AMQPURL, log.With().Str("component", "queue").Logger())
		if err != nil {
			log.Warn().Err(err).Msg("queue unavailable, running in degraded mode")
		} else {
			defer pub.Close()
			jobQueue = pub
			log.Info().Msg("connected to delivery queue")
		}
	}

	// Telegram is optional too; without a token scheduled delivery is off.
	var channel scheduler.ChannelClient
	if tg, err := telegram.NewClient(cfg.TelegramBotToken, log.With().Str("component", "telegram").Logger()); err != nil {
		log.Warn().Err(err).Msg("telegram client not configured")
	} else {
		channel = tg
	}

	sched := scheduler.New(scheduler.Config{
		Interval:    cfg.SchedulerInterval,
		BatchSize:   cfg.SchedulerBatchSize,
		Concurrency: cfg.SendConcurrency,
		BatchDelay:  cfg.SendBatchDelay,
	}, postRepo, channel, jobQueue, log.With().Str("component", "scheduler").Logger())

	if err := sched.Start(); err != nil {
		log.Warn().Err(err).Msg("delivery scheduler disabled")
	}
	defer sched.Stop()

	userController := &controller.UserController{UserService: userService}
	brandController := &controller.BrandController{BrandRepo: brandRepo}
	postController := &controller.PostController{PostService: postService}
	generateController := &controller.GenerateController{
		Text:   ai.NewTextGenerator(cfg.TextAPIURL, cfg.TextModel, cfg.TextAPIKey),
		Image:  ai.NewImageGenerator(cfg.ImageAPIURL, cfg.ImageAPIKey),
		Speech: ai.NewSpeechSynthesizer(cfg.SpeechAPIURL, cfg.SpeechAPIKey),
	}
	billingController := &controller.BillingController{BillingService: billingService}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/signup", userController.Signup)
	r.Post("/billing/webhook", billingController.Webhook)

	r.Group(func(r chi.Router) {
		r.Use(controller.RequireAuth(userService))

		r.Get("/me", userController.Me)
		r.Put("/me/telegram", userController.UpdateTelegram)

		r.Post("/brands", brandController.CreateBrand)
		r.Get("/brands", brandController.ListBrands)
		r.Get("/brands/{id}", brandController.GetBrand)
		r.Put("/brands/{id}", brandController.UpdateBrand)
		r.Delete("/brands/{id}", brandController.DeleteBrand)

		r.Post("/posts", postController.CreatePost)
		r.Get("/posts", postController.ListPosts)
		r.Get("/posts/{id}", postController.GetPost)
		r.Put("/posts/{id}", postController.UpdatePost)
		r.Delete("/posts/{id}", postController.DeletePost)
		r.Post("/posts/{id}/schedule", postController.SchedulePost)

		r.Post("/generate/text", generateController.GenerateText)
		r.Post("/generate/image", generateController.GenerateImage)
		r.Post("/generate/speech", generateController.GenerateSpeech)
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
