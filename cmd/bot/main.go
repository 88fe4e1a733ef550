package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/bot"
	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/chart"
	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/config"
	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/db"
	"github.com/HiengLyhor/Self.Expense-Tracker-Telegram-Bot/internal/repo"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := db.MustConnect(ctx, cfg.DatabaseURL)
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Error("migrations", "err", err)
		os.Exit(1)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Error("bot init", "err", err)
		os.Exit(1)
	}
	botAPI.Debug = false

	dispatcher := bot.NewDispatcher(
		repo.NewExpenses(pool),
		repo.NewUsers(pool),
		chart.NewPieRenderer(),
		cfg.AdminHandles,
		cfg.OperatorChatID,
		cfg.MonthlyBudget,
		nil,
	)
	h := bot.NewHandler(botAPI, dispatcher, log)

	// Graceful shutdown
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Info("expense tracker started", "bot", botAPI.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown")
			return
		case upd := <-updates:
			h.HandleUpdate(ctx, upd)
		}
	}
}
