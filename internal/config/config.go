package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Config struct {
	BotToken    string
	DatabaseURL string

	// Handles allowed to run /admin and /myFund.
	AdminHandles map[string]struct{}

	// Chat that receives ⚠️ diagnostics instead of the end user.
	OperatorChatID int64

	// Fixed monthly budget checked by /myFund.
	MonthlyBudget decimal.Decimal

	MigrationsDir string
}

func MustLoad() Config {
	bt := os.Getenv("BOT_TOKEN")
	if bt == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	admins := map[string]struct{}{}
	for _, h := range strings.Split(getEnv("ADMIN_HANDLES", "Lyhor_Hieng"), ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			admins[h] = struct{}{}
		}
	}

	opChat, err := strconv.ParseInt(getEnv("OPERATOR_CHAT_ID", "-1002542448425"), 10, 64)
	if err != nil {
		log.Fatalf("OPERATOR_CHAT_ID: %v", err)
	}

	budget, err := decimal.NewFromString(getEnv("MONTHLY_BUDGET", "500"))
	if err != nil {
		log.Fatalf("MONTHLY_BUDGET: %v", err)
	}

	return Config{
		BotToken:       bt,
		DatabaseURL:    dsn,
		AdminHandles:   admins,
		OperatorChatID: opChat,
		MonthlyBudget:  budget,
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "./migrations"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
