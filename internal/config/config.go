package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	MongoURI       string
	DBName         string
	AdminKeyHeader string
	AdminAPIKey    string
	TelegramToken  string
	AdminChatIDs   []int64
	AdminUsernames []string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseChatIDs(s string) []int64 {
	raw := splitCSV(s)
	out := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			log.Printf("[config] skipping invalid chat id %q", r)
			continue
		}
		out = append(out, id)
	}
	return out
}

// normalizeUsernames lowercases and strips a leading @ so comparisons match
// whatever form Telegram hands back.
func normalizeUsernames(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, u := range raw {
		out = append(out, strings.ToLower(strings.TrimPrefix(u, "@")))
	}
	return out
}

func Load() (Config, error) {
	_ = godotenv.Load() // load .env if it exists

	cfg := Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		DBName:         getenv("DB_NAME", "ecommerce"),
		AdminKeyHeader: getenv("ADMIN_KEY_HEADER", "X-Admin-Key"),
		AdminAPIKey:    os.Getenv("ADMIN_API_KEY"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminChatIDs:   parseChatIDs(os.Getenv("ADMIN_CHAT_IDS")),
		AdminUsernames: normalizeUsernames(splitCSV(os.Getenv("ADMIN_USERNAMES"))),
	}
	if cfg.MongoURI == "" {
		return Config{}, errors.New("MONGODB_URI is not set")
	}

	log.Printf("[config] HTTP_ADDR=%s", cfg.HTTPAddr)
	log.Printf("[config] DB_NAME=%s", cfg.DBName)
	log.Printf("[config] admin usernames=%d notification chats=%d", len(cfg.AdminUsernames), len(cfg.AdminChatIDs))
	return cfg, nil
}
