// Package notify fans order events out to the configured admin chats over
// Telegram. Delivery is best effort: every failure is logged here and never
// reaches the operation that triggered it.
package notify

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hossamfarag/boutique-backend/internal/order"
)

// sender is the slice of the Telegram client the dispatcher needs.
// *tgbotapi.BotAPI satisfies it.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot     sender
	chatIDs []int64
}

// NewTelegram builds the dispatcher. A missing token or empty destination
// list yields a nil dispatcher whose methods are no-ops, so callers can wire
// it unconditionally.
func NewTelegram(token string, chatIDs []int64) *Telegram {
	if token == "" || len(chatIDs) == 0 {
		log.Printf("[notify] telegram token or chat IDs not configured, notifications disabled")
		return nil
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		log.Printf("[notify] telegram init failed (%v), notifications disabled", err)
		return nil
	}
	log.Printf("[notify] telegram dispatcher ready, %d chat(s)", len(chatIDs))
	return &Telegram{bot: bot, chatIDs: chatIDs}
}

func (t *Telegram) OrderCreated(o *order.Response) {
	t.broadcast(formatOrderCreated(o))
}

func (t *Telegram) OrderStatusChanged(o *order.Response) {
	t.broadcast(formatStatusChanged(o))
}

// broadcast delivers to each chat independently; one failure never stops the
// attempts to the others. Nil receivers are disabled dispatchers.
func (t *Telegram) broadcast(text string) {
	if t == nil || t.bot == nil {
		return
	}
	for _, chatID := range t.chatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := t.bot.Send(msg); err != nil {
			log.Printf("[notify] send to chat %d failed: %v", chatID, err)
			continue
		}
	}
}

func formatOrderCreated(o *order.Response) string {
	var b strings.Builder
	b.WriteString("🛒 *New Order Received*\n\n")
	fmt.Fprintf(&b, "*Order ID:* `%s`\n*Status:* %s\n\n", o.ID, o.Status)
	fmt.Fprintf(&b, "*Customer:*\n👤 %s\n📧 %s\n📱 %s\n📍 %s\n\n", o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.Customer.Address)
	b.WriteString("*Items:*\n")
	for i, it := range o.Items {
		fmt.Fprintf(&b, "%d. `%s` × %d @ %s\n", i+1, it.ProductID, it.Quantity, it.Price)
	}
	fmt.Fprintf(&b, "\n*Total:* %s", o.Total)
	return b.String()
}

func formatStatusChanged(o *order.Response) string {
	return fmt.Sprintf("📦 *Order Updated*\n\n*Order ID:* `%s`\n*Status:* %s\n*Customer:* %s", o.ID, o.Status, o.Customer.Name)
}
