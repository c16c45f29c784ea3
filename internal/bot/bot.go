// Package bot implements the Telegram admin interface: catalog management
// and order status changes, restricted to an allow-list of usernames.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hossamfarag/boutique-backend/internal/order"
	"github.com/hossamfarag/boutique-backend/internal/product"
)

const startMessage = "👋 *Store Admin Bot*\n\n" +
	"📦 *Products*\n" +
	"• /products – list products\n" +
	"• /addproduct Name|Price|Stock\n" +
	"• /deleteproduct <id>\n\n" +
	"🚚 *Orders*\n" +
	"• /order <id> <status>\n\n" +
	"ℹ️ Use /help for details"

const helpMessage = "🆘 *Admin Bot Help*\n\n" +
	"➕ Add product:\n`/addproduct Amber Oud|349.90|10`\n\n" +
	"📦 List products:\n`/products`\n\n" +
	"🗑 Delete product:\n`/deleteproduct <id>`\n\n" +
	"🚚 Update order status:\n`/order <id> shipped`\n" +
	"Statuses: pending, confirmed, shipped, delivered, cancelled\n\n" +
	"💰 Price and ✏️ description changes: press the button under a product, then send the new value as a plain message."

// client is the slice of the Telegram API the bot drives.
// *tgbotapi.BotAPI satisfies it.
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Bot struct {
	api      client
	products *product.Service
	orders   *order.Service
	admins   map[string]bool

	// user ID -> product ID awaiting a plain-message reply
	mu           sync.Mutex
	pendingPrice map[int64]string
	pendingDesc  map[int64]string
}

func New(api client, products *product.Service, orders *order.Service, adminUsernames []string) *Bot {
	admins := make(map[string]bool, len(adminUsernames))
	for _, u := range adminUsernames {
		admins[u] = true
	}
	return &Bot{
		api:          api,
		products:     products,
		orders:       orders,
		admins:       admins,
		pendingPrice: make(map[int64]string),
		pendingDesc:  make(map[int64]string),
	}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)
	log.Println("[bot] polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) isAdmin(user *tgbotapi.User) bool {
	if user == nil || user.UserName == "" {
		return false
	}
	return b.admins[strings.ToLower(user.UserName)]
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		b.handleCallback(ctx, upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	msg := upd.Message

	if !b.isAdmin(msg.From) {
		b.reply(msg.Chat.ID, "❌ Unauthorized")
		return
	}

	if !msg.IsCommand() {
		b.handlePendingReply(ctx, msg)
		return
	}

	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, startMessage)
	case "help":
		b.reply(msg.Chat.ID, helpMessage)
	case "products":
		b.listProducts(ctx, msg.Chat.ID)
	case "addproduct":
		b.addProduct(ctx, msg.Chat.ID, msg.CommandArguments())
	case "deleteproduct":
		b.deleteProduct(ctx, msg.Chat.ID, strings.TrimSpace(msg.CommandArguments()))
	case "order":
		b.updateOrderStatus(ctx, msg.Chat.ID, msg.CommandArguments())
	default:
		b.reply(msg.Chat.ID, "❓ Unknown command, try /help")
	}
}

func (b *Bot) listProducts(ctx context.Context, chatID int64) {
	items, err := b.products.List(ctx)
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	if len(items) == 0 {
		b.reply(chatID, "📦 No products found")
		return
	}
	for _, p := range items {
		avail := "Available ✅"
		if !p.Available {
			avail = "Sold Out ❌"
		}
		text := fmt.Sprintf("🛒 *%s*\n🆔 `%s`\n💵 %s\n📦 stock %d\n%s", p.Name, p.ID, p.Price, p.Stock, avail)
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = productKeyboard(p.ID)
		if _, err := b.api.Send(msg); err != nil {
			log.Printf("[bot] send product card: %v", err)
		}
	}
}

func productKeyboard(id string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟥 Sold Out", "soldout:"+id),
			tgbotapi.NewInlineKeyboardButtonData("🟩 Available", "available:"+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Change Price", "price:"+id),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Description", "desc:"+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", "delete:"+id),
		),
	)
}

// parseAddProduct parses "Name|Price|Stock" (stock optional).
func parseAddProduct(args string) (product.CreateRequest, error) {
	parts := strings.Split(args, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return product.CreateRequest{}, errors.New("wrong format")
	}
	in := product.CreateRequest{
		Name:  strings.TrimSpace(parts[0]),
		Price: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[2]), "%d", &in.Stock); err != nil {
			return product.CreateRequest{}, errors.New("stock must be a number")
		}
	}
	return in, nil
}

func (b *Bot) addProduct(ctx context.Context, chatID int64, args string) {
	in, err := parseAddProduct(args)
	if err != nil {
		b.reply(chatID, "❌ Wrong format\n`/addproduct Name|Price|Stock`")
		return
	}
	created, err := b.products.Create(ctx, in)
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ *Product added*\n\n%s\n💵 %s\n🆔 `%s`", created.Name, created.Price, created.ID))
}

func (b *Bot) deleteProduct(ctx context.Context, chatID int64, id string) {
	if err := b.products.Delete(ctx, id); err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	b.reply(chatID, "🗑 Product deleted")
}

func (b *Bot) updateOrderStatus(ctx context.Context, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.reply(chatID, "❌ Wrong format\n`/order <id> <status>`")
		return
	}
	updated, err := b.orders.UpdateStatus(ctx, fields[0], strings.ToLower(fields[1]))
	if err != nil {
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Order `%s` → *%s*", updated.ID, updated.Status))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("[bot] answer callback: %v", err)
	}
	if !b.isAdmin(cb.From) {
		return
	}

	action, id, ok := strings.Cut(cb.Data, ":")
	if !ok || cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	var err error
	var text string
	switch action {
	case "soldout":
		err = b.products.SetAvailability(ctx, id, false)
		text = "🟥 Marked as SOLD OUT"
	case "available":
		err = b.products.SetAvailability(ctx, id, true)
		text = "🟩 Marked as AVAILABLE"
	case "delete":
		err = b.products.Delete(ctx, id)
		text = "🗑 Product deleted"
	case "price":
		b.mu.Lock()
		b.pendingPrice[cb.From.ID] = id
		b.mu.Unlock()
		text = "💰 Send the new price as a plain message, e.g. `300`"
	case "desc":
		b.mu.Lock()
		b.pendingDesc[cb.From.ID] = id
		b.mu.Unlock()
		text = "✏️ Send the new description as a plain message"
	default:
		return
	}
	if err != nil {
		text = "❌ " + err.Error()
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("[bot] edit message: %v", err)
	}
}

// handlePendingReply consumes a plain message as the value for a previously
// pressed price/description button.
func (b *Bot) handlePendingReply(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	b.mu.Lock()
	priceID, hasPrice := b.pendingPrice[userID]
	descID, hasDesc := b.pendingDesc[userID]
	if hasPrice {
		delete(b.pendingPrice, userID)
	} else if hasDesc {
		delete(b.pendingDesc, userID)
	}
	b.mu.Unlock()

	switch {
	case hasPrice:
		if err := b.products.SetPrice(ctx, priceID, strings.TrimSpace(msg.Text)); err != nil {
			b.reply(msg.Chat.ID, "❌ "+err.Error())
			return
		}
		b.reply(msg.Chat.ID, "✅ Price updated → "+strings.TrimSpace(msg.Text))
	case hasDesc:
		if err := b.products.SetDescription(ctx, descID, msg.Text); err != nil {
			b.reply(msg.Chat.ID, "❌ "+err.Error())
			return
		}
		b.reply(msg.Chat.ID, "✅ Description updated")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[bot] reply: %v", err)
	}
}
