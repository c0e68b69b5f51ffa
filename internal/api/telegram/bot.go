package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Это панель умного холодильника.

Вы подписаны на уведомления киоска.

📋 Команды:
/add — положить продукт (снимок с камеры)
/remove — достать продукт
/inventory — что лежит в холодильнике
/dismiss — скрыть уведомление
/recipe — рецепт из того, что есть
/stop — отписаться от уведомлений
/help — справка`

	msgHelp = `ℹ️ Как пользоваться:

1️⃣ Поднесите продукт к камере холодильника
2️⃣ Отправьте /add или /remove
3️⃣ Бот пришлёт, что распознано, и список обновится

🍳 Рецепт: /recipe тип блюда; диета через запятую; кухня
Например: /recipe ужин; вегетарианское; итальянская`

	msgStopped        = "🔕 Вы отписаны от уведомлений. /start — подписаться снова."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgSendCommand    = "📸 Используйте /add или /remove, чтобы сделать снимок."
	msgCapturing      = "⏳ Снимаю кадр и распознаю продукт..."
	msgActionFailed   = "⚠️ Не удалось начать распознавание."
	msgEmptyFridge    = "🧊 Холодильник пуст."
	msgNothingToHide  = "Нет уведомлений."
	msgHidden         = "Скрыто."
	msgRecipeFailed   = "⚠️ Не удалось получить рецепт. Попробуйте позже."
	msgRecipeNoSource = "⚠️ Генератор рецептов не настроен."

	callbackDismiss = "dismiss"
)

// Workflow часть контроллера киоска, которой управляет бот
type Workflow interface {
	Press(intent entity.ClassifyIntent) (string, error)
	Dismiss(ctx context.Context) bool
	Inventory() []entity.InventoryItem
}

// Recipes генератор рецептов
type Recipes interface {
	Generate(ctx context.Context, prefs entity.RecipePreferences) (*entity.Recipe, error)
}

// sender часть tgbotapi.BotAPI, через которую бот отправляет сообщения
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot Telegram-панель киоска
type Bot struct {
	api      *tgbotapi.BotAPI
	client   sender
	workflow Workflow
	recipes  Recipes
	subs     port.SubscriberRepository

	// pending запросы рецептов, запущенные из цикла обновлений
	pending sync.WaitGroup
}

// NewBot создаёт нового бота
func NewBot(token string, workflow Workflow, recipes Recipes, subs port.SubscriberRepository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	slog.Info("telegram bot authorized", "account", api.Self.UserName)

	b := newBot(api, workflow, recipes, subs)
	b.api = api
	return b, nil
}

func newBot(client sender, workflow Workflow, recipes Recipes, subs port.SubscriberRepository) *Bot {
	return &Bot{
		client:   client,
		workflow: workflow,
		recipes:  recipes,
		subs:     subs,
	}
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	if b.api == nil {
		return errors.New("telegram api is not initialized")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.pending.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				b.pending.Wait()
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendCommand)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		var userID int64
		if msg.From != nil {
			userID = msg.From.ID
		}
		if _, err := b.subs.Subscribe(ctx, chatID, userID); err != nil {
			slog.Error("subscribe failed", "chat_id", chatID, "error", err)
		}
		b.sendMessage(chatID, msgStart)

	case "stop":
		if err := b.subs.Unsubscribe(ctx, chatID); err != nil {
			slog.Error("unsubscribe failed", "chat_id", chatID, "error", err)
		}
		b.sendMessage(chatID, msgStopped)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "add":
		b.press(chatID, entity.IntentAdd)

	case "remove":
		b.press(chatID, entity.IntentRemove)

	case "inventory":
		b.sendMessage(chatID, formatInventory(b.workflow.Inventory()))

	case "dismiss":
		if b.workflow.Dismiss(ctx) {
			b.sendMessage(chatID, msgHidden)
		} else {
			b.sendMessage(chatID, msgNothingToHide)
		}

	case "recipe":
		b.handleRecipe(ctx, chatID, msg.CommandArguments())

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// press запускает цикл; итог придёт уведомлением подписчикам
func (b *Bot) press(chatID int64, intent entity.ClassifyIntent) {
	cycleID, err := b.workflow.Press(intent)
	if err != nil {
		slog.Error("press failed", "chat_id", chatID, "intent", string(intent), "error", err)
		b.sendMessage(chatID, msgActionFailed)
		return
	}

	slog.Info("cycle started from telegram", "chat_id", chatID, "cycle_id", cycleID, "intent", string(intent))
	b.sendMessage(chatID, msgCapturing)
}

// handleRecipe запрашивает рецепт в фоне, чтобы не задерживать другие команды
func (b *Bot) handleRecipe(ctx context.Context, chatID int64, args string) {
	if b.recipes == nil {
		b.sendMessage(chatID, msgRecipeNoSource)
		return
	}

	prefs := parseRecipeArgs(args)
	b.pending.Add(1)
	go func() {
		defer b.pending.Done()

		recipe, err := b.recipes.Generate(ctx, prefs)
		if err != nil {
			b.sendMessage(chatID, msgRecipeFailed)
			return
		}

		b.sendMessage(chatID, formatRecipe(recipe))
	}()
}

// handleCallback обрабатывает нажатие кнопки под уведомлением
func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	text := ""
	if q.Data == callbackDismiss {
		if b.workflow.Dismiss(ctx) {
			text = msgHidden
		} else {
			text = msgNothingToHide
		}
	}

	if _, err := b.client.Request(tgbotapi.NewCallback(q.ID, text)); err != nil {
		slog.Warn("answer callback failed", "error", err)
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.client.Send(msg); err != nil {
		slog.Warn("send message failed", "chat_id", chatID, "error", err)
	}
}

// Show рассылает уведомление всем подписчикам с кнопкой "скрыть"
func (b *Bot) Show(ctx context.Context, n entity.NotificationState) error {
	subs, err := b.subs.List(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	var errs []error
	for _, sub := range subs {
		msg := tgbotapi.NewMessage(sub.ChatID, formatNotification(n))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Скрыть", callbackDismiss),
			),
		)

		sent, err := b.client.Send(msg)
		if err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", sub.ChatID, err))
			continue
		}
		if err := b.subs.SetLastMessage(ctx, sub.ChatID, sent.MessageID); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Hide убирает кнопку с последнего уведомления в каждом чате
func (b *Bot) Hide(ctx context.Context, n entity.NotificationState) error {
	subs, err := b.subs.List(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	var errs []error
	for _, sub := range subs {
		if sub.LastMessageID == 0 {
			continue
		}

		edit := tgbotapi.NewEditMessageText(sub.ChatID, sub.LastMessageID, formatNotification(n)+"\n\n"+msgHidden)
		if _, err := b.client.Send(edit); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", sub.ChatID, err))
		}
		if err := b.subs.SetLastMessage(ctx, sub.ChatID, 0); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

var _ port.NotificationView = (*Bot)(nil)
