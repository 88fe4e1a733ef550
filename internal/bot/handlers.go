package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Handler adapts Telegram updates to the dispatcher and delivers its
// output instructions. All Telegram I/O lives here.
type Handler struct {
	api        *tgbotapi.BotAPI
	dispatcher *Dispatcher
	log        *slog.Logger
}

func NewHandler(api *tgbotapi.BotAPI, dispatcher *Dispatcher, log *slog.Logger) *Handler {
	return &Handler{api: api, dispatcher: dispatcher, log: log}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}

	in := Inbound{
		ChatID:   msg.Chat.ID,
		Handle:   msg.From.UserName,
		Text:     msg.Text,
		Personal: msg.Chat.IsPrivate(),
	}

	for _, o := range h.dispatcher.Dispatch(ctx, in) {
		h.send(o)
	}
}

// send delivers one instruction. Failures are logged, never retried.
func (h *Handler) send(o Outbound) {
	switch v := o.(type) {
	case SendText:
		if _, err := h.api.Send(tgbotapi.NewMessage(v.ChatID, v.Body)); err != nil {
			h.log.Error("send message", "chat", v.ChatID, "err", err)
		}
	case SendPhoto:
		photo := tgbotapi.NewPhoto(v.ChatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: v.Bytes})
		if _, err := h.api.Send(photo); err != nil {
			h.log.Error("send photo", "chat", v.ChatID, "err", err)
		}
	}
}
