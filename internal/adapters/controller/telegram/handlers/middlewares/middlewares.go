package middlewares

import (
	"context"
	"strings"

	"github.com/nlypage/intele"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/Badsnus/qr-crafter-bot/cmd/bot"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/entity"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
)

type userService interface {
	Register(ctx context.Context, sender *tele.User) (*entity.User, error)
}

type Handler struct {
	bot         *tele.Bot
	layout      *layout.Layout
	logger      *types.Logger
	userService userService
	input       *intele.InputManager
}

func New(b *bot.Bot, userService userService) *Handler {
	return &Handler{
		bot:         b.Bot,
		layout:      b.Layout,
		logger:      b.Logger,
		userService: userService,
		input:       b.Input,
	}
}

// Registered makes sure the sender is stored before any handler runs.
func (h Handler) Registered(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil {
			return next(c)
		}

		_, err := h.userService.Register(context.Background(), c.Sender())
		if err != nil {
			h.logger.Errorf("(user: %d) error while registering user: %v", c.Sender().ID, err)
			return c.Send(
				h.layout.Text(c, "technical_issues", err.Error()),
				h.layout.Markup(c, "core:hide"),
			)
		}

		return next(c)
	}
}

// ResetInputOnBack middleware clears the input state when the back button is pressed.
func (h Handler) ResetInputOnBack(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Callback() != nil {
			if strings.Contains(c.Callback().Data, "back") || strings.Contains(c.Callback().Unique, "back") {
				h.input.Cancel(c.Sender().ID)
			}
		}
		if c.Message() != nil {
			if strings.HasPrefix(c.Message().Text, "/") {
				h.input.Cancel(c.Sender().ID)
			}
		}

		return next(c)
	}
}
