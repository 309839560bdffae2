package start

import (
	"context"
	"html"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/Badsnus/qr-crafter-bot/cmd/bot"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/handlers/menu"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
)

type sessionService interface {
	Reset(ctx context.Context, userID int64) error
}

type Handler struct {
	sessionService sessionService
	menuHandler    *menu.Handler
	layout         *layout.Layout
	logger         *types.Logger
}

func New(b *bot.Bot, sessionService sessionService, menuHandler *menu.Handler) *Handler {
	return &Handler{
		sessionService: sessionService,
		menuHandler:    menuHandler,
		layout:         b.Layout,
		logger:         b.Logger,
	}
}

func (h *Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) press start button", c.Sender().ID)

	_ = c.Delete()
	if err := c.Send(h.layout.Text(c, "start", struct {
		FirstName string
	}{
		FirstName: html.EscapeString(c.Sender().FirstName),
	})); err != nil {
		return err
	}
	return h.menuHandler.SendMenu(c)
}

// New drops the current design and opens a clean editor.
func (h *Handler) New(c tele.Context) error {
	h.logger.Infof("(user: %d) start over", c.Sender().ID)

	if err := h.sessionService.Reset(context.Background(), c.Sender().ID); err != nil {
		h.logger.Errorf("(user: %d) error while resetting session: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
			h.layout.Markup(c, "core:hide"),
		)
	}

	if c.Callback() != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: h.layout.Text(c, "session_reset")})
		return h.menuHandler.EditMenu(c)
	}
	return h.menuHandler.SendMenu(c)
}

func (h *Handler) StartSetup(group *tele.Group) {
	group.Handle("/start", h.Start)
	group.Handle("/new", h.New)
	group.Handle(h.layout.Callback("editor:reset"), h.New)
}
