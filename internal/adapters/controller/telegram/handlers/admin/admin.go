package admin

import (
	"context"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/Badsnus/qr-crafter-bot/cmd/bot"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
)

type adminUserService interface {
	Count(ctx context.Context) (int64, error)
}

type Handler struct {
	layout *layout.Layout
	logger *types.Logger

	adminUserService adminUserService
}

func New(b *bot.Bot, adminUserService adminUserService) *Handler {
	return &Handler{
		layout:           b.Layout,
		logger:           b.Logger,
		adminUserService: adminUserService,
	}
}

func (h Handler) stats(c tele.Context) error {
	h.logger.Infof("(user: %d) requested stats", c.Sender().ID)

	users, err := h.adminUserService.Count(context.Background())
	if err != nil {
		h.logger.Errorf("(user: %d) error while counting users: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
			h.layout.Markup(c, "core:hide"),
		)
	}

	return c.Send(
		h.layout.Text(c, "stats", struct {
			Users int64
		}{
			Users: users,
		}),
		h.layout.Markup(c, "core:hide"),
	)
}

func (h Handler) AdminSetup(group *tele.Group) {
	group.Handle("/stats", h.stats)
}
