package designer

import (
	"context"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/validator"
)

func (h Handler) content(c tele.Context) error {
	h.logger.Infof("(user: %d) edit content", c.Sender().ID)

	content, ok := h.ask(c,
		h.layout.Text(c, "input_content"),
		h.layout.Markup(c, "editor:back"),
		func(c tele.Context, text string) string {
			if res := validator.Content(text); !res.Valid {
				return h.layout.Text(c, "content_invalid", res.Message)
			}
			return ""
		},
	)
	if !ok {
		return nil
	}

	if _, err := h.sessionService.SetContent(context.Background(), c.Sender().ID, content); err != nil {
		h.logger.Errorf("(user: %d) error while setting content: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	_ = c.Send(h.layout.Text(c, "content_saved"))
	return h.menuHandler.SendMenu(c)
}
