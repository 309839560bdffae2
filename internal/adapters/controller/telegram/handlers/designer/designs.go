package designer

import (
	"context"
	"errors"
	"html"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/service"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/validator"
)

const designDateFormat = "02.01.2006 15:04"

func (h Handler) designsList(c tele.Context) error {
	h.logger.Infof("(user: %d) open saved designs", c.Sender().ID)

	designs, err := h.designService.List(context.Background(), c.Sender().ID)
	if err != nil {
		h.logger.Errorf("(user: %d) error while listing designs: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	markup := c.Bot().NewMarkup()
	var rows []tele.Row
	for _, d := range designs {
		rows = append(rows, markup.Row(*h.layout.Button(c, "designs:design", struct {
			ID   string
			Name string
		}{
			ID:   d.ID,
			Name: d.Name,
		})))
	}
	rows = append(rows, markup.Row(*h.layout.Button(c, "editor:back")))
	markup.Inline(rows...)

	return reply(c, h.layout.Text(c, "designs_list", len(designs)), markup)
}

func (h Handler) design(c tele.Context) error {
	d, err := h.designService.Load(context.Background(), c.Sender().ID, c.Callback().Data)
	if err != nil {
		return h.designError(c, err)
	}

	return edit(c,
		h.layout.Text(c, "design_card", struct {
			Name      string
			CreatedAt string
		}{
			Name:      html.EscapeString(d.Name),
			CreatedAt: d.CreatedAt.Format(designDateFormat),
		}),
		h.layout.Markup(c, "design", struct {
			ID string
		}{
			ID: d.ID,
		}),
	)
}

func (h Handler) loadDesign(c tele.Context) error {
	h.logger.Infof("(user: %d) apply design %s", c.Sender().ID, c.Callback().Data)

	d, err := h.designService.Load(context.Background(), c.Sender().ID, c.Callback().Data)
	if err != nil {
		return h.designError(c, err)
	}

	_, err = h.sessionService.ApplyStyling(context.Background(), c.Sender().ID, func(styling.Options) (styling.Options, error) {
		return d.Styling, nil
	})
	if err != nil {
		h.logger.Errorf("(user: %d) error while applying design: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	_ = c.Respond(&tele.CallbackResponse{Text: h.layout.Text(c, "design_applied")})
	return h.menuHandler.EditMenu(c)
}

func (h Handler) deleteDesign(c tele.Context) error {
	h.logger.Infof("(user: %d) delete design %s", c.Sender().ID, c.Callback().Data)

	if err := h.designService.Delete(context.Background(), c.Sender().ID, c.Callback().Data); err != nil {
		return h.designError(c, err)
	}

	_ = c.Respond(&tele.CallbackResponse{Text: h.layout.Text(c, "design_deleted")})
	return h.designsList(c)
}

func (h Handler) saveDesign(c tele.Context) error {
	h.logger.Infof("(user: %d) save design", c.Sender().ID)

	name, ok := h.ask(c,
		h.layout.Text(c, "input_design_name"),
		h.layout.Markup(c, "editor:back"),
		func(c tele.Context, text string) string {
			if !validator.DesignName(text, nil) {
				return h.layout.Text(c, "invalid_design_name")
			}
			return ""
		},
	)
	if !ok {
		return nil
	}

	opts, err := h.currentStyling(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	d, err := h.designService.Save(context.Background(), c.Sender().ID, name, opts)
	if err != nil {
		if errors.Is(err, service.ErrDesignLimitReached) {
			_ = c.Send(h.layout.Text(c, "design_limit"))
			return h.menuHandler.SendMenu(c)
		}
		h.logger.Errorf("(user: %d) error while saving design: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	_ = c.Send(h.layout.Text(c, "design_saved", html.EscapeString(d.Name)))
	return h.menuHandler.SendMenu(c)
}

func (h Handler) designError(c tele.Context, err error) error {
	if errors.Is(err, service.ErrDesignNotFound) {
		return c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "design_not_found"),
			ShowAlert: true,
		})
	}
	h.logger.Errorf("(user: %d) error while handling design: %v", c.Sender().ID, err)
	return h.technicalIssues(c, err)
}
