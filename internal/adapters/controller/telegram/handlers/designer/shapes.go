package designer

import (
	"context"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
)

type shapeButton struct {
	Type     string
	Label    string
	Selected bool
}

func (h Handler) shapeMenu(c tele.Context, text, button string, buttons []shapeButton) error {
	markup := c.Bot().NewMarkup()
	var rows []tele.Row
	for i := 0; i < len(buttons); i += 2 {
		row := []tele.Btn{*h.layout.Button(c, button, buttons[i])}
		if i+1 < len(buttons) {
			row = append(row, *h.layout.Button(c, button, buttons[i+1]))
		}
		rows = append(rows, markup.Row(row...))
	}
	rows = append(rows, markup.Row(*h.layout.Button(c, "editor:back")))
	markup.Inline(rows...)

	return edit(c, h.layout.Text(c, text), markup)
}

func (h Handler) currentStyling(c tele.Context) (styling.Options, error) {
	session, err := h.sessionService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		return styling.Options{}, err
	}
	return session.Styling, nil
}

func (h Handler) dotsMenu(c tele.Context) error {
	opts, err := h.currentStyling(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	buttons := make([]shapeButton, 0, len(styling.DotTypes))
	for _, t := range styling.DotTypes {
		buttons = append(buttons, shapeButton{Type: string(t), Label: t.Label(), Selected: t == opts.Dots.Type})
	}
	return h.shapeMenu(c, "choose_dot_type", "shape:dot", buttons)
}

func (h Handler) cornerSquaresMenu(c tele.Context) error {
	opts, err := h.currentStyling(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	buttons := make([]shapeButton, 0, len(styling.CornerSquareTypes))
	for _, t := range styling.CornerSquareTypes {
		buttons = append(buttons, shapeButton{Type: string(t), Label: t.Label(), Selected: t == opts.CornersSquare.Type})
	}
	return h.shapeMenu(c, "choose_corner_square", "shape:corner_square", buttons)
}

func (h Handler) cornerDotsMenu(c tele.Context) error {
	opts, err := h.currentStyling(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	buttons := make([]shapeButton, 0, len(styling.CornerDotTypes))
	for _, t := range styling.CornerDotTypes {
		buttons = append(buttons, shapeButton{Type: string(t), Label: t.Label(), Selected: t == opts.CornersDot.Type})
	}
	return h.shapeMenu(c, "choose_corner_dot", "shape:corner_dot", buttons)
}

// applyChange stores a styling change and confirms it with a callback answer.
func (h Handler) applyChange(c tele.Context, element, label string, change styling.Change) error {
	_, err := h.sessionService.ApplyStyling(context.Background(), c.Sender().ID, func(o styling.Options) (styling.Options, error) {
		return o.Apply(change), nil
	})
	if err != nil {
		h.logger.Errorf("(user: %d) error while applying %s: %v", c.Sender().ID, element, err)
		_ = h.technicalIssues(c, err)
		return err
	}

	h.logger.Infof("(user: %d) %s set to %s", c.Sender().ID, element, label)
	return c.Respond(&tele.CallbackResponse{
		Text: h.layout.Text(c, "shape_changed", struct {
			Element string
			Label   string
		}{
			Element: element,
			Label:   label,
		}),
	})
}

func (h Handler) setDotType(c tele.Context) error {
	t, err := styling.ParseDotType(c.Callback().Data)
	if err != nil {
		return errorz.ErrInvalidCallbackData
	}
	if err = h.applyChange(c, "Dots", t.Label(), styling.SetDotType(t)); err != nil {
		return err
	}
	return h.dotsMenu(c)
}

func (h Handler) setCornerSquareType(c tele.Context) error {
	t, err := styling.ParseCornerSquareType(c.Callback().Data)
	if err != nil {
		return errorz.ErrInvalidCallbackData
	}
	if err = h.applyChange(c, "Corner squares", t.Label(), styling.SetCornerSquareType(t)); err != nil {
		return err
	}
	return h.cornerSquaresMenu(c)
}

func (h Handler) setCornerDotType(c tele.Context) error {
	t, err := styling.ParseCornerDotType(c.Callback().Data)
	if err != nil {
		return errorz.ErrInvalidCallbackData
	}
	if err = h.applyChange(c, "Corner dots", t.Label(), styling.SetCornerDotType(t)); err != nil {
		return err
	}
	return h.cornerDotsMenu(c)
}
