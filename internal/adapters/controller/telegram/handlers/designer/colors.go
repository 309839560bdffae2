package designer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/validator"
)

const (
	rotationStep  = 45
	presetsPerRow = 4
)

var controlLabels = map[styling.ColorControl]string{
	styling.DotsColor:       "Dots",
	styling.CornersColor:    "Corners",
	styling.BackgroundColor: "Background",
}

type colorView struct {
	Label        string
	Gradient     bool
	GradientType string
	Rotation     float64
	Hex          string
}

func (h Handler) colorsMenu(c tele.Context) error {
	markup := c.Bot().NewMarkup()
	var rows []tele.Row
	for _, control := range styling.ColorControls {
		rows = append(rows, markup.Row(*h.layout.Button(c, "colors:control", struct {
			Label   string
			Control string
		}{
			Label:   controlLabels[control],
			Control: string(control),
		})))
	}
	rows = append(rows, markup.Row(*h.layout.Button(c, "editor:back")))
	markup.Inline(rows...)

	return edit(c, h.layout.Text(c, "choose_color_control"), markup)
}

func (h Handler) colorControl(c tele.Context) error {
	control, err := styling.ParseColorControl(c.Callback().Data)
	if err != nil {
		return errorz.ErrInvalidCallbackData
	}
	return h.colorMenu(c, control, false)
}

// palette returns the recent colors of the user followed by the presets.
func (h Handler) palette(c tele.Context) []string {
	seen := make(map[string]struct{})
	var colors []string
	add := func(hex string) {
		key := strings.ToUpper(hex)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		colors = append(colors, key)
	}

	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		h.logger.Warnf("(user: %d) error while getting recent colors: %v", c.Sender().ID, err)
	} else {
		for _, hex := range user.RecentColors {
			add(hex)
		}
	}
	for _, hex := range styling.PresetColors {
		add(hex)
	}
	return colors
}

// colorMenu shows the picker of control. A fresh menu is sent as a new message,
// otherwise the callback message is edited.
func (h Handler) colorMenu(c tele.Context, control styling.ColorControl, fresh bool) error {
	opts, err := h.currentStyling(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}
	current := control.Current(opts)

	view := colorView{Label: controlLabels[control]}
	markup := c.Bot().NewMarkup()
	var rows []tele.Row

	var kindRow []tele.Btn
	for _, kind := range []styling.ColorKind{styling.KindSolid, styling.KindGradient} {
		kindRow = append(kindRow, *h.layout.Button(c, "color:kind", struct {
			Control  string
			Kind     string
			Label    string
			Selected bool
		}{
			Control:  string(control),
			Kind:     string(kind),
			Label:    strings.ToUpper(string(kind[:1])) + string(kind[1:]),
			Selected: current.Kind() == kind,
		}))
	}
	rows = append(rows, markup.Row(kindRow...))

	if g, ok := current.Gradient(); ok {
		view.Gradient = true
		view.GradientType = string(g.Type)
		view.Rotation = g.Rotation
		rows = append(rows, h.gradientRows(c, markup, control, g)...)
	} else {
		hex, _ := current.Solid()
		view.Hex = hex

		var row []tele.Btn
		for _, preset := range h.palette(c) {
			row = append(row, *h.layout.Button(c, "color:preset", struct {
				Control  string
				Hex      string
				Selected bool
			}{
				Control:  string(control),
				Hex:      preset,
				Selected: strings.EqualFold(preset, hex),
			}))
			if len(row) == presetsPerRow {
				rows = append(rows, markup.Row(row...))
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, markup.Row(row...))
		}
		rows = append(rows, markup.Row(*h.layout.Button(c, "color:custom", struct {
			Control string
		}{
			Control: string(control),
		})))
	}

	rows = append(rows, markup.Row(*h.layout.Button(c, "colors:back")))
	markup.Inline(rows...)

	if fresh {
		return c.Send(h.layout.Text(c, "color_menu", view), markup)
	}
	return edit(c, h.layout.Text(c, "color_menu", view), markup)
}

func (h Handler) gradientRows(c tele.Context, markup *tele.ReplyMarkup, control styling.ColorControl, g styling.Gradient) []tele.Row {
	var rows []tele.Row

	var typeRow []tele.Btn
	for _, t := range []styling.GradientType{styling.Linear, styling.Radial} {
		typeRow = append(typeRow, *h.layout.Button(c, "gradient:type", struct {
			Control  string
			Type     string
			Label    string
			Selected bool
		}{
			Control:  string(control),
			Type:     string(t),
			Label:    strings.ToUpper(string(t[:1])) + string(t[1:]),
			Selected: g.Type == t,
		}))
	}
	rows = append(rows, markup.Row(typeRow...))

	if g.Type == styling.Linear {
		rotate := func(delta int, label string) tele.Btn {
			return *h.layout.Button(c, "gradient:rotate", struct {
				Control string
				Delta   int
				Label   string
			}{
				Control: string(control),
				Delta:   delta,
				Label:   label,
			})
		}
		rows = append(rows, markup.Row(
			rotate(-rotationStep, fmt.Sprintf("↺ %d°", rotationStep)),
			rotate(rotationStep, fmt.Sprintf("↻ %d°", rotationStep)),
		))
	}

	for i, stop := range g.ColorStops {
		row := []tele.Btn{*h.layout.Button(c, "gradient:stop", struct {
			Control string
			Index   int
			Offset  int
			Color   string
		}{
			Control: string(control),
			Index:   i,
			Offset:  int(math.Round(stop.Offset * 100)),
			Color:   stop.Color,
		})}
		if g.CanRemoveStop() {
			row = append(row, *h.layout.Button(c, "gradient:remove_stop", struct {
				Control string
				Index   int
			}{
				Control: string(control),
				Index:   i,
			}))
		}
		rows = append(rows, markup.Row(row...))
	}

	if g.CanAddStop() {
		rows = append(rows, markup.Row(*h.layout.Button(c, "gradient:add_stop", struct {
			Control string
		}{
			Control: string(control),
		})))
	}
	return rows
}

// editColor stores the result of fn. A stop index that no longer exists means
// the keyboard is stale.
func (h Handler) editColor(c tele.Context, control styling.ColorControl, fn func(styling.Options) (styling.Options, error)) error {
	_, err := h.sessionService.ApplyStyling(context.Background(), c.Sender().ID, fn)
	if err != nil {
		if errors.Is(err, styling.ErrStopIndexOutOfRange) {
			return errorz.ErrInvalidCallbackData
		}
		h.logger.Errorf("(user: %d) error while editing %s color: %v", c.Sender().ID, control, err)
		_ = h.technicalIssues(c, err)
		return err
	}
	h.logger.Infof("(user: %d) edit %s color", c.Sender().ID, control)
	return nil
}

func (h Handler) askHex(c tele.Context) (string, bool) {
	hex, ok := h.ask(c,
		h.layout.Text(c, "input_hex"),
		h.layout.Markup(c, "colors"),
		func(c tele.Context, text string) string {
			if !validator.HexColor(text, nil) {
				return h.layout.Text(c, "invalid_hex", html.EscapeString(text))
			}
			return ""
		},
	)
	if !ok {
		return "", false
	}
	hex = strings.ToUpper(hex)

	if _, err := h.userService.AddRecentColor(context.Background(), c.Sender().ID, hex); err != nil {
		h.logger.Errorf("(user: %d) error while saving recent color: %v", c.Sender().ID, err)
	}
	return hex, true
}

func parseControl(s string) (styling.ColorControl, error) {
	control, err := styling.ParseColorControl(s)
	if err != nil {
		return "", errorz.ErrInvalidCallbackData
	}
	return control, nil
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, errorz.ErrInvalidCallbackData
	}
	return index, nil
}

func (h Handler) setColorKind(c tele.Context) error {
	args, err := callbackArgs(c, 2)
	if err != nil {
		return err
	}
	control, err := parseControl(args[0])
	if err != nil {
		return err
	}
	kind := styling.ColorKind(args[1])
	if kind != styling.KindSolid && kind != styling.KindGradient {
		return errorz.ErrInvalidCallbackData
	}

	err = h.editColor(c, control, func(o styling.Options) (styling.Options, error) {
		return o.ToggleColorKind(control, kind), nil
	})
	if err != nil {
		return err
	}
	return h.colorMenu(c, control, false)
}

func (h Handler) setPresetColor(c tele.Context) error {
	args, err := callbackArgs(c, 2)
	if err != nil {
		return err
	}
	control, err := parseControl(args[0])
	if err != nil {
		return err
	}
	hex := args[1]
	if !validator.HexColor(hex, nil) {
		return errorz.ErrInvalidCallbackData
	}

	err = h.editColor(c, control, func(o styling.Options) (styling.Options, error) {
		return o.SetSolidColor(control, hex), nil
	})
	if err != nil {
		return err
	}
	return h.colorMenu(c, control, false)
}

func (h Handler) customColor(c tele.Context) error {
	control, err := parseControl(c.Callback().Data)
	if err != nil {
		return err
	}
	h.logger.Infof("(user: %d) enter custom %s color", c.Sender().ID, control)

	hex, ok := h.askHex(c)
	if !ok {
		return nil
	}

	err = h.editColor(c, control, func(o styling.Options) (styling.Options, error) {
		return o.SetSolidColor(control, hex), nil
	})
	if err != nil {
		return err
	}
	return h.colorMenu(c, control, true)
}

func (h Handler) setGradientType(c tele.Context) error {
	args, err := callbackArgs(c, 2)
	if err != nil {
		return err
	}
	control, err := parseControl(args[0])
	if err != nil {
		return err
	}
	t := styling.GradientType(args[1])
	if !t.Valid() {
		return errorz.ErrInvalidCallbackData
	}

	err = h.editColor(c, control, func(o styling.Options) (styling.Options, error) {
		return o.EditGradient(control, func(g styling.Gradient) (styling.Gradient, error) {
			return g.WithType(t), nil
		})
	})
	if err != nil {
		return err
	}
	return h.colorMenu(c, control, false)
}

func (h Handler) rotateGradient(c tele.Context) error {
	args, err := callbackArgs(c, 2)
	if err != nil {
		return err
	}
	control, err := parseControl(args[0])
	if err != nil {
		return err
	}
	delta, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errorz.ErrInvalidCallbackData
	}

	err = h.editColor(c, control, func(o styling.Options) (styling.Options, error) {
		return o.EditGradient(control, func(g styling.Gradient) (styling.Gradient, error) {
			return g.WithRotation(g.Rotation + delta), nil
		})
	})
	if err != nil {
		return err
	}
	return h.colorMenu(c, control, false)
}

func (h Handler) editGradientStop(c tele.Context) error {
	args, err := callbackArgs(c, 2)
	if err != nil {
		return err
	}
	control, err := parseControl(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	h.logger.Infof("(user: %d) edit %s gradient stop %d", c.Sender().ID, control, index)

	hex, ok := h.askHex(c)
	if !ok {
		return nil
	}

	err = h.editColor(c, control, func(o styling.Options) (styling.Options, error) {
		return o.EditGradient(control, func(g styling.Gradient) (styling.Gradient, error) {
			return g.WithStopColor(index, hex)
		})
	})
	if err != nil {
		return err
	}
	return h.colorMenu(c, control, true)
}

func (h Handler) removeGradientStop(c tele.Context) error {
	args, err := callbackArgs(c, 2)
	if err != nil {
		return err
	}
	control, err := parseControl(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}

	err = h.editColor(c, control, func(o styling.Options) (styling.Options, error) {
		return o.EditGradient(control, func(g styling.Gradient) (styling.Gradient, error) {
			return g.RemoveStop(index)
		})
	})
	if err != nil {
		return err
	}
	return h.colorMenu(c, control, false)
}

func (h Handler) addGradientStop(c tele.Context) error {
	control, err := parseControl(c.Callback().Data)
	if err != nil {
		return err
	}

	err = h.editColor(c, control, func(o styling.Options) (styling.Options, error) {
		return o.EditGradient(control, func(g styling.Gradient) (styling.Gradient, error) {
			return g.AddStop(), nil
		})
	})
	if err != nil {
		return err
	}
	return h.colorMenu(c, control, false)
}
