package designer

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-crafter-bot/internal/adapters/saver"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/service"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/validator"
)

// session returns the session of the sender. A session that was never saved
// takes the export preferences stored on the user.
func (h Handler) session(c tele.Context) (dto.Session, error) {
	ctx := context.Background()
	session, err := h.sessionService.Get(ctx, c.Sender().ID)
	if err != nil || !session.UpdatedAt.IsZero() {
		return session, err
	}

	user, err := h.userService.Get(ctx, c.Sender().ID)
	if err != nil {
		h.logger.Warnf("(user: %d) error while getting export preferences: %v", c.Sender().ID, err)
		return session, nil
	}
	if user.ExportFormat == "" && user.ExportSize <= 0 {
		return session, nil
	}
	// an unknown stored format parses to "", which keeps the session default
	format, _ := service.ParseFormat(user.ExportFormat)
	return h.sessionService.SetExportPreferences(ctx, c.Sender().ID, format, user.ExportSize)
}

func (h Handler) exportMenu(c tele.Context) error {
	h.logger.Infof("(user: %d) open export menu", c.Sender().ID)

	session, err := h.session(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	markup := c.Bot().NewMarkup()
	var rows []tele.Row

	var formatRow []tele.Btn
	for _, format := range h.newExporter(c.Chat()).Formats() {
		formatRow = append(formatRow, *h.layout.Button(c, "export:format", struct {
			Format   string
			Label    string
			Selected bool
		}{
			Format:   string(format),
			Label:    strings.ToUpper(format.Extension()),
			Selected: string(format) == session.Format,
		}))
	}
	rows = append(rows, markup.Row(formatRow...))

	var sizeRow []tele.Btn
	for _, size := range h.exportSizes() {
		sizeRow = append(sizeRow, *h.layout.Button(c, "export:size", struct {
			Size     int
			Selected bool
		}{
			Size:     size,
			Selected: size == session.Size,
		}))
	}
	rows = append(rows, markup.Row(sizeRow...))

	actions := []tele.Btn{*h.layout.Button(c, "export:download")}
	if h.mail != nil {
		actions = append(actions, *h.layout.Button(c, "export:email"))
	}
	rows = append(rows, markup.Row(actions...), markup.Row(*h.layout.Button(c, "editor:back")))
	markup.Inline(rows...)

	return reply(c,
		h.layout.Text(c, "export_menu", struct {
			Format string
			Size   int
		}{
			Format: strings.ToUpper(session.Format),
			Size:   session.Size,
		}),
		markup,
	)
}

// setExportPreferences stores the choice on the session and remembers it for
// future sessions of the user.
func (h Handler) setExportPreferences(c tele.Context, format service.Format, size int) error {
	ctx := context.Background()
	if _, err := h.sessionService.SetExportPreferences(ctx, c.Sender().ID, format, size); err != nil {
		h.logger.Errorf("(user: %d) error while setting export preferences: %v", c.Sender().ID, err)
		_ = h.technicalIssues(c, err)
		return err
	}
	if _, err := h.userService.SetExportPreferences(ctx, c.Sender().ID, format, size); err != nil {
		h.logger.Errorf("(user: %d) error while saving export preferences: %v", c.Sender().ID, err)
	}
	return nil
}

func (h Handler) setExportFormat(c tele.Context) error {
	format, err := service.ParseFormat(c.Callback().Data)
	if err != nil || !slices.Contains(h.newExporter(c.Chat()).Formats(), format) {
		return errorz.ErrInvalidCallbackData
	}

	h.logger.Infof("(user: %d) set export format %s", c.Sender().ID, format)
	if err = h.setExportPreferences(c, format, 0); err != nil {
		return err
	}
	return h.exportMenu(c)
}

func (h Handler) setExportSize(c tele.Context) error {
	size, err := strconv.Atoi(c.Callback().Data)
	if err != nil || !slices.Contains(h.exportSizes(), size) {
		return errorz.ErrInvalidCallbackData
	}

	h.logger.Infof("(user: %d) set export size %d", c.Sender().ID, size)
	if err = h.setExportPreferences(c, "", size); err != nil {
		return err
	}
	return h.exportMenu(c)
}

func exportRequest(session dto.Session) service.ExportRequest {
	return service.ExportRequest{
		Content: session.Content,
		Styling: session.Styling,
		Size:    session.Size,
		Format:  service.Format(session.Format),
	}
}

// exportResult answers the outcome of an export. Success and delivery
// failures are already reported by the exporter's notifier.
func (h Handler) exportResult(c tele.Context, err error) error {
	var (
		validationErr *errorz.ValidationError
		exportErr     *errorz.ExportError
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errorz.ErrExportInProgress):
		return c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "export_in_progress"),
			ShowAlert: true,
		})
	case errors.As(err, &validationErr):
		return c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "export_no_content"),
			ShowAlert: true,
		})
	case errors.As(err, &exportErr):
		return nil
	default:
		h.logger.Errorf("(user: %d) error while exporting: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}
}

func (h Handler) download(c tele.Context) error {
	h.logger.Infof("(user: %d) download qr code", c.Sender().ID)

	session, err := h.session(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	_, err = h.newExporter(c.Chat()).Export(
		context.Background(),
		strconv.FormatInt(c.Sender().ID, 10),
		exportRequest(session),
		saver.Document{Bot: h.bot, Chat: c.Chat()},
	)
	return h.exportResult(c, err)
}

func (h Handler) email(c tele.Context) error {
	h.logger.Infof("(user: %d) send qr code by e-mail", c.Sender().ID)

	if h.mail == nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      h.layout.Text(c, "email_unavailable"),
			ShowAlert: true,
		})
	}

	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting user: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	to := user.Email
	if to == "" {
		var ok bool
		to, ok = h.ask(c,
			h.layout.Text(c, "input_email"),
			h.layout.Markup(c, "editor:back"),
			func(c tele.Context, text string) string {
				if !validator.Email(text, nil) {
					return h.layout.Text(c, "invalid_email")
				}
				return ""
			},
		)
		if !ok {
			return nil
		}
		if _, err = h.userService.SetEmail(context.Background(), c.Sender().ID, to); err != nil {
			h.logger.Errorf("(user: %d) error while saving e-mail: %v", c.Sender().ID, err)
			return h.technicalIssues(c, err)
		}
	}

	session, err := h.session(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return h.technicalIssues(c, err)
	}

	_, err = h.newExporter(c.Chat()).Export(
		context.Background(),
		strconv.FormatInt(c.Sender().ID, 10),
		exportRequest(session),
		saver.Mail{
			Client:  h.mail,
			To:      to,
			Subject: h.layout.Text(c, "email_subject"),
			Body:    h.layout.Text(c, "email_body"),
		},
	)
	return h.exportResult(c, err)
}
