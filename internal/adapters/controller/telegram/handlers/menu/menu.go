package menu

import (
	"context"
	"fmt"
	"html"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/Badsnus/qr-crafter-bot/cmd/bot"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
)

const contentPreviewLength = 64

type sessionService interface {
	Get(ctx context.Context, userID int64) (dto.Session, error)
}

type generatorMessages interface {
	Message(userID int64) string
}

type Handler struct {
	layout         *layout.Layout
	logger         *types.Logger
	sessionService sessionService
	messages       generatorMessages
}

func New(b *bot.Bot, sessionService sessionService, messages generatorMessages) *Handler {
	return &Handler{
		logger:         b.Logger,
		layout:         b.Layout,
		sessionService: sessionService,
		messages:       messages,
	}
}

// EditorView is the summary shown above the editor keyboard.
type EditorView struct {
	Content         string
	Dots            string
	CornersSquare   string
	CornersDot      string
	DotsColor       string
	CornersColor    string
	BackgroundColor string
	Format          string
	Size            int
	Message         string
}

// ColorLabel describes a color for humans.
func ColorLabel(c styling.Color) string {
	if g, ok := c.Gradient(); ok {
		return fmt.Sprintf("%s gradient, %g°, %d stops", g.Type, g.Rotation, len(g.ColorStops))
	}
	hex, _ := c.Solid()
	return hex
}

func shortContent(content string) string {
	if utf8.RuneCountInString(content) <= contentPreviewLength {
		return content
	}
	return string([]rune(content)[:contentPreviewLength]) + "…"
}

func NewEditorView(session dto.Session, message string) EditorView {
	s := session.Styling
	return EditorView{
		Content:         html.EscapeString(shortContent(session.Content)),
		Dots:            s.Dots.Type.Label(),
		CornersSquare:   s.CornersSquare.Type.Label(),
		CornersDot:      s.CornersDot.Type.Label(),
		DotsColor:       ColorLabel(s.Dots.Color),
		CornersColor:    ColorLabel(s.CornersSquare.Color),
		BackgroundColor: ColorLabel(s.Background.Color),
		Format:          session.Format,
		Size:            session.Size,
		Message:         html.EscapeString(message),
	}
}

func (h Handler) view(c tele.Context) (EditorView, error) {
	session, err := h.sessionService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		return EditorView{}, err
	}
	return NewEditorView(session, h.messages.Message(c.Sender().ID)), nil
}

func (h Handler) SendMenu(c tele.Context) error {
	v, err := h.view(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues", err.Error()),
			h.layout.Markup(c, "core:hide"),
		)
	}

	h.logger.Infof("(user: %d) send editor", c.Sender().ID)
	return c.Send(
		h.layout.Text(c, "editor", v),
		h.layout.Markup(c, "editor"),
	)
}

func (h Handler) EditMenu(c tele.Context) error {
	v, err := h.view(c)
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting session: %v", c.Sender().ID, err)
		return c.Edit(
			h.layout.Text(c, "technical_issues", err.Error()),
			h.layout.Markup(c, "core:hide"),
		)
	}

	h.logger.Infof("(user: %d) edit editor", c.Sender().ID)
	return c.Edit(
		h.layout.Text(c, "editor", v),
		h.layout.Markup(c, "editor"),
	)
}

func (h Handler) Hide(c tele.Context) error {
	return c.Delete()
}
