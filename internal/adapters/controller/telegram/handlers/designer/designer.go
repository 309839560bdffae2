package designer

import (
	"context"
	"errors"
	"strings"

	"github.com/nlypage/intele"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/Badsnus/qr-crafter-bot/cmd/bot"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/handlers/menu"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/entity"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/service"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"
	"github.com/Badsnus/qr-crafter-bot/pkg/smtp"
)

type sessionService interface {
	Get(ctx context.Context, userID int64) (dto.Session, error)
	SetContent(ctx context.Context, userID int64, content string) (dto.Session, error)
	ApplyStyling(ctx context.Context, userID int64, fn func(styling.Options) (styling.Options, error)) (dto.Session, error)
	SetExportPreferences(ctx context.Context, userID int64, format service.Format, size int) (dto.Session, error)
}

type userService interface {
	Get(ctx context.Context, userID int64) (*entity.User, error)
	SetEmail(ctx context.Context, userID int64, email string) (*entity.User, error)
	SetExportPreferences(ctx context.Context, userID int64, format service.Format, size int) (*entity.User, error)
	AddRecentColor(ctx context.Context, userID int64, hex string) (*entity.User, error)
}

type designService interface {
	Save(ctx context.Context, userID int64, name string, opts styling.Options) (*entity.Design, error)
	List(ctx context.Context, userID int64) ([]dto.DesignListItem, error)
	Load(ctx context.Context, userID int64, id string) (*entity.Design, error)
	Delete(ctx context.Context, userID int64, id string) error
}

// Exporter is the part of service.Exporter the designer uses.
type Exporter interface {
	Export(ctx context.Context, key string, req service.ExportRequest, saver service.Saver) (service.File, error)
	Formats() []service.Format
}

// ExporterFactory builds an exporter whose notifications go to chat.
type ExporterFactory func(chat tele.Recipient) Exporter

// Deps are the services the designer works with. Mail may be nil when e-mail
// delivery is not configured.
type Deps struct {
	Sessions    sessionService
	Users       userService
	Designs     designService
	NewExporter ExporterFactory
	Mail        *smtp.Client
	ExportSizes func() []int
}

type Handler struct {
	bot         *tele.Bot
	layout      *layout.Layout
	logger      *types.Logger
	input       *intele.InputManager
	menuHandler *menu.Handler

	sessionService sessionService
	userService    userService
	designService  designService
	newExporter    ExporterFactory
	mail           *smtp.Client
	exportSizes    func() []int
}

func New(b *bot.Bot, menuHandler *menu.Handler, deps Deps) *Handler {
	return &Handler{
		bot:            b.Bot,
		layout:         b.Layout,
		logger:         b.Logger,
		input:          b.Input,
		menuHandler:    menuHandler,
		sessionService: deps.Sessions,
		userService:    deps.Users,
		designService:  deps.Designs,
		newExporter:    deps.NewExporter,
		mail:           deps.Mail,
		exportSizes:    deps.ExportSizes,
	}
}

// callbackArgs splits the callback payload built from a layout data list.
func callbackArgs(c tele.Context, n int) ([]string, error) {
	if c.Callback() == nil {
		return nil, errorz.ErrInvalidCallbackData
	}
	args := strings.Split(c.Callback().Data, "|")
	if len(args) != n {
		return nil, errorz.ErrInvalidCallbackData
	}
	return args, nil
}

// edit replaces the message behind a callback. Re-rendering an unchanged
// menu is not an error.
func edit(c tele.Context, what interface{}, opts ...interface{}) error {
	err := c.Edit(what, opts...)
	if errors.Is(err, tele.ErrSameMessageContent) {
		return nil
	}
	return err
}

// reply edits the message behind a callback and sends a new one otherwise.
func reply(c tele.Context, what interface{}, opts ...interface{}) error {
	if c.Callback() != nil {
		return edit(c, what, opts...)
	}
	return c.Send(what, opts...)
}

func (h Handler) technicalIssues(c tele.Context, err error) error {
	return c.Send(
		h.layout.Text(c, "technical_issues", err.Error()),
		h.layout.Markup(c, "core:hide"),
	)
}

func (h Handler) back(c tele.Context) error {
	return h.menuHandler.EditMenu(c)
}

func (h Handler) DesignerSetup(group *tele.Group) {
	group.Handle(h.layout.Callback("core:hide"), h.menuHandler.Hide)
	group.Handle(h.layout.Callback("editor:back"), h.back)

	group.Handle(h.layout.Callback("editor:content"), h.content)

	group.Handle(h.layout.Callback("editor:dots"), h.dotsMenu)
	group.Handle(h.layout.Callback("editor:corner_squares"), h.cornerSquaresMenu)
	group.Handle(h.layout.Callback("editor:corner_dots"), h.cornerDotsMenu)
	group.Handle(h.layout.Callback("shape:dot"), h.setDotType)
	group.Handle(h.layout.Callback("shape:corner_square"), h.setCornerSquareType)
	group.Handle(h.layout.Callback("shape:corner_dot"), h.setCornerDotType)

	group.Handle(h.layout.Callback("editor:colors"), h.colorsMenu)
	group.Handle(h.layout.Callback("colors:back"), h.colorsMenu)
	group.Handle(h.layout.Callback("colors:control"), h.colorControl)
	group.Handle(h.layout.Callback("color:kind"), h.setColorKind)
	group.Handle(h.layout.Callback("color:preset"), h.setPresetColor)
	group.Handle(h.layout.Callback("color:custom"), h.customColor)
	group.Handle(h.layout.Callback("gradient:type"), h.setGradientType)
	group.Handle(h.layout.Callback("gradient:rotate"), h.rotateGradient)
	group.Handle(h.layout.Callback("gradient:stop"), h.editGradientStop)
	group.Handle(h.layout.Callback("gradient:remove_stop"), h.removeGradientStop)
	group.Handle(h.layout.Callback("gradient:add_stop"), h.addGradientStop)

	group.Handle("/export", h.exportMenu)
	group.Handle(h.layout.Callback("editor:export"), h.exportMenu)
	group.Handle(h.layout.Callback("export:format"), h.setExportFormat)
	group.Handle(h.layout.Callback("export:size"), h.setExportSize)
	group.Handle(h.layout.Callback("export:download"), h.download)
	group.Handle(h.layout.Callback("export:email"), h.email)

	group.Handle("/designs", h.designsList)
	group.Handle(h.layout.Callback("editor:designs"), h.designsList)
	group.Handle(h.layout.Callback("designs:back"), h.designsList)
	group.Handle(h.layout.Callback("editor:save"), h.saveDesign)
	group.Handle(h.layout.Callback("designs:design"), h.design)
	group.Handle(h.layout.Callback("designs:load"), h.loadDesign)
	group.Handle(h.layout.Callback("designs:delete"), h.deleteDesign)
}
