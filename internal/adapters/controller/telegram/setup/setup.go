package setup

import (
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/Badsnus/qr-crafter-bot/cmd/bot"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/config"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/handlers/admin"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/handlers/designer"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/handlers/menu"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/handlers/middlewares"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/handlers/start"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/preview"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/service"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger"
	qr "github.com/Badsnus/qr-crafter-bot/pkg/qrcode"
	"github.com/Badsnus/qr-crafter-bot/pkg/smtp"
)

const locale = "en"

// Setup registers the handlers. The returned reload pushes reloaded preview
// settings to the live generators.
func Setup(b *bot.Bot) (func(), error) {
	generatorLogger, err := logger.Named("generator")
	if err != nil {
		return nil, err
	}
	exporterLogger, err := logger.Named("exporter")
	if err != nil {
		return nil, err
	}
	notifyLogger, err := logger.Named("notify")
	if err != nil {
		return nil, err
	}

	// Services
	renderer := qr.NewRenderer()
	notifyService := service.NewNotifyService(b.Bot, b.Layout, notifyLogger)
	userService := service.NewUserService(postgres.NewUserStorage(b.DB))
	designService := service.NewDesignService(postgres.NewDesignStorage(b.DB), viper.GetInt("settings.designs.limit"))

	sessionTTL, sessionDefaults := config.Session()
	sessionService := service.NewSessionService(b.Redis.Sessions, sessionTTL, sessionDefaults, func(userID int64) *service.Generator {
		chat := &tele.Chat{ID: userID}
		return service.NewGenerator(
			renderer,
			preview.NewSurface(b.Bot, chat, b.Layout, locale),
			notifyService.ChatNotifier(chat, locale),
			generatorLogger,
			config.Generator(),
		)
	})

	// Exporters are cheap, one per request picks up reloaded settings.
	newExporter := func(chat tele.Recipient) designer.Exporter {
		return service.NewExporter(renderer, notifyService.ChatNotifier(chat, locale), b.Redis.Locks, exporterLogger, config.Exporter())
	}

	var mail *smtp.Client
	if b.SMTPDialer != nil {
		mail = smtp.NewClient(b.SMTPDialer, viper.GetString("service.smtp.email"), viper.GetString("service.smtp.domain"))
	}

	// Pre-setup and global middlewares
	middle := middlewares.New(b, userService)
	menuHandler := menu.New(b, sessionService, sessionService)
	startHandler := start.New(b, sessionService, menuHandler)
	designerHandler := designer.New(b, menuHandler, designer.Deps{
		Sessions:    sessionService,
		Users:       userService,
		Designs:     designService,
		NewExporter: newExporter,
		Mail:        mail,
		ExportSizes: config.ExportSizes,
	})
	adminHandler := admin.New(b, userService)

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(b.Layout.Middleware(locale))
	b.Use(middleware.AutoRespond())
	b.Handle(tele.OnText, b.Input.Handler())
	b.Handle(tele.OnMedia, b.Input.Handler())
	b.Use(middle.ResetInputOnBack)
	b.Use(middle.Registered)

	// Setup handlers
	startHandler.StartSetup(b.Group())
	designerHandler.DesignerSetup(b.Group())

	// Admin:
	adminGroup := b.Group()
	adminGroup.Use(middleware.Whitelist(utils.AdminIDs()...))
	adminHandler.AdminSetup(adminGroup)

	return func() { sessionService.Configure(config.Generator()) }, nil
}
