package service

import (
	"context"
	"strings"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger/types"

	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
)

type NotifyService struct {
	bot    *tele.Bot
	layout *layout.Layout
	logger *types.Logger
}

func NewNotifyService(bot *tele.Bot, layout *layout.Layout, logger *types.Logger) *NotifyService {
	return &NotifyService{
		bot:    bot,
		layout: layout,
		logger: logger,
	}
}

// LogHook returns a log hook for the specified channel
//
// Parameters:
//   - channelID is the channel to send the log to
//   - locale is the locale to use for the layout
//   - level is the minimum log level to send
func (s *NotifyService) LogHook(channelID int64, locale string, level zapcore.Level) (types.LogHook, error) {
	chat, err := s.bot.ChatByID(channelID)
	if err != nil {
		return nil, err
	}
	return func(log types.Log) {
		if log.Level >= level {
			_, err = s.bot.Send(chat, s.layout.TextLocale(locale, "log", log))
			if err != nil && !strings.Contains(log.Message, "failed to send log to channel") {
				s.logger.Errorf("failed to send log to channel %d: %v\n", channelID, err)
			}
		}
	}, nil
}

// ChatNotifier returns a Notifier that posts toasts into chat.
func (s *NotifyService) ChatNotifier(chat tele.Recipient, locale string) Notifier {
	return &chatNotifier{service: s, chat: chat, locale: locale}
}

type chatNotifier struct {
	service *NotifyService
	chat    tele.Recipient
	locale  string
}

func (n *chatNotifier) Notify(_ context.Context, notification dto.Notification) {
	_, err := n.service.bot.Send(n.chat, n.service.layout.TextLocale(n.locale, "toast", notification))
	if err != nil {
		n.service.logger.Errorf("(chat: %s) failed to send notification %q: %v", n.chat.Recipient(), notification.Title, err)
	}
}
