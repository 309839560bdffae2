package preview

import (
	"bytes"
	"context"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	qr "github.com/Badsnus/qr-crafter-bot/pkg/qrcode"
)

// Surface shows the preview of a chat as a single photo message that is
// replaced on every mount.
type Surface struct {
	bot    *tele.Bot
	chat   tele.Recipient
	layout *layout.Layout
	locale string

	mu  sync.Mutex
	msg *tele.Message
}

func NewSurface(bot *tele.Bot, chat tele.Recipient, layout *layout.Layout, locale string) *Surface {
	return &Surface{
		bot:    bot,
		chat:   chat,
		layout: layout,
		locale: locale,
	}
}

func (s *Surface) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.msg == nil {
		return nil
	}
	err := s.bot.Delete(s.msg)
	s.msg = nil
	if err != nil && strings.Contains(err.Error(), "message to delete not found") {
		return nil
	}
	return err
}

func (s *Surface) Mount(_ context.Context, artifact *qr.Artifact) error {
	data, err := artifact.RawData(qr.PNG)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.bot.Send(s.chat, &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(data)),
		Caption: s.layout.TextLocale(s.locale, "preview"),
	}, s.layout.MarkupLocale(s.locale, "preview"))
	if err != nil {
		return err
	}
	s.msg = msg
	return nil
}
