package saver

import (
	"bytes"
	"context"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/service"
	"github.com/Badsnus/qr-crafter-bot/pkg/filesave"
	"github.com/Badsnus/qr-crafter-bot/pkg/smtp"
)

// Document sends the export to a Telegram chat as a file.
type Document struct {
	Bot     *tele.Bot
	Chat    tele.Recipient
	Caption string
}

func (s Document) Save(_ context.Context, file service.File) error {
	_, err := s.Bot.Send(s.Chat, &tele.Document{
		File:     tele.FromReader(bytes.NewReader(file.Data)),
		FileName: file.Name,
		MIME:     file.MIME,
		Caption:  s.Caption,
	})
	return err
}

// Disk writes the export into a directory. Path holds the location of the
// last saved file.
type Disk struct {
	Dir  *filesave.Dir
	Path string
}

func (s *Disk) Save(ctx context.Context, file service.File) error {
	path, err := s.Dir.Save(ctx, file.Name, file.Data)
	if err != nil {
		return err
	}
	s.Path = path
	return nil
}

// Mail delivers the export as an e-mail attachment.
type Mail struct {
	Client  *smtp.Client
	To      string
	Subject string
	Body    string
}

func (s Mail) Save(_ context.Context, file service.File) error {
	return s.Client.SendAttachment(s.To, s.Subject, s.Body, smtp.Attachment{
		Name: file.Name,
		MIME: file.MIME,
		Data: file.Data,
	})
}
