package smtp

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Client sends e-mails through an SMTP dialer.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
}

// NewClient creates a Client. domain is used for Message-ID headers.
func NewClient(dialer *gomail.Dialer, from, domain string) *Client {
	return &Client{dialer: dialer, from: from, domain: domain}
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Name string
	MIME string
	Data []byte
}

func (c *Client) newMessage(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}

// SendAttachment sends a message with a single attached file.
func (c *Client) SendAttachment(to, subject, body string, file Attachment) error {
	msg := c.newMessage(to, subject, body)
	msg.Attach(file.Name,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(file.Data)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {file.MIME}}),
	)

	if err := c.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
