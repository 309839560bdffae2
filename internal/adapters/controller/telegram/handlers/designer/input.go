package designer

import (
	"context"
	"strings"

	"github.com/nlypage/intele/collector"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils"
)

// checkFunc validates a typed answer. It returns the text to reply with when
// the answer is rejected, an empty string otherwise.
type checkFunc func(c tele.Context, text string) string

// ask shows prompt and waits until the user sends a valid answer. ok is false
// when the input was canceled, the prompt is left for the handler of the
// cancelling button.
func (h Handler) ask(c tele.Context, prompt string, markup *tele.ReplyMarkup, check checkFunc) (answer string, ok bool) {
	inputCollector := collector.New()
	if c.Callback() != nil {
		_ = c.Edit(prompt, markup)
		inputCollector.Collect(c.Message())
	} else {
		_ = inputCollector.Send(c, prompt, markup)
	}

	var done bool
	for {
		message, canceled, errGet := h.input.Get(context.Background(), c.Sender().ID, 0)
		if message != nil {
			inputCollector.Collect(message)
		}
		switch {
		case canceled:
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true, ExcludeLast: true})
			return "", false
		case errGet != nil:
			h.logger.Errorf("(user: %d) error while reading input: %v", c.Sender().ID, errGet)
			_ = inputCollector.Send(c,
				h.layout.Text(c, "input_error", prompt),
				markup,
			)
		default:
			text := strings.TrimSpace(utils.GetMessageText(message))
			if invalid := check(c, text); invalid != "" {
				_ = inputCollector.Send(c, invalid, markup)
				continue
			}
			answer = text
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			done = true
		}
		if done {
			break
		}
	}
	return answer, true
}
