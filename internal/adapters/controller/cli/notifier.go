package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
)

var (
	successColor = lipgloss.Color("#4ade80")
	errorColor   = lipgloss.Color("#f87171")
	mutedColor   = lipgloss.Color("#909090")
)

// TerminalNotifier prints notifications as styled lines.
type TerminalNotifier struct {
	out         io.Writer
	title       lipgloss.Style
	errorTitle  lipgloss.Style
	description lipgloss.Style
}

func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{
		out:         out,
		title:       lipgloss.NewStyle().Foreground(successColor).Bold(true),
		errorTitle:  lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		description: lipgloss.NewStyle().Foreground(mutedColor).PaddingLeft(2),
	}
}

func (n *TerminalNotifier) Notify(_ context.Context, notification dto.Notification) {
	title := n.title
	mark := "✓"
	if notification.Destructive() {
		title = n.errorTitle
		mark = "✗"
	}
	_, _ = fmt.Fprintf(n.out, "%s\n%s\n",
		title.Render(mark+" "+notification.Title),
		n.description.Render(notification.Description),
	)
}
