package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Badsnus/qr-crafter-bot/cmd/bot"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/config"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/telegram/setup"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger"
)

// NewBotCmd creates the command running the Telegram bot until SIGINT or SIGTERM.
func NewBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer logger.Sync()

			cfg := config.Get()
			b, err := bot.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to create bot: %w", err)
			}
			reload, err := setup.Setup(b)
			if err != nil {
				return fmt.Errorf("failed to set up handlers: %w", err)
			}

			config.Watch(func() {
				reload()
				logger.Log.Infof("Settings reloaded, export formats: %v", config.Exporter().Formats)
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				b.Start()
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				b.Stop()
				return nil
			})
			return g.Wait()
		},
	}
}
