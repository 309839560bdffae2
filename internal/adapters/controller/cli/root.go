// Package cli provides the qrcrafter command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Badsnus/qr-crafter-bot/internal/adapters/config"
)

// NewRootCmd creates the root command. Every subcommand loads the
// configuration before it runs.
func NewRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "qrcrafter",
		Short: "Styled QR code designer",
		Long: `QR Crafter designs styled QR codes: dot and corner shapes, solid or
gradient colors and an optional center logo, exported as PNG, JPEG or SVG.

Run the Telegram bot with "qrcrafter bot" or render a code offline with
"qrcrafter render".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "schema" {
				return nil
			}
			return config.Load(configFile, nil)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(NewBotCmd())
	rootCmd.AddCommand(NewRenderCmd())
	rootCmd.AddCommand(NewSchemaCmd())

	return rootCmd
}
