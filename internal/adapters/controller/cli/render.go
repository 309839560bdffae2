package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Badsnus/qr-crafter-bot/internal/adapters/config"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/saver"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/service"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
	"github.com/Badsnus/qr-crafter-bot/pkg/filesave"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger"
	qr "github.com/Badsnus/qr-crafter-bot/pkg/qrcode"
)

// RenderFlags holds the render command flags
type RenderFlags struct {
	Content         string
	StylingFile     string
	Format          string
	Size            int
	OutputDir       string
	BackgroundRound float64
}

// LoadStyling reads a styling file on top of the default styling. An empty
// path returns the defaults.
func LoadStyling(path string) (styling.Options, error) {
	opts := styling.Default()
	if path == "" {
		return opts, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return opts, fmt.Errorf("failed to open styling file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return opts, fmt.Errorf("failed to read styling file: %w", err)
	}
	if err = json.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse styling file: %w", err)
	}
	if err = opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid styling: %w", err)
	}
	return opts, nil
}

// Render exports one code into flags.OutputDir and returns the written path.
func Render(ctx context.Context, flags RenderFlags, notifier service.Notifier) (string, error) {
	format, err := service.ParseFormat(flags.Format)
	if err != nil {
		return "", err
	}
	opts, err := LoadStyling(flags.StylingFile)
	if err != nil {
		return "", err
	}

	exporterLogger, err := logger.Named("exporter")
	if err != nil {
		return "", err
	}
	exporter := service.NewExporter(qr.NewRenderer(), notifier, service.NewMemoryLocker(), exporterLogger, config.Exporter())

	disk := &saver.Disk{Dir: filesave.New(flags.OutputDir)}
	_, err = exporter.Export(ctx, "cli", service.ExportRequest{
		Content:         flags.Content,
		Styling:         opts,
		Size:            flags.Size,
		Format:          format,
		BackgroundRound: flags.BackgroundRound,
	}, disk)
	if err != nil {
		return "", err
	}
	return disk.Path, nil
}

// NewRenderCmd creates the render command
func NewRenderCmd() *cobra.Command {
	var flags RenderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a styled QR code to a file",
		Long: `Render a styled QR code to a file.

The styling is read from a JSON file (see "qrcrafter schema"); fields left
out keep their defaults. Format, size and output directory default to the
export settings of the config file.`,
		Example: `  qrcrafter render --content https://example.com
  qrcrafter render --content "hello" --styling design.json --format svg --round 0.2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("format") {
				flags.Format = viper.GetString("settings.export.default-format")
			}
			if !cmd.Flags().Changed("size") {
				flags.Size = viper.GetInt("settings.export.default-size")
			}
			if !cmd.Flags().Changed("out") {
				flags.OutputDir = viper.GetString("settings.export.output-dir")
			}

			path, err := Render(cmd.Context(), flags, NewTerminalNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&flags.Content, "content", "", "text or URL to encode")
	cmd.Flags().StringVarP(&flags.StylingFile, "styling", "s", "", "styling JSON file")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "png", "output format: png, jpeg or svg")
	cmd.Flags().IntVar(&flags.Size, "size", 300, "width and height in pixels")
	cmd.Flags().StringVarP(&flags.OutputDir, "out", "o", ".", "output directory")
	cmd.Flags().Float64Var(&flags.BackgroundRound, "round", 0, "SVG background corner rounding, 0 to 1")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}
