package cli

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/styling"
)

// StylingSchema returns the JSON schema of the file accepted by render --styling.
func StylingSchema() *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&styling.Options{})
	schema.Title = "QR Crafter styling"
	return schema
}

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of styling files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(StylingSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
