package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/sandeepkv93/streakd/internal/clierr"
	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the whole tracker state",
	Long:  `Writes every task day, journal entry, custom theme and the streak to stdout as JSON (default) or YAML.`,
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().Bool("yaml", false, "export as YAML")
	rootCmd.AddCommand(exportCmd)
}

// exportDocument is the top-level export shape.
type exportDocument struct {
	ExportedAt time.Time   `json:"exported_at" yaml:"exported_at"`
	Version    string      `json:"version" yaml:"version"`
	State      model.State `json:"state" yaml:"state"`
}

func runExport(cmd *cobra.Command, _ []string) error {
	asYAML, _ := cmd.Flags().GetBool("yaml")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	printWarnings(cmd.ErrOrStderr(), s.tracker.Warnings())

	doc := exportDocument{
		ExportedAt: s.tracker.Now(),
		Version:    version,
		State:      s.tracker.State(),
	}
	if !asYAML {
		return output.JSON(cmd.OutOrStdout(), doc)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return clierr.Newf(clierr.InternalError, "encoding YAML: %v", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
