package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdrender/internal/configloader"
	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdrender configuration file",
		Long: `Create a new .gomdrender.yml configuration file in the current directory.

Examples:
  gomdrender init                     Create a commented .gomdrender.yml
  gomdrender init --full              Write every setting with its default
  gomdrender init --format json       Create .gomdrender.json instead
  gomdrender init --output custom.yml Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .gomdrender.yml or .gomdrender.json)")

	return cmd
}

func runInit(stderr io.Writer, flags *initFlags) error {
	logger := logging.NewWithWriter(stderr, "info")

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".gomdrender.json"
		} else {
			outputPath = ".gomdrender.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gomdrender config' to see the effective settings")

	return nil
}
