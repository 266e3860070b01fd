package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdrender/internal/configloader"
	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/config"
)

type configFlags struct {
	env   bool
	paths bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration that render would use, after merging the user,
project and explicit config files with GOMDRENDER_* environment variables.

Examples:
  gomdrender config           Print the merged configuration as YAML
  gomdrender config --paths   List the config files that were loaded
  gomdrender config --env     List the supported environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")
	cmd.Flags().BoolVar(&flags.paths, "paths", false, "list the loaded configuration files")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		return writeEnvVars(out)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logging.Default())

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = config.ColorMode(color)
	}

	loadResult, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	if flags.paths {
		for _, path := range loadResult.LoadedFrom {
			if _, err := fmt.Fprintln(out, path); err != nil {
				return fmt.Errorf("write paths: %w", err)
			}
		}
		return nil
	}

	data, err := loadResult.Config.ToYAML()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func writeEnvVars(w io.Writer) error {
	vars := configloader.ListEnvVars()
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		if _, err := fmt.Fprintf(w, "%-28s %s\n", name, vars[name]); err != nil {
			return fmt.Errorf("write env vars: %w", err)
		}
	}
	return nil
}
