package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pbta-tools configuration",
		Long: `Show, get, or set configuration values stored in ~/.pbta-tools.yaml.

Recognized keys:
  gene                  default gene of interest for classify
  data_dir              directory for downloaded reference files
  hotspots.url          source URL for the cancer hotspots table
  hotspots.min_samples  minimum tumor count for a hotspot codon`,
		Example: `  pbta-tools config                            # dump the effective config
  pbta-tools config get data_dir
  pbta-tools config set hotspots.min_samples 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

// configFilePath returns the config file viper loaded, falling back to
// the default location when no file exists yet.
func configFilePath() (string, error) {
	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".pbta-tools.yaml"), nil
}

func runConfigShow() error {
	cfgFile, err := configFilePath()
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n", cfgFile)

	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# empty")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	// Store boolean-looking values as booleans so viper.GetBool works.
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	cfgFile, err := configFilePath()
	if err != nil {
		return err
	}
	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("%s: %s = %s\n", cfgFile, key, value)
	return nil
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
