package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show BoardGuru configuration attributes and their sources",
	Long: `Show BoardGuru configuration attributes and their sources.

The values displayed by this command reflect the current state of the
configuration sources. For example, the environment variables and config
file. These may not reflect the current values used by the running
BoardGuru server.

Config file location: /etc/boardguru/boardguru.yml (or BOARDGURU_CONFIG_PATH)

Example:
  boardctl configuration show
  boardctl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	switch output {
	case "json":
		out, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "text":
		fmt.Print(cfg.FormatText())
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}

	return nil
}
