package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AryaMundra/VeriWise/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		path, _ := config.GetConfigPath()
		fmt.Printf("Config file: %s\n\n", path)
		fmt.Printf("api-base: %s\n", cfg.APIBase)
		fmt.Printf("verbose: %t\n", cfg.Verbose)
		fmt.Printf("copy-to-clipboard: %t\n", cfg.CopyToClipboard)
		fmt.Printf("markdown-style: %s\n", cfg.MarkdownStyle)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Keys:
  api-base           Base URL of the analysis service
  verbose            Enable debug logging (true/false)
  copy-to-clipboard  Copy one-shot reports to the clipboard (true/false)
  markdown-style     Glamour style for rendered reports (dark, light, auto)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "api-base":
			cfg.APIBase = value
		case "verbose":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q", value)
			}
			cfg.Verbose = b
		case "copy-to-clipboard":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q", value)
			}
			cfg.CopyToClipboard = b
		case "markdown-style":
			cfg.MarkdownStyle = value
		default:
			return fmt.Errorf("unknown key %q", key)
		}

		if err := config.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
