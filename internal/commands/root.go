// Package commands provides CLI commands for veriwise.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AryaMundra/VeriWise/internal/config"
	"github.com/AryaMundra/VeriWise/internal/logging"
)

var (
	// Global flags
	apiBaseFlag string
	outputFlag  string
	fileFlag    string
	imageFlag   string
	videoFlag   string
	copyFlag    bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veriwise [text]",
	Short: "Misinformation analysis from your terminal",
	Long: `veriwise checks text, images, and video for misinformation by submitting
them to a VeriWise analysis service and rendering the findings as
readable sections (bias, AI-image detection, manipulation, fact checks).

Examples:
  veriwise chat                          Start interactive chat
  veriwise "NASA faked the landing"      Analyze a single claim
  veriwise --image photo.jpg             Analyze an image
  veriwise "caption" --video clip.mp4    Analyze text plus video
  veriwise -f claim.txt                  Read the claim from a file
  cat claim.txt | veriwise               Read the claim from stdin
  veriwise "claim" -o report.md          Save the report to a file`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("veriwise %s (built %s)\n", Version, BuildTime)
			return nil
		}

		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runAnalyze(string(data))
		}

		if len(args) > 0 {
			return runAnalyze(args[0])
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runAnalyze(string(data))
		}

		// Attachment-only submissions need no text
		if imageFlag != "" || videoFlag != "" {
			return runAnalyze("")
		}

		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	cfg, _ := config.LoadConfig()
	logging.Init(cfg.Verbose)
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseFlag, "api-base", "", "Analysis service base URL (overrides config)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save report to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read claim text from file")
	rootCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Path to image file to analyze")
	rootCmd.Flags().StringVar(&videoFlag, "video", "", "Path to video file to analyze")
	rootCmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy the report to the clipboard")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(deepfakeCmd)
	rootCmd.AddCommand(configCmd)
}

// apiBase returns the analysis service base URL (flag wins over config).
func apiBase() string {
	if apiBaseFlag != "" {
		return apiBaseFlag
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return config.DefaultAPIBase
	}
	return cfg.APIBase
}
