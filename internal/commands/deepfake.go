package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AryaMundra/VeriWise/internal/api"
)

var deepfakeTypeFlag string

var deepfakeCmd = &cobra.Command{
	Use:   "deepfake <file>",
	Short: "Run a standalone deepfake check on a media file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mediaType, err := resolveMediaType(args[0], deepfakeTypeFlag)
		if err != nil {
			return err
		}

		client, err := api.NewClient(apiBase())
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		spin := newSpinner("Checking for deepfake markers")
		spin.start()

		result, err := client.Deepfake(args[0], mediaType)
		if err != nil {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Deepfake check failed"))
			return fmt.Errorf("deepfake check failed: %w", err)
		}
		spin.stopWithSuccess("Done")

		fmt.Printf("Prediction: %s\n", result.Prediction)
		fmt.Printf("Confidence: %.1f%%\n", result.Confidence*100)
		if len(result.Details) > 0 {
			fmt.Printf("Details: %s\n", string(result.Details))
		}
		return nil
	},
}

func init() {
	deepfakeCmd.Flags().StringVar(&deepfakeTypeFlag, "type", "", "Media type (image or video); inferred from the extension when omitted")
}

// resolveMediaType picks the media type from the flag or the file extension.
func resolveMediaType(path, flag string) (string, error) {
	switch flag {
	case api.MediaTypeImage, api.MediaTypeVideo:
		return flag, nil
	case "":
	default:
		return "", fmt.Errorf("invalid --type %q (image or video)", flag)
	}

	ext := strings.ToLower(path)
	switch {
	case strings.HasSuffix(ext, ".jpg"), strings.HasSuffix(ext, ".jpeg"),
		strings.HasSuffix(ext, ".png"), strings.HasSuffix(ext, ".gif"),
		strings.HasSuffix(ext, ".webp"):
		return api.MediaTypeImage, nil
	case strings.HasSuffix(ext, ".mp4"), strings.HasSuffix(ext, ".mov"),
		strings.HasSuffix(ext, ".webm"), strings.HasSuffix(ext, ".mkv"):
		return api.MediaTypeVideo, nil
	}
	return "", fmt.Errorf("cannot infer media type from %q: pass --type image or --type video", path)
}
