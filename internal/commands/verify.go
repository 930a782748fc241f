package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AryaMundra/VeriWise/internal/api"
	"github.com/AryaMundra/VeriWise/internal/normalize"
)

var verifyVideoFlag string

var verifyCmd = &cobra.Command{
	Use:   "verify [claim]",
	Short: "Verify a claim against gathered evidence",
	Long: `verify runs the focused claim-verification flow: the service checks the
claim against retrieved evidence and returns a verdict with sources.
A supporting video can be attached with --video.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var claim string
		if len(args) > 0 {
			claim = strings.TrimSpace(args[0])
		}
		if claim == "" && verifyVideoFlag == "" {
			return fmt.Errorf("nothing to verify: provide a claim or --video")
		}

		client, err := api.NewClient(apiBase())
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		spin := newSpinner("Verifying claim")
		spin.start()

		raw, err := client.Verify(claim, verifyVideoFlag)
		if err != nil {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Verification failed"))
			return fmt.Errorf("verification failed: %w", err)
		}
		spin.stopWithSuccess("Done")

		printSections(normalize.VerifySections(raw))
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyVideoFlag, "video", "", "Path to a supporting video file")
}
