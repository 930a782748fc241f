package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AryaMundra/VeriWise/internal/api"
	"github.com/AryaMundra/VeriWise/internal/attach"
	"github.com/AryaMundra/VeriWise/internal/pipeline"
	"github.com/AryaMundra/VeriWise/internal/store"
	"github.com/AryaMundra/VeriWise/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive analysis chat",
	Long: `chat opens the interactive TUI. Type a claim and press Enter to analyze
it; stage media with /image <path> and /video <path>. Sessions persist
across runs and can be switched with /sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api.NewClient(apiBase())
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		st, err := store.DefaultStore()
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}

		attachments, err := attach.NewManager()
		if err != nil {
			return fmt.Errorf("failed to prepare attachment staging: %w", err)
		}
		defer func() {
			_ = attachments.Close()
		}()

		p := pipeline.New(st, attachments, client)
		return tui.RunChat(st, attachments, p)
	},
}
