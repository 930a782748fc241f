package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AryaMundra/VeriWise/internal/export"
	"github.com/AryaMundra/VeriWise/internal/models"
	"github.com/AryaMundra/VeriWise/internal/normalize"
	"github.com/AryaMundra/VeriWise/internal/render"
	"github.com/AryaMundra/VeriWise/internal/store"
)

var exportFormatFlag string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage analysis sessions",
	Long:  `View and manage your saved analysis sessions.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session's timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all sessions",
	RunE:  runSessionsClear,
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <id> [file]",
	Short: "Export a session to json, yaml, or markdown",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSessionsExport,
}

func init() {
	sessionsExportCmd.Flags().StringVar(&exportFormatFlag, "format", "json", "Export format (json, yaml, md)")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsClearCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	st, err := store.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	sessions := st.Sessions()
	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tMESSAGES\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t-----\t--------\t-------")

	activeID := st.ActiveID()
	for _, sess := range sessions {
		title := sess.Title
		if len(title) > 40 {
			title = title[:40] + "..."
		}
		if sess.ID == activeID {
			title += " *"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			sess.ID, title, len(sess.Messages), sess.CreatedAt.Format("2006-01-02 15:04"))
	}

	return w.Flush()
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	st, err := store.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	sess := st.Get(args[0])
	if sess == nil {
		return fmt.Errorf("session not found: %s", args[0])
	}

	fmt.Printf("ID: %s\n", sess.ID)
	fmt.Printf("Title: %s\n", sess.Title)
	fmt.Printf("Created: %s\n", sess.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Messages: %d\n", len(sess.Messages))
	fmt.Println()

	for i, msg := range sess.Messages {
		switch msg.Role {
		case models.RoleUser:
			fmt.Printf("[%d] You (%s):\n", i+1, msg.Timestamp.Format("15:04"))
			if msg.Text != "" {
				fmt.Printf("  %s\n", msg.Text)
			}
			if msg.ImageName != "" {
				fmt.Printf("  [image: %s]\n", msg.ImageName)
			}
			if msg.VideoName != "" {
				fmt.Printf("  [video: %s]\n", msg.VideoName)
			}
		case models.RoleAssistant:
			fmt.Printf("[%d] VeriWise (%s):\n", i+1, msg.Timestamp.Format("15:04"))
			report := render.SectionsMarkdown(normalize.Normalize(msg.Payload))
			fmt.Printf("  %s\n", strings.ReplaceAll(strings.TrimSpace(report), "\n", "\n  "))
		case models.RoleError:
			fmt.Printf("[%d] Error (%s):\n  %s\n", i+1, msg.Timestamp.Format("15:04"), msg.Diagnostic)
		}
		fmt.Println()
	}

	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	st, err := store.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	if err := st.DeleteSession(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}

func runSessionsClear(cmd *cobra.Command, args []string) error {
	st, err := store.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	n := st.Len()
	if err := st.ClearAll(); err != nil {
		return err
	}

	fmt.Printf("Deleted %d sessions\n", n)
	return nil
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	st, err := store.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	sess := st.Get(args[0])
	if sess == nil {
		return fmt.Errorf("session not found: %s", args[0])
	}

	exporter, err := export.NewExporter(exportFormatFlag)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := exporter.Export(sess, f); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported session to %s\n", args[1])
		return nil
	}

	return exporter.Export(sess, os.Stdout)
}
