package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cocacoran-1/kanji/internal/client"
	"github.com/cocacoran-1/kanji/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL  string
		grouped bool
	)
	defaultURL := os.Getenv("KANJI_API_URL")
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}

	cmd := &cobra.Command{
		Use:           "kanjitui",
		Short:         "Browse the kanji API in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(apiURL)
			m := tui.New(c, tui.WithGrouping(grouped), tui.WithContext(cmd.Context()))
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", defaultURL, "kanji API base URL (env KANJI_API_URL)")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "start with records grouped by level")
	return cmd
}
