package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/wa-export/internal/search"
	"github.com/Zuo-Peng/wa-export/internal/tui"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var author, since, me string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <chat.txt|export-dir> [query]",
		Short: "Search messages in a chat export",
		Long: `Search messages by text or author. On a terminal an interactive browser
opens (Enter copies the selected message). Otherwise output is TSV:
  index, timestamp, author, snippet`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			defer s.close()

			opts := search.Options{Author: author, Limit: limit}
			if len(args) > 1 {
				opts.Query = args[1]
			}
			if since != "" {
				t, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("--since: %w", err)
				}
				opts.Since = t
			}

			msgs := s.result.Messages
			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if term.IsTerminal(int(os.Stdout.Fd())) {
				opts.Limit = 0
				return tui.Run(msgs, s.chooseMe(me), opts)
			}

			results := search.Search(msgs, opts)
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}
			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				fmt.Printf("%d\t%s%s%s\t%s\t%s\n",
					r.Index,
					sColorDim, r.Timestamp.Format("2006-01-02 15:04:05"), sColorReset,
					strings.ReplaceAll(r.Author, "\t", " "),
					colorizeSnippet(snippet),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Only messages by this author")
	cmd.Flags().StringVar(&since, "since", "", "Only messages since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results (TSV output)")
	cmd.Flags().StringVar(&me, "me", "", "Your name in the chat")

	return cmd
}
