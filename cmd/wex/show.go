package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/wa-export/internal/render"
)

func showCmd() *cobra.Command {
	var me, query string
	var width int

	cmd := &cobra.Command{
		Use:   "show <chat.txt|export-dir>",
		Short: "Print a chat transcript to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			defer s.close()

			isTTY := term.IsTerminal(int(os.Stdout.Fd()))
			if width == 0 && isTTY {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			fmt.Print(render.Terminal(s.result.Messages, render.TerminalOptions{
				Me:    s.chooseMe(me),
				Width: width,
				Query: query,
				Plain: !isTTY,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&me, "me", "", "Your name in the chat")
	cmd.Flags().StringVar(&query, "query", "", "Highlight keywords")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (default: terminal width)")

	return cmd
}
