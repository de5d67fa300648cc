package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-export/internal/open"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <file.html>",
		Short: "Open a rendered transcript in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return open.Open(args[0])
		},
	}
}
