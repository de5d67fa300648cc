package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-export/internal/audit"
)

func auditCmd() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "audit <folder-root> <zip-root>",
		Short: "Compare file times of a folder export with the same export unzipped",
		Long: `Each root must contain exactly one export directory. Files present in
both are compared by modification time; one-hour deltas are listed as
offenders with names scrubbed so the report can be shared.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := audit.Run(args[0], args[1])
			if err != nil {
				return err
			}
			for _, line := range rep.Lines(max) {
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&max, "max", 10, "Max offenders listed per kind")
	return cmd
}
