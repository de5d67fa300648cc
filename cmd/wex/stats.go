package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <chat.txt|export-dir>",
		Short: "Show how a chat export was parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			defer s.close()

			res := s.result
			st := res.Stats

			fmt.Println("=== File ===")
			fmt.Printf("  Path:     %s\n", res.Meta.FilePath)
			fmt.Printf("  Size:     %s\n", humanize.Bytes(uint64(res.Meta.Size)))
			fmt.Printf("  Modified: %s (%s)\n", res.Meta.Mtime.Format("2006-01-02 15:04:05"), humanize.Time(res.Meta.Mtime))

			fmt.Println("\n=== Lines ===")
			fmt.Printf("  Total:         %s\n", humanize.Comma(int64(st.Lines)))
			fmt.Printf("  Headers:       %s\n", humanize.Comma(int64(st.HeaderCount())))
			fmt.Printf("  Continuations: %s\n", humanize.Comma(int64(st.Continuations)))
			fmt.Printf("  Blank:         %s\n", humanize.Comma(int64(st.Blank)))
			fmt.Printf("  Dropped:       %s\n", humanize.Comma(int64(st.Dropped)))

			fmt.Println("\n=== Dialects ===")
			var dialects []parse.Dialect
			for d := range st.Headers {
				dialects = append(dialects, d)
			}
			sort.Slice(dialects, func(i, j int) bool { return dialects[i] < dialects[j] })
			if len(dialects) == 0 {
				fmt.Println("  none (no message headers recognized)")
			}
			for _, d := range dialects {
				fmt.Printf("  %-15s %s\n", d.String()+":", humanize.Comma(int64(st.Headers[d])))
			}

			fmt.Println("\n=== Messages ===")
			counts := map[string]int{}
			attachments, links := 0, 0
			for _, m := range res.Messages {
				name := parse.Normalize(m.Author)
				if name == "" {
					name = parse.SystemAuthor
				}
				counts[name]++
				attachments += len(parse.FindAttachments(m.Text))
				links += len(parse.ExtractURLs(m.Text))
			}
			fmt.Printf("  Messages:    %s\n", humanize.Comma(int64(len(res.Messages))))
			fmt.Printf("  Attachments: %s\n", humanize.Comma(int64(attachments)))
			fmt.Printf("  Links:       %s\n", humanize.Comma(int64(links)))
			if n := len(res.Messages); n > 0 {
				first, last := res.Messages[0].Timestamp, res.Messages[n-1].Timestamp
				fmt.Printf("  Period:      %s to %s\n", first.Format("2006-01-02"), last.Format("2006-01-02"))
			}

			fmt.Println("\n=== Participants ===")
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				if counts[names[i]] != counts[names[j]] {
					return counts[names[i]] > counts[names[j]]
				}
				return names[i] < names[j]
			})
			for _, name := range names {
				fmt.Printf("  %s: %s\n", name, humanize.Comma(int64(counts[name])))
			}
			return nil
		},
	}
}
