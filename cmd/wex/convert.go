package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/wa-export/internal/open"
	"github.com/Zuo-Peng/wa-export/internal/parse"
	"github.com/Zuo-Peng/wa-export/internal/preview"
	"github.com/Zuo-Peng/wa-export/internal/render"
)

func convertCmd() *cobra.Command {
	var outDir, me string
	var noPreviews, openAfter bool
	var workers int

	cmd := &cobra.Command{
		Use:   "convert <chat.txt|export-dir>",
		Short: "Render a chat export as HTML and Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			defer s.close()

			if !cmd.Flags().Changed("outdir") {
				outDir = s.cfg.OutDir
			}
			if !cmd.Flags().Changed("workers") {
				workers = s.cfg.Workers
			}

			msgs := s.result.Messages
			meta := s.result.Meta
			who := s.chooseMe(me)

			var previews map[string]*preview.Preview
			if s.cfg.Previews && !noPreviews {
				previews = warmPreviews(cmd.Context(), s, msgs, workers)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			base := filepath.Join(outDir, render.OutputBase(msgs, who, time.Now()))
			htmlPath, mdPath := base+".html", base+".md"

			err = writeFile(htmlPath, func(w *bufio.Writer) error {
				return render.HTML(w, msgs, render.HTMLOptions{
					Me:         who,
					ChatPath:   meta.FilePath,
					ExportTime: meta.Mtime,
					Previews:   previews,
				})
			})
			if err != nil {
				return err
			}
			err = writeFile(mdPath, func(w *bufio.Writer) error {
				return render.Markdown(w, msgs, render.MarkdownOptions{
					Me:         who,
					ChatPath:   meta.FilePath,
					ExportTime: meta.Mtime,
				})
			})
			if err != nil {
				return err
			}

			fmt.Printf("Messages: %d\n", len(msgs))
			fmt.Printf("Export (file mtime): %s\n", meta.Mtime.Format("2006-01-02 15:04:05"))
			fmt.Printf("OK: wrote %s\n", htmlPath)
			fmt.Printf("OK: wrote %s\n", mdPath)

			if openAfter {
				return open.Open(htmlPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "outdir", "o", ".", "Output directory")
	cmd.Flags().StringVar(&me, "me", "", "Your name in the chat (skips the prompt)")
	cmd.Flags().BoolVar(&noPreviews, "no-previews", false, "Do not fetch link previews")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent preview fetches")
	cmd.Flags().BoolVar(&openAfter, "open", false, "Open the HTML transcript when done")

	return cmd
}

// warmPreviews resolves the preview URL of every message and returns the
// finished cache entries.
func warmPreviews(ctx context.Context, s *session, msgs []parse.Message, workers int) map[string]*preview.Preview {
	var urls []string
	for _, m := range msgs {
		if u := parse.PreviewURL(m.Text); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil
	}

	r := preview.NewResolver(preview.NewCache(), preview.Options{
		Timeout:          s.cfg.Timeout(),
		UserAgent:        s.cfg.UserAgent,
		MaxImageBytes:    s.cfg.MaxImageBytes,
		MaxDocumentBytes: s.cfg.MaxDocumentBytes,
		ThumbnailURL:     s.cfg.ThumbnailURL,
	}, s.log)

	start := time.Now()
	r.ResolveAll(ctx, urls, workers)
	snap := r.Cache().Snapshot()
	s.log.Info("previews resolved",
		zap.Int("urls", len(urls)),
		zap.Int("ok", len(snap)),
		zap.Duration("took", time.Since(start)),
	)
	return snap
}

func writeFile(path string, fn func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
