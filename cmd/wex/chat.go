package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Zuo-Peng/wa-export/internal/config"
	"github.com/Zuo-Peng/wa-export/internal/logging"
	"github.com/Zuo-Peng/wa-export/internal/parse"
	"github.com/Zuo-Peng/wa-export/internal/perspective"
	"github.com/Zuo-Peng/wa-export/internal/scan"
)

// session bundles what every chat subcommand needs.
type session struct {
	cfg      *config.Config
	log      *zap.Logger
	closeLog func()
	result   *parse.ParseResult
}

func openSession(arg string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	chatPath, err := scan.FindChat(arg)
	if err != nil {
		closeLog()
		return nil, err
	}
	result, err := parse.ParseFile(chatPath)
	if err != nil {
		closeLog()
		return nil, err
	}
	log.Debug("parsed chat",
		zap.String("path", chatPath),
		zap.Int("messages", len(result.Messages)),
		zap.Int("dropped", result.Stats.Dropped),
	)
	return &session{cfg: cfg, log: log, closeLog: closeLog, result: result}, nil
}

// chooseMe resolves the "me" participant: flag, then config, then a prompt
// on an interactive stdin, then the first candidate.
func (s *session) chooseMe(flag string) string {
	if me := parse.Normalize(flag); me != "" {
		return me
	}
	if me := parse.Normalize(s.cfg.Me); me != "" {
		return me
	}
	sel := perspective.Selector{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
	return sel.Choose(parse.Authors(s.result.Messages))
}

func (s *session) close() {
	s.closeLog()
}
