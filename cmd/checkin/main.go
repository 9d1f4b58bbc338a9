package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hejijunhao/dailycheckin/internal/config"
	"github.com/hejijunhao/dailycheckin/internal/httpclient"
	"github.com/hejijunhao/dailycheckin/internal/journal"
	"github.com/hejijunhao/dailycheckin/internal/logging"
	"github.com/hejijunhao/dailycheckin/internal/notify"
	"github.com/hejijunhao/dailycheckin/internal/notify/file"
	"github.com/hejijunhao/dailycheckin/internal/notify/multi"
	"github.com/hejijunhao/dailycheckin/internal/notify/pushplus"
	"github.com/hejijunhao/dailycheckin/internal/notify/stdout"
	"github.com/hejijunhao/dailycheckin/internal/runner"
	"github.com/hejijunhao/dailycheckin/internal/site"

	// Register site implementations.
	_ "github.com/hejijunhao/dailycheckin/internal/hashiqi"
	_ "github.com/hejijunhao/dailycheckin/internal/sspanel"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one site's job and returns the process exit code.
func run(args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintf(errOut, "usage: checkin <site>\navailable sites: %s\n", strings.Join(site.Names(), ", "))
		return 1
	}
	name := args[0]

	ctor, err := site.Get(name)
	if err != nil {
		fmt.Fprintf(errOut, "checkin: %v\n", err)
		return 1
	}

	cfg := config.Load()
	closer := logging.Init(logging.Options{
		Level:  logging.ParseLevel(cfg.Log.Level),
		File:   cfg.Log.File,
		Writer: errOut,
	})
	defer closer.Close()

	if err := cfg.Require(name); err != nil {
		slog.Error("configuration error", "error", err)
		return 1
	}

	client := httpclient.New(
		httpclient.WithTimeout(cfg.HTTP.Timeout),
		httpclient.WithUserAgent(cfg.HTTP.UserAgent),
	)

	notifiers := []notify.Notifier{stdout.New(out)}
	if cfg.Notify.Token != "" {
		notifiers = append(notifiers, pushplus.New(cfg.Notify.Token,
			pushplus.WithURL(cfg.Notify.URL),
			pushplus.WithClient(client),
		))
	} else {
		slog.Info("PUSHPLUS_TOKEN not set, results are printed only")
	}
	if cfg.Notify.ArchiveFile != "" {
		archive := file.New(cfg.Notify.ArchiveFile, file.WithMaxSize(cfg.Notify.ArchiveMaxMB))
		defer archive.Close()
		notifiers = append(notifiers, archive)
	}

	j := journal.New(journal.WithLogger(slog.Default().With("site", name)))
	rc := runner.NewRunContext(cfg, j, client, multi.New(notifiers...))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("checkin: starting", "site", name)
	sum, err := runner.Run(ctx, rc, ctor())
	if werr := rc.Metrics.WriteTextfile(cfg.Metrics.File); werr != nil {
		slog.Warn("failed to write metrics", "error", werr)
	}
	if err != nil {
		slog.Error("run failed", "site", name, "error", err)
		return 1
	}
	slog.Info("run complete", "site", name, "accounts", sum.Accounts, "failed", sum.Failed)
	return 0
}
