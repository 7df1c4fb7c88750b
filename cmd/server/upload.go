package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"disputedesk/internal/bootstrap"
	"disputedesk/internal/notify"
	"disputedesk/internal/upload"
)

func uploadCmd() *cobra.Command {
	var (
		serverURL string
		maxFiles  int
	)

	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload documents to a running server",
		Long: `Queues the given files the way the portal upload widget does, then posts
them to the server's upload endpoint and prints the stored records.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, telemetry, err := bootstrap.Init(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = telemetry.Shutdown(context.Background()) }()
			if serverURL == "" {
				serverURL = cfg.App.PublicURL
			}

			files := make([]upload.PendingFile, 0, len(args))
			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("stat %s failed: %w", path, err)
				}
				if info.IsDir() {
					return fmt.Errorf("%s is a directory", path)
				}
				files = append(files, upload.PendingFile{Name: filepath.Base(path), Size: info.Size(), Path: path})
			}

			printer := notify.Func(func(ctx context.Context, kind notify.Kind, message string, _ time.Duration) {
				if kind == notify.KindError {
					slog.WarnContext(ctx, message)
					return
				}
				slog.InfoContext(ctx, message)
			})

			queue := upload.NewQueue(maxFiles)
			if dropped := queue.Add(ctx, printer, files...); len(dropped) > 0 {
				slog.WarnContext(ctx, "files skipped", "count", len(dropped))
			}

			resp, err := queue.Upload(ctx, upload.NewHTTPUploader(serverURL), printer, nil)
			if resp != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(resp); encErr != nil {
					return encErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&serverURL, "url", "", "server base URL (default: app.public_url)")
	cmd.Flags().IntVar(&maxFiles, "max-files", upload.DefaultMaxFiles, "maximum number of files per upload")
	return cmd
}
