package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yungbote/classroom-backend/internal/app"
	"github.com/yungbote/classroom-backend/internal/platform/gcp"
)

func main() {
	var (
		from    string
		workers int
		dryRun  bool
	)
	flag.StringVar(&from, "from", "content", "bundle directory or gs://bucket/prefix")
	flag.IntVar(&workers, "workers", 4, "concurrent imports")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and list bundles without writing")
	flag.Parse()

	_ = godotenv.Load()
	os.Exit(run(from, workers, dryRun))
}

func run(from string, workers int, dryRun bool) int {
	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		return 1
	}
	defer application.Close()
	log := application.Log.With("cmd", "importer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src source = dirSource{root: from}
	if bucket, prefix, ok := gcp.ParseGSURI(from); ok {
		store := application.Clients.Content
		if store == nil {
			store, err = gcp.NewContentStore(ctx, log, gcp.ContentStoreConfigFromEnv())
			if err != nil {
				log.Error("content store init failed", "error", err)
				return 1
			}
			defer store.Close()
		}
		src = bucketSource{store: store, bucket: bucket, prefix: strings.TrimPrefix(prefix, "/")}
	}

	im := &importer{log: log, content: application.Services.Content, workers: workers, dryRun: dryRun}
	stats, err := im.Run(ctx, src)
	if stats != nil {
		log.Info("import finished", "from", from, "files", stats.Files, "weeks", stats.Weeks, "quizzes", stats.Quizzes, "failed", stats.Failed)
	}
	if err != nil {
		log.Error("import incomplete", "error", err)
		return 1
	}
	return 0
}
