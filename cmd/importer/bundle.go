package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/classroom-backend/internal/platform/gcp"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
	"github.com/yungbote/classroom-backend/internal/services"
)

// Bundle is one content file. A file may carry weeks, quizzes or both.
type Bundle struct {
	Weeks   []services.ImportWeek `json:"weeks" yaml:"weeks"`
	Quizzes []services.ImportQuiz `json:"quizzes" yaml:"quizzes"`
}

func isBundleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func parseBundle(name string, raw []byte) (*Bundle, error) {
	var b Bundle
	var err error
	if strings.EqualFold(filepath.Ext(name), ".json") {
		err = json.Unmarshal(raw, &b)
	} else {
		err = yaml.Unmarshal(raw, &b)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &b, nil
}

// source lists and reads bundle files from a directory or a bucket prefix.
type source interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

type dirSource struct{ root string }

func (s dirSource) List(context.Context) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isBundleFile(d.Name()) {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

func (s dirSource) Read(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

type bucketSource struct {
	store  gcp.ContentStore
	bucket string
	prefix string
}

func (s bucketSource) List(ctx context.Context) ([]string, error) {
	keys, err := s.store.ListKeys(ctx, s.bucket, s.prefix)
	if err != nil {
		return nil, err
	}
	out := keys[:0]
	for _, k := range keys {
		if isBundleFile(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s bucketSource) Read(ctx context.Context, name string) ([]byte, error) {
	rc, err := s.store.DownloadFile(ctx, s.bucket, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

type importStats struct {
	mu      sync.Mutex
	Files   int
	Weeks   int
	Quizzes int
	Failed  int
}

func (s *importStats) add(weeks, quizzes, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Weeks += weeks
	s.Quizzes += quizzes
	s.Failed += failed
}

type importer struct {
	log     *logger.Logger
	content services.ContentService
	workers int
	dryRun  bool
}

// Run imports every bundle of src with at most workers imports in flight. A
// failing item is logged and counted; the run continues with the rest.
func (im *importer) Run(ctx context.Context, src source) (*importStats, error) {
	files, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	stats := &importStats{Files: len(files)}

	bundles := make([]*Bundle, 0, len(files))
	for _, f := range files {
		raw, err := src.Read(ctx, f)
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", f, err)
		}
		b, err := parseBundle(f, raw)
		if err != nil {
			return stats, err
		}
		bundles = append(bundles, b)
	}

	workers := im.workers
	if workers <= 0 {
		workers = 4
	}
	var g errgroup.Group
	g.SetLimit(workers)
	var (
		errMu sync.Mutex
		errs  []error
	)
	record := func(kind, id string, err error) {
		if err == nil {
			return
		}
		im.log.Error("import failed", "kind", kind, "id", id, "error", err)
		errMu.Lock()
		errs = append(errs, fmt.Errorf("%s %s: %w", kind, id, err))
		errMu.Unlock()
	}

	for _, b := range bundles {
		for _, w := range b.Weeks {
			g.Go(func() error {
				if im.dryRun {
					im.log.Info("would import week", "id", w.ID, "title", w.Title)
					stats.add(1, 0, 0)
					return nil
				}
				err := im.content.ImportWeek(ctx, w)
				record("week", w.ID, err)
				if err != nil {
					stats.add(0, 0, 1)
				} else {
					stats.add(1, 0, 0)
				}
				return nil
			})
		}
		for _, q := range b.Quizzes {
			g.Go(func() error {
				if im.dryRun {
					im.log.Info("would import quiz", "id", q.QuizID, "questions", len(q.Questions))
					stats.add(0, 1, 0)
					return nil
				}
				err := im.content.ImportQuiz(ctx, q)
				record("quiz", q.QuizID, err)
				if err != nil {
					stats.add(0, 0, 1)
				} else {
					stats.add(0, 1, 0)
				}
				return nil
			})
		}
	}
	_ = g.Wait()
	return stats, errors.Join(errs...)
}
