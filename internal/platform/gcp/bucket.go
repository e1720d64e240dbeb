package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

// ErrObjectNotFound is returned by DownloadFile for a missing object.
var ErrObjectNotFound = errors.New("object not found")

// ContentStore reads course content (guide HTML, import bundles) from Cloud
// Storage. An empty bucket argument means the configured content bucket.
type ContentStore interface {
	DefaultBucket() string
	DownloadFile(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
	Close() error
}

type contentStore struct {
	log           *logger.Logger
	storageClient *storage.Client
	httpClient    *http.Client
	defaultBucket string
	emulatorHost  string
}

type ContentStoreConfig struct {
	Bucket       string
	EmulatorHost string
}

func ContentStoreConfigFromEnv() ContentStoreConfig {
	return ContentStoreConfig{
		Bucket:       strings.TrimSpace(os.Getenv("CONTENT_GCS_BUCKET")),
		EmulatorHost: strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")),
	}
}

func NewContentStore(ctx context.Context, log *logger.Logger, cfg ContentStoreConfig) (ContentStore, error) {
	serviceLog := log.With("service", "ContentStore")
	emulator := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
	if emulator != "" && !strings.Contains(emulator, "://") {
		emulator = "http://" + emulator
	}

	var (
		client *storage.Client
		err    error
	)
	if emulator != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", emulator)
		client, err = storage.NewClient(ctx, option.WithoutAuthentication())
	} else {
		opts := ClientOptionsFromEnv()
		opts = append(opts, option.WithScopes(storage.ScopeReadOnly))
		client, err = storage.NewClient(ctx, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info(
		"Content storage initialized",
		"bucket", cfg.Bucket,
		"emulator_host", emulator,
	)
	return &contentStore{
		log:           serviceLog,
		storageClient: client,
		httpClient:    &http.Client{},
		defaultBucket: strings.TrimSpace(cfg.Bucket),
		emulatorHost:  emulator,
	}, nil
}

func (cs *contentStore) DefaultBucket() string { return cs.defaultBucket }

func (cs *contentStore) bucketName(bucket string) (string, error) {
	if b := strings.TrimSpace(bucket); b != "" {
		return b, nil
	}
	if cs.defaultBucket == "" {
		return "", fmt.Errorf("missing env var CONTENT_GCS_BUCKET")
	}
	return cs.defaultBucket, nil
}

func (cs *contentStore) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	name, err := cs.bucketName(bucket)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	it := cs.storageClient.Bucket(name).Objects(ctx, &storage.Query{Prefix: prefix})
	out := []string{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}

// The reader outlives this call, so the timeout's cancel runs on Close.
type readCloserWithCancel struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *readCloserWithCancel) Close() error {
	err := r.ReadCloser.Close()
	if r.cancel != nil {
		r.cancel()
	}
	return err
}

func (cs *contentStore) isEmulatorMode() bool {
	return cs != nil && strings.TrimSpace(cs.emulatorHost) != ""
}

func (cs *contentStore) emulatorObjectMediaURL(bucket, key string) string {
	return fmt.Sprintf(
		"%s/storage/v1/b/%s/o/%s?alt=media",
		strings.TrimRight(strings.TrimSpace(cs.emulatorHost), "/"),
		url.PathEscape(bucket),
		url.PathEscape(key),
	)
}

func (cs *contentStore) DownloadFile(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	name, err := cs.bucketName(bucket)
	if err != nil {
		return nil, err
	}
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return nil, fmt.Errorf("empty object key")
	}
	ctx2, cancel := context.WithTimeout(ctx, 2*time.Minute)
	if cs.isEmulatorMode() {
		req, err := http.NewRequestWithContext(ctx2, http.MethodGet, cs.emulatorObjectMediaURL(name, key), nil)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed creating emulator download request: %w", err)
		}
		resp, err := cs.httpClient.Do(req)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed emulator download request: %w", err)
		}
		if resp.StatusCode == http.StatusNotFound {
			_ = resp.Body.Close()
			cancel()
			return nil, fmt.Errorf("%s/%s: %w", name, key, ErrObjectNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			_ = resp.Body.Close()
			cancel()
			return nil, fmt.Errorf("emulator download failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return &readCloserWithCancel{ReadCloser: resp.Body, cancel: cancel}, nil
	}

	r, err := cs.storageClient.Bucket(name).Object(key).NewReader(ctx2)
	if err != nil {
		cancel()
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%s/%s: %w", name, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	return &readCloserWithCancel{ReadCloser: r, cancel: cancel}, nil
}

func (cs *contentStore) Close() error {
	if cs == nil || cs.storageClient == nil {
		return nil
	}
	return cs.storageClient.Close()
}
