package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/observability"
	"github.com/yungbote/classroom-backend/internal/platform/gcp"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

const maxGuideBytes = 5 << 20

const (
	GuideSourceInline  = "inline"
	GuideSourcePath    = "path"
	GuideSourceURL     = "url"
	GuideSourceMissing = "missing"
)

// GuideResolver turns a GuideSource into HTML. It never fails: candidates
// that cannot be read are skipped and the result may be empty.
type GuideResolver interface {
	Resolve(ctx context.Context, audience string, src types.GuideSource) (html, source string)
}

type guideResolver struct {
	log     *logger.Logger
	store   gcp.ContentStore
	client  *http.Client
	metrics *observability.Metrics
}

// NewGuideResolver builds a resolver. store may be nil, in which case
// storage-key candidates are skipped.
func NewGuideResolver(log *logger.Logger, store gcp.ContentStore, fetchTimeout time.Duration, metrics *observability.Metrics) GuideResolver {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &guideResolver{
		log:     log.With("service", "GuideResolver"),
		store:   store,
		client:  &http.Client{Timeout: fetchTimeout},
		metrics: metrics,
	}
}

func (gr *guideResolver) Resolve(ctx context.Context, audience string, src types.GuideSource) (string, string) {
	html, source := gr.resolve(ctx, src)
	gr.metrics.IncGuideResolution(audience, source)
	return html, source
}

func (gr *guideResolver) resolve(ctx context.Context, src types.GuideSource) (string, string) {
	if strings.TrimSpace(src.GuideHTML) != "" {
		return src.GuideHTML, GuideSourceInline
	}
	for _, p := range src.PathCandidates() {
		html, err := gr.readCandidate(ctx, p)
		if err != nil {
			gr.log.Debug("guide candidate skipped", "candidate", p, "error", err)
			continue
		}
		if strings.TrimSpace(html) != "" {
			return html, GuideSourcePath
		}
	}
	if u := strings.TrimSpace(src.GuideURL); u != "" {
		html, err := gr.fetch(ctx, u)
		if err != nil {
			gr.log.Debug("guide url skipped", "url", u, "error", err)
		} else if strings.TrimSpace(html) != "" {
			return html, GuideSourceURL
		}
	}
	return "", GuideSourceMissing
}

func (gr *guideResolver) readCandidate(ctx context.Context, p string) (string, error) {
	p = strings.TrimSpace(p)
	if isHTTPURL(p) {
		return gr.fetch(ctx, p)
	}
	if gr.store == nil {
		return "", fmt.Errorf("no content store configured")
	}
	bucket, key := "", p
	if b, k, ok := gcp.ParseGSURI(p); ok {
		bucket, key = b, k
	}
	rc, err := gr.store.DownloadFile(ctx, bucket, key)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	raw, err := io.ReadAll(io.LimitReader(rc, maxGuideBytes))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (gr *guideResolver) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := gr.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxGuideBytes))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func isHTTPURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
