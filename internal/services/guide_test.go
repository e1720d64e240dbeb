package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/gcp"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type memStore struct {
	bucket  string
	objects map[string]string
	reads   []string
}

func (m *memStore) DefaultBucket() string { return m.bucket }

func (m *memStore) DownloadFile(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	if bucket == "" {
		bucket = m.bucket
	}
	m.reads = append(m.reads, bucket+"/"+key)
	body, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, gcp.ErrObjectNotFound
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (m *memStore) ListKeys(context.Context, string, string) ([]string, error) { return nil, nil }
func (m *memStore) Close() error                                             { return nil }

func guideServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/guide.html":
			_, _ = io.WriteString(w, "<h1>remote</h1>")
		case "/blank.html":
			_, _ = io.WriteString(w, "   ")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGuideResolver_Order(t *testing.T) {
	srv := guideServer(t)
	store := &memStore{bucket: "content", objects: map[string]string{
		"content/guides/week-01.html": "<h1>stored</h1>",
		"other/week-02.html":          "<h1>other bucket</h1>",
	}}
	r := NewGuideResolver(logger.Nop(), store, time.Second, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		src    types.GuideSource
		html   string
		source string
	}{
		{
			name:   "inline wins",
			src:    types.GuideSource{GuideHTML: "<p>inline</p>", GuideHTMLPath: "guides/week-01.html", GuideURL: srv.URL + "/guide.html"},
			html:   "<p>inline</p>",
			source: GuideSourceInline,
		},
		{
			name:   "first readable path",
			src:    types.GuideSource{GuideHTMLPath: "guides/missing.html", HTMLPath: "guides/week-01.html"},
			html:   "<h1>stored</h1>",
			source: GuideSourcePath,
		},
		{
			name:   "gs uri path",
			src:    types.GuideSource{Path: "gs://other/week-02.html"},
			html:   "<h1>other bucket</h1>",
			source: GuideSourcePath,
		},
		{
			name:   "http path",
			src:    types.GuideSource{GuidePath: srv.URL + "/guide.html"},
			html:   "<h1>remote</h1>",
			source: GuideSourcePath,
		},
		{
			name:   "url fallback",
			src:    types.GuideSource{GuidePath: srv.URL + "/nope.html", GuideURL: srv.URL + "/guide.html"},
			html:   "<h1>remote</h1>",
			source: GuideSourceURL,
		},
		{
			name:   "blank bodies are skipped",
			src:    types.GuideSource{GuidePath: srv.URL + "/blank.html", GuideURL: srv.URL + "/blank.html"},
			html:   "",
			source: GuideSourceMissing,
		},
		{
			name:   "nothing configured",
			src:    types.GuideSource{},
			html:   "",
			source: GuideSourceMissing,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			html, source := r.Resolve(ctx, "student", tc.src)
			assert.Equal(t, tc.html, html)
			assert.Equal(t, tc.source, source)
		})
	}
}

func TestGuideResolver_NoStoreSkipsKeys(t *testing.T) {
	srv := guideServer(t)
	r := NewGuideResolver(logger.Nop(), nil, time.Second, nil)

	html, source := r.Resolve(context.Background(), "teacher", types.GuideSource{
		GuideHTMLPath: "guides/week-01.html",
		GuideURL:      srv.URL + "/guide.html",
	})
	assert.Equal(t, "<h1>remote</h1>", html)
	assert.Equal(t, GuideSourceURL, source)
}
