package gcp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

func TestParseGSURI(t *testing.T) {
	cases := []struct {
		in, bucket, prefix string
		ok                 bool
	}{
		{"gs://content/weeks/", "content", "weeks/", true},
		{"gs://content", "content", "", true},
		{"gs:///x", "", "", false},
		{"/tmp/content", "", "", false},
	}
	for _, tc := range cases {
		b, p, ok := ParseGSURI(tc.in)
		if b != tc.bucket || p != tc.prefix || ok != tc.ok {
			t.Fatalf("ParseGSURI(%q) = %q,%q,%v", tc.in, b, p, ok)
		}
	}
}

func TestContentStore_EmulatorDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/storage/v1/b/course/o/guides%2Fweek-01.html":
			if r.URL.Query().Get("alt") != "media" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = io.WriteString(w, "<h1>Week 1</h1>")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	t.Setenv("STORAGE_EMULATOR_HOST", "")

	store, err := NewContentStore(context.Background(), logger.Nop(), ContentStoreConfig{Bucket: "course", EmulatorHost: srv.URL})
	if err != nil {
		t.Fatalf("NewContentStore: %v", err)
	}
	defer store.Close()

	rc, err := store.DownloadFile(context.Background(), "", "/guides/week-01.html")
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	body, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(body) != "<h1>Week 1</h1>" {
		t.Fatalf("unexpected body %q", body)
	}

	_, err = store.DownloadFile(context.Background(), "", "guides/missing.html")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestContentStore_MissingBucket(t *testing.T) {
	t.Setenv("STORAGE_EMULATOR_HOST", "")
	store, err := NewContentStore(context.Background(), logger.Nop(), ContentStoreConfig{EmulatorHost: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewContentStore: %v", err)
	}
	defer store.Close()
	if _, err := store.DownloadFile(context.Background(), "", "x.html"); err == nil {
		t.Fatalf("expected error without a bucket")
	}
}
