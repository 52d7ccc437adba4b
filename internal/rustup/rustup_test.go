package rustup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/repin-dev/repin/internal/core"
)

const stableManifest = `schema-version = '1'
version = '1.13.0'

[artifacts.x86_64-unknown-linux-gnu]
url = 'https://static.rust-lang.org/rustup/archive/1.13.0/x86_64-unknown-linux-gnu/rustup-init'
`

func TestFetchVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rustup/release-stable.toml" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(404)
			return
		}
		_, _ = w.Write([]byte(stableManifest))
	}))
	defer server.Close()

	src := New(server.URL, core.DefaultClient())
	v, err := src.FetchVersion(context.Background(), "stable")
	if err != nil {
		t.Fatalf("FetchVersion failed: %v", err)
	}
	if v.Number != "1.13.0" {
		t.Errorf("version = %q, want %q", v.Number, "1.13.0")
	}
}

func TestFetchVersionDefaultsToStable(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(stableManifest))
	}))
	defer server.Close()

	src := New(server.URL, core.DefaultClient())
	if _, err := src.FetchVersion(context.Background(), ""); err != nil {
		t.Fatalf("FetchVersion failed: %v", err)
	}
	if gotPath != "/rustup/release-stable.toml" {
		t.Errorf("path = %q, want the stable channel manifest", gotPath)
	}
}

func TestFetchVersionMissingVersionField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("schema-version = '1'\n"))
	}))
	defer server.Close()

	src := New(server.URL, core.DefaultClient())
	_, err := src.FetchVersion(context.Background(), "stable")
	if err == nil {
		t.Fatal("FetchVersion succeeded on manifest without version")
	}
	if !strings.Contains(err.Error(), "no version field") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFetchVersionMalformedManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not toml at all ==="))
	}))
	defer server.Close()

	src := New(server.URL, core.DefaultClient())
	if _, err := src.FetchVersion(context.Background(), "stable"); err == nil {
		t.Fatal("FetchVersion succeeded on malformed manifest")
	}
}

func TestFetchVersionUnknownChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer server.Close()

	client := core.NewClient(core.WithMaxRetries(0))
	src := New(server.URL, client)
	_, err := src.FetchVersion(context.Background(), "nightly-2020")
	if err == nil {
		t.Fatal("FetchVersion succeeded for unknown channel")
	}

	var notFound *core.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %T, want *core.NotFoundError", err)
	}
	if !errors.Is(err, core.ErrNotFound) {
		t.Error("error does not wrap core.ErrNotFound")
	}
}

func TestURLs(t *testing.T) {
	src := New("", core.DefaultClient())
	urls := src.URLs()

	if got := urls.Registry("stable", ""); got != "https://static.rust-lang.org/rustup/release-stable.toml" {
		t.Errorf("unexpected registry URL: %q", got)
	}
	if got := urls.PURL("stable", "1.13.0"); got != "pkg:rustup/stable@1.13.0" {
		t.Errorf("unexpected PURL: %q", got)
	}
}
