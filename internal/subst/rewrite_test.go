package subst

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRewriteFile(t *testing.T) {
	content := "FROM alpine\n" +
		"ARG SSL_VER=\"1.0.2n\" CURL_VER=7.59.0\n" +
		"ENV FOO=bar\n" +
		"RUN echo $SSL_VER" // no trailing newline

	path := filepath.Join(t.TempDir(), "Dockerfile")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rw := NewRewriter(map[string]string{"SSL": "1.0.2o", "CURL": "7.61.0"})
	if err := RewriteFile(path, rw); err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := "FROM alpine\n" +
		"ARG SSL_VER=\"1.0.2o\" CURL_VER=\"7.61.0\"\n" +
		"ENV FOO=bar\n" +
		"RUN echo $SSL_VER"
	if string(got) != want {
		t.Errorf("rewritten file = %q, want %q", got, want)
	}

	if n := strings.Count(string(got), "\n"); n != 3 {
		t.Errorf("line count changed: %d newlines, want 3", n)
	}
}

func TestRewriteFilePreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Dockerfile")
	if err := os.WriteFile(path, []byte("SSL_VER=1\n"), 0750); err != nil {
		t.Fatal(err)
	}

	if err := RewriteFile(path, NewRewriter(map[string]string{"SSL": "2"})); err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0750 {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), os.FileMode(0750))
	}
}

func TestRewriteFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := RewriteFile(filepath.Join(dir, "missing"), NewRewriter(map[string]string{"SSL": "2"}))
	if err == nil {
		t.Fatal("RewriteFile succeeded on missing file")
	}

	// no temporary file may be left behind
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("directory not clean after failure: %v", entries)
	}
}

func TestRewriteFileLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	if err := os.WriteFile(path, []byte("SSL_VER=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := RewriteFile(path, NewRewriter(map[string]string{"SSL": "2"})); err != nil {
		t.Fatalf("RewriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "Dockerfile" {
		t.Errorf("unexpected directory contents after rewrite: %v", entries)
	}
}
