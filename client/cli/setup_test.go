package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krau/download-manager/client/cli"
	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/config"
)

func settings(defaultDir string) *config.Settings {
	return &config.Settings{
		DefaultSaveDir: defaultDir,
		IndexFileName:  "index.txt",
		IndexTemplate:  "[URL]",
		IndexDate:      "2024-01-01",
	}
}

func TestSetupCreatesDefaultDirAndIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media", "new")
	var out bytes.Buffer
	ws, err := cli.Setup(context.Background(), console.New(strings.NewReader("\n"), &out), settings(dir))
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if ws.SaveDir != dir || ws.Index == nil {
		t.Fatalf("workspace = %+v", ws)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.txt")); err != nil {
		t.Fatalf("index file missing: %v", err)
	}
	if ws.Index.IsOpen() {
		t.Fatal("index should be closed after setup")
	}
	for _, want := range []string{"Using default save location.", "Directory created successfully.", "Indexing file created successfully."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestSetupAnswerOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.txt"), []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	ws, err := cli.Setup(context.Background(), console.New(strings.NewReader(dir+"\n"), &out), settings("/does/not/matter"))
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if ws.SaveDir != dir || ws.Index == nil {
		t.Fatalf("workspace = %+v", ws)
	}
	if !strings.Contains(out.String(), "Directory already exists") || !strings.Contains(out.String(), "Indexing file already exists") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSetupWithoutDir(t *testing.T) {
	var out bytes.Buffer
	_, err := cli.Setup(context.Background(), console.New(strings.NewReader("\n"), &out), settings(""))
	if !errors.Is(err, cli.ErrNoSaveDir) {
		t.Fatalf("expected ErrNoSaveDir, got %v", err)
	}
}

func TestSetupRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	_, err := cli.Setup(context.Background(), console.New(strings.NewReader(file+"\n"), &out), settings(""))
	if !errors.Is(err, cli.ErrNotADir) {
		t.Fatalf("expected ErrNotADir, got %v", err)
	}
}

func TestSetupIndexFailureDisablesIndexing(t *testing.T) {
	dir := t.TempDir()
	s := settings(dir)
	s.IndexFileName = filepath.Join("missing", "index.txt")
	var out bytes.Buffer
	ws, err := cli.Setup(context.Background(), console.New(strings.NewReader("\n"), &out), s)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if ws.Index != nil {
		t.Fatal("indexing should be disabled")
	}
	if !strings.Contains(out.String(), "indexing will not be performed") {
		t.Fatalf("output = %q", out.String())
	}
}
