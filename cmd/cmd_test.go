package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mind-engage/pizzaquiz/internal/catalog"
	"github.com/mind-engage/pizzaquiz/internal/quiz"
	"github.com/mind-engage/pizzaquiz/internal/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	t.Setenv("CATALOG_XLSX", "")
	out, err := run(t, "catalog")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Veggie Pizza") || !strings.Contains(out, "11 item(s)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestStatusCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("STORE_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	s := quiz.NewUserState(catalog.Default())
	s.Correct["Veggie Pizza"] = 3
	if err := store.NewFile(path).Put(context.Background(), "abc", s); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "status", "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Mastered:  Veggie Pizza") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := run(t, "status", "nobody"); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestPruneCommand(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("RETENTION_IDLE_TTL", "1h")
	t.Setenv("LOG_LEVEL", "error")
	out, err := run(t, "prune")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "removed 0 idle record(s)") {
		t.Errorf("unexpected output: %q", out)
	}
}
