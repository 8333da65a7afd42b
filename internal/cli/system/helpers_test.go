package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/config"
	"github.com/julianstephens/slotscore/internal/notifier"
	"github.com/julianstephens/slotscore/internal/service"
	"github.com/julianstephens/slotscore/internal/storage"
	"github.com/julianstephens/slotscore/internal/storage/jsonstore"
	"github.com/julianstephens/slotscore/internal/storage/sqlite"
)

var refNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

// newContext wires store into a context the way main does. The store is not
// initialized.
func newContext(t *testing.T, store storage.Provider, cfg config.Config) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	svc, err := service.New(store, service.Options{
		UserID:   cfg.User,
		Timezone: "UTC",
		Notifier: notifier.New(false),
		Now:      func() time.Time { return refNow },
	})
	if err != nil {
		t.Fatalf("service.New failed: %v", err)
	}
	var out bytes.Buffer
	return &cli.Context{
		Store:   store,
		Service: svc,
		Config:  cfg,
		Out:     &out,
	}, &out
}

func setupSQLite(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default(dir)
	store := sqlite.NewStore(cfg.Storage.Path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx, out := newContext(t, store, cfg)
	return ctx, store, out
}

func setupJSON(t *testing.T, dir string) (*cli.Context, *jsonstore.Store, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Storage.Backend = config.BackendJSON
	cfg.Storage.Path = dir
	store := jsonstore.NewStore(dir)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx, out := newContext(t, store, cfg)
	return ctx, store, out
}

func jsonDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data")
}
