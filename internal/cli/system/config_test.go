package system

import (
	"bytes"
	"strings"
	"testing"

	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/config"
)

func TestConfigCmds(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	ctx := &cli.Context{Config: config.Default(dir), ConfigDir: dir, Out: &out}

	if err := (&ConfigInitCmd{}).Run(ctx); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if err := (&ConfigInitCmd{}).Run(ctx); err == nil {
		t.Error("second config init without --force should fail")
	}
	if err := (&ConfigInitCmd{Force: true}).Run(ctx); err != nil {
		t.Errorf("config init --force failed: %v", err)
	}

	loaded, err := config.Load(config.Path(dir), dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != config.Default(dir) {
		t.Errorf("written config differs from defaults: %+v", loaded)
	}

	out.Reset()
	if err := (&ConfigShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"[storage]", "backend = ", "[server]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config show missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	ctx.JSON = true
	if err := (&ConfigShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("config show --json failed: %v", err)
	}
	if !strings.Contains(out.String(), `"Timezone": "Local"`) {
		t.Errorf("unexpected JSON config:\n%s", out.String())
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, _, out := setupSQLite(t)
	ctx.Config.Backup.Auto = false

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	jsonCtx, _, _ := setupJSON(t, jsonDir(t))
	if err := (&MigrateCmd{}).Run(jsonCtx); err == nil {
		t.Error("migrate should reject the json backend")
	}
}
