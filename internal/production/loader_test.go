package production

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/comalice/holdrepeat"
	"github.com/comalice/holdrepeat/internal/primitives"
)

const yamlProfile = `id: menu
bindings:
  up:
    key: Up
    holdTime: 0.3
    repeatTime: 0.1
  select:
    key: Enter
    pressImmediate: true
`

const tomlProfile = `id = "menu"

[bindings.up]
key = "Up"
holdTime = 0.3
repeatTime = 0.1

[bindings.select]
key = "Enter"
pressImmediate = true
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func checkMenuProfile(t *testing.T, p *primitives.ProfileConfig) {
	t.Helper()
	if p.ID != "menu" {
		t.Errorf("ID = %q, want menu", p.ID)
	}
	up := p.Bindings["up"]
	if up == nil || up.ID != "up" {
		t.Fatalf("binding up = %+v, want normalized ID", up)
	}
	cfg, err := up.Interaction()
	if err != nil {
		t.Fatal(err)
	}
	want := holdrepeat.Config{HoldTime: 300 * time.Millisecond, RepeatTime: 100 * time.Millisecond}
	if cfg != want {
		t.Errorf("up = %+v, want %+v", cfg, want)
	}

	sel, err := p.Bindings["select"].Interaction()
	if err != nil {
		t.Fatal(err)
	}
	if !sel.PressImmediate || sel.HoldTime != holdrepeat.DefaultHoldTime {
		t.Errorf("select = %+v, want press-immediate with default hold", sel)
	}
}

func TestLoadProfile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "menu.yaml", yamlProfile)
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	checkMenuProfile(t, p)
}

func TestLoadProfile_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "menu.toml", tomlProfile)
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	checkMenuProfile(t, p)
}

func TestLoadProfile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadProfile(filepath.Join(dir, "menu.ini")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ini error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := LoadProfile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing error = %v, want os.ErrNotExist", err)
	}

	bad := writeFile(t, dir, "bad.yaml", "id: menu\nbindings:\n  up:\n    repeatTime: 0\n")
	if _, err := LoadProfile(bad); !errors.Is(err, holdrepeat.ErrNonPositiveRepeatTime) {
		t.Errorf("bad error = %v, want ErrNonPositiveRepeatTime", err)
	}

	unknown := writeFile(t, dir, "unknown.toml", "id = \"menu\"\nturbo = true\n")
	if _, err := LoadProfile(unknown); err == nil {
		t.Error("expected unknown TOML field to be rejected")
	}

	garbage := writeFile(t, dir, "garbage.yaml", "id: [unclosed\n")
	if _, err := LoadProfile(garbage); err == nil {
		t.Error("expected malformed YAML to fail")
	}
}
