package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("CONFIG_ENV", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 3001 {
		t.Errorf("Port = %d, want 3001", cfg.Port)
	}
	if cfg.PingPeriod != 54*time.Second || cfg.PongWait() != 60*time.Second {
		t.Errorf("PingPeriod = %s, PongWait = %s", cfg.PingPeriod, cfg.PongWait())
	}
	if cfg.Backpressure != "drop" || cfg.SendBuffer != 256 {
		t.Errorf("relay defaults: %+v", cfg)
	}
	if cfg.CreateRoomLimit != 5 || cfg.CreateRoomInterval != 10*time.Second {
		t.Errorf("rate limit defaults: %d per %s", cfg.CreateRoomLimit, cfg.CreateRoomInterval)
	}
}

func TestLoad_PortEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "4100")

	cfg, err := Load("dev")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 4100 {
		t.Errorf("Port = %d, want 4100", cfg.Port)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PORT", "")
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "port: 9000\nping_period: 9s\nbackpressure: kick\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("test")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || cfg.PingPeriod != 9*time.Second || cfg.Backpressure != "kick" {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
