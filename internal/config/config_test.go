package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// chdir runs the test from an empty directory so no .env or config file
// from the repo is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.Codec != "json" || cfg.StepRate != 60 || cfg.BroadcastRate != 40 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.PingPeriod != 30*time.Second || cfg.HandshakeTimeout != 30*time.Second {
		t.Fatalf("durations = %s / %s", cfg.PingPeriod, cfg.HandshakeTimeout)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t)
	t.Setenv("ARENA_PORT", "9000")
	t.Setenv("ARENA_CODEC", "msgpack")
	t.Setenv("ARENA_ICE_SERVERS", "stun:a:3478,stun:b:3478")
	t.Setenv("ARENA_OFFER_WINDOW", "1m")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9000 || cfg.Codec != "msgpack" || cfg.OfferWindow != time.Minute {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.ICEServers) != 2 || cfg.ICEServers[1] != "stun:b:3478" {
		t.Fatalf("ice servers = %v", cfg.ICEServers)
	}
}

func TestLoadFileAndFlags(t *testing.T) {
	dir := chdir(t)
	file := filepath.Join(dir, "arena.yaml")
	if err := os.WriteFile(file, []byte("port: 7000\nstep_rate: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.Int("step-rate", 60, "")
	if err := fs.Parse([]string{"--config", file, "--step-rate", "120"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7000 {
		t.Fatalf("port = %d, want value from file", cfg.Port)
	}
	if cfg.StepRate != 120 {
		t.Fatalf("step_rate = %d, want flag value", cfg.StepRate)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdir(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ARENA_BROADCAST_RATE=20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("ARENA_BROADCAST_RATE") })

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BroadcastRate != 20 {
		t.Fatalf("broadcast_rate = %d", cfg.BroadcastRate)
	}
}

func TestValidateRejectsZeroRates(t *testing.T) {
	cfg := Config{Port: 8080, StepRate: 0, BroadcastRate: 40, PingPeriod: time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error")
	}
}
