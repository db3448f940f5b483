package main

import (
	"testing"
	"time"
)

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv("MATCHMOJI_ADDR", ":2222")
	t.Setenv("MATCHMOJI_HOST_KEY", "/tmp/key")
	t.Setenv("MATCHMOJI_DB", "/tmp/scores.db")
	t.Setenv("MATCHMOJI_IDLE_TIMEOUT", "5m")

	cfg, err := serverConfig(serveCmd)
	if err != nil {
		t.Fatalf("serverConfig() failed: %v", err)
	}
	if cfg.Address != ":2222" || cfg.HostKeyPath != "/tmp/key" || cfg.DBPath != "/tmp/scores.db" {
		t.Errorf("serverConfig() = %+v", cfg)
	}
	if cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 5m", cfg.IdleTimeout)
	}

	if err := serveCmd.Flags().Set("ssh", ":3333"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		serveCmd.Flags().Set("ssh", ":23234")
		serveCmd.Flags().Lookup("ssh").Changed = false
	})

	cfg, err = serverConfig(serveCmd)
	if err != nil {
		t.Fatalf("serverConfig() failed: %v", err)
	}
	if cfg.Address != ":3333" {
		t.Errorf("Address = %s, expected the flag to win over the environment", cfg.Address)
	}
}

func TestServerConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("MATCHMOJI_IDLE_TIMEOUT", "soon")

	if _, err := serverConfig(serveCmd); err == nil {
		t.Error("serverConfig() should fail on an unparsable duration")
	}
}
