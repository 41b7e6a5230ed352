package main

import (
	"testing"

	"mapart/config"
)

func TestApplyFlagsOnlyOverridesChanged(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--dither", "atkinson", "--workers", "2"}); err != nil {
		t.Fatal(err)
	}
	opts := &options{dither: "atkinson", workers: 2, tones: "light"}
	cfg := config.Default()
	applyFlags(cmd, opts, cfg)
	if cfg.Art.Dither != "atkinson" || cfg.Art.Workers != 2 {
		t.Fatalf("art = %+v", cfg.Art)
	}
	if cfg.Art.Tones != config.Default().Art.Tones {
		t.Fatalf("unchanged tones overwritten: %q", cfg.Art.Tones)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"palette", "verify", "init-config"} {
		if c, _, err := cmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("subcommand %q missing: %v", name, err)
		}
	}
}
