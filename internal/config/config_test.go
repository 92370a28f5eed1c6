package config

import (
	"testing"

	"github.com/five82/imgresize/internal/geometry"
	"github.com/five82/imgresize/internal/kernel"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/output", "/log")

	if cfg.OutputDir != "/output" {
		t.Errorf("expected OutputDir=/output, got %s", cfg.OutputDir)
	}
	if cfg.LogDir != "/log" {
		t.Errorf("expected LogDir=/log, got %s", cfg.LogDir)
	}
	if cfg.Resize.Quality != DefaultQuality {
		t.Errorf("expected Quality=%d, got %d", DefaultQuality, cfg.Resize.Quality)
	}
	if cfg.Resize.Filter != kernel.Mitchell {
		t.Errorf("expected default filter Mitchell, got %v", cfg.Resize.Filter)
	}
	if cfg.PipelineThreshold != DefaultPipelineThreshold {
		t.Errorf("expected PipelineThreshold=%d, got %d", DefaultPipelineThreshold, cfg.PipelineThreshold)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "default config is valid", modify: func(c *Config) {}},
		{name: "quality 0 is invalid", modify: func(c *Config) { c.Resize.Quality = 0 }, wantErr: true},
		{name: "quality 101 is invalid", modify: func(c *Config) { c.Resize.Quality = 101 }, wantErr: true},
		{name: "quality 100 is valid", modify: func(c *Config) { c.Resize.Quality = 100 }},
		{
			name: "scale_percent 0 is invalid with scale-percent mode",
			modify: func(c *Config) {
				c.Resize.Mode = geometry.ScalePercent
				c.Resize.ScalePercent = 0
			},
			wantErr: true,
		},
		{name: "negative threads is invalid", modify: func(c *Config) { c.Batch.NumThreads = -1 }, wantErr: true},
		{name: "zero threads is valid (auto)", modify: func(c *Config) { c.Batch.NumThreads = 0 }},
		{name: "zero pipeline threshold is invalid", modify: func(c *Config) { c.PipelineThreshold = 0 }, wantErr: true},
		{name: "negative max retained buffers is invalid", modify: func(c *Config) { c.MaxRetainedBuffers = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/output", "/log")
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolvedThreadsAuto(t *testing.T) {
	opts := BatchOptions{NumThreads: 0}
	if got := opts.ResolvedThreads(); got < 1 {
		t.Errorf("ResolvedThreads() with auto (0) should resolve to >=1, got %d", got)
	}
}

func TestResolvedThreadsExplicit(t *testing.T) {
	opts := BatchOptions{NumThreads: 6}
	if got := opts.ResolvedThreads(); got != 6 {
		t.Errorf("ResolvedThreads() = %d, want 6", got)
	}
}
