package main

import (
	"testing"

	"github.com/Faultbox/tablecraft/internal/engine/lightmap"
)

func TestPendingFrames(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		sequence int
		want     int
	}{
		{"finite budget already baked", 100, 100, 0},
		{"unbounded bakes one sequence", 0, 64, 64},
		{"unbounded with empty sequence", -1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := lightmap.DefaultConfig()
			cfg.Frames = tt.frames
			cfg.SequenceLength = tt.sequence
			if got := pendingFrames(cfg); got != tt.want {
				t.Errorf("pendingFrames: got %d, want %d", got, tt.want)
			}
		})
	}
}
