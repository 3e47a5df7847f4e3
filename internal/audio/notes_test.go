package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pbj-arcade/internal/config"
)

func testConfig() Config {
	return FromConfig(config.DefaultPBJConfig().Audio)
}

// drain reads a streamer to the end and returns its samples.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}

func TestFromConfig(t *testing.T) {
	cfg := testConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 180*time.Millisecond, cfg.NoteDuration)
	assert.Equal(t, beep.SampleRate(44100), cfg.SampleRate)
	assert.Len(t, cfg.Notes, 5)
}

func TestNoteLengthAndRange(t *testing.T) {
	cfg := testConfig()
	p := NewNotePlayer(cfg, nil)

	samples := drain(p.Note(0))
	require.Len(t, samples, cfg.SampleRate.N(cfg.NoteDuration))

	peak := 0.0
	for _, s := range samples {
		assert.LessOrEqual(t, s[0], 1.0)
		assert.GreaterOrEqual(t, s[0], -1.0)
		peak = max(peak, s[0])
	}
	assert.Greater(t, peak, 0.1, "note is audible")
	assert.InDelta(t, 0, samples[len(samples)-1][0], 0.01, "tail fades out")
}

func TestNoteWrapsSteps(t *testing.T) {
	p := NewNotePlayer(testConfig(), nil)

	first := drain(p.Note(0))
	wrapped := drain(p.Note(5))
	assert.Equal(t, first, wrapped)

	other := drain(p.Note(1))
	assert.NotEqual(t, first, other)
}

func TestNoteWithoutTableIsSilent(t *testing.T) {
	cfg := testConfig()
	cfg.Notes = nil
	p := NewNotePlayer(cfg, nil)

	for _, s := range drain(p.Note(3)) {
		assert.Zero(t, s[0])
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewNotePlayer(testConfig(), nil)
	assert.False(t, p.Enabled())
	assert.NotPanics(t, func() {
		p.PlayNote(2)
		p.Close()
	})
}

func TestDisabledInitializeIsNoop(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	p := NewNotePlayer(cfg, nil)

	require.NoError(t, p.Initialize())
	assert.False(t, p.Enabled())
}
