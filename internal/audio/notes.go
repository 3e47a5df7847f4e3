// Package audio plays the short tones that mark ingredient pickups.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pbj-arcade/internal/config"
)

// releaseTime is the fade applied to the tail of every note.
const releaseTime = 40 * time.Millisecond

// Config holds the resolved audio settings.
type Config struct {
	Enabled      bool
	Volume       float64 // log2 gain
	NoteDuration time.Duration
	SampleRate   beep.SampleRate
	Notes        []float64 // Hz
}

// FromConfig converts the YAML audio section.
func FromConfig(c config.AudioConfig) Config {
	return Config{
		Enabled:      c.Enabled,
		Volume:       c.Volume,
		NoteDuration: time.Duration(c.NoteMillis) * time.Millisecond,
		SampleRate:   beep.SampleRate(c.SampleRate),
		Notes:        c.Notes,
	}
}

// NotePlayer maps pickup steps to notes and plays them on the speaker.
// Until Initialize succeeds every PlayNote is a no-op, so a machine without
// an audio device simply stays silent.
type NotePlayer struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	logger      *log.Logger
}

// NewNotePlayer creates a player. A nil logger discards output.
func NewNotePlayer(cfg Config, logger *log.Logger) *NotePlayer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &NotePlayer{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the speaker. Disabled audio is not an error.
func (p *NotePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := p.cfg.SampleRate
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		p.logger.Warn("audio unavailable, continuing without sound", "error", err)
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("audio initialized", "sample_rate", int(rate), "notes", len(p.cfg.Notes))
	return nil
}

// Enabled reports whether notes will be heard.
func (p *NotePlayer) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// PlayNote plays the note for a sequence step. Steps past the end of the
// note table wrap around.
func (p *NotePlayer) PlayNote(step int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := p.Note(step)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Note builds the streamer for a step without playing it.
func (p *NotePlayer) Note(step int) beep.Streamer {
	rate := p.cfg.SampleRate
	n := rate.N(p.cfg.NoteDuration)
	if len(p.cfg.Notes) == 0 {
		return beep.Silence(n)
	}

	idx := step % len(p.cfg.Notes)
	if idx < 0 {
		idx += len(p.cfg.Notes)
	}

	tone, err := generators.SineTone(rate, p.cfg.Notes[idx])
	if err != nil {
		p.logger.Debug("cannot synthesize note", "hz", p.cfg.Notes[idx], "error", err)
		return beep.Silence(n)
	}

	shaped := newFadeOut(beep.Take(n, tone), n, rate.N(releaseTime))
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: p.cfg.Volume}
}

// Close stops playback and releases the speaker.
func (p *NotePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// fadeOut ramps the last samples of a finite stream down to silence.
type fadeOut struct {
	streamer beep.Streamer
	position int
	total    int
	release  int
}

func newFadeOut(s beep.Streamer, total, release int) *fadeOut {
	return &fadeOut{streamer: s, total: total, release: min(release, total)}
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	start := f.total - f.release
	for i := range n {
		if f.position >= start && f.release > 0 {
			vol := float64(f.total-f.position) / float64(f.release)
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		f.position++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }
