// Package trace records headless runs as zstd-compressed JSON lines: one
// header line, then one event per line.
package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Version is the trace format written by this package.
const Version = 1

// Header opens every trace.
type Header struct {
	Version  int    `json:"version"`
	Game     string `json:"game"`
	Seed     int64  `json:"seed"`
	TickRate int    `json:"tick_rate"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Kind names an event type.
type Kind string

const (
	KindLayout Kind = "layout" // counters were (re)placed
	KindPickup Kind = "pickup" // the avatar collected the active counter
	KindEnd    Kind = "end"    // the run stopped
)

// Counter is one placed counter in a layout event.
type Counter struct {
	Role      string  `json:"role"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Rotation  float64 `json:"rotation"`
	Exhausted bool    `json:"exhausted,omitempty"`
}

// Event is a single trace line after the header.
type Event struct {
	Tick       uint64    `json:"tick"`
	Kind       Kind      `json:"kind"`
	Role       string    `json:"role,omitempty"`
	Step       int       `json:"step"`
	Sandwiches int       `json:"sandwiches"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Counters   []Counter `json:"counters,omitempty"`
}

// Writer appends events to a compressed trace file.
type Writer struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create starts a new trace at path and writes its header.
func Create(path string, h Header) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("trace: cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("trace: %w", err)
	}

	tw := &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if h.Version == 0 {
		h.Version = Version
	}
	if err := tw.writeLine(h); err != nil {
		_ = tw.Close()
		return nil, err
	}
	return tw, nil
}

// Write appends one event.
func (w *Writer) Write(e Event) error {
	return w.writeLine(e)
}

func (w *Writer) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("trace: encode: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("trace: write: %w", err)
	}
	return w.w.WriteByte('\n')
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	errFlush := w.w.Flush()
	errEnc := w.enc.Close()
	errFile := w.f.Close()
	return errors.Join(errFlush, errEnc, errFile)
}

// Reader reads a trace written by Writer.
type Reader struct {
	f      *os.File
	dec    *zstd.Decoder
	sc     *bufio.Scanner
	header Header
}

// Open opens a trace and reads its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("trace: %w", err)
	}

	r := &Reader{f: f, dec: dec, sc: bufio.NewScanner(dec)}
	r.sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !r.sc.Scan() {
		err := r.sc.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		r.Close()
		return nil, fmt.Errorf("trace: missing header: %w", err)
	}
	if err := json.Unmarshal(r.sc.Bytes(), &r.header); err != nil {
		r.Close()
		return nil, fmt.Errorf("trace: bad header: %w", err)
	}
	if r.header.Version != Version {
		r.Close()
		return nil, fmt.Errorf("trace: unsupported version %d", r.header.Version)
	}
	return r, nil
}

// Header returns the trace header.
func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next event, or io.EOF after the last one.
func (r *Reader) Next() (Event, error) {
	var e Event
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return e, fmt.Errorf("trace: read: %w", err)
		}
		return e, io.EOF
	}
	if err := json.Unmarshal(r.sc.Bytes(), &e); err != nil {
		return e, fmt.Errorf("trace: bad event: %w", err)
	}
	return e, nil
}

// Close releases the file.
func (r *Reader) Close() error {
	r.dec.Close()
	return r.f.Close()
}

// Summary aggregates a whole trace.
type Summary struct {
	Header     Header
	Events     int
	Pickups    int
	Layouts    int
	Exhausted  int // layouts with at least one exhausted counter
	Sandwiches int
	LastTick   uint64
}

// Summarize reads every event of the trace at path.
func Summarize(path string) (Summary, error) {
	r, err := Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer r.Close()

	s := Summary{Header: r.Header()}
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return s, err
		}

		s.Events++
		s.LastTick = max(s.LastTick, e.Tick)
		s.Sandwiches = max(s.Sandwiches, e.Sandwiches)
		switch e.Kind {
		case KindPickup:
			s.Pickups++
		case KindLayout:
			s.Layouts++
			for _, c := range e.Counters {
				if c.Exhausted {
					s.Exhausted++
					break
				}
			}
		}
	}
}
