package trace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs", "sample.jsonl.zst")

	w, err := Create(path, Header{Game: "pbj", Seed: 42, TickRate: 60, Width: 9, Height: 9})
	require.NoError(t, err)

	events := []Event{
		{Tick: 0, Kind: KindLayout, X: 4, Y: 4, Counters: []Counter{
			{Role: "peanut", X: 0, Y: 3, Rotation: -90},
			{Role: "bread", X: 5, Y: 8, Rotation: -90},
			{Role: "jelly", X: 8, Y: 2, Rotation: -90},
			{Role: "serve", X: 3, Y: 0, Rotation: -90},
		}},
		{Tick: 40, Kind: KindPickup, Role: "bread", Step: 0, X: 5, Y: 7},
		{Tick: 90, Kind: KindPickup, Role: "peanut", Step: 1, X: 1, Y: 3.2},
		{Tick: 200, Kind: KindLayout, Sandwiches: 1, X: 3, Y: 1, Counters: []Counter{
			{Role: "serve", X: 8, Y: 6, Rotation: 0, Exhausted: true},
		}},
		{Tick: 260, Kind: KindEnd, Sandwiches: 1, X: 3, Y: 2},
	}
	for _, e := range events {
		require.NoError(t, w.Write(e))
	}
	require.NoError(t, w.Close())
	return path
}

func TestRoundTrip(t *testing.T) {
	path := sampleTrace(t)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	h := r.Header()
	assert.Equal(t, Version, h.Version, "version is filled in")
	assert.Equal(t, "pbj", h.Game)
	assert.Equal(t, int64(42), h.Seed)

	var kinds []Kind
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []Kind{KindLayout, KindPickup, KindPickup, KindLayout, KindEnd}, kinds)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(sampleTrace(t))
	require.NoError(t, err)

	assert.Equal(t, 5, s.Events)
	assert.Equal(t, 2, s.Pickups)
	assert.Equal(t, 2, s.Layouts)
	assert.Equal(t, 1, s.Exhausted)
	assert.Equal(t, 1, s.Sandwiches)
	assert.Equal(t, uint64(260), s.LastTick)
}

func TestOpenRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.zst"))
	assert.Error(t, err)

	plain := filepath.Join(dir, "plain.zst")
	require.NoError(t, os.WriteFile(plain, []byte("{\"version\":1}\n"), 0o600))
	_, err = Open(plain)
	assert.Error(t, err, "uncompressed data is not a trace")

	future := filepath.Join(dir, "future.zst")
	w, err := Create(future, Header{Version: 99, Game: "pbj"})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	_, err = Open(future)
	assert.ErrorContains(t, err, "unsupported version")
}

func TestTraceMatchesSchema(t *testing.T) {
	headerSchema, err := jsonschema.Compile(filepath.Join("schema", "header.schema.json"))
	require.NoError(t, err)
	eventSchema, err := jsonschema.Compile(filepath.Join("schema", "event.schema.json"))
	require.NoError(t, err)

	f, err := os.Open(sampleTrace(t))
	require.NoError(t, err)
	defer f.Close()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	line := 0
	for sc.Scan() {
		jd := json.NewDecoder(bytes.NewReader(sc.Bytes()))
		jd.UseNumber()
		var v any
		require.NoError(t, jd.Decode(&v))

		schema := eventSchema
		if line == 0 {
			schema = headerSchema
		}
		assert.NoError(t, schema.Validate(v), "line %d", line)
		line++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, 6, line)
}
