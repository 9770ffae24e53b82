package sound

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/iburimskiy/tonal-tangents/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testRate = beep.SampleRate(44100)

type fakeOutput struct {
	played []beep.Streamer
	locks  int
}

func (f *fakeOutput) Play(s ...beep.Streamer) { f.played = append(f.played, s...) }
func (f *fakeOutput) Lock()                   { f.locks++ }
func (f *fakeOutput) Unlock()                 {}

// constant produces n frames at value v.
func constant(n int, v float64) beep.Streamer {
	left := n
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left <= 0 {
			return 0, false
		}
		k := len(samples)
		if k > left {
			k = left
		}
		for i := 0; i < k; i++ {
			samples[i] = [2]float64{v, v}
		}
		left -= k
		return k, true
	})
}

func writeWav(t *testing.T, dir, name string, rate beep.SampleRate, frames int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, constant(frames, 0.5), format))
}

func TestLoadSkipsMissingSamples(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, dir, "piano-c.wav", testRate, 4410)
	writeWav(t, dir, "piano-e.wav", 22050, 2205)

	log, recorded := logger.NewTestLogger()
	bank := newBank(log, testRate, &fakeOutput{})
	bank.Load(dir)

	assert.True(t, bank.Loaded("C"))
	assert.True(t, bank.Loaded("e"))
	assert.False(t, bank.Loaded("G"))

	warnings := recorded.FilterMessage("failed to load the sound").FilterLevelExact(zap.WarnLevel)
	assert.Equal(t, 5, warnings.Len())
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "piano-a.wav"), []byte("not a wav"), 0o644))

	log, recorded := logger.NewTestLogger()
	bank := newBank(log, testRate, &fakeOutput{})
	bank.Load(dir)

	assert.False(t, bank.Loaded("A"))
	assert.Equal(t, 7, recorded.FilterMessage("failed to load the sound").Len())
}

func TestPlayChordRestartsNotes(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, dir, "piano-c.wav", testRate, 4410)

	log, _ := logger.NewTestLogger()
	out := &fakeOutput{}
	bank := newBank(log, testRate, out)
	bank.Load(dir)
	bank.Start()
	bank.Start()
	require.Len(t, out.played, 1)

	assert.Equal(t, 0.0, bank.Level())

	bank.PlayChord([]string{"C", "E", "G", "B"})
	first := bank.playing["c"]
	require.NotNil(t, first)
	assert.Len(t, bank.playing, 1)

	samples := make([][2]float64, levelWindow)
	n, ok := out.played[0].Stream(samples)
	assert.Equal(t, levelWindow, n)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, bank.Level(), 0.01)

	bank.Play("c")
	assert.Nil(t, first.Streamer)
	assert.NotSame(t, first, bank.playing["c"])
	assert.Equal(t, 2, out.locks)
}

func TestPlayWithoutSamplesIsNoop(t *testing.T) {
	log, recorded := logger.NewTestLogger()
	out := &fakeOutput{}
	bank := newBank(log, testRate, out)

	bank.PlayChord([]string{"C", "E"})
	assert.Equal(t, 0, out.locks)
	assert.Equal(t, 2, recorded.FilterMessage("no sample for note").Len())
}

func TestTapSnapshotIsChronological(t *testing.T) {
	tap := newLevelTap(constant(3, 1), 4)
	samples := make([][2]float64, 2)
	tap.Stream(samples)
	tap.Stream(samples)

	got := tap.snapshot(4)
	// three frames of signal followed by silence once the source drains
	assert.Equal(t, [][2]float64{{1, 1}, {1, 1}, {1, 1}, {0, 0}}, got)
}
