package sound

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"
	"go.uber.org/zap"
)

const (
	levelRingSize   = 4096
	levelWindow     = 1024
	resampleQuality = 4
	loadWorkers     = 4
)

// Naturals are the notes with a recorded sample.
var Naturals = []string{"a", "b", "c", "d", "e", "f", "g"}

var extensions = []string{".wav", ".mp3", ".flac"}

var (
	initOnce sync.Once
	initErr  error
)

// Init sets up the process-wide speaker. Only the first call has an effect.
func Init(rate beep.SampleRate, latency time.Duration) error {
	initOnce.Do(func() {
		initErr = speaker.Init(rate, rate.N(latency))
	})
	return initErr
}

// output is where mixed audio goes; the speaker in production.
type output interface {
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }

// Bank holds one decoded sample per natural note and plays chords from it.
type Bank struct {
	log  *zap.SugaredLogger
	rate beep.SampleRate
	out  output

	mu      sync.Mutex
	buffers map[string]*beep.Buffer

	// guarded by out.Lock
	mixer   *beep.Mixer
	playing map[string]*beep.Ctrl

	tap     *levelTap
	started bool
}

// NewBank returns an empty bank that resamples everything to rate.
func NewBank(log *zap.SugaredLogger, rate beep.SampleRate) *Bank {
	return newBank(log, rate, speakerOutput{})
}

func newBank(log *zap.SugaredLogger, rate beep.SampleRate, out output) *Bank {
	mixer := &beep.Mixer{}
	return &Bank{
		log:     log,
		rate:    rate,
		out:     out,
		buffers: map[string]*beep.Buffer{},
		mixer:   mixer,
		playing: map[string]*beep.Ctrl{},
		tap:     newLevelTap(mixer, levelRingSize),
	}
}

// Start connects the bank's mixer to the output. Init must have been called.
func (b *Bank) Start() {
	if b.started {
		return
	}
	b.started = true
	b.out.Play(b.tap)
}

// Load decodes piano-<note> samples from dir, replacing the current set.
// Notes that fail to load are logged and stay silent.
func (b *Bank) Load(dir string) {
	loaded := make(map[string]*beep.Buffer, len(Naturals))
	var mu sync.Mutex

	swg := sizedwaitgroup.New(loadWorkers)
	for _, note := range Naturals {
		swg.Add()
		go func(note string) {
			defer swg.Done()
			path, err := findSample(dir, note)
			if err != nil {
				b.log.Warnw("failed to load the sound", "note", note, "error", err)
				return
			}
			buf, err := b.decode(path)
			if err != nil {
				b.log.Warnw("failed to load the sound", "note", note, "path", path, "error", err)
				return
			}
			mu.Lock()
			loaded[note] = buf
			mu.Unlock()
		}(note)
	}
	swg.Wait()

	b.mu.Lock()
	b.buffers = loaded
	b.mu.Unlock()
	b.log.Infow("sound bank ready", "dir", dir, "loaded", len(loaded), "of", len(Naturals))
}

func findSample(dir, note string) (string, error) {
	for _, ext := range extensions {
		p := filepath.Join(dir, "piano-"+note+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no piano-%s sample in %s", note, dir)
}

func (b *Bank) decode(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.New("unsupported file type: " + filepath.Ext(path))
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != b.rate {
		src = beep.Resample(resampleQuality, format.SampleRate, b.rate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: b.rate, NumChannels: format.NumChannels, Precision: format.Precision})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, err
	}

	b.log.Debugw("loaded sample",
		"path", path,
		"duration", durafmt.Parse(b.rate.D(buf.Len())).LimitFirstN(2).String(),
		"size", humanize.Bytes(uint64(info.Size())),
		"channels", format.NumChannels,
	)
	return buf, nil
}

// Loaded reports whether note has a sample.
func (b *Bank) Loaded(note string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffers[strings.ToLower(note)] != nil
}

// Play restarts a single note from the beginning.
func (b *Bank) Play(note string) {
	b.PlayChord([]string{note})
}

// PlayChord restarts every note of a chord from the beginning. Notes that
// are still sounding from an earlier chord are cut off. Nothing plays until
// Start has connected the output.
func (b *Bank) PlayChord(notes []string) {
	b.mu.Lock()
	bufs := make(map[string]*beep.Buffer, len(notes))
	for _, n := range notes {
		key := strings.ToLower(n)
		if buf := b.buffers[key]; buf != nil {
			bufs[key] = buf
		} else {
			b.log.Debugw("no sample for note", "note", n)
		}
	}
	b.mu.Unlock()
	if len(bufs) == 0 || !b.started {
		return
	}

	b.out.Lock()
	for key, buf := range bufs {
		if prev := b.playing[key]; prev != nil {
			prev.Streamer = nil
		}
		ctrl := &beep.Ctrl{Streamer: buf.Streamer(0, buf.Len())}
		b.playing[key] = ctrl
		b.mixer.Add(ctrl)
	}
	b.out.Unlock()
}

// Level is the recent output loudness in [0, 1].
func (b *Bank) Level() float64 {
	v := b.tap.rms(levelWindow)
	if v > 1 {
		return 1
	}
	return v
}
