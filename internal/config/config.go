package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/iburimskiy/tonal-tangents/internal/drag"
	"github.com/iburimskiy/tonal-tangents/internal/tween"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	WindowWidth  = 480
	WindowHeight = 520

	// Circle placement inside the window
	CircleMargin = 40
	CircleY      = 70

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonMargin = 25

	SizeStep     = 20
	MinSize      = 120
	ScrollFactor = 24
)

// Config holds the tunable parameters. Defaults come from the struct tags
// and the drag/tween package defaults, TONAL_* environment variables
// override them and command line flags override both.
type Config struct {
	Size          float64       `envconfig:"SIZE" default:"300"`
	StrokeWidth   float64       `envconfig:"STROKE_WIDTH" default:"10"`
	DragThrottle  time.Duration `envconfig:"DRAG_THROTTLE"`
	DragThreshold float64       `envconfig:"DRAG_THRESHOLD" default:"2"`
	TweenDuration time.Duration `envconfig:"TWEEN_DURATION"`
	SamplesDir    string        `envconfig:"SAMPLES_DIR" default:"assets/sounds"`
	SampleRate    int           `envconfig:"SAMPLE_RATE" default:"44100"`
	EnableDrag    bool          `envconfig:"ENABLE_DRAG" default:"true"`
	FontPath      string        `envconfig:"FONT"`
	Debug         bool          `envconfig:"DEBUG" default:"false"`
}

// Load reads the environment and then parses args (without the program
// name).
func Load(args []string) (Config, error) {
	cfg := Config{
		DragThrottle:  drag.DefaultThrottle,
		TweenDuration: tween.DefaultDuration,
	}
	if err := envconfig.Process("tonal", &cfg); err != nil {
		return cfg, fmt.Errorf("env: %w", err)
	}

	app := kingpin.New("tonal-tangents", "Diatonic seventh chords on the circle of notes.")
	app.Version("0.1.0")
	app.Flag("size", "Circle diameter in pixels").Default(ftoa(cfg.Size)).Float64Var(&cfg.Size)
	app.Flag("stroke-width", "Circle stroke width").Default(ftoa(cfg.StrokeWidth)).Float64Var(&cfg.StrokeWidth)
	app.Flag("drag-throttle", "Minimum time between drag events, 0 to disable").Default(cfg.DragThrottle.String()).DurationVar(&cfg.DragThrottle)
	app.Flag("drag-threshold", "Drag distance in pixels that rotates the chord").Default(ftoa(cfg.DragThreshold)).Float64Var(&cfg.DragThreshold)
	app.Flag("tween", "Polygon animation duration").Default(cfg.TweenDuration.String()).DurationVar(&cfg.TweenDuration)
	app.Flag("samples", "Directory holding piano-<note> samples").Short('s').Default(cfg.SamplesDir).StringVar(&cfg.SamplesDir)
	app.Flag("sample-rate", "Speaker sample rate").Default(strconv.Itoa(cfg.SampleRate)).IntVar(&cfg.SampleRate)
	app.Flag("drag", "Rotate chords by dragging the circle").Default(strconv.FormatBool(cfg.EnableDrag)).BoolVar(&cfg.EnableDrag)
	app.Flag("font", "TrueType/OpenType font for note labels").Default(cfg.FontPath).StringVar(&cfg.FontPath)
	app.Flag("debug", "Enable debug logging").Short('d').Default(strconv.FormatBool(cfg.Debug)).BoolVar(&cfg.Debug)

	if _, err := app.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.StrokeWidth <= 0:
		return errors.New("stroke width must be positive")
	case c.Size <= 2*c.StrokeWidth:
		return fmt.Errorf("size %v too small for stroke width %v", c.Size, c.StrokeWidth)
	case c.DragThrottle < 0 || c.TweenDuration < 0:
		return errors.New("durations must not be negative")
	case c.DragThreshold < 0:
		return errors.New("drag threshold must not be negative")
	case c.SampleRate <= 0:
		return errors.New("sample rate must be positive")
	}
	return nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
