package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/tonal-tangents/internal/config"
	"github.com/iburimskiy/tonal-tangents/internal/game"
	"github.com/iburimskiy/tonal-tangents/internal/logger"
	"github.com/iburimskiy/tonal-tangents/internal/sound"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(cfg.Debug)
	defer log.Sync()

	rate := beep.SampleRate(cfg.SampleRate)
	bank := sound.NewBank(log, rate)
	if err := sound.Init(rate, time.Second/20); err != nil {
		log.Errorw("audio unavailable, chords will be silent", "error", err)
	} else {
		bank.Start()
	}
	bank.Load(cfg.SamplesDir)

	g, err := game.New(cfg, log, bank)
	if err != nil {
		log.Fatalw("invalid chord table", "error", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Tonal Tangents - drag the circle to change chords, Esc/Q: Quit")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalw("game stopped", "error", err)
	}
}
