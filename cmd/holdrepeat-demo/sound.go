package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	beepDuration = 40 * time.Millisecond
)

// beeper plays a short sine tone per perform. A disabled beeper is silent.
type beeper struct {
	enabled bool
}

func newBeeper(enabled bool) (*beeper, error) {
	b := &beeper{}
	if !enabled {
		return b, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return b, fmt.Errorf("init speaker: %w", err)
	}
	b.enabled = true
	return b, nil
}

func (b *beeper) Tone(freq float64) {
	if !b.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(beepDuration), sine))
}

func (b *beeper) Close() {
	if b.enabled {
		speaker.Close()
	}
}

// toneFor gives each action its own pitch.
func toneFor(action string) float64 {
	switch action {
	case "up":
		return 880
	case "down":
		return 660
	}
	var h uint32
	for _, r := range action {
		h = h*31 + uint32(r)
	}
	return float64(440 + h%440)
}
