package app

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	stlval "github.com/kkkunny/stl/value"
	"github.com/retroenv/retrogolib/log"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 440
	toneVolume = 0.2
)

// audio plays a square wave while the sound timer is running.
type audio struct {
	logger *log.Logger
	ctrl   *beep.Ctrl
}

func newAudio(logger *log.Logger) *audio {
	a := &audio{logger: logger}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Warn("Audio output unavailable", log.Err(err))
		return a
	}

	a.ctrl = &beep.Ctrl{Streamer: squareWave(sampleRate, toneHz), Paused: true}
	speaker.Play(a.ctrl)
	return a
}

func squareWave(rate beep.SampleRate, hz int) beep.Streamer {
	period := rate.N(time.Second) / hz
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := stlval.Ternary(pos < period/2, toneVolume, -toneVolume)
			samples[i] = [2]float64{v, v}
			pos = (pos + 1) % period
		}
		return len(samples), true
	})
}

// Set starts or stops the tone. It does nothing without an audio device.
func (a *audio) Set(on bool) {
	if a.ctrl == nil {
		return
	}
	speaker.Lock()
	a.ctrl.Paused = !on
	speaker.Unlock()
}
