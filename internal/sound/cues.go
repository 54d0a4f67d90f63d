package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"pomobar/internal/core/model"
)

type note struct {
	freq   float64
	length time.Duration
}

const noteGap = 20 * time.Millisecond

var cues = map[model.Sound][]note{
	model.SoundPing:      {{freq: 1318.5, length: 180 * time.Millisecond}},
	model.SoundPop:       {{freq: 659.3, length: 60 * time.Millisecond}},
	model.SoundSubmarine: {{freq: 220, length: 450 * time.Millisecond}, {freq: 196, length: 300 * time.Millisecond}},
	model.SoundBasso:     {{freq: 110, length: 400 * time.Millisecond}},
	model.SoundTink:      {{freq: 2637, length: 50 * time.Millisecond}},
	model.SoundGlass:     {{freq: 1760, length: 150 * time.Millisecond}, {freq: 2217.5, length: 250 * time.Millisecond}},
	model.SoundHero: {
		{freq: 523.3, length: 120 * time.Millisecond},
		{freq: 659.3, length: 120 * time.Millisecond},
		{freq: 784, length: 120 * time.Millisecond},
		{freq: 1046.5, length: 300 * time.Millisecond},
	},
}

func cueFor(sound model.Sound) []note {
	if notes, ok := cues[sound]; ok {
		return notes
	}
	return cues[model.SoundPing]
}

// renderCue synthesizes notes into a buffer at a quiet volume.
func renderCue(sampleRate beep.SampleRate, notes []note) (*beep.Buffer, error) {
	parts := make([]beep.Streamer, 0, len(notes)*2)
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("synthesize %.1fHz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(n.length), tone), beep.Silence(sampleRate.N(noteGap)))
	}

	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buffer := beep.NewBuffer(format)
	buffer.Append(&effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   -2,
	})
	return buffer, nil
}
