// Package sound plays the named completion sounds.
//
// A sound resolves to a user file in the sounds directory when one exists,
// then to the platform's own system sound, then to a built-in cue
// synthesized with beep generators.
package sound

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"

	"pomobar/internal/core/model"
)

// ErrAudioUnavailable is returned when the speaker could not be initialised.
var ErrAudioUnavailable = errors.New("audio output unavailable")

const defaultSampleRate = beep.SampleRate(44100)

// Player plays named sounds without blocking the caller.
type Player struct {
	logger     zerolog.Logger
	soundDir   string
	sampleRate beep.SampleRate
	system     func(model.Sound) (bool, error)

	initOnce sync.Once
	initErr  error

	mu      sync.Mutex
	buffers map[model.Sound]*beep.Buffer
}

// NewPlayer creates a player. soundDir may be empty.
func NewPlayer(soundDir string, logger zerolog.Logger) *Player {
	return &Player{
		logger:     logger,
		soundDir:   soundDir,
		sampleRate: defaultSampleRate,
		system:     playSystemSound,
		buffers:    make(map[model.Sound]*beep.Buffer),
	}
}

// Play starts playback of sound and returns immediately.
func (player *Player) Play(sound model.Sound) error {
	if !sound.Audible() {
		return nil
	}

	if _, ok := findSoundFile(player.soundDir, sound); !ok {
		handled, err := player.system(sound)
		if err != nil {
			player.logger.Debug().Err(err).Str("sound", sound.String()).Msg("system sound failed, using built-in cue")
		}
		if handled {
			return nil
		}
	}

	if err := player.initSpeaker(); err != nil {
		return err
	}

	buffer, err := player.buffer(sound)
	if err != nil {
		return err
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	speaker.Play(buffer.Streamer(0, buffer.Len()))
	return nil
}

func (player *Player) initSpeaker() error {
	player.initOnce.Do(func() {
		if err := speaker.Init(player.sampleRate, player.sampleRate.N(time.Second/10)); err != nil {
			player.initErr = fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
			player.logger.Warn().Err(err).Msg("audio disabled")
		}
	})
	return player.initErr
}

func (player *Player) buffer(sound model.Sound) (*beep.Buffer, error) {
	player.mu.Lock()
	cached, ok := player.buffers[sound]
	player.mu.Unlock()
	if ok {
		return cached, nil
	}

	var (
		buffer *beep.Buffer
		err    error
	)
	if path, found := findSoundFile(player.soundDir, sound); found {
		buffer, err = decodeFile(path, player.sampleRate)
		if err != nil {
			player.logger.Warn().Err(err).Str("path", path).Msg("decode sound file, using built-in cue")
		}
	}
	if buffer == nil {
		buffer, err = renderCue(player.sampleRate, cueFor(sound))
		if err != nil {
			return nil, err
		}
	}

	player.mu.Lock()
	player.buffers[sound] = buffer
	player.mu.Unlock()
	return buffer, nil
}

func findSoundFile(dir string, sound model.Sound) (string, bool) {
	if dir == "" {
		return "", false
	}
	for _, ext := range []string{".wav", ".ogg"} {
		path := filepath.Join(dir, sound.String()+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func decodeFile(path string, target beep.SampleRate) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch filepath.Ext(path) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(file)
	default:
		streamer, format, err = wav.Decode(file)
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != target {
		source = beep.Resample(4, format.SampleRate, target, streamer)
		format.SampleRate = target
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(source)
	return buffer, nil
}
