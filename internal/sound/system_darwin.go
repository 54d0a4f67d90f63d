//go:build darwin

package sound

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"pomobar/internal/core/model"
)

const systemSoundDir = "/System/Library/Sounds"

func playSystemSound(sound model.Sound) (bool, error) {
	path := filepath.Join(systemSoundDir, sound.String()+".aiff")
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	afplay, err := exec.LookPath("afplay")
	if err != nil {
		return false, nil
	}

	command := exec.Command(afplay, path)
	if err := command.Start(); err != nil {
		return false, fmt.Errorf("afplay %s: %w", path, err)
	}
	go func() {
		_ = command.Wait()
	}()
	return true, nil
}
