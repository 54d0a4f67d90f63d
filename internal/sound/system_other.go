//go:build !darwin

package sound

import "pomobar/internal/core/model"

func playSystemSound(model.Sound) (bool, error) {
	return false, nil
}
