//go:build headless

package main

import (
	"context"
	"errors"

	"github.com/cwbudde/algo-tonegen/dsp/synth"
)

func playLive(context.Context, renderConfig, synth.Family) error {
	return errors.New("live playback is not available in headless builds")
}
