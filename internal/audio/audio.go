// Package audio drives the host speaker from the VM's SoundActive
// predicate. It owns no VM state; the CORE only ever exposes a read-only
// boolean, per the host-audio-out-of-scope contract.
package audio

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const assetPath = "assets/beep.mp3"

// Player replays a decoded beep tone once per rising edge of SetActive
// rather than running a continuously looped stream.
type Player struct {
	streamer beep.StreamSeekCloser
	active   bool
}

// NewPlayer opens and decodes assets/beep.mp3 and initializes the speaker.
// Callers should Close the player when done.
func NewPlayer() (*Player, error) {
	f, err := os.Open(assetPath)
	if err != nil {
		return nil, err
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, err
	}

	return &Player{streamer: streamer}, nil
}

// SetActive replays the tone from the start on each false->true
// transition of active, and lets it play out otherwise -- a short beep per
// sound-timer activation, not a sustained drone.
func (p *Player) SetActive(active bool) {
	if active && !p.active {
		p.streamer.Seek(0)
		speaker.Play(p.streamer)
	}
	p.active = active
}

// Close releases the decoded stream.
func (p *Player) Close() error {
	return p.streamer.Close()
}
