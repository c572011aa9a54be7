package notify

import (
	"fmt"
	"math"
	"sync"
	"time"

	"lookaway/internal/core/cycle"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const (
	popSampleRate = beep.SampleRate(44100)
	popLength     = 120 * time.Millisecond
	popStartHz    = 880.0
	popEndHz      = 330.0
	popDecay      = 6.0
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Sound plays a short synthesized pop on every transition.
type Sound struct {
	mu     sync.Mutex
	volume float64
}

// NewSound returns a Sound. volume is relative, base 2: 0 is unchanged,
// -1 halves the amplitude.
func NewSound(volume float64) *Sound {
	return &Sound{volume: volume}
}

// SetVolume changes the volume of later pops.
func (sound *Sound) SetVolume(volume float64) {
	sound.mu.Lock()
	defer sound.mu.Unlock()
	sound.volume = volume
}

// Name implements Sender.
func (sound *Sound) Name() string {
	return "sound"
}

// Send implements Sender.
func (sound *Sound) Send(cycle.Transition) error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(popSampleRate, popSampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return fmt.Errorf("init speaker: %w", speakerErr)
	}

	sound.mu.Lock()
	volume := sound.volume
	sound.mu.Unlock()

	speaker.Play(&effects.Volume{
		Streamer: Pop(popSampleRate, popLength),
		Base:     2,
		Volume:   volume,
		Silent:   false,
	})
	return nil
}

// Pop synthesizes a falling, exponentially decaying tone of the given length.
func Pop(sampleRate beep.SampleRate, length time.Duration) beep.Streamer {
	total := sampleRate.N(length)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if position >= total {
				break
			}
			progress := float64(position) / float64(total)
			seconds := float64(position) / float64(sampleRate)
			frequency := popStartHz + (popEndHz-popStartHz)*progress
			value := math.Sin(2*math.Pi*frequency*seconds) * math.Exp(-popDecay*progress)
			samples[i][0] = value
			samples[i][1] = value
			position++
			n++
		}
		return n, true
	})
}
