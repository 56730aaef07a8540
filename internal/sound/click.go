package sound

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Clicker plays a short tone whenever the block breaks free.
type Clicker struct {
	ctx    *oto.Context
	pcm    []byte
	volume float64

	mu     sync.Mutex
	player *oto.Player
	closed bool
}

// New opens the audio device and prepares the click.
func New(frequency float64, duration time.Duration, volume float64) (*Clicker, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Clicker{
		ctx:    ctx,
		pcm:    synthClick(frequency, duration),
		volume: volume,
	}, nil
}

// Click starts the tone and returns immediately. A click still sounding is
// cut off.
func (c *Clicker) Click() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.player != nil {
		c.player.Close()
	}
	c.player = c.ctx.NewPlayer(bytes.NewReader(c.pcm))
	c.player.SetVolume(c.volume)
	c.player.Play()
}

func (c *Clicker) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.player == nil {
		return nil
	}
	err := c.player.Close()
	c.player = nil
	return err
}

// synthClick renders an exponentially decaying sine as interleaved
// little-endian 16-bit stereo.
func synthClick(frequency float64, duration time.Duration) []byte {
	frames := int(duration.Seconds() * sampleRate)
	if frames < 1 {
		frames = 1
	}
	buf := make([]byte, frames*channelCount*bitDepth)
	decay := 5.0 / float64(frames)
	for i := 0; i < frames; i++ {
		env := math.Exp(-decay * float64(i))
		v := math.Sin(2*math.Pi*frequency*float64(i)/sampleRate) * env
		s := int16(v * math.MaxInt16 * 0.8)
		for ch := 0; ch < channelCount; ch++ {
			off := (i*channelCount + ch) * bitDepth
			binary.LittleEndian.PutUint16(buf[off:], uint16(s))
		}
	}
	return buf
}
