package sound

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestSynthClickLength(t *testing.T) {
	pcm := synthClick(880, 40*time.Millisecond)
	frames := int(0.04 * sampleRate)
	if got, want := len(pcm), frames*channelCount*bitDepth; got != want {
		t.Fatalf("expected %d bytes, got %d", want, got)
	}
}

func TestSynthClickDecays(t *testing.T) {
	pcm := synthClick(880, 40*time.Millisecond)
	peak := func(from, to int) int {
		hi := 0
		for off := from; off < to; off += bitDepth {
			v := int(int16(binary.LittleEndian.Uint16(pcm[off:])))
			if v < 0 {
				v = -v
			}
			if v > hi {
				hi = v
			}
		}
		return hi
	}
	quarter := len(pcm) / 4 / bitDepth * bitDepth
	head := peak(0, quarter)
	tail := peak(len(pcm)-quarter, len(pcm))
	if head == 0 {
		t.Fatal("expected audible onset")
	}
	if tail >= head/2 {
		t.Fatalf("expected tail peak %d well below head peak %d", tail, head)
	}
}

func TestSynthClickChannelsMatch(t *testing.T) {
	pcm := synthClick(440, 5*time.Millisecond)
	for off := 0; off+4 <= len(pcm); off += 4 {
		if pcm[off] != pcm[off+2] || pcm[off+1] != pcm[off+3] {
			t.Fatalf("left/right mismatch at byte %d", off)
		}
	}
}

func TestSynthClickMinimumOneFrame(t *testing.T) {
	if got := len(synthClick(440, 0)); got != channelCount*bitDepth {
		t.Fatalf("expected a single frame, got %d bytes", got)
	}
}
