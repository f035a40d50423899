package pixelscene

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// resampleQuality is the interpolation window used for rate conversion and
// pitch shifts.
const resampleQuality = 4

// SoundBank holds decoded cues and plays them through an ebiten audio
// context. It implements SoundPlayer.
type SoundBank struct {
	ctx    *audio.Context
	format beep.Format

	mu    sync.Mutex
	clips map[Sound]*beep.Buffer
}

// NewSoundBank creates an empty bank playing through ctx.
func NewSoundBank(ctx *audio.Context) *SoundBank {
	return newSoundBank(ctx, ctx.SampleRate())
}

func newSoundBank(ctx *audio.Context, sampleRate int) *SoundBank {
	return &SoundBank{
		ctx: ctx,
		// ebiten players take 16-bit little-endian stereo.
		format: beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2},
		clips:  make(map[Sound]*beep.Buffer),
	}
}

// Load decodes a WAV file at the bank's sample rate and stores it under id,
// replacing any previous clip.
func (b *SoundBank) Load(id Sound, data []byte) error {
	stream, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("pixelscene: decode sound %q: %w", id, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != b.format.SampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, b.format.SampleRate, stream)
	}
	buf := beep.NewBuffer(b.format)
	buf.Append(s)
	if err := stream.Err(); err != nil {
		return fmt.Errorf("pixelscene: decode sound %q: %w", id, err)
	}

	b.mu.Lock()
	if b.clips == nil {
		b.clips = make(map[Sound]*beep.Buffer)
	}
	b.clips[id] = buf
	b.mu.Unlock()
	return nil
}

// Has reports whether a clip is loaded for id.
func (b *SoundBank) Has(id Sound) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.clips[id]
	return ok
}

// Play starts id at volume with the pitch multiplier applied by resampling.
// Unknown ids are ignored.
func (b *SoundBank) Play(id Sound, volume, pitch float64) {
	b.mu.Lock()
	clip, ok := b.clips[id]
	b.mu.Unlock()
	if !ok || b.ctx == nil {
		return
	}
	p := b.ctx.NewPlayerFromBytes(pitchedPCM(clip, pitch))
	p.SetVolume(volume)
	p.Play()
}

// pitchedPCM renders clip as PCM with its pitch scaled by pitch. Pitch above
// 1 shortens the clip. Non-positive or non-finite pitch plays it unchanged.
func pitchedPCM(clip *beep.Buffer, pitch float64) []byte {
	var s beep.Streamer = clip.Streamer(0, clip.Len())
	if pitch > 0 && pitch != 1 && !math.IsInf(pitch, 0) {
		s = beep.ResampleRatio(resampleQuality, pitch, s)
	}
	return encodePCM(clip.Format(), s)
}

// encodePCM drains s into signed little-endian frames of format f.
func encodePCM(f beep.Format, s beep.Streamer) []byte {
	var out bytes.Buffer
	samples := make([][2]float64, 512)
	frame := make([]byte, f.Width())
	for {
		n, ok := s.Stream(samples)
		for _, smp := range samples[:n] {
			f.EncodeSigned(frame, smp)
			out.Write(frame)
		}
		if !ok || n == 0 {
			break
		}
	}
	return out.Bytes()
}
