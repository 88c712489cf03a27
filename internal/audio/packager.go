package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"voicefir/internal/domain"
	"voicefir/internal/ports"
)

const (
	pcmBitDepth  = 16
	wavFormatPCM = 1
)

// Packager seals captured bytes into the container the capture backend
// was configured for.
type Packager struct {
	encoding   string
	sampleRate int
	channels   int
}

func NewPackager(cfg ports.AudioConfig) *Packager {
	cfg = withAudioDefaults(cfg)
	return &Packager{encoding: cfg.Encoding, sampleRate: cfg.SampleRate, channels: cfg.Channels}
}

// Encode implements ports.PayloadEncoder.
func (p *Packager) Encode(raw []byte) (domain.Payload, error) {
	switch p.encoding {
	case ports.EncodingWebM:
		return domain.Payload{Data: raw, ContentType: "audio/webm", FileName: "recording.webm"}, nil
	case ports.EncodingWAV:
		data, err := encodeWAV(raw, p.sampleRate, p.channels)
		if err != nil {
			return domain.Payload{}, err
		}
		return domain.Payload{Data: data, ContentType: "audio/wav", FileName: "recording.wav"}, nil
	default:
		return domain.Payload{}, fmt.Errorf("unsupported audio encoding %q", p.encoding)
	}
}

// encodeWAV wraps little-endian s16 PCM in a RIFF/WAVE container.
func encodeWAV(pcm []byte, sampleRate int, channels int) ([]byte, error) {
	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}

	out := &seekBuffer{}
	enc := wav.NewEncoder(out, sampleRate, pcmBitDepth, channels, wavFormatPCM)
	// Write even when empty so the header and data chunk exist.
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: pcmBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalize wav: %w", err)
	}
	return out.Bytes(), nil
}

// seekBuffer is an in-memory io.WriteSeeker; the wav encoder seeks back
// to patch chunk sizes on Close.
type seekBuffer struct {
	buf []byte
	pos int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.buf) {
		if end > cap(b.buf) {
			grown := make([]byte, end, 2*end)
			copy(grown, b.buf)
			b.buf = grown
		} else {
			b.buf = b.buf[:end]
		}
	}
	copy(b.buf[b.pos:], p)
	b.pos = end
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.buf))
	default:
		return 0, errors.New("seekBuffer: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("seekBuffer: negative position")
	}
	b.pos = int(next)
	return next, nil
}

func (b *seekBuffer) Bytes() []byte { return b.buf }
