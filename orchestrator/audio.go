package orchestrator

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ProbeAudio reads a WAV header and reports its shape without decoding
// the whole file into the result.
func ProbeAudio(path string) (AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return AudioInfo{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return AudioInfo{}, fmt.Errorf("%s: not a valid WAV file", path)
	}
	dur, err := dec.Duration()
	if err != nil {
		return AudioInfo{}, fmt.Errorf("%s: duration: %w", path, err)
	}
	return AudioInfo{
		Path:            path,
		SampleRate:      int(dec.SampleRate),
		Channels:        int(dec.NumChans),
		BitDepth:        int(dec.BitDepth),
		DurationSeconds: dur.Seconds(),
	}, nil
}

// PreprocessAudio downmixes a WAV file to mono and peak-normalizes it,
// writing 16-bit PCM to outPath. Resampling stays with the model
// services, which accept any rate.
func PreprocessAudio(path, outPath string) (AudioInfo, error) {
	in, err := os.Open(path)
	if err != nil {
		return AudioInfo{}, err
	}
	defer in.Close()

	dec := wav.NewDecoder(in)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return AudioInfo{}, fmt.Errorf("%s: decode: %w", path, err)
	}
	if buf.Format == nil || len(buf.Data) == 0 {
		return AudioInfo{}, fmt.Errorf("%s: empty WAV file", path)
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	mono := make([]int, frames)
	peak := 0
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += buf.Data[i*channels+c]
		}
		v := sum / channels
		mono[i] = v
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	if peak > 0 {
		// Peak-normalize into the full int16 range.
		for i, v := range mono {
			mono[i] = v * 32767 / peak
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return AudioInfo{}, err
	}
	defer out.Close()

	enc := wav.NewEncoder(out, buf.Format.SampleRate, 16, 1, 1)
	monoBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: buf.Format.SampleRate},
		Data:           mono,
		SourceBitDepth: 16,
	}
	if err := enc.Write(monoBuf); err != nil {
		return AudioInfo{}, fmt.Errorf("%s: encode: %w", outPath, err)
	}
	if err := enc.Close(); err != nil {
		return AudioInfo{}, err
	}

	return AudioInfo{
		Path:            outPath,
		SampleRate:      buf.Format.SampleRate,
		Channels:        1,
		BitDepth:        16,
		DurationSeconds: float64(frames) / float64(buf.Format.SampleRate),
	}, nil
}
