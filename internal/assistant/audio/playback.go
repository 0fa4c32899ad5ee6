// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     audio
// Description: MP3 playback using PortAudio
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/hajimehoshi/go-mp3"

	"github.com/msto63/ninjachat/pkg/core/apperr"
	"github.com/msto63/ninjachat/pkg/core/logging"
)

// go-mp3 always decodes to interleaved 16-bit stereo
const mp3Channels = 2

// Playback streams decoded MP3 clips to the default output device
type Playback struct {
	mu           sync.Mutex
	bufferFrames int
	volume       float64
	playing      bool
	paused       bool
	stop         chan struct{}
	done         chan struct{}
	logger       *logging.Logger
}

// PlaybackConfig holds configuration for audio playback
type PlaybackConfig struct {
	BufferFrames int
}

// DefaultPlaybackConfig returns default playback configuration
func DefaultPlaybackConfig() PlaybackConfig {
	return PlaybackConfig{
		BufferFrames: 1024,
	}
}

// NewPlayback creates a new audio playback instance
func NewPlayback(cfg PlaybackConfig) *Playback {
	if cfg.BufferFrames <= 0 {
		cfg.BufferFrames = DefaultPlaybackConfig().BufferFrames
	}
	return &Playback{
		bufferFrames: cfg.BufferFrames,
		volume:       1,
		logger:       logging.New("playback"),
	}
}

// Play starts decoding and streaming the clip in the background and returns
// at once. A clip that is still playing is stopped first. Only a missing
// file is reported here; decode and device errors are logged.
func (p *Playback) Play(path string, volume float64) error {
	if _, err := os.Stat(path); err != nil {
		return apperr.Playback("open clip", err)
	}

	p.Stop()

	p.mu.Lock()
	p.volume = clampVolume(volume)
	p.playing = true
	p.paused = false
	stop := make(chan struct{})
	done := make(chan struct{})
	p.stop = stop
	p.done = done
	p.mu.Unlock()

	go func() {
		defer close(done)
		err := p.playFile(path, stop)

		p.mu.Lock()
		p.playing = false
		p.paused = false
		p.mu.Unlock()

		if err != nil {
			p.logger.Error("Playback failed", "path", path, "error", err)
			return
		}
		p.logger.Debug("Playback finished", "path", path)
	}()

	return nil
}

// playFile decodes the clip frame by frame while it is streamed
func (p *Playback) playFile(path string, stop <-chan struct{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open clip: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("failed to open mp3 stream: %w", err)
	}
	return p.stream(dec, float64(dec.SampleRate()), stop)
}

// stream writes decoded PCM to PortAudio until the source ends or stop closes
func (p *Playback) stream(src io.Reader, sampleRate float64, stop <-chan struct{}) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	// Interleaved output buffer
	buffer := make([]float32, p.bufferFrames*mp3Channels)
	pcm := make([]byte, len(buffer)*2)

	stream, err := portaudio.OpenDefaultStream(
		0,           // input channels (none)
		mp3Channels, // output channels
		sampleRate,
		p.bufferFrames,
		&buffer,
	)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		p.mu.Lock()
		paused := p.paused
		volume := float32(p.volume)
		p.mu.Unlock()

		last := false
		if paused {
			// Keep the stream fed with silence
			for i := range buffer {
				buffer[i] = 0
			}
		} else {
			var err error
			last, err = nextBuffer(src, pcm, buffer, volume)
			if err != nil {
				return fmt.Errorf("failed to decode mp3 stream: %w", err)
			}
		}

		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write to stream: %w", err)
		}
		if last {
			return nil
		}
	}
}

// nextBuffer reads the next block of 16-bit PCM from src into buffer,
// scaled by volume and padded with silence. It reports whether src is
// exhausted.
func nextBuffer(src io.Reader, pcm []byte, buffer []float32, volume float32) (bool, error) {
	n, err := io.ReadFull(src, pcm)
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		convertPCM16(buffer, pcm[:n], volume)
		return true, nil
	case err != nil:
		return false, err
	}
	convertPCM16(buffer, pcm, volume)
	return false, nil
}

// convertPCM16 converts little-endian signed 16-bit PCM to [-1, 1) scaled by
// volume; samples past the end of pcm are silence
func convertPCM16(dst []float32, pcm []byte, volume float32) {
	samples := len(pcm) / 2
	for i := range dst {
		if i < samples {
			s := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
			dst[i] = float32(s) / 32768.0 * volume
		} else {
			dst[i] = 0
		}
	}
}

// Pause silences the current clip, keeping its position
func (p *Playback) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.paused = true
	}
	return nil
}

// Resume continues a paused clip
func (p *Playback) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = false
	return nil
}

// Stop ends the current clip and waits for the stream to close
func (p *Playback) Stop() error {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}

// SetVolume changes the volume of the current and following clips
func (p *Playback) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clampVolume(volume)
}

// Volume returns the current volume
func (p *Playback) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// IsPlaying returns whether audio is currently playing
func (p *Playback) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// IsPaused returns whether the current clip is paused
func (p *Playback) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
