package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/msto63/ninjachat/pkg/core/apperr"
)

func TestConvertPCM16(t *testing.T) {
	pcm := []byte{
		0x00, 0x00, // 0
		0x00, 0x40, // 16384
		0x00, 0x80, // -32768
		0xff, 0x7f, // 32767
	}

	got := make([]float32, 6)
	convertPCM16(got, pcm, 1)
	want := []float32{0, 0.5, -1, 32767.0 / 32768.0, 0, 0}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	convertPCM16(got, pcm[:4], 0.5)
	if got[1] != 0.25 || got[2] != 0 {
		t.Errorf("scaled = %v, want [0 0.25 0 ...]", got)
	}
}

func TestNextBuffer(t *testing.T) {
	// five samples of 16384, read in blocks of four
	src := bytes.NewReader(bytes.Repeat([]byte{0x00, 0x40}, 5))
	pcm := make([]byte, 8)
	buffer := make([]float32, 4)

	last, err := nextBuffer(src, pcm, buffer, 1)
	if err != nil || last {
		t.Fatalf("first block: last = %v, err = %v", last, err)
	}
	for i, v := range buffer {
		if v != 0.5 {
			t.Errorf("buffer[%d] = %v, want 0.5", i, v)
		}
	}

	last, err = nextBuffer(src, pcm, buffer, 1)
	if err != nil || !last {
		t.Fatalf("tail block: last = %v, err = %v", last, err)
	}
	if buffer[0] != 0.5 || buffer[1] != 0 || buffer[3] != 0 {
		t.Errorf("tail buffer = %v, want [0.5 0 0 0]", buffer)
	}

	last, err = nextBuffer(src, pcm, buffer, 1)
	if err != nil || !last {
		t.Errorf("exhausted: last = %v, err = %v", last, err)
	}
}

func TestNextBuffer_Error(t *testing.T) {
	boom := errors.New("corrupt frame")
	_, err := nextBuffer(iotest.ErrReader(boom), make([]byte, 8), make([]float32, 4), 1)
	if !errors.Is(err, boom) {
		t.Errorf("nextBuffer() error = %v, want %v", err, boom)
	}
}

func TestPlayback_PlayMissingFile(t *testing.T) {
	p := NewPlayback(DefaultPlaybackConfig())

	err := p.Play(filepath.Join(t.TempDir(), "absent.mp3"), 0.7)
	if !apperr.Is(err, apperr.KindPlayback) {
		t.Errorf("Play() error = %v, want playback error", err)
	}
	if p.IsPlaying() {
		t.Error("IsPlaying() = true after failed Play")
	}
}

func TestPlayback_DecodesInBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.mp3")
	if err := os.WriteFile(path, []byte("not an mp3 clip"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPlayback(DefaultPlaybackConfig())
	if err := p.Play(path, 0.7); err != nil {
		t.Fatalf("Play() error = %v, want nil for a decode failure", err)
	}

	// Stop waits for the worker, which has given up on the broken clip
	if err := p.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if p.IsPlaying() {
		t.Error("IsPlaying() = true after a failed decode")
	}
}

func TestPlayback_VolumeAndIdleControls(t *testing.T) {
	p := NewPlayback(PlaybackConfig{})

	p.SetVolume(0.4)
	if p.Volume() != 0.4 {
		t.Errorf("Volume() = %v, want 0.4", p.Volume())
	}
	p.SetVolume(3)
	if p.Volume() != 1 {
		t.Errorf("Volume() = %v, want clamped 1", p.Volume())
	}

	// Controls without a clip are no-ops
	if err := p.Pause(); err != nil {
		t.Errorf("Pause() error = %v", err)
	}
	if p.IsPaused() {
		t.Error("IsPaused() = true without a clip")
	}
	if err := p.Resume(); err != nil {
		t.Errorf("Resume() error = %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestPlayerArgs(t *testing.T) {
	tests := []struct {
		command string
		want    []string
	}{
		{"mpv", []string{"--no-terminal", "--no-video", "--volume=50", "a.mp3"}},
		{"/usr/bin/afplay", []string{"-v", "0.50", "a.mp3"}},
		{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", "50", "a.mp3"}},
		{"paplay", []string{"--volume=32768", "a.mp3"}},
		{"custom-player", []string{"a.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got := playerArgs(tt.command, "a.mp3", 0.5)
			if len(got) != len(tt.want) {
				t.Fatalf("playerArgs() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("playerArgs()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewPlayer(t *testing.T) {
	p, err := NewPlayer(Options{Backend: BackendPortAudio})
	if err != nil {
		t.Fatalf("NewPlayer(portaudio) error = %v", err)
	}
	if _, ok := p.(*Playback); !ok {
		t.Errorf("NewPlayer(portaudio) = %T, want *Playback", p)
	}

	p, err = NewPlayer(Options{Backend: BackendNone})
	if err != nil {
		t.Fatalf("NewPlayer(none) error = %v", err)
	}
	if err := p.Play("clip.mp3", 0.3); err != nil {
		t.Errorf("Silent.Play() error = %v", err)
	}
	if s := p.(*Silent); s.Plays != 1 || s.LastPath != "clip.mp3" || s.Volume != 0.3 {
		t.Errorf("Silent = %+v", s)
	}

	if _, err := NewPlayer(Options{Backend: "theremin"}); err == nil {
		t.Error("NewPlayer(unknown) expected error")
	}
}

func TestNewCommandPlayer_Missing(t *testing.T) {
	if _, err := NewCommandPlayer("definitely-not-a-player-binary"); err == nil {
		t.Error("NewCommandPlayer() expected error for missing binary")
	}
}
