// Package playback starts audio clips without waiting for them to finish.
package playback

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tahcohcat/voicegen/internal/logger"
)

// Clip is a playable audio resource built from response bytes.
type Clip struct {
	Data        []byte
	ContentType string
}

// Extension guesses a file extension from the content type.
func (c Clip) Extension() string {
	ct := strings.ToLower(c.ContentType)
	switch {
	case strings.Contains(ct, "wav"):
		return ".wav"
	case strings.Contains(ct, "ogg"), strings.Contains(ct, "opus"):
		return ".ogg"
	case strings.Contains(ct, "flac"):
		return ".flac"
	default:
		return ".mp3"
	}
}

// Nop discards clips.
type Nop struct{}

func (Nop) Play(Clip) error { return nil }

// File writes every clip to Path, replacing the previous one.
type File struct {
	Path string
}

func (f File) Play(c Clip) error {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.Path, c.Data, 0o644)
}

// System spools a clip to disk and hands it to an external player.
// Play returns once the player has started.
type System struct {
	// Command is the player command line; the clip path is appended.
	// Empty uses the OS default opener.
	Command string
	// Dir holds spooled clips, os.TempDir() when empty.
	Dir string

	log     *logger.Log
	started atomic.Int64
	start   func(name string, args ...string) (wait func() error, err error)
}

func NewSystem(command, dir string) *System {
	return &System{
		Command: command,
		Dir:     dir,
		log:     logger.Named("playback"),
		start:   startProcess,
	}
}

// Started reports how many players were launched.
func (s *System) Started() int64 {
	return s.started.Load()
}

func (s *System) Play(c Clip) error {
	if len(c.Data) == 0 {
		return fmt.Errorf("empty audio clip")
	}

	path, err := s.spool(c)
	if err != nil {
		return fmt.Errorf("spool audio: %w", err)
	}

	start := s.start
	if start == nil {
		start = startProcess
	}

	name, args := s.commandLine(path)
	wait, err := start(name, args...)
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("start player %s: %w", name, err)
	}
	s.started.Add(1)

	log := s.log
	if log == nil {
		log = logger.Named("playback")
	}

	go func() {
		if err := wait(); err != nil {
			log.WithError(err).Warn(fmt.Sprintf("player exited for %s", path))
		}
		// Openers return before the target app has read the file.
		if s.Command == "" {
			time.Sleep(30 * time.Second)
		}
		os.Remove(path)
	}()

	return nil
}

func (s *System) spool(c Clip) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(dir, "voicegen-*"+c.Extension())
	if err != nil {
		return "", err
	}
	if _, err := f.Write(c.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (s *System) commandLine(path string) (string, []string) {
	if fields := strings.Fields(s.Command); len(fields) > 0 {
		return fields[0], append(fields[1:], path)
	}
	switch runtime.GOOS {
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

func startProcess(name string, args ...string) (func() error, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Wait, nil
}
