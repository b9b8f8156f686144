package tts

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const spoolFilePermissions = 0o600

// SpoolAudio writes synthesized audio to a uniquely named temp file so it
// can be served with range support, and returns the path. The caller is
// expected to discard the file after the response with DiscardLater.
func SpoolAudio(audio []byte) (string, error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+".mp3")
	if err := os.WriteFile(path, audio, spoolFilePermissions); err != nil {
		return "", err
	}
	return path, nil
}

// DiscardLater removes a spooled audio file without blocking the caller.
// Best-effort: a failure is logged and never retried, the file has no
// durability requirement.
func DiscardLater(path string, log *slog.Logger) {
	go func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to discard spooled audio", "path", path, "error", err)
		}
	}()
}
