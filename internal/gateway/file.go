package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// snapshotFileMode is applied to newly created snapshots so other tools can read them.
const snapshotFileMode = 0o644

// WriteJSON writes v as indented JSON to path. The file is replaced
// atomically, so readers see either the previous snapshot or the new one.
func WriteJSON(path string, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	_, statErr := os.Stat(path)
	existed := statErr == nil
	if err := atomic.WriteFile(path, bytes.NewReader(append(jsonData, '\n'))); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// atomic.WriteFile keeps the mode of a replaced file but creates new ones 0600.
	if !existed {
		if err := os.Chmod(path, snapshotFileMode); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", path, err)
		}
	}
	return nil
}
