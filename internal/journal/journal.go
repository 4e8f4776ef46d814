package journal

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"

	"github.com/arweave-go/uploader/pkg/arerr"
)

// filename returns the content-addressed status filename for filePath:
// BLAKE3(utf8(filePath)).hex() + ".json".
func filename(filePath string) string {
	sum := blake3.Sum256([]byte(filePath))
	return hex.EncodeToString(sum[:]) + ".json"
}

// Path returns the full on-disk path a status for filePath would live at
// under logDir.
func Path(logDir, filePath string) string {
	return filepath.Join(logDir, filename(filePath))
}

// Write persists status to logDir, named by a BLAKE3 hash of its
// file_path. Both file_path and id must already be set.
func Write(logDir string, status Status) error {
	if status.FilePath == "" {
		return &arerr.MissingFilePath{}
	}
	if status.ID == "" {
		return &arerr.UnsignedTransaction{}
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return &arerr.IOFailure{Op: "marshal status", Path: status.FilePath, Err: err}
	}

	path := Path(logDir, status.FilePath)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return &arerr.IOFailure{Op: "mkdir log_dir", Path: logDir, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &arerr.IOFailure{Op: "write status", Path: path, Err: err}
	}
	return nil
}

// Read loads the status recorded for filePath under logDir.
func Read(logDir, filePath string) (Status, error) {
	path := Path(logDir, filePath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Status{}, &arerr.StatusNotFound{FilePath: filePath}
		}
		return Status{}, &arerr.IOFailure{Op: "read status", Path: path, Err: err}
	}

	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return Status{}, &arerr.StatusCorrupt{FilePath: filePath, Err: err}
	}
	return status, nil
}

// ReadAll reads the status for every path in paths, skipping (not
// erroring on) paths with no recorded status.
func ReadAll(logDir string, paths []string) ([]Status, error) {
	statuses := make([]Status, 0, len(paths))
	for _, p := range paths {
		s, err := Read(logDir, p)
		if err != nil {
			var notFound *arerr.StatusNotFound
			if errors.As(err, &notFound) {
				continue
			}
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}
