package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileSource reads facility records from a JSON file on disk. It backs
// the partner dataset written by the refresh worker; a missing file is
// not an error, it simply contributes no facilities.
type FileSource struct {
	path string
	name string
}

// NewFileSource creates a source that reads the given JSON file.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{path: path, name: name}
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return s.name
}

// Facilities returns the records in the file, or an empty slice when the
// file does not exist.
func (s *FileSource) Facilities(_ context.Context) ([]Facility, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading facility file %s: %w", s.path, err)
	}

	var facilities []Facility
	if err := json.Unmarshal(raw, &facilities); err != nil {
		return nil, fmt.Errorf("decoding facility file %s: %w", s.path, err)
	}
	return facilities, nil
}
