package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	errMsgReadFileFmt  = "failed to read file %s: %w"
	errMsgUnmarshalFmt = "failed to unmarshal JSON from %s: %w"
	errMsgMarshalFmt   = "failed to marshal data: %w"
	errMsgWriteFileFmt = "failed to write file %s: %w"
	jsonIndent         = "  "
	tempFileSuffix     = ".*.tmp"
)

// LoadJSON decodes the JSON document at path into target
func LoadJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(errMsgReadFileFmt, path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf(errMsgUnmarshalFmt, path, err)
	}
	return nil
}

// SaveJSON writes data as indented JSON. The document goes to a sibling temp
// file first and is renamed over path, so readers never see a partial save.
func SaveJSON(path string, data any) error {
	encoded, err := json.MarshalIndent(data, "", jsonIndent)
	if err != nil {
		return fmt.Errorf(errMsgMarshalFmt, err)
	}
	if err := replaceFile(path, encoded); err != nil {
		return fmt.Errorf(errMsgWriteFileFmt, path, err)
	}
	return nil
}

func replaceFile(path string, contents []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+tempFileSuffix)
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
