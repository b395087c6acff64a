package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML writes v as a TOML file, creating parent directories as
// needed. Files under the profile root are owner-only, like everything
// else koru persists.
func SaveTOML(filePath string, v any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(v)
}

// LoadTOML decodes the TOML file at filePath into v.
func LoadTOML(filePath string, v any) error {
	_, err := toml.DecodeFile(filePath, v)
	return err
}
