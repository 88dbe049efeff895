package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrFieldNotSet is returned by [GetConfigField] for keys the file does not
// set.
var ErrFieldNotSet = errors.New("field not set")

// SetConfigField sets key (a dotted path such as "swipe.left") to value in
// the file at path, creating the file if needed. The result must still be a
// valid configuration.
func SetConfigField(path, key string, value any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(strings.TrimSpace(string(data))) == 0) {
		data = []byte("{}")
	} else if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	updated, err := sjson.SetBytesOptions(data, key, value, &sjson.Options{Optimistic: true})
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}

	cfg := Defaults()
	if err := json.Unmarshal(updated, cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, pretty(updated), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigField returns the raw JSON value of key in the file at path.
func GetConfigField(path, key string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	res := gjson.GetBytes(data, key)
	if !res.Exists() {
		return "", fmt.Errorf("%w: %s", ErrFieldNotSet, key)
	}
	if res.Type == gjson.String {
		return res.String(), nil
	}
	return res.Raw, nil
}

// SetConfigField sets a field in the configuration file and updates the
// loaded configuration accordingly.
func (c *Config) SetConfigField(key string, value any) error {
	if c.path == "" {
		return errors.New("configuration has no file to write to")
	}
	if err := SetConfigField(c.path, key, value); err != nil {
		return err
	}
	data, err := sjson.SetBytes([]byte("{}"), key, value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// ParseValue interprets a command line value as JSON when it is valid JSON
// (numbers, booleans, arrays, objects, quoted strings) and as a plain string
// otherwise.
func ParseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}

func pretty(data []byte) []byte {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(data), "", "  "); err != nil {
		return data
	}
	out.WriteByte('\n')
	return out.Bytes()
}
