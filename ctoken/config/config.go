// Package config loads the settings of a c-token ledger node.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kysee/ctoken/ctoken/types"
	"github.com/rs/zerolog"
)

// DefaultProgramID is the address of the c-token program,
// types.PubkeyFromSeed("ctoken-program").
const DefaultProgramID = "X9kXmjipS9bhdVDFtkUnF2NnPiL2BmrMTApJWR1o3pv"

type Config struct {
	// Base58 address of the c-token program.
	ProgramID string `json:"program_id"`

	// Directory of the range proof proving and verifying keys.
	KeyDir string `json:"key_dir"`

	LogLevel string `json:"log_level"`
	// Logs go to stdout when empty.
	LogFile string `json:"log_file"`
}

func DefaultConfig() *Config {
	return &Config{
		ProgramID: DefaultProgramID,
		KeyDir:    "keys",
		LogLevel:  "info",
	}
}

// LoadConfig reads the configuration at path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := types.ParsePubkey(c.ProgramID); err != nil {
		return fmt.Errorf("program_id: %w", err)
	}
	if c.KeyDir == "" {
		return fmt.Errorf("key_dir must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func (c *Config) Program() types.Pubkey {
	return types.MustParsePubkey(c.ProgramID)
}

// Logger builds the node logger. The caller closes the returned closer once
// the logger is no longer used.
func (c *Config) Logger() (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var out io.WriteCloser = nopCloser{os.Stdout}
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
