// Package production provides production integrations: profile loading,
// hot reload, signal publishing and timeline rendering.
package production

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/comalice/holdrepeat/internal/primitives"
)

var ErrUnsupportedFormat = errors.New("unsupported profile format")

// Decoder turns raw profile bytes into a profile.
type Decoder interface {
	Decode(data []byte) (*primitives.ProfileConfig, error)
}

// YAMLLoader decodes profiles written in YAML.
type YAMLLoader struct{}

func (YAMLLoader) Decode(data []byte) (*primitives.ProfileConfig, error) {
	var p primitives.ProfileConfig
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return &p, nil
}

// TOMLLoader decodes profiles written in TOML.
type TOMLLoader struct{}

func (TOMLLoader) Decode(data []byte) (*primitives.ProfileConfig, error) {
	var p primitives.ProfileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("toml unmarshal: %w", err)
	}
	return &p, nil
}

// DecoderFor picks a decoder from a file extension.
func DecoderFor(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLLoader{}, nil
	case ".toml":
		return TOMLLoader{}, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// DecodeProfile decodes, normalizes and validates a profile.
func DecodeProfile(dec Decoder, data []byte) (*primitives.ProfileConfig, error) {
	p, err := dec.Decode(data)
	if err != nil {
		return nil, err
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("config validation after load: %w", err)
	}
	return p, nil
}

// LoadProfile reads the profile at path. The format follows the extension.
func LoadProfile(path string) (*primitives.ProfileConfig, error) {
	dec, err := DecoderFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("profile %q: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p, err := DecodeProfile(dec, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
