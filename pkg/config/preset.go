package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/printforge/printboard/pkg/errors"
)

// LoadPreset reads and validates a keyboard configuration from a TOML file.
//
// Example preset:
//
//	name = "split60"
//	switch_type = "gamdias_lp"
//	controller_type = "tinys2"
//	controller_placement = ["left", "top"]
//
//	[matrices.main]
//	rows = 4
//	cols = 6
//	rows_stagger = [0.0, 2.5, 5.0, 2.5]
//
//	[matrices.thumb]
//	rows = 1
//	cols = 3
//	rotation_angle = -15.0
//	anchor = "main"
func LoadPreset(path string) (KeyboardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return KeyboardConfig{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset %s", path)
		}
		return KeyboardConfig{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "read preset %s", path)
	}
	return ParsePreset(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// ParsePreset decodes a TOML keyboard configuration. If the preset does not
// set a name, fallback is used.
func ParsePreset(data []byte, fallback string) (KeyboardConfig, error) {
	var c KeyboardConfig
	if err := toml.Unmarshal(data, &c); err != nil {
		return KeyboardConfig{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode preset")
	}
	if c.Name == "" {
		c.Name = fallback
	}
	applyDefaults(&c)
	if err := c.Validate(); err != nil {
		return KeyboardConfig{}, err
	}
	return c, nil
}

// applyDefaults fills in the parts of a config a preset may omit.
func applyDefaults(c *KeyboardConfig) {
	if c.SwitchType == "" {
		c.SwitchType = "gamdias_lp"
	}
	if c.ControllerType == "" {
		c.ControllerType = "tinys2"
	}
	if c.ControllerPlacement == [2]string{} {
		c.ControllerPlacement = [2]string{PlacementLeft, PlacementTop}
	}
}

// UniqueName builds a generation name from a base name, a timestamp and a
// short random suffix, so repeated generations of the same preset never
// collide on disk or in the store.
func UniqueName(base string) string {
	if base == "" {
		base = "keyboard"
	}
	stamp := time.Now().Format("20060102_150405")
	short := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s", base, stamp, short)
}
