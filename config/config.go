// Package config reads the optional settings of fbsplash: a TOML file and
// the firmware offset files that place the splash where the boot logo was.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/srlehn/fbsplash/internal"
	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/errors"
)

// Config represents fbsplash.toml.
type Config struct {
	Device  string `toml:"device"`
	Console string `toml:"console"`
	Image   string `toml:"image"`
	// Files with a single decimal integer each. Unreadable files center the
	// image on that axis.
	XOffsetFile string `toml:"x_offset_file"`
	YOffsetFile string `toml:"y_offset_file"`
	// Explicit offsets win over the offset files.
	XOffset *int `toml:"x_offset,omitempty"`
	YOffset *int `toml:"y_offset,omitempty"`
	// Raw mode implementation, "termios" or "console".
	TTYBackend string `toml:"tty_backend"`
	// Where the entered password goes, empty for stdout.
	WriteTo string `toml:"write_to"`
}

func Default() Config {
	return Config{
		Device:      internal.DefaultFramebufferDevice(),
		Console:     internal.DefaultConsoleDevice(),
		Image:       consts.DefaultImage,
		TTYBackend:  consts.DefaultTTYBackend,
		XOffsetFile: consts.DefaultXOffsetFile,
		YOffsetFile: consts.DefaultYOffsetFile,
	}
}

// Load overlays the file at path onto Default. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if len(path) == 0 {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.New(err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Default(), errors.Errorf(`%s: %w`, path, err)
	}
	return cfg, nil
}

// Offsets resolves the placement, nil means centered.
func (c Config) Offsets() (x, y *int) {
	fx, fy := Offsets(c.XOffsetFile, c.YOffsetFile)
	x, y = c.XOffset, c.YOffset
	if x == nil {
		x = fx
	}
	if y == nil {
		y = fy
	}
	return x, y
}

// Offsets reads both offset files.
func Offsets(xPath, yPath string) (x, y *int) {
	if v, ok := ReadOffset(xPath); ok {
		x = &v
	}
	if v, ok := ReadOffset(yPath); ok {
		y = &v
	}
	return x, y
}

// ReadOffset parses a file holding one non-negative decimal integer.
// Surrounding whitespace is ignored. ok is false if the file is missing or
// does not parse, callers then center the image.
func ReadOffset(path string) (offset int, ok bool) {
	if len(path) == 0 {
		return 0, false
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 31)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
