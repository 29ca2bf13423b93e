package aieps

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// Options configures a conversion.
type Options struct {
	// AutoClose closes open segments of filled paths.
	AutoClose bool `toml:"auto-close"`
	// RemoveInvisible skips hidden elements and shapes without any paint.
	RemoveInvisible bool `toml:"remove-invisible"`
	// RemoveStrayPoints drops segments that consist of a single moveto.
	RemoveStrayPoints bool `toml:"remove-stray-points"`
	// CloseDistance is the Manhattan distance in user units above which a closing segment gets an explicit lineto to its start.
	CloseDistance float64 `toml:"close-distance"`

	Precision int `toml:"precision"`  // number of decimals of written numbers
	WrapWidth int `toml:"wrap-width"` // column at which path operators are wrapped

	// ModernVersion is the first Inkscape version using 96 pixels per inch, documents of older versions use LegacyPxRatio points per pixel.
	ModernVersion string  `toml:"modern-version"`
	LegacyPxRatio float64 `toml:"legacy-px-ratio"`

	Preview        bool `toml:"preview"`          // add an EPSI preview image
	PreviewMaxSize int  `toml:"preview-max-size"` // in pixels

	Logger *zap.Logger `toml:"-"`
}

// DefaultOptions are the options used when nil is passed.
var DefaultOptions = Options{
	AutoClose:         true,
	RemoveInvisible:   true,
	RemoveStrayPoints: true,
	CloseDistance:     0.1,
	Precision:         6,
	WrapWidth:         70,
	ModernVersion:     "0.92",
	LegacyPxRatio:     96.0 / 90.0,
	Preview:           false,
	PreviewMaxSize:    256,
}

// LoadOptions reads options in TOML format. Keys that are absent keep their value from DefaultOptions.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return DefaultOptions, fmt.Errorf("options: %w", err)
	}
	if err := opts.validate(); err != nil {
		return DefaultOptions, err
	}
	return opts, nil
}

func (opts Options) validate() error {
	if opts.Precision < 0 || 15 < opts.Precision {
		return fmt.Errorf("options: precision must be between 0 and 15: %d", opts.Precision)
	} else if opts.WrapWidth < 0 {
		return fmt.Errorf("options: wrap width must be positive: %d", opts.WrapWidth)
	} else if opts.LegacyPxRatio <= 0.0 {
		return fmt.Errorf("options: legacy px ratio must be positive: %g", opts.LegacyPxRatio)
	} else if opts.Preview && opts.PreviewMaxSize <= 0 {
		return fmt.Errorf("options: preview size must be positive: %d", opts.PreviewMaxSize)
	}
	return nil
}
