package render

import (
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrTheme is returned for theme files that fail to parse or validate.
var ErrTheme = errors.New("invalid theme")

const maxPoints = 48

var (
	hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
	safeCSS  = regexp.MustCompile(`^[A-Za-z0-9 ,."'\-]*$`)
)

// LoadTheme reads a YAML theme. Keys that are absent keep their
// DefaultTheme value; unknown keys are rejected.
//
//	font_family: Georgia, serif
//	heading_color: 0B3D91
//	base_size: 11
func LoadTheme(r io.Reader) (Theme, error) {
	theme := DefaultTheme
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&theme); err != nil && !errors.Is(err, io.EOF) {
		return Theme{}, errors.Wrap(ErrTheme, err.Error())
	}
	theme.NameColor = strings.TrimPrefix(theme.NameColor, "#")
	theme.HeadingColor = strings.TrimPrefix(theme.HeadingColor, "#")
	theme.MutedColor = strings.TrimPrefix(theme.MutedColor, "#")
	if err := theme.Validate(); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

// Validate rejects values that would break the stylesheet.
func (t Theme) Validate() error {
	for name, color := range map[string]string{
		"name_color":    t.NameColor,
		"heading_color": t.HeadingColor,
		"muted_color":   t.MutedColor,
	} {
		if !hexColor.MatchString(color) {
			return errors.Wrapf(ErrTheme, "%s must be a 6 digit hex color, got %q", name, color)
		}
	}
	for name, size := range map[string]int{
		"base_size":    t.BaseSize,
		"name_size":    t.NameSize,
		"heading_size": t.HeadingSize,
	} {
		if size <= 0 || size > maxPoints {
			return errors.Wrapf(ErrTheme, "%s must be between 1 and %d", name, maxPoints)
		}
	}
	if !safeCSS.MatchString(string(t.FontFamily)) || !safeCSS.MatchString(string(t.PageMargin)) {
		return errors.Wrap(ErrTheme, "font_family and page_margin may not contain CSS syntax")
	}
	return nil
}
