package render

import "html/template"

// Theme captures the typography the HTML template is rendered with.
// Sizes are in points.
type Theme struct {
	FontFamily   template.CSS `yaml:"font_family"`
	BaseSize     int          `yaml:"base_size"`
	NameSize     int          `yaml:"name_size"`
	HeadingSize  int          `yaml:"heading_size"`
	NameColor    string       `yaml:"name_color"`
	HeadingColor string       `yaml:"heading_color"`
	MutedColor   string       `yaml:"muted_color"`
	PageMargin   template.CSS `yaml:"page_margin"`
}

const (
	HeadingColor = "1F2937"
	NameColor    = "111111"
	MutedColor   = "4B5563"
	BaseSize     = 10
	HeadingSize  = 12
	NameSize     = 20
)

// DefaultTheme is tuned so a full budget resume fits on one letter page.
var DefaultTheme = Theme{
	FontFamily:   template.CSS(`"Helvetica Neue", Helvetica, Arial, sans-serif`),
	BaseSize:     BaseSize,
	NameSize:     NameSize,
	HeadingSize:  HeadingSize,
	NameColor:    NameColor,
	HeadingColor: HeadingColor,
	MutedColor:   MutedColor,
	PageMargin:   template.CSS("0.5in 0.6in"),
}
