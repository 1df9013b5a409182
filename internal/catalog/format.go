package catalog

import "slices"

// Format is a response data format accepted by Steam
type Format string

const (
	FormatJSON Format = "json"
	FormatVDF  Format = "vdf" // Valve Data Format
	FormatXML  Format = "xml"
)

// formats lists the accepted formats; the first entry is the default
var formats = []Format{FormatJSON, FormatVDF, FormatXML}

// DefaultFormat returns the canonical default format
func DefaultFormat() Format {
	return formats[0]
}

// ValidFormat reports whether f is an accepted format
func ValidFormat(f string) bool {
	return slices.Contains(formats, Format(f))
}

// Formats returns the accepted formats in catalog order
func Formats() []Format {
	return slices.Clone(formats)
}
