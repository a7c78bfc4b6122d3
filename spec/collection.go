package spec

import (
	"regexp"
	"strings"
)

// whitespacePattern splits ssv collections. Any single whitespace character
// separates two elements.
var whitespacePattern = regexp.MustCompile(`\s`)

// Delimiter returns the separator packing an array into one string. ssv
// reports a space, although any whitespace character separates elements when
// splitting. multi has no delimiter of its own: repeated query and form keys
// carry one element each, and anywhere else it falls back to csv like an
// absent or unknown format.
func (f CollectionFormat) Delimiter() string {
	switch f {
	case CollectionSSV:
		return " "
	case CollectionTSV:
		return "\t"
	case CollectionPipes:
		return "|"
	}
	return ","
}

// Split explodes a packed array value. Elements are not trimmed, and an empty
// value yields a single empty element.
func (f CollectionFormat) Split(value string) []string {
	if f == CollectionSSV {
		return whitespacePattern.Split(value, -1)
	}
	return strings.Split(value, f.Delimiter())
}
