/*
Package image loads the pictures sprites are extracted from and saves
converted copies of them.

Any format registered with the standard image package can be decoded; PNG,
GIF, JPEG, BMP, TIFF and WebP are always available. Decoded images are
returned as NRGBA with their top-left corner at (0, 0). Images can be saved
as PNG, GIF, JPEG, BMP or TIFF, chosen by file extension.
*/
package image

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	errUnsupported = errors.New("image: unsupported file extension")
)

const jpegQuality = 95

func ext(file string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
}

// IsImage reports whether file has the extension of a format Save can
// write.
func IsImage(file string) bool {
	switch ext(file) {
	case "png", "gif", "jpg", "jpeg", "bmp", "tif", "tiff":
		return true
	}
	return false
}
