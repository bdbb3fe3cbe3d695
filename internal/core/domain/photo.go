package domain

import (
	"path"
	"strconv"
	"strings"
	"time"
)

const defaultPhotoBase = "photo"

// PhotoFilename returns the storage name of an uploaded file:
// "<unix nanos>-<base name of original>".
//
// Directory parts of original are dropped, so the result never leaves the
// photo directory.
func PhotoFilename(original string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	switch base {
	case ".", "..", "/", "":
		base = defaultPhotoBase
	}
	return strconv.FormatInt(now.UnixNano(), 10) + "-" + base
}
