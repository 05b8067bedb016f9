package dump

import (
	"strconv"
	"strings"
)

// Location is the source position carried by a node's location bracket.
// Explicit is false when the node only gave a column (or no usable
// position) and the previous line applies. File is set only for the
// file:line:col form, which clang prints when the position moves to another
// file; "line:" positions stay in the file last named.
type Location struct {
	Line     int
	File     string
	Explicit bool
}

// ParseLocation reads the first range endpoint of a location bracket such as
// "line:97:5, line:99:5", "col:15, col:47" or "/usr/include/foo.h:12:3, col:9".
func ParseLocation(bracket string) Location {
	start, _, _ := strings.Cut(bracket, ", ")
	start = strings.TrimSpace(start)

	if rest, ok := strings.CutPrefix(start, "line:"); ok {
		num, _, _ := strings.Cut(rest, ":")
		if n, err := strconv.Atoi(num); err == nil && n > 0 {
			return Location{Line: n, Explicit: true}
		}
		return Location{}
	}
	if strings.HasPrefix(start, "col:") {
		return Location{}
	}

	// file:line:col, the form used when the position moves to another file.
	parts := strings.Split(start, ":")
	if len(parts) < 3 {
		return Location{}
	}
	if _, err := strconv.Atoi(parts[len(parts)-1]); err != nil {
		return Location{}
	}
	n, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || n <= 0 {
		return Location{}
	}
	return Location{Line: n, File: strings.Join(parts[:len(parts)-2], ":"), Explicit: true}
}
