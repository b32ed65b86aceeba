package levels

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Rand is the randomness used for image selection.
type Rand interface {
	Intn(n int) int
}

// ResolveImage picks the image reference for one load of l: a random entry
// of ImageList when present, every {rand} replaced with a number in
// [0, 1000000), and a cache-busting cb parameter appended when Randomize is
// set. Relative file paths are taken from the directory of the level file.
func ResolveImage(l Level, rng Rand, now time.Time) string {
	ref := l.ImageURL
	if len(l.ImageList) > 0 {
		ref = l.ImageList[rng.Intn(len(l.ImageList))]
	}
	ref = relativeTo(ref, l.FilePath)

	if strings.Contains(ref, "{rand}") {
		ref = strings.ReplaceAll(ref, "{rand}", strconv.Itoa(rng.Intn(1000000)))
	}

	if l.Randomize {
		sep := "?"
		if strings.Contains(ref, "?") {
			sep = "&"
		}
		ref += sep + "cb=" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + strconv.Itoa(rng.Intn(1000))
	}
	return ref
}

// relativeTo joins a relative local ref onto the directory of a level file.
func relativeTo(ref, levelFile string) string {
	if ref == "" || levelFile == "" || levelFile == embeddedSource || isURL(levelFile) {
		return ref
	}
	if isURL(ref) || strings.Contains(ref, ":") || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(levelFile), ref)
}
