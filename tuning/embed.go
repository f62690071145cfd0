package tuning

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var TuningFS embed.FS

// DiskDir is checked before the embedded copies so designers can tweak values
// without rebuilding.
const DiskDir = "tuning"

// Load reads a tuning file, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanTuningPath(name)
	if data, err := os.ReadFile(diskTuningPath(clean)); err == nil {
		return data, nil
	}
	return TuningFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskTuningPath(cleanTuningPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanTuningPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, DiskDir+"/"); ok {
		return after
	}
	return s
}

func diskTuningPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
