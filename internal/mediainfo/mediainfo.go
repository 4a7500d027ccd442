// Package mediainfo inspects local audio files before upload, prefilling
// form fields from embedded tags and, for MP3s, a frame scan.
package mediainfo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"
)

// Info is the metadata snapshot of a local audio file.
type Info struct {
	Title      string
	Artist     string
	Album      string
	Duration   string // "m:ss", empty when unknown
	FileFormat string // upper-case extension, e.g. "MP3"
	FileSize   int64
}

// Inspect reads what it can from the file at path. Unreadable tags are
// not an error; the title falls back to the file name stem.
func Inspect(path string) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat %s: %w", path, err)
	}

	info := Info{
		FileFormat: format(path),
		FileSize:   stat.Size(),
	}

	info.Title, info.Artist, info.Album = readTags(path)
	if info.Title == "" {
		info.Title = Stem(path)
	}

	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		if seconds, err := mp3Duration(path); err == nil && seconds > 0 {
			info.Duration = formatDuration(seconds)
		}
	}

	return info, nil
}

// Stem returns the file name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func format(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return strings.ToUpper(ext)
}

func readTags(path string) (title, artist, album string) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", ""
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return "", "", ""
	}
	return strings.TrimSpace(meta.Title()),
		strings.TrimSpace(meta.Artist()),
		strings.TrimSpace(meta.Album())
}

func mp3Duration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder := mp3.NewDecoder(f)
	var frame mp3.Frame
	var skipped int
	var total float64

	for {
		err := decoder.Decode(&frame, &skipped)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		total += frame.Duration().Seconds()
	}

	return total, nil
}

func formatDuration(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
