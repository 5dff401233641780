package feed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// Writer publishes serialized calendars into the output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

func NewWriter(dir string, logger *slog.Logger) (*Writer, error) {
	// An unwritable output directory is one of the few fatal conditions.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Writer{dir: dir, logger: logger}, nil
}

// WriteCalendar serializes cal and writes <name>.ics atomically, returning
// the filename. A calendar with partial errors still publishes its parsed
// events; the errors are logged for operator review only.
func (w *Writer) WriteCalendar(cal domain.Calendar) (string, error) {
	for _, exErr := range cal.Errors {
		w.logger.Warn("calendar carries extraction error", "calendar", cal.Name, "error", exErr.Error())
	}

	filename := cal.Name + ".ics"
	body := Serialize(cal, w.logger)

	if err := w.writeFileAtomic(filename, []byte(body)); err != nil {
		return "", fmt.Errorf("write calendar %s: %w", cal.Name, err)
	}

	w.logger.Debug("wrote calendar", "file", filename, "events", len(cal.Events))
	return filename, nil
}

// writeFileAtomic writes via a temp file and rename so subscribers polling
// mid-run never see a truncated feed.
func (w *Writer) writeFileAtomic(filename string, data []byte) error {
	tmp, err := os.CreateTemp(w.dir, "."+filename+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(w.dir, filename))
}

// Dir returns the output directory path.
func (w *Writer) Dir() string {
	return w.dir
}
