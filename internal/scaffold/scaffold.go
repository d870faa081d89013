// Package scaffold writes generated files into a consumer project, moving
// files it replaces aside first.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// backupLayout is ISO-8601 truncated to seconds with ':' replaced by '-'.
const backupLayout = "2006-01-02T15-04-05"

// Outcome is what a write did to a path.
type Outcome int

// Outcomes
const (
	Created Outcome = iota
	Updated
	Unchanged
	Exists
	Planned
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	case Exists:
		return "exists"
	case Planned:
		return "planned"
	}
	return "unknown"
}

// BackupName returns the path a file is moved to when backed up at now.
func BackupName(path string, now time.Time) string {
	return path + ".backup." + now.UTC().Format(backupLayout)
}

// Backup renames path to its timestamped backup name. A failure is logged
// and reported as ("", false); callers carry on regardless.
func Backup(path string) (string, bool) {
	return backupAt(path, time.Now(), slog.Default())
}

func backupAt(path string, now time.Time, logger *slog.Logger) (string, bool) {
	target := BackupName(path, now)
	if err := os.Rename(path, target); err != nil {
		logger.Warn("could not back up file", "path", path, "error", err)
		return "", false
	}
	return target, true
}

// Writer writes generated files. With DryRun set nothing on disk changes;
// a unified diff of each proposed write goes to Out instead.
type Writer struct {
	DryRun bool
	Out    io.Writer
	Logger *slog.Logger

	now       func() time.Time
	writeFile func(string, []byte, fs.FileMode) error
}

// NewWriter creates a writer reporting to out. A nil logger logs nowhere.
func NewWriter(out io.Writer, dryRun bool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{DryRun: dryRun, Out: out, Logger: logger, now: time.Now}
}

func (w *Writer) out() io.Writer {
	if w.Out == nil {
		return io.Discard
	}
	return w.Out
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

func (w *Writer) clock() time.Time {
	if w.now == nil {
		return time.Now()
	}
	return w.now()
}

func (w *Writer) write(path string, content []byte) error {
	if w.writeFile != nil {
		return w.writeFile(path, content, 0644)
	}
	return os.WriteFile(path, content, 0644)
}

// Write replaces the content of path, creating it when missing.
func (w *Writer) Write(path string, content []byte) (Outcome, error) {
	current, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if existed && string(current) == string(content) {
		return Unchanged, nil
	}

	if w.DryRun {
		w.printDiff(path, string(current), string(content))
		return Planned, nil
	}

	if err := w.write(path, content); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	green := color.New(color.FgGreen).SprintFunc()
	if existed {
		fmt.Fprintf(w.out(), "%s Updated %s\n", green("✓"), filepath.Base(path))
		return Updated, nil
	}
	fmt.Fprintf(w.out(), "%s Created %s\n", green("✓"), filepath.Base(path))
	return Created, nil
}

// WriteIfAbsent writes path only when nothing exists there yet.
func (w *Writer) WriteIfAbsent(path string, content []byte) (Outcome, error) {
	if _, err := os.Lstat(path); err == nil {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(w.out(), "%s %s already exists\n", green("✓"), filepath.Base(path))
		return Exists, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return w.Write(path, content)
}

// Backup moves path aside. In dry-run mode it only reports the move.
func (w *Writer) Backup(path string) (string, bool) {
	gray := color.New(color.FgHiBlack).SprintFunc()
	if w.DryRun {
		target := BackupName(path, w.clock())
		fmt.Fprintf(w.out(), "%s Would back up %s to %s\n", gray("→"), filepath.Base(path), filepath.Base(target))
		return target, true
	}

	target, ok := backupAt(path, w.clock(), w.logger())
	if !ok {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(w.out(), "%s Could not back up %s\n", yellow("⚠"), filepath.Base(path))
		return "", false
	}
	fmt.Fprintf(w.out(), "%s Backed up %s to %s\n", gray("→"), filepath.Base(path), filepath.Base(target))
	return target, true
}

// Replace backs up an existing file at path and writes content in its place.
// If the write fails after a successful backup, the backup is moved back so
// the project keeps its original file.
func (w *Writer) Replace(path string, content []byte) (backup string, outcome Outcome, err error) {
	if _, statErr := os.Lstat(path); statErr == nil {
		current, readErr := os.ReadFile(path)
		if readErr == nil && string(current) == string(content) {
			return "", Unchanged, nil
		}
		if w.DryRun {
			w.printDiff(path, string(current), string(content))
			backup, _ = w.Backup(path)
			return backup, Planned, nil
		}
		backup, _ = w.Backup(path)
	}

	outcome, err = w.Write(path, content)
	if err != nil && backup != "" {
		if restoreErr := os.Rename(backup, path); restoreErr != nil {
			w.logger().Error("could not restore backup", "backup", backup, "path", path, "error", restoreErr)
			return backup, outcome, fmt.Errorf("%w (original kept at %s)", err, backup)
		}
		w.logger().Warn("write failed, restored original", "path", path)
		return "", outcome, err
	}
	return backup, outcome, err
}

func (w *Writer) printDiff(path, current, proposed string) {
	fmt.Fprint(w.out(), Diff(path, current, proposed))
}

// Diff returns a unified diff turning current into proposed.
func Diff(path, current, proposed string) string {
	name := filepath.Base(path)
	edits := myers.ComputeEdits(span.URIFromPath(path), current, proposed)
	diff := fmt.Sprint(gotextdiff.ToUnified("a/"+name, "b/"+name, current, edits))
	if diff != "" && !strings.HasSuffix(diff, "\n") {
		diff += "\n"
	}
	return diff
}
