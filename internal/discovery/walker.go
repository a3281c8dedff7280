package discovery

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/thaodangspace/crashlogs/internal/config"
)

// Report category labels. The label records which directory tree a
// candidate came from, not anything read out of the file.
const (
	TypeApplication = "application"
	TypeMobile      = "mobile"
)

// Candidate is one crash report file found during a walk, tagged with its
// category label.
type Candidate struct {
	Path string
	Type string
}

// Walker finds crash report files under the well-known diagnostic
// directories. All filesystem access goes through an afero.Fs so the walk
// can run against a fake tree in tests or a mounted image.
type Walker struct {
	fs       afero.Fs
	settings *config.Settings
}

// NewWalker returns a walker over fs using the given settings.
func NewWalker(fs afero.Fs, settings *config.Settings) *Walker {
	return &Walker{fs: fs, settings: settings}
}

// listFiles returns the files directly under dir. A missing or unreadable
// directory yields an empty list, not an error.
func (w *Walker) listFiles(dir string) []string {
	return w.list(dir, false)
}

// listDirs returns the subdirectories directly under dir, with the same
// missing-directory policy as listFiles.
func (w *Walker) listDirs(dir string) []string {
	return w.list(dir, true)
}

func (w *Walker) list(dir string, dirs bool) []string {
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() == dirs {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths
}

// wantFile reports whether a file name looks like a crash report worth
// parsing: the configured suffix, minus the configured noise patterns.
func (w *Walker) wantFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, w.settings.ReportSuffix) && !w.settings.IsNoise(name)
}

// userHomes returns the user home directories to scan: the configured list
// when set, otherwise the subdirectories of the homes root. Hidden entries
// and the Shared directory are never user homes.
func (w *Walker) userHomes() []string {
	if len(w.settings.UserHomes) > 0 {
		return w.settings.UserHomes
	}
	var homes []string
	for _, dir := range w.listDirs(w.settings.UserHomesDir) {
		name := filepath.Base(dir)
		if strings.HasPrefix(name, ".") || name == "Shared" {
			continue
		}
		homes = append(homes, dir)
	}
	return homes
}

// reportsIn returns the candidate reports directly under dir, tagged with
// the given category label.
func (w *Walker) reportsIn(dir, label string) []Candidate {
	var out []Candidate
	for _, path := range w.listFiles(dir) {
		if w.wantFile(path) {
			out = append(out, Candidate{Path: path, Type: label})
		}
	}
	return out
}

// Candidates walks the well-known directories and returns every crash
// report file found, in walk order: the system directory first, then each
// user's diagnostic directory, then each mobile device directory beneath
// each user home. The system directory is skipped when uid restricts the
// scan to a non-root user.
func (w *Walker) Candidates(uid string) []Candidate {
	var out []Candidate

	if uid == "" || uid == "0" {
		out = append(out, w.reportsIn(w.settings.SystemReportDir, TypeApplication)...)
	}

	for _, home := range w.userHomes() {
		userDir := filepath.Join(home, w.settings.UserReportDir)
		out = append(out, w.reportsIn(userDir, TypeApplication)...)

		mobileRoot := filepath.Join(home, w.settings.MobileReportDir)
		for _, device := range w.listDirs(mobileRoot) {
			out = append(out, w.reportsIn(device, TypeMobile)...)
		}
	}

	return out
}
