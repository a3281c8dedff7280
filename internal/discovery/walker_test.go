package discovery

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"

	"github.com/thaodangspace/crashlogs/internal/config"
)

func testSettings() *config.Settings {
	return config.DefaultSettings()
}

func seedFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to seed %s: %v", path, err)
	}
}

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	seedFile(t, fs, "/Library/Logs/DiagnosticReports/Spotlight_2024-01-02.crash", "Process: Spotlight [1234]\nUser ID: 0\n")
	seedFile(t, fs, "/Library/Logs/DiagnosticReports/LowBattery_2024-01-03.crash", "Process: powerd [88]\n")
	seedFile(t, fs, "/Library/Logs/DiagnosticReports/notes.txt", "not a crash report\n")
	seedFile(t, fs, "/Users/alice/Library/Logs/DiagnosticReports/Safari_2024-02-01.crash", "Process: Safari [4321]\nUser ID: 501\n")
	seedFile(t, fs, "/Users/alice/Library/Logs/CrashReporter/MobileDevice/Alices-iPhone/MobileSafari_2024.crash", "Process: MobileSafari [543]\nTriggered by Thread: 2\n")
	seedFile(t, fs, "/Users/Shared/Library/Logs/DiagnosticReports/Shared_2024.crash", "Process: Shared [9]\n")

	return fs
}

func TestCandidatesWalkOrder(t *testing.T) {
	w := NewWalker(testFs(t), testSettings())

	got := w.Candidates("")
	want := []Candidate{
		{"/Library/Logs/DiagnosticReports/Spotlight_2024-01-02.crash", TypeApplication},
		{"/Users/alice/Library/Logs/DiagnosticReports/Safari_2024-02-01.crash", TypeApplication},
		{"/Users/alice/Library/Logs/CrashReporter/MobileDevice/Alices-iPhone/MobileSafari_2024.crash", TypeMobile},
	}

	if len(got) != len(want) {
		t.Fatalf("Candidates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidates()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCandidatesUIDRestriction(t *testing.T) {
	w := NewWalker(testFs(t), testSettings())

	tests := []struct {
		name       string
		uid        string
		wantSystem bool
	}{
		{"unrestricted", "", true},
		{"root", "0", true},
		{"regular user", "501", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSystem := false
			for _, c := range w.Candidates(tt.uid) {
				if c.Path == "/Library/Logs/DiagnosticReports/Spotlight_2024-01-02.crash" {
					gotSystem = true
				}
			}
			if gotSystem != tt.wantSystem {
				t.Errorf("Candidates(%q) system report included = %v, want %v", tt.uid, gotSystem, tt.wantSystem)
			}
		})
	}
}

func TestCandidatesMissingDirectories(t *testing.T) {
	w := NewWalker(afero.NewMemMapFs(), testSettings())

	if got := w.Candidates(""); len(got) != 0 {
		t.Errorf("Candidates() on empty filesystem = %v, want none", got)
	}
}

func TestCandidatesConfigurableFilters(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/Library/Logs/DiagnosticReports/app.ips", []byte("Process: app [1]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/Library/Logs/DiagnosticReports/ShutdownStall_2024.ips", []byte("Process: app [2]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	settings := testSettings()
	settings.ReportSuffix = ".ips"
	settings.NoisePatterns = []string{"ShutdownStall"}

	w := NewWalker(fs, settings)
	got := w.Candidates("")
	if len(got) != 1 || got[0].Path != "/Library/Logs/DiagnosticReports/app.ips" {
		t.Errorf("Candidates() = %v, want only app.ips", got)
	}
}

func TestScanRecords(t *testing.T) {
	w := NewWalker(testFs(t), testSettings())

	records := w.Scan("")
	if len(records) != 3 {
		t.Fatalf("Scan() returned %d records, want 3", len(records))
	}

	// Results stay 1:1 with discovery order, each tagged with its
	// category label.
	if records[0].Type != TypeApplication || records[0].PID != "1234" {
		t.Errorf("Scan()[0] = %+v, want system application record", records[0])
	}
	if records[1].UID != "501" {
		t.Errorf("Scan()[1] uid = %q, want %q", records[1].UID, "501")
	}
	if records[2].Type != TypeMobile || records[2].CrashedThread != "2" {
		t.Errorf("Scan()[2] = %+v, want mobile record with crashed thread 2", records[2])
	}
}

// failingFs fails reads of one path while leaving directory listings intact.
type failingFs struct {
	afero.Fs
	failPath string
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if name == f.failPath {
		return nil, fmt.Errorf("open %s: permission denied", name)
	}
	return f.Fs.Open(name)
}

func TestScanUnreadableFile(t *testing.T) {
	failPath := "/Library/Logs/DiagnosticReports/Spotlight_2024-01-02.crash"
	fs := &failingFs{Fs: testFs(t), failPath: failPath}

	w := NewWalker(fs, testSettings())
	records := w.Scan("")
	if len(records) != 3 {
		t.Fatalf("Scan() returned %d records, want 3", len(records))
	}

	rec := records[0]
	if rec.CrashPath != failPath {
		t.Errorf("Scan()[0] crash_path = %q, want %q", rec.CrashPath, failPath)
	}
	if rec.Type != TypeApplication {
		t.Errorf("Scan()[0] type = %q, want %q", rec.Type, TypeApplication)
	}

	// Nothing beyond the path and the caller-supplied label survives a
	// failed read.
	fields := rec.Fields()
	if len(fields) != 2 {
		t.Errorf("Scan()[0] fields = %v, want only crash_path and type", fields)
	}
}

func TestUserHomesOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/srv/homes/bob/Library/Logs/DiagnosticReports/App_1.crash", []byte("Process: App [7]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	settings := testSettings()
	settings.UserHomes = []string{"/srv/homes/bob"}

	w := NewWalker(fs, settings)
	got := w.Candidates("")
	if len(got) != 1 || got[0].Path != "/srv/homes/bob/Library/Logs/DiagnosticReports/App_1.crash" {
		t.Errorf("Candidates() = %v, want the configured home's report", got)
	}
}
