package discovery

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/thaodangspace/crashlogs/internal/report"
)

// Scan walks the diagnostic directories and parses every discovered report.
// Results follow discovery order, one record per candidate file. A file
// that cannot be read still yields a record carrying its path and category
// label so the result set stays 1:1 with the discovered files.
func (w *Walker) Scan(uid string) []report.Record {
	candidates := w.Candidates(uid)
	records := make([]report.Record, 0, len(candidates))

	for _, c := range candidates {
		rec := w.parseOne(c)
		rec.Type = c.Type
		records = append(records, rec)
	}

	return records
}

func (w *Walker) parseOne(c Candidate) report.Record {
	content, err := afero.ReadFile(w.fs, c.Path)
	if err != nil {
		log.WithError(err).WithField("path", c.Path).Warn("Could not read crash report")
		return report.Record{CrashPath: c.Path}
	}
	return report.Parse(string(content), c.Path)
}
