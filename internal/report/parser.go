package report

import (
	"fmt"
	"regexp"
	"strings"
)

// action selects the policy applied to a recognized report label.
type action int

const (
	// actionCopy stores the first colon-delimited value token verbatim.
	actionCopy action = iota
	// actionBracketPID extracts a bracketed digit run from the raw line.
	actionBracketPID
	// actionDateTime rejoins the timestamp the colon split shattered.
	actionDateTime
	// actionThread captures the crashed thread id and arms the
	// stack-trace lookahead.
	actionThread
	// actionRegisters merges the line with its continuation line into a
	// normalized register dump.
	actionRegisters
	// actionIgnore marks the label as recognized without storing
	// anything. Register continuation names live here so the scanner
	// does not treat their lines as unknown.
	actionIgnore
)

// fieldRule maps a raw report label to the record column it populates and
// the policy used to extract its value.
type fieldRule struct {
	column string
	action action
}

// fieldRules is the fixed set of labels the parser recognizes, covering both
// the application and the mobile report variants. Lines whose first token is
// not a key here are skipped.
var fieldRules = map[string]fieldRule{
	"Process":         {ColPID, actionBracketPID},
	"Path":            {ColPath, actionCopy},
	"Identifier":      {ColIdentifier, actionCopy},
	"Version":         {ColVersion, actionCopy},
	"Parent Process":  {ColParent, actionBracketPID},
	"Responsible":     {ColResponsible, actionCopy},
	"User ID":         {ColUID, actionCopy},
	"Date/Time":       {ColDateTime, actionDateTime},
	"Crashed Thread":  {ColCrashedThread, actionThread},
	"Exception Type":  {ColExceptionType, actionCopy},
	"Exception Codes": {ColExceptionCodes, actionCopy},
	"Exception Note":  {ColExceptionNotes, actionCopy},
	// The reporter already knows the crash path; the in-file copy is
	// recognized so the line is not flagged unknown, but never stored.
	"Log Location": {"", actionIgnore},

	// x86_64 register dump. rax triggers the merge; rdi is recognized so
	// a stray continuation line is not treated as unknown.
	"rax": {ColRegisters, actionRegisters},
	"rdi": {"", actionIgnore},

	// arm64 register dump in mobile reports.
	"Triggered by Thread": {ColCrashedThread, actionThread},
	"x0":                  {ColRegisters, actionRegisters},
	"x4":                  {"", actionIgnore},
}

var bracketedNumber = regexp.MustCompile(`\[\d+\]`)

// extractBracketedNumber returns the first bracketed digit run in line with
// the brackets stripped, e.g. "launchd [1]" yields "1".
func extractBracketedNumber(line string) (string, bool) {
	m := bracketedNumber.FindString(line)
	if m == "" {
		return "", false
	}
	return m[1 : len(m)-1], true
}

// tokenize splits s on delim, trims surrounding whitespace from each token
// and drops tokens that end up empty.
func tokenize(s, delim string) []string {
	parts := strings.Split(s, delim)
	toks := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			toks = append(toks, p)
		}
	}
	return toks
}

// normalizeRegisters joins a register line with its continuation line and
// squeezes the label/value separators so the dump fits one field.
func normalizeRegisters(line, next string) string {
	s := line
	if next != "" {
		s = line + " " + next
	}
	s = strings.ReplaceAll(s, ": ", ":")
	s = strings.ReplaceAll(s, "   ", " ")
	return s
}

// Parse extracts the recognized fields from the text of one crash report.
// It always returns a record with CrashPath set to path; everything else is
// best effort. Unrecognized lines are skipped, truncated or malformed values
// leave their field unset, and no input ever produces an error.
func Parse(content, path string) Record {
	rec := Record{CrashPath: path}
	if content == "" {
		return rec
	}

	// Populated once the crashed thread id is known; matched against
	// the header line that opens that thread's stack trace section.
	var threadHeader string
	threadSeen := false

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		toks := tokenize(line, ":")
		if len(toks) == 0 {
			continue
		}

		// Grab the first stack trace line of the crashed thread.
		if threadSeen && toks[0] == threadHeader {
			if i+1 < len(lines) {
				rec.StackTrace = lines[i+1]
				i++
			}
			threadSeen = false
			continue
		}

		rule, ok := fieldRules[toks[0]]
		if !ok {
			continue
		}

		switch rule.action {
		case actionRegisters:
			next := ""
			if i+1 < len(lines) {
				next = lines[i+1]
				i++
			}
			rec.set(rule.column, normalizeRegisters(line, next))

		case actionDateTime:
			// The raw timestamp contains colons, so the outer
			// split shattered it; rejoin the first three value
			// tokens. Shorter lines leave the field unset.
			if len(toks) >= 4 {
				rec.set(rule.column, toks[1]+":"+toks[2]+":"+toks[3])
			}

		case actionThread:
			if len(toks) < 2 {
				continue
			}
			t := tokenize(toks[1], " ")
			if len(t) == 0 {
				continue
			}
			rec.set(rule.column, t[0])
			threadHeader = fmt.Sprintf("Thread %s Crashed", t[0])
			threadSeen = true

		case actionBracketPID:
			if pid, ok := extractBracketedNumber(line); ok {
				rec.set(rule.column, pid)
			}

		case actionIgnore:

		default:
			if len(toks) >= 2 {
				rec.set(rule.column, toks[1])
			}
		}
	}

	return rec
}
