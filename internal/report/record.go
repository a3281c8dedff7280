package report

// Record represents the structured fields extracted from one crash report
// file. Every field is optional except CrashPath; an empty string means the
// field was absent from (or unparseable in) the report.
type Record struct {
	Type           string
	CrashPath      string
	PID            string
	Path           string
	Identifier     string
	Version        string
	Parent         string
	Responsible    string
	UID            string
	DateTime       string
	CrashedThread  string
	ExceptionType  string
	ExceptionCodes string
	ExceptionNotes string
	Registers      string
	StackTrace     string
}

// Columns lists the record column names in their canonical output order.
var Columns = []string{
	ColType,
	ColCrashPath,
	ColPID,
	ColPath,
	ColIdentifier,
	ColVersion,
	ColParent,
	ColResponsible,
	ColUID,
	ColDateTime,
	ColCrashedThread,
	ColExceptionType,
	ColExceptionCodes,
	ColExceptionNotes,
	ColRegisters,
	ColStackTrace,
}

// Column names shared by the output layers.
const (
	ColType           = "type"
	ColCrashPath      = "crash_path"
	ColPID            = "pid"
	ColPath           = "path"
	ColIdentifier     = "identifier"
	ColVersion        = "version"
	ColParent         = "parent"
	ColResponsible    = "responsible"
	ColUID            = "uid"
	ColDateTime       = "datetime"
	ColCrashedThread  = "crashed_thread"
	ColExceptionType  = "exception_type"
	ColExceptionCodes = "exception_codes"
	ColExceptionNotes = "exception_notes"
	ColRegisters      = "registers"
	ColStackTrace     = "stack_trace"
)

// Get returns the value of the named column.
func (r *Record) Get(column string) string {
	switch column {
	case ColType:
		return r.Type
	case ColCrashPath:
		return r.CrashPath
	case ColPID:
		return r.PID
	case ColPath:
		return r.Path
	case ColIdentifier:
		return r.Identifier
	case ColVersion:
		return r.Version
	case ColParent:
		return r.Parent
	case ColResponsible:
		return r.Responsible
	case ColUID:
		return r.UID
	case ColDateTime:
		return r.DateTime
	case ColCrashedThread:
		return r.CrashedThread
	case ColExceptionType:
		return r.ExceptionType
	case ColExceptionCodes:
		return r.ExceptionCodes
	case ColExceptionNotes:
		return r.ExceptionNotes
	case ColRegisters:
		return r.Registers
	case ColStackTrace:
		return r.StackTrace
	default:
		return ""
	}
}

// set stores value under the named column. Unknown columns are ignored.
func (r *Record) set(column, value string) {
	switch column {
	case ColType:
		r.Type = value
	case ColCrashPath:
		r.CrashPath = value
	case ColPID:
		r.PID = value
	case ColPath:
		r.Path = value
	case ColIdentifier:
		r.Identifier = value
	case ColVersion:
		r.Version = value
	case ColParent:
		r.Parent = value
	case ColResponsible:
		r.Responsible = value
	case ColUID:
		r.UID = value
	case ColDateTime:
		r.DateTime = value
	case ColCrashedThread:
		r.CrashedThread = value
	case ColExceptionType:
		r.ExceptionType = value
	case ColExceptionCodes:
		r.ExceptionCodes = value
	case ColExceptionNotes:
		r.ExceptionNotes = value
	case ColRegisters:
		r.Registers = value
	case ColStackTrace:
		r.StackTrace = value
	}
}

// FromFields builds a record from its sparse map form. Unknown keys are
// ignored.
func FromFields(fields map[string]string) Record {
	var rec Record
	for col, v := range fields {
		rec.set(col, v)
	}
	return rec
}

// Fields returns the sparse map form of the record: only columns that were
// actually populated appear as keys.
func (r *Record) Fields() map[string]string {
	fields := make(map[string]string)
	for _, col := range Columns {
		if v := r.Get(col); v != "" {
			fields[col] = v
		}
	}
	return fields
}
