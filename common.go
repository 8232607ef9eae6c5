package svlog

const (
	DEFAULT_VERBOSITY = 0

	// MIN_VERBOSITY suppresses every kind, including the level-0 ones.
	MIN_VERBOSITY = -1
	MAX_VERBOSITY = 4
)

const (
	// Color markers understood by the engine console. The file sink strips
	// them, the term console translates them to ANSI.
	COLOR_RED    = "$4"
	COLOR_YELLOW = "$6"
	COLOR_GRAY   = "$9"
)

const (
	BACKUP_DIR_NAME = "LogBackups"

	// Only this many bytes of a pre-existing log file are inspected for the
	// backup-name attachment. A marker past the bound is silently missed.
	BACKUP_HEADER_LIMIT = 256

	BACKUP_NAME_ATTACHMENT = "BackupNameAttachment="
)

// KindVerbosityMap fixes the verbosity level each kind requires to pass the
// filter. Indexed by MsgKind.
var KindVerbosityMap = [_KIND_MAX_for_checks_only]int{
	3, // KIND_MESSAGE
	2, // KIND_WARNING
	1, // KIND_ERROR
	0, // KIND_ALWAYS
	0, // KIND_WARNING_ALWAYS
	0, // KIND_ERROR_ALWAYS
	0, // KIND_INPUT
	0, // KIND_INPUT_RESPONSE
	4, // KIND_COMMENT
}

// RequiredVerbosity returns the verbosity level messages of the given kind
// need. Unknown kinds behave like level 0.
func RequiredVerbosity(kind MsgKind) int {
	if kind >= _KIND_MAX_for_checks_only {
		return 0
	}
	return KindVerbosityMap[kind]
}
