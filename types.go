package svlog

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/abyssdigger/svlog/cvar"
)

// MsgKind classifies a submitted message. The kind decides the verbosity
// level required to pass the filter and the decoration of the content.
type MsgKind uint8

const (
	KIND_MESSAGE MsgKind = iota
	KIND_WARNING
	KIND_ERROR
	KIND_ALWAYS
	KIND_WARNING_ALWAYS
	KIND_ERROR_ALWAYS
	KIND_INPUT
	KIND_INPUT_RESPONSE
	KIND_COMMENT
	_KIND_MAX_for_checks_only
)

// MsgFlags route a message to its destinations.
type MsgFlags uint8

const (
	FLAG_FILE MsgFlags = 1 << iota
	FLAG_CONSOLE
	// FLAG_APPEND continues the previous line: no prefix, no forced line
	// break before the text.
	FLAG_APPEND
)

// logMessage is built once at submission time and never mutated afterwards.
type logMessage struct {
	kind    MsgKind
	flags   MsgFlags
	prefix  string // rendered, empty when disabled or FLAG_APPEND
	content string // rendered, still carries $-color codes
}

// Console is the capability the console leg prints through. A nil Console
// turns the console leg into a no-op, the file leg is unaffected.
type Console interface {
	// PrintLine prints text on a new console line.
	PrintLine(text string)
	// PrintLinePlus continues the current console line.
	PrintLinePlus(text string)
}

// Callback observes physical writes. It is invoked once per write per sink
// with the raw rendered content and newLine=false for continuation writes.
type Callback interface {
	OnWriteToFile(content string, newLine bool)
	OnWriteToConsole(content string, newLine bool)
}

// Logger is the logging core. Producers on any goroutine may submit, but
// every physical write happens on the owner goroutine captured by Init:
// either synchronously (owner submissions) or during Drain.
type Logger struct {
	sync struct {
		pendMtx sync.Mutex   // pending queue, append/detach only
		chngMtx sync.RWMutex // verbosity, prefix template, cvar handles
		cbckMtx sync.RWMutex // callback list
		fbckMtx sync.RWMutex // fallback writer
	}

	pending   []logMessage
	callbacks []Callback

	verbosity int    // default until log_Verbosity is registered
	prefix    string // template seed until log_Prefix is registered

	cvars struct {
		verbosity     *cvar.IntVar
		fileVerbosity *cvar.IntVar
		prefix        *cvar.StringVar
	}

	file     *os.File
	filePath string

	console Console
	fallbck io.Writer

	ownerID uint64
	clock   func() time.Time
}
