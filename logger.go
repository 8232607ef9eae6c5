package svlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abyssdigger/svlog/cvar"
)

// ErrNotOwner is returned by Drain when it is called from a goroutine other
// than the one that created the logger.
var ErrNotOwner = errors.New("drain called off the owner goroutine")

// Init creates a logger owned by the calling goroutine. The console may be
// nil (console leg disabled), internal faults go to stderr.
func Init(console Console) *Logger {
	return InitWithParams(console, os.Stderr)
}

// InitWithParams creates a logger owned by the calling goroutine with an
// explicit fallback writer for internal faults.
func InitWithParams(console Console, fallback io.Writer) *Logger {
	l := new(Logger)
	l.verbosity = DEFAULT_VERBOSITY
	l.console = console
	l.ownerID = currentGID()
	l.clock = time.Now
	l.SetFallback(fallback)
	return l
}

// SetFallback redirects internal fault reporting. A nil writer discards.
func (l *Logger) SetFallback(f io.Writer) *Logger {
	l.sync.fbckMtx.Lock()
	defer l.sync.fbckMtx.Unlock()
	if f != nil {
		l.fallbck = f
	} else {
		l.fallbck = io.Discard
	}
	return l
}

// Log submits a message to both file and console.
func (l *Logger) Log(format string, args ...any) {
	l.push(KIND_MESSAGE, FLAG_FILE|FLAG_CONSOLE, format, args)
}

// LogWarning submits a warning to both file and console.
func (l *Logger) LogWarning(format string, args ...any) {
	l.push(KIND_WARNING, FLAG_FILE|FLAG_CONSOLE, format, args)
}

// LogError submits an error to both file and console.
func (l *Logger) LogError(format string, args ...any) {
	l.push(KIND_ERROR, FLAG_FILE|FLAG_CONSOLE, format, args)
}

// LogAlways submits a message that only verbosity -1 can suppress.
func (l *Logger) LogAlways(format string, args ...any) {
	l.push(KIND_ALWAYS, FLAG_FILE|FLAG_CONSOLE, format, args)
}

// LogPlus continues the previously written line in both file and console.
func (l *Logger) LogPlus(format string, args ...any) {
	l.push(KIND_MESSAGE, FLAG_FILE|FLAG_CONSOLE|FLAG_APPEND, format, args)
}

// LogToFile submits a message to the file only.
func (l *Logger) LogToFile(format string, args ...any) {
	l.push(KIND_MESSAGE, FLAG_FILE, format, args)
}

// LogToFilePlus continues the previous line in the file only.
func (l *Logger) LogToFilePlus(format string, args ...any) {
	l.push(KIND_MESSAGE, FLAG_FILE|FLAG_APPEND, format, args)
}

// LogToConsole submits a message to the console only.
func (l *Logger) LogToConsole(format string, args ...any) {
	l.push(KIND_MESSAGE, FLAG_CONSOLE, format, args)
}

// LogToConsolePlus continues the previous line in the console only.
func (l *Logger) LogToConsolePlus(format string, args ...any) {
	l.push(KIND_MESSAGE, FLAG_CONSOLE|FLAG_APPEND, format, args)
}

// LogV submits a message of an arbitrary kind to both file and console.
func (l *Logger) LogV(kind MsgKind, format string, args ...any) {
	l.push(kind, FLAG_FILE|FLAG_CONSOLE, format, args)
}

// push runs the submission pipeline: verbosity gates, prefix and content
// rendering, then either a synchronous write (owner goroutine) or an append
// to the pending queue.
func (l *Logger) push(kind MsgKind, flags MsgFlags, format string, args []any) {
	verbosity := l.VerbosityLevel()
	required := RequiredVerbosity(kind)

	if verbosity < required {
		// dropped for every destination, callbacks never fire
		return
	}

	if l.fileVerbosityLevel(verbosity) < required {
		// the console leg may still proceed
		flags &^= FLAG_FILE
	}

	msg := logMessage{kind: kind, flags: flags}

	gid := currentGID()
	if flags&FLAG_APPEND == 0 {
		msg.prefix = l.buildPrefix(l.clock(), gid)
	}
	msg.content = buildContent(kind, format, args)

	if gid == l.ownerID {
		l.writeMessage(&msg)
		return
	}

	l.sync.pendMtx.Lock()
	l.pending = append(l.pending, msg)
	l.sync.pendMtx.Unlock()
}

// Drain detaches everything queued by producer goroutines and writes it in
// push order. It is cooperative: nothing drains the queue unless the owner
// goroutine keeps calling it.
func (l *Logger) Drain() error {
	if currentGID() != l.ownerID {
		return ErrNotOwner
	}

	l.sync.pendMtx.Lock()
	detached := l.pending
	l.pending = nil
	l.sync.pendMtx.Unlock()

	for i := range detached {
		l.writeMessage(&detached[i])
	}
	return nil
}

// writeMessage fans a rendered message out to its destinations. Owner
// goroutine only.
func (l *Logger) writeMessage(msg *logMessage) {
	if msg.flags&FLAG_FILE != 0 {
		l.writeMessageToFile(msg)
	}
	if msg.flags&FLAG_CONSOLE != 0 {
		l.writeMessageToConsole(msg)
	}
}

// VerbosityLevel reports the console verbosity gate: the log_Verbosity cvar
// once registered, the internal default before that.
func (l *Logger) VerbosityLevel() int {
	l.sync.chngMtx.RLock()
	defer l.sync.chngMtx.RUnlock()
	if l.cvars.verbosity != nil {
		return l.cvars.verbosity.Get()
	}
	return l.verbosity
}

// fileVerbosityLevel reports the file gate. While log_FileVerbosity is not
// registered it mirrors the console verbosity.
func (l *Logger) fileVerbosityLevel(consoleVerbosity int) int {
	l.sync.chngMtx.RLock()
	defer l.sync.chngMtx.RUnlock()
	if l.cvars.fileVerbosity != nil {
		return l.cvars.fileVerbosity.Get()
	}
	return consoleVerbosity
}

// SetVerbosity sets both verbosity gates, writing through to the cvars when
// they are registered.
func (l *Logger) SetVerbosity(verbosity int) *Logger {
	l.sync.chngMtx.Lock()
	defer l.sync.chngMtx.Unlock()
	if l.cvars.verbosity != nil {
		l.cvars.verbosity.Set(verbosity)
	}
	if l.cvars.fileVerbosity != nil {
		l.cvars.fileVerbosity.Set(verbosity)
	}
	l.verbosity = verbosity
	return l
}

// SetPrefix replaces the prefix template, writing through to the cvar when
// it is registered. Before registration the template is only stored as the
// seed for RegisterCVars: no prefix is rendered until then.
func (l *Logger) SetPrefix(template string) *Logger {
	l.sync.chngMtx.Lock()
	defer l.sync.chngMtx.Unlock()
	if l.cvars.prefix != nil {
		l.cvars.prefix.Set(template)
	}
	l.prefix = template
	return l
}

// prefixTemplate reports the active template, empty until log_Prefix is
// registered.
func (l *Logger) prefixTemplate() string {
	l.sync.chngMtx.RLock()
	defer l.sync.chngMtx.RUnlock()
	if l.cvars.prefix == nil {
		return ""
	}
	return l.cvars.prefix.Get()
}

// RegisterCVars binds the three tunables to the given registry and routes
// all further gating and template reads through them. A nil registry keeps
// the built-in defaults.
func (l *Logger) RegisterCVars(reg *cvar.Registry) {
	if reg == nil {
		return
	}

	l.sync.chngMtx.Lock()
	defer l.sync.chngMtx.Unlock()

	l.cvars.verbosity = reg.RegisterInt("log_Verbosity", l.verbosity, cvar.DUMP_TO_DISK,
		"Defines the verbosity level for console log messages (use log_FileVerbosity for file logging).\n"+
			"Usage: log_Verbosity [-1/0/1/2/3/4]\n"+
			" -1 = Suppress all logs (including always-on messages).\n"+
			"  0 = Suppress all logs (except always-on messages).\n"+
			"  1 = Additional errors.\n"+
			"  2 = Additional warnings.\n"+
			"  3 = Additional messages.\n"+
			"  4 = Additional comments.")

	l.cvars.fileVerbosity = reg.RegisterInt("log_FileVerbosity", l.verbosity, cvar.DUMP_TO_DISK,
		"Defines the verbosity level for file log messages (if log_Verbosity is higher, this one is used).\n"+
			"Usage: log_FileVerbosity [-1/0/1/2/3/4]")

	l.cvars.prefix = reg.RegisterString("log_Prefix", l.prefix, cvar.NOT_NET_SYNCED,
		"Defines prefix of each message written to the log file.\n"+
			"Usage: log_Prefix FORMAT\n"+
			"The format string consists of normal characters and the following conversion specifiers:\n"+
			"  %% = %\n"+
			"  %d = Day of the month (01..31)\n"+
			"  %m = Month (01..12)\n"+
			"  %Y = Year (e.g. 2007)\n"+
			"  %H = Hour (00..23)\n"+
			"  %M = Minute (00..59)\n"+
			"  %S = Second (00..60)\n"+
			"  %N = Millisecond (000..999)\n"+
			"  %z = Offset from UTC (time zone) in the ISO 8601 format (e.g. +0100)\n"+
			"  %F = Equivalent to \"%Y-%m-%d\" (the ISO 8601 date format)\n"+
			"  %T = Equivalent to \"%H:%M:%S\" (the ISO 8601 time format)\n"+
			"  %t = Goroutine ID where the message was logged")
}

// reportFault writes an internal degradation to the fallback writer. Normal
// logging never returns errors to the caller.
func (l *Logger) reportFault(format string, args ...any) {
	l.sync.fbckMtx.RLock()
	defer l.sync.fbckMtx.RUnlock()
	if l.fallbck != nil {
		fmt.Fprintf(l.fallbck, format+"\n", args...)
	}
}
