package svlog

// writeMessageToConsole forwards rendered content to the console capability.
// Continuation messages keep the current console line. Without a console the
// leg is a silent no-op; the file leg is independent.
func (l *Logger) writeMessageToConsole(msg *logMessage) {
	if l.console == nil {
		return
	}

	isAppend := msg.flags&FLAG_APPEND != 0

	if isAppend {
		l.console.PrintLinePlus(msg.content)
	} else {
		l.console.PrintLine(msg.content)
	}

	for _, callback := range l.snapshotCallbacks() {
		callback.OnWriteToConsole(msg.content, !isAppend)
	}
}
