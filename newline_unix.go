//go:build !windows

package svlog

// osNewline is the platform line ending written to the log file.
const osNewline = "\n"
