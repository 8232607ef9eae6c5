package svlog

import (
	"bytes"
	"fmt"
	"time"
)

// buildPrefix renders the active prefix template against a snapshot of local
// time and the submitting goroutine id. Empty result means disabled.
func (l *Logger) buildPrefix(now time.Time, gid uint64) string {
	template := l.prefixTemplate()
	if template == "" || template == "0" {
		// empty string or "0" means log prefix is disabled
		return ""
	}
	return expandPrefix(template, now, gid)
}

// expandPrefix walks the template byte by byte. A '%' consumes the next byte
// as a specifier; unknown specifiers and a trailing '%' are dropped without
// error. A non-empty result gets exactly one trailing space.
func expandPrefix(template string, now time.Time, gid uint64) string {
	var buf bytes.Buffer

	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			buf.WriteByte(template[i])
			continue
		}
		i++
		if i < len(template) {
			expandPrefixSpecifier(&buf, now, gid, template[i])
		}
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
	return buf.String()
}

func expandPrefixSpecifier(buf *bytes.Buffer, now time.Time, gid uint64, specifier byte) {
	switch specifier {
	case '%':
		buf.WriteByte('%')
	case 't':
		fmt.Fprintf(buf, "%04x", gid)
	case 'd':
		fmt.Fprintf(buf, "%02d", now.Day())
	case 'm':
		fmt.Fprintf(buf, "%02d", int(now.Month()))
	case 'Y':
		fmt.Fprintf(buf, "%04d", now.Year())
	case 'F':
		fmt.Fprintf(buf, "%04d-%02d-%02d", now.Year(), int(now.Month()), now.Day())
	case 'H':
		fmt.Fprintf(buf, "%02d", now.Hour())
	case 'M':
		fmt.Fprintf(buf, "%02d", now.Minute())
	case 'S':
		fmt.Fprintf(buf, "%02d", now.Second())
	case 'T':
		fmt.Fprintf(buf, "%02d:%02d:%02d", now.Hour(), now.Minute(), now.Second())
	case 'N':
		fmt.Fprintf(buf, "%03d", now.Nanosecond()/int(time.Millisecond))
	case 'z':
		addTimeZoneOffset(buf, now)
	}
}

// addTimeZoneOffset renders the zone as 'Z' for UTC or a signed HHMM offset.
// The bias counts minutes west of UTC, so its sign is inverted for display
// (bias -60 is UTC+1 and prints "+0100").
func addTimeZoneOffset(buf *bytes.Buffer, now time.Time) {
	_, offset := now.Zone()
	bias := -offset / 60

	if bias == 0 {
		buf.WriteByte('Z') // UTC
		return
	}

	sign := byte('-')
	if bias < 0 {
		bias = -bias
		sign = '+'
	}
	fmt.Fprintf(buf, "%c%02d%02d", sign, bias/60, bias%60)
}
