package svlog

import (
	"bytes"
	"fmt"
)

// buildContent renders the kind decoration followed by the message text.
// The decoration color markers stay in the content; each sink decides what
// to do with them. With no args the format string is taken verbatim so user
// text with stray '%' survives.
func buildContent(kind MsgKind, format string, args []any) string {
	var buf bytes.Buffer

	switch kind {
	case KIND_WARNING, KIND_WARNING_ALWAYS:
		buf.WriteString(COLOR_YELLOW + "[Warning] ")
	case KIND_ERROR, KIND_ERROR_ALWAYS:
		buf.WriteString(COLOR_RED + "[Error] ")
	case KIND_COMMENT:
		buf.WriteString(COLOR_GRAY)
	}

	if len(args) > 0 {
		fmt.Fprintf(&buf, format, args...)
	} else {
		buf.WriteString(format)
	}
	return buf.String()
}
