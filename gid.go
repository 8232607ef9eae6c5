package svlog

import "runtime"

// currentGID extracts the id of the calling goroutine from the first line of
// its stack dump ("goroutine 123 [running]:"). Best effort: returns 0 if the
// runtime ever changes the header format.
func currentGID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	const header = "goroutine "
	if n <= len(header) {
		return 0
	}
	var id uint64
	for _, c := range buf[len(header):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
