package svlog

import "slices"

// AddCallback registers a write observer. Nil and already-registered
// callbacks are ignored.
func (l *Logger) AddCallback(callback Callback) *Logger {
	if callback == nil {
		return l
	}
	l.sync.cbckMtx.Lock()
	defer l.sync.cbckMtx.Unlock()
	if !slices.ContainsFunc(l.callbacks, func(c Callback) bool { return c == callback }) {
		l.callbacks = append(l.callbacks, callback)
	}
	return l
}

// RemoveCallback unregisters a write observer, no-op when absent.
func (l *Logger) RemoveCallback(callback Callback) *Logger {
	l.sync.cbckMtx.Lock()
	defer l.sync.cbckMtx.Unlock()
	l.callbacks = slices.DeleteFunc(l.callbacks, func(c Callback) bool { return c == callback })
	return l
}

// snapshotCallbacks copies the list so sinks fan out without holding the
// lock.
func (l *Logger) snapshotCallbacks() []Callback {
	l.sync.cbckMtx.RLock()
	defer l.sync.cbckMtx.RUnlock()
	if len(l.callbacks) == 0 {
		return nil
	}
	return slices.Clone(l.callbacks)
}
