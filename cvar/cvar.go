// Package cvar is a small configuration-variable registry: named int and
// string tunables with flags, yaml dump-to-disk persistence and optional
// live reload of the dump file.
package cvar

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

type Flags uint8

const (
	// DUMP_TO_DISK marks a variable for SaveFile/LoadFile persistence.
	DUMP_TO_DISK Flags = 1 << iota
	NOT_NET_SYNCED
)

// IntVar is a registered integer tunable, safe for concurrent use.
type IntVar struct {
	name  string
	flags Flags
	help  string
	val   atomic.Int64
}

func (v *IntVar) Name() string { return v.name }
func (v *IntVar) Help() string { return v.help }
func (v *IntVar) Get() int     { return int(v.val.Load()) }
func (v *IntVar) Set(value int) {
	v.val.Store(int64(value))
}
func (v *IntVar) HasFlag(f Flags) bool { return v.flags&f != 0 }

// StringVar is a registered string tunable, safe for concurrent use.
type StringVar struct {
	name  string
	flags Flags
	help  string
	mu    sync.RWMutex
	val   string
}

func (v *StringVar) Name() string { return v.name }
func (v *StringVar) Help() string { return v.help }
func (v *StringVar) Get() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}
func (v *StringVar) Set(value string) {
	v.mu.Lock()
	v.val = value
	v.mu.Unlock()
}
func (v *StringVar) HasFlag(f Flags) bool { return v.flags&f != 0 }

// Registry holds the variables by name. Registering an existing name
// returns the already-registered variable and keeps its current value.
type Registry struct {
	mu      sync.RWMutex
	ints    map[string]*IntVar
	strs    map[string]*StringVar
	pending map[string]any // values loaded from disk before registration
	fallbck io.Writer
}

func NewRegistry() *Registry {
	return &Registry{
		ints:    map[string]*IntVar{},
		strs:    map[string]*StringVar{},
		pending: map[string]any{},
		fallbck: os.Stderr,
	}
}

// SetFallback redirects fault reporting of the watch loop. Nil discards.
func (r *Registry) SetFallback(f io.Writer) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f != nil {
		r.fallbck = f
	} else {
		r.fallbck = io.Discard
	}
	return r
}

// RegisterInt registers an integer variable with its default value. A value
// previously loaded from disk for this name overrides the default.
func (r *Registry) RegisterInt(name string, value int, flags Flags, help string) *IntVar {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.ints[name]; ok {
		return v
	}
	v := &IntVar{name: name, flags: flags, help: help}
	v.Set(value)
	if loaded, ok := r.pending[name].(int); ok {
		v.Set(loaded)
		delete(r.pending, name)
	}
	r.ints[name] = v
	return v
}

// RegisterString registers a string variable with its default value. A value
// previously loaded from disk for this name overrides the default.
func (r *Registry) RegisterString(name string, value string, flags Flags, help string) *StringVar {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.strs[name]; ok {
		return v
	}
	v := &StringVar{name: name, flags: flags, help: help}
	v.val = value
	if loaded, ok := r.pending[name].(string); ok {
		v.val = loaded
		delete(r.pending, name)
	}
	r.strs[name] = v
	return v
}

// LookupInt returns the variable registered under name, nil when absent.
func (r *Registry) LookupInt(name string) *IntVar {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ints[name]
}

// LookupString returns the variable registered under name, nil when absent.
func (r *Registry) LookupString(name string) *StringVar {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.strs[name]
}

func (r *Registry) reportFault(format string, args ...any) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.fallbck != nil {
		fmt.Fprintf(r.fallbck, format+"\n", args...)
	}
}
