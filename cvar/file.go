package cvar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SaveFile persists every DUMP_TO_DISK variable as a flat yaml mapping.
func (r *Registry) SaveFile(path string) error {
	r.mu.RLock()
	out := map[string]any{}
	for name, v := range r.ints {
		if v.HasFlag(DUMP_TO_DISK) {
			out[name] = v.Get()
		}
	}
	for name, v := range r.strs {
		if v.HasFlag(DUMP_TO_DISK) {
			out[name] = v.Get()
		}
	}
	r.mu.RUnlock()

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal cvar dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cvar dump %q: %w", path, err)
	}
	return nil
}

// LoadFile applies a yaml dump to the registered variables. Values for
// not-yet-registered names are kept and applied at registration time.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read cvar dump %q: %w", path, err)
	}
	if err := r.applyData(data); err != nil {
		return fmt.Errorf("apply cvar dump %q: %w", path, err)
	}
	return nil
}

func (r *Registry) applyData(data []byte) error {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, value := range values {
		switch v := value.(type) {
		case int:
			if iv, ok := r.ints[name]; ok {
				iv.Set(v)
				continue
			}
		case string:
			if sv, ok := r.strs[name]; ok {
				sv.Set(v)
				continue
			}
		}
		r.pending[name] = value
	}
	return nil
}
