package config

import (
	"os"
	"strings"
)

// Snapshot is an immutable capture of the process environment taken once at
// startup. Components receive it explicitly instead of reading os.Getenv ad
// hoc, which keeps environment validation pure and testable.
type Snapshot struct {
	values map[string]string
}

// CaptureEnv snapshots the current process environment.
func CaptureEnv() Snapshot {
	values := make(map[string]string)
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			values[key] = value
		}
	}
	return Snapshot{values: values}
}

// SnapshotFromMap builds a synthetic snapshot, primarily for tests.
func SnapshotFromMap(values map[string]string) Snapshot {
	copied := make(map[string]string, len(values))
	for key, value := range values {
		copied[key] = value
	}
	return Snapshot{values: copied}
}

// Lookup returns the value for name. A variable that is set but empty is
// treated as absent: an empty repository or token is never usable, and CI
// systems routinely export empty strings for unset secrets.
func (s Snapshot) Lookup(name string) (string, bool) {
	value, ok := s.values[name]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Get returns the value for name, or the empty string when absent.
func (s Snapshot) Get(name string) string {
	value, _ := s.Lookup(name)
	return value
}

// With returns a copy of the snapshot with name set to value. The original is
// untouched. Used at wiring time to inject derived values, such as the
// repository identifier read from the local checkout.
func (s Snapshot) With(name, value string) Snapshot {
	copied := make(map[string]string, len(s.values)+1)
	for key, existing := range s.values {
		copied[key] = existing
	}
	copied[name] = value
	return Snapshot{values: copied}
}

// Requirement describes one logical environment requirement that can be
// satisfied by any of an ordered list of variable names. The list is ordered
// by precedence: the first present name wins, so platform-specific names are
// listed ahead of generic fallbacks. When nothing is present, Names[0] is the
// name reported to the user, which keeps diagnostics deterministic.
type Requirement struct {
	Names []string
}

// Resolve returns the value of the highest-precedence variable that is
// present and non-empty.
func (r Requirement) Resolve(s Snapshot) (string, bool) {
	for _, name := range r.Names {
		if value, ok := s.Lookup(name); ok {
			return value, true
		}
	}
	return "", false
}

// MissingName is the variable name reported when the requirement is unmet.
func (r Requirement) MissingName() string {
	if len(r.Names) == 0 {
		return ""
	}
	return r.Names[0]
}
