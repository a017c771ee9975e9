package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CommandResolver resolves a pid to its process command string from
// /proc/<pid>/cmdline, for enclave records whose feed line carries no cmd
// field. Lookups are cached until Flush so a tick costs at most one read
// per distinct pid.
type CommandResolver struct {
	procRoot string
	cache    map[int]string
}

// NewCommandResolver creates a resolver rooted at /proc.
func NewCommandResolver() *CommandResolver {
	return NewCommandResolverAt("/proc")
}

// NewCommandResolverAt creates a resolver rooted at the given directory.
// Tests point this at a fixture tree.
func NewCommandResolverAt(root string) *CommandResolver {
	return &CommandResolver{
		procRoot: root,
		cache:    make(map[int]string),
	}
}

// Lookup returns the command string for pid, or "" when the process is gone
// or unreadable. A failed lookup never aborts a tick; the table simply shows
// an empty command cell.
func (r *CommandResolver) Lookup(pid int) string {
	if cmd, ok := r.cache[pid]; ok {
		return cmd
	}

	cmd := r.readCmdline(pid)
	r.cache[pid] = cmd
	return cmd
}

// Flush clears the cache. Called once per tick so command changes (exec) and
// pid reuse are picked up on the next sample.
func (r *CommandResolver) Flush() {
	clear(r.cache)
}

// readCmdline reads and normalizes /proc/<pid>/cmdline: NUL argument
// separators become spaces, trailing separators are dropped.
func (r *CommandResolver) readCmdline(pid int) string {
	path := filepath.Join(r.procRoot, fmt.Sprintf("%d", pid), "cmdline")
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	cmd := strings.ReplaceAll(string(data), "\x00", " ")
	return strings.TrimSpace(cmd)
}
