// Package dedup rate-limits repeated warnings in a zap logging pipeline.
//
// Structure-file readers tend to emit the same warning once per atom, and
// a large molecule can turn one problem into tens of thousands of log
// lines. A Core suppresses warnings that begin with a registered prefix
// once they have been seen a configured number of times. Each Core is an
// explicitly constructed value with its own counters, so independent
// pipelines (and tests) do not share suppression state.
package dedup

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// Core wraps another zapcore.Core and filters warning entries. Entries at
// levels other than Warn, and warnings that match no registered prefix,
// pass through untouched. For a matching prefix with limit n, the first
// n-1 warnings pass; the n-th is replaced by a single notice that further
// messages will be suppressed, and everything after it is dropped.
type Core struct {
	zapcore.Core
	state *state
}

type state struct {
	prefixes []string
	limit    int
	mu       sync.Mutex
	counts   map[string]int
}

// NewCore returns a Core wrapping next. limit must be at least 1.
func NewCore(next zapcore.Core, prefixes []string, limit int) *Core {
	return &Core{
		Core: next,
		state: &state{
			prefixes: prefixes,
			limit:    limit,
			counts:   make(map[string]int),
		},
	}
}

// With preserves the suppression state, so child loggers share the same
// counters.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	return &Core{Core: c.Core.With(fields), state: c.state}
}

// Check implements zapcore.Core, applying the suppression rule to warning
// entries.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level != zapcore.WarnLevel {
		return c.Core.Check(ent, ce)
	}
	prefix, ok := c.state.match(ent.Message)
	if !ok {
		return c.Core.Check(ent, ce)
	}
	n := c.state.bump(prefix)
	switch {
	case n < c.state.limit:
		return c.Core.Check(ent, ce)
	case n == c.state.limit:
		notice := ent
		notice.Message = fmt.Sprintf("Suppressing further %q messages", prefix)
		if checked := c.Core.Check(notice, nil); checked != nil {
			checked.Write()
		}
		return ce
	default:
		return ce
	}
}

func (s *state) match(msg string) (string, bool) {
	for _, p := range s.prefixes {
		if strings.HasPrefix(msg, p) {
			return p, true
		}
	}
	return "", false
}

func (s *state) bump(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[prefix]++
	return s.counts[prefix]
}
