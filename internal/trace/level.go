package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only the ring buffer dump on panic
	LevelPhase               // driver + pass boundaries
	LevelDetail              // one span per file
	LevelDebug               // everything
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil // #nosec G115 -- bounded by levelNames
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	default:
		// LevelError пишет только в ring через режим crash dump
		return false
	}
}

// records is ShouldEmit widened for the ring buffer, which keeps driver and
// pass spans even at LevelError so a crash dump has something to show.
func (l Level) records(scope Scope) bool {
	return l.ShouldEmit(scope) || (l == LevelError && scope <= ScopePass)
}
