package report

import (
	"log"
	"strings"
	"sync"
)

// Log is a Reporter which prints results to a logger, indenting them by
// scope depth
type Log struct {
	mu     sync.Mutex
	logger *log.Logger
	scopes scopes
}

// NewLog returns a new Log Reporter printing to logger
func NewLog(logger *log.Logger) *Log {
	return &Log{logger: logger}
}

// EnterScope implements the Reporter interface
func (l *Log) EnterScope(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Printf("%v%v:", l.indent(), name)
	l.scopes.push(name)
}

// LeaveScope implements the Reporter interface
func (l *Log) LeaveScope() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scopes.pop()
}

// Result implements the Reporter interface
func (l *Log) Result(name string, value float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("%v%v = %v", l.indent(), name, value)
}

func (l *Log) indent() string {
	return strings.Repeat("  ", len(l.scopes))
}
