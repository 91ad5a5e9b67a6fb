// SPDX-License-Identifier: MIT

package diag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Severity ranks a diagnostic entry.
type Severity int

const (
	// Info marks an entry that documents a decision (e.g. a promoted reference bus).
	Info Severity = iota
	// Warning marks a recoverable data conflict.
	Warning
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Entry is one diagnostic record.
type Entry struct {
	Severity Severity // how serious the entry is
	Device   string   // device or bus name the entry refers to (may be empty)
	Message  string   // human-readable description
	Attrs    []slog.Attr
}

// String renders the entry as a single line.
func (e Entry) String() string {
	var sb strings.Builder
	sb.WriteString(e.Severity.String())
	sb.WriteString(": ")
	if e.Device != "" {
		sb.WriteString(e.Device)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	for _, a := range e.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.String())
	}

	return sb.String()
}

// Logger is an append-only diagnostic log mirrored to slog.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	out     *slog.Logger
}

// NewLogger returns an empty Logger mirroring entries to out.
// A nil out discards the mirror.
func NewLogger(out *slog.Logger) *Logger {
	if out == nil {
		out = Discard()
	}

	return &Logger{out: out}
}

// Discard returns a slog.Logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Warn appends a Warning entry.
func (l *Logger) Warn(device, msg string, attrs ...slog.Attr) {
	l.add(Entry{Severity: Warning, Device: device, Message: msg, Attrs: attrs})
}

// Info appends an Info entry.
func (l *Logger) Info(device, msg string, attrs ...slog.Attr) {
	l.add(Entry{Severity: Info, Device: device, Message: msg, Attrs: attrs})
}

func (l *Logger) add(e Entry) {
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	level := slog.LevelInfo
	if e.Severity == Warning {
		level = slog.LevelWarn
	}
	attrs := make([]slog.Attr, 0, len(e.Attrs)+1)
	if e.Device != "" {
		attrs = append(attrs, slog.String("device", e.Device))
	}
	attrs = append(attrs, e.Attrs...)
	l.out.LogAttrs(context.Background(), level, e.Message, attrs...)
}

// Entries returns a copy of all entries in insertion order.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Warnings returns only the Warning entries, in insertion order.
func (l *Logger) Warnings() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Entry
	for _, e := range l.entries {
		if e.Severity == Warning {
			out = append(out, e)
		}
	}

	return out
}

// Len reports the number of recorded entries.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
