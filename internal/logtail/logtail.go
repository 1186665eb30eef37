package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/go-logfmt/logfmt"
)

// Read returns at most maxLines from the end of the file at path. A maxLines
// of zero or less returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Field is one key=value pair of a log entry, in file order.
type Field struct {
	Key   string
	Value string
}

// Entry is a parsed logfmt line.
type Entry struct {
	Time    time.Time
	Level   log.Level
	Message string
	Fields  []Field
	Raw     string
	// Structured is false when the line was not valid logfmt; only Raw is set.
	Structured bool
}

// Parse decodes one logfmt line as written by the application logger.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Level: log.InfoLevel}
	if strings.TrimSpace(line) == "" {
		return entry
	}

	dec := logfmt.NewDecoder(strings.NewReader(line))
	for dec.ScanRecord() {
		for dec.ScanKeyval() {
			key, value := string(dec.Key()), string(dec.Value())
			switch key {
			case "time", "ts":
				if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
					entry.Time = t
					continue
				}
			case "level", "lvl":
				if lvl, err := log.ParseLevel(value); err == nil {
					entry.Level = lvl
					continue
				}
			case "msg", "message":
				entry.Message = value
				continue
			}
			entry.Fields = append(entry.Fields, Field{Key: key, Value: value})
		}
	}
	if dec.Err() != nil || (entry.Message == "" && entry.Time.IsZero()) {
		return Entry{Raw: line, Level: log.InfoLevel}
	}
	entry.Structured = true
	return entry
}

// Filter parses lines and keeps entries at or above min. Unstructured lines
// are kept so stack traces and panics stay visible.
func Filter(lines []string, min log.Level) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entry := Parse(line)
		if entry.Structured && entry.Level < min {
			continue
		}
		out = append(out, entry)
	}
	return out
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	levelStyle = map[log.Level]lipgloss.Style{
		log.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		log.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		log.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		log.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		log.FatalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// Format renders an entry as "15:04:05 LEVEL message key=value ...".
// Unstructured entries are returned unchanged.
func (e Entry) Format() string {
	if !e.Structured {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(timeStyle.Render(e.Time.Format(time.TimeOnly)))
		b.WriteByte(' ')
	}
	style, ok := levelStyle[e.Level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	b.WriteString(style.Render(fmt.Sprintf("%-5s", strings.ToUpper(e.Level.String()))))
	if e.Message != "" {
		b.WriteByte(' ')
		b.WriteString(e.Message)
	}
	for _, f := range e.Fields {
		b.WriteByte(' ')
		b.WriteString(keyStyle.Render(f.Key + "="))
		b.WriteString(f.Value)
	}
	return b.String()
}

// ColorizeLine parses and formats a single line.
func ColorizeLine(line string) string {
	return Parse(line).Format()
}

// ColorizeLines formats every line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}
