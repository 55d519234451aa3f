package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Level is the severity parsed from a log line.
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
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

// ParseLevel extracts the level from a zap line, either console encoded
// ("<time>\tERROR\t<msg>...") or JSON encoded ("level":"ERROR").
func ParseLevel(line string) Level {
	if fields := strings.SplitN(line, "\t", 3); len(fields) >= 2 {
		if lvl := levelFromName(fields[1]); lvl != LevelUnknown {
			return lvl
		}
	}
	if i := strings.Index(line, `"level":"`); i >= 0 {
		rest := line[i+len(`"level":"`):]
		if j := strings.IndexByte(rest, '"'); j >= 0 {
			return levelFromName(rest[:j])
		}
	}
	return LevelUnknown
}

func levelFromName(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return LevelError
	default:
		return LevelUnknown
	}
}
