package clicklog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses a tab-separated click log in the Yandex Relevance Prediction
// Challenge layout:
//
//	sessionID <tab> time <tab> Q <tab> queryID <tab> regionID <tab> doc...
//	sessionID <tab> time <tab> C <tab> docID
//
// A non-negative limit stops reading after that many lines.
func Read(r io.Reader, limit int) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 0; scanner.Scan(); line++ {
		if limit >= 0 && line >= limit {
			break
		}
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if text == "" {
			continue
		}
		ev, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("clicklog: line %d: %w", line+1, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("clicklog: read: %w", err)
	}
	return events, nil
}

// ReadFile is Read over the named file.
func ReadFile(path string, limit int) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("clicklog: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	return Read(f, limit)
}

func parseLine(text string) (Event, error) {
	fields := strings.Split(text, "\t")
	if len(fields) < 4 {
		return Event{}, fmt.Errorf("expected at least 4 fields, got %d", len(fields))
	}

	var ev Event
	var err error
	if ev.SessionID, err = strconv.Atoi(fields[0]); err != nil {
		return Event{}, fmt.Errorf("session id %q: %w", fields[0], err)
	}
	if ev.Time, err = strconv.Atoi(fields[1]); err != nil {
		return Event{}, fmt.Errorf("time %q: %w", fields[1], err)
	}
	if ev.ActionID, err = strconv.Atoi(fields[3]); err != nil {
		return Event{}, fmt.Errorf("action id %q: %w", fields[3], err)
	}

	switch strings.ToLower(fields[2]) {
	case "q":
		ev.Action = ActionQuery
		if len(fields) < 6 {
			return Event{}, fmt.Errorf("query event needs region and documents, got %d fields", len(fields))
		}
		if ev.RegionID, err = strconv.Atoi(fields[4]); err != nil {
			return Event{}, fmt.Errorf("region id %q: %w", fields[4], err)
		}
		for _, raw := range fields[5:] {
			doc, err := strconv.Atoi(raw)
			if err != nil {
				return Event{}, fmt.Errorf("document id %q: %w", raw, err)
			}
			ev.Docs = append(ev.Docs, doc)
		}
	case "c":
		ev.Action = ActionClick
	default:
		return Event{}, fmt.Errorf("unknown action %q", fields[2])
	}
	return ev, nil
}
