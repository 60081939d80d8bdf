package logs

import (
	"encoding/json"
	"strings"
)

// Filter selects log lines by minimum level and component.
type Filter struct {
	MinLevel  string
	Component string
}

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// Matches reports whether line passes the filter. Lines that cannot be
// parsed only pass an empty filter.
func (f Filter) Matches(line string) bool {
	minLevel := strings.ToLower(strings.TrimSpace(f.MinLevel))
	component := strings.TrimSpace(f.Component)
	if minLevel == "" && component == "" {
		return true
	}
	entry, ok := parseLine(line)
	if !ok {
		return false
	}
	if minLevel != "" {
		want, known := levelRank[minLevel]
		got, parsed := levelRank[entry.level]
		if known && (!parsed || got < want) {
			return false
		}
	}
	if component != "" && !strings.EqualFold(entry.component, component) {
		return false
	}
	return true
}

type lineEntry struct {
	level     string
	component string
}

func parseLine(line string) (lineEntry, bool) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "{") {
		var raw struct {
			Level     string `json:"level"`
			Component string `json:"component"`
		}
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return lineEntry{}, false
		}
		return lineEntry{level: strings.ToLower(raw.Level), component: raw.Component}, true
	}

	// Console format: "<RFC3339> <LEVEL> [component: ]message ..."
	fields := strings.SplitN(line, " ", 4)
	if len(fields) < 3 {
		return lineEntry{}, false
	}
	entry := lineEntry{level: strings.ToLower(fields[1])}
	if _, ok := levelRank[entry.level]; !ok {
		return lineEntry{}, false
	}
	if name, found := strings.CutSuffix(fields[2], ":"); found {
		entry.component = name
	}
	return entry, true
}
