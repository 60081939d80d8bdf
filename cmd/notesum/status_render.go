package main

import (
	"fmt"
	"strings"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const statusLabelWidth = 18

func renderStatusLine(label string, kind statusKind, message string, color bool) string {
	tag := fmt.Sprintf("[%s]", statusKindLabel(kind))
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", tag)
	if message != "" {
		line += " " + message
	}
	return colorize(color, statusKindColor(kind), line)
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	default:
		return ansiRed
	}
}

func renderSectionHeader(title string, color bool) string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	return colorize(color, ansiBold, line)
}
