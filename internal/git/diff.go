package git

import (
	"strconv"
	"strings"

	"github.com/ztk-sh/ztk/internal/model"
)

// ParseUnifiedDiff scans unified-diff text and returns the hunks it
// describes. A "diff --git a/X b/Y" line starts a new file context and a
// "@@ -s,c +s,c @@" line starts a hunk whose body is every +/- line up to
// the next header.
func ParseUnifiedDiff(diff string) ([]model.Hunk, error) {
	var hunks []model.Hunk
	var currentFile string
	var current *model.Hunk

	flush := func() {
		if current != nil {
			hunks = append(hunks, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flush()
			file, ok := parseDiffHeader(line)
			if !ok {
				return nil, &ParseError{Op: "diff", Detail: "malformed file header: " + line}
			}
			currentFile = file

		case strings.HasPrefix(line, "@@ "):
			flush()
			if currentFile == "" {
				return nil, &ParseError{Op: "diff", Detail: "hunk header before any file header"}
			}
			h, ok := parseHunkHeader(line)
			if !ok {
				return nil, &ParseError{Op: "diff", Detail: "malformed hunk header: " + line}
			}
			h.File = currentFile
			current = &h

		case current != nil && (strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-")):
			current.Lines = append(current.Lines, line)
		}
	}
	flush()

	return hunks, nil
}

// parseDiffHeader extracts the "b/" path from a "diff --git a/X b/Y" line.
func parseDiffHeader(line string) (string, bool) {
	rest := strings.TrimPrefix(line, "diff --git ")
	idx := strings.Index(rest, " b/")
	if idx < 0 || !strings.HasPrefix(rest, "a/") {
		return "", false
	}
	file := rest[idx+len(" b/"):]
	if file == "" {
		return "", false
	}
	return file, true
}

// parseHunkHeader parses "@@ -oldStart[,oldCount] +newStart[,newCount] @@".
// A missing count defaults to 1, per the unified diff format.
func parseHunkHeader(line string) (model.Hunk, bool) {
	var h model.Hunk

	rest := strings.TrimPrefix(line, "@@ ")
	end := strings.Index(rest, " @@")
	if end < 0 {
		return h, false
	}
	parts := strings.Fields(rest[:end])
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "-") || !strings.HasPrefix(parts[1], "+") {
		return h, false
	}

	var ok bool
	h.OldStart, h.OldCount, ok = parseRange(strings.TrimPrefix(parts[0], "-"))
	if !ok {
		return h, false
	}
	h.NewStart, h.NewCount, ok = parseRange(strings.TrimPrefix(parts[1], "+"))
	if !ok {
		return h, false
	}
	return h, true
}

func parseRange(s string) (start int, count int, ok bool) {
	count = 1
	if comma := strings.Index(s, ","); comma >= 0 {
		n, err := strconv.Atoi(s[comma+1:])
		if err != nil {
			return 0, 0, false
		}
		count = n
		s = s[:comma]
	}
	start, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, false
	}
	return start, count, true
}
