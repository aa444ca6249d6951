package crash

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
)

// locationFromStack finds the frame that raised a panic in a debug.Stack dump:
// the first frame after runtime's panic machinery and this package.
func locationFromStack(stack []byte) *Location {
	scanner := bufio.NewScanner(bytes.NewReader(stack))

	var function string
	afterPanic := false
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "\t") {
			function = line
			if strings.HasPrefix(function, "panic(") {
				afterPanic = true
			}
			continue
		}
		if !afterPanic || skipFrame(function) {
			continue
		}
		if loc := parseFrameLine(line); loc != nil {
			return loc
		}
	}
	return nil
}

func skipFrame(function string) bool {
	return strings.HasPrefix(function, "panic(") ||
		strings.HasPrefix(function, "runtime.") ||
		strings.Contains(function, "/internal/crash.(*Handler)")
}

// parseFrameLine parses "\t/path/file.go:42 +0x1d"
func parseFrameLine(line string) *Location {
	line = strings.TrimSpace(line)
	if i := strings.LastIndex(line, " +0x"); i >= 0 {
		line = line[:i]
	}
	i := strings.LastIndex(line, ":")
	if i < 0 {
		return nil
	}
	n, err := strconv.Atoi(line[i+1:])
	if err != nil {
		return nil
	}
	return &Location{File: filepath.ToSlash(line[:i]), Line: n}
}
