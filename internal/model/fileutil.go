package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LineContext holds a source line together with up to two lines on each side.
type LineContext struct {
	Before2    string
	Before1    string
	Target     string
	After1     string
	After2     string
	LineNumber int
	HasBefore2 bool
	HasBefore1 bool
	HasAfter1  bool
	HasAfter2  bool
	ErrorMsg   string // Set when the file or line could not be read
}

// GetLineContext reads filePath and returns lineNumber (1-based) with its
// neighbours. Failures are reported through ErrorMsg rather than an error so
// the result can be rendered as is.
func GetLineContext(filePath string, lineNumber int) LineContext {
	result := LineContext{LineNumber: lineNumber}

	if strings.HasPrefix(filePath, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			filePath = home + filePath[1:]
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	// Only the window around the target is kept.
	window := make(map[int]string, 5)
	total := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		total++
		if total >= lineNumber-2 && total <= lineNumber+2 {
			window[total] = scanner.Text()
		}
	}
	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
		return result
	}

	if lineNumber < 1 || lineNumber > total {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, total)
		return result
	}

	result.Target = window[lineNumber]
	result.Before2, result.HasBefore2 = window[lineNumber-2]
	result.Before1, result.HasBefore1 = window[lineNumber-1]
	result.After1, result.HasAfter1 = window[lineNumber+1]
	result.After2, result.HasAfter2 = window[lineNumber+2]
	return result
}
