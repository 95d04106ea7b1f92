package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxDiffLines bounds the inputs the edit script is computed for.
const maxDiffLines = 10000

// maxEditDistance bounds the forward pass. The trace kept for backtracking
// grows with the square of the edit distance.
const maxEditDistance = 2000

// LineOp tags a line of a line-level diff.
type LineOp int

const (
	LineUnchanged LineOp = iota
	LineAdded
	LineRemoved
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op      LineOp
	Content string
	OldLine int // 1-based line in the existing content (0 if added)
	NewLine int // 1-based line in the rendered content (0 if removed)
}

// Lipgloss styles for terminal output
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
)

// DiffGenerator computes shortest edit scripts with reusable allocations.
// Create once and reuse for multiple diffs.
type DiffGenerator struct {
	v     []int
	trace [][]int32
}

// NewDiffGenerator creates a diff generator optimized for repeated use.
func NewDiffGenerator() *DiffGenerator {
	return &DiffGenerator{trace: make([][]int32, 0, 100)}
}

// Lines returns the full line-level diff from old to newer: every line of
// both inputs appears once, unchanged lines included as context. Inputs
// further apart than maxEditDistance get a plain remove-then-add script.
func (dg *DiffGenerator) Lines(old, newer []string) []DiffLine {
	if lines, ok := dg.computeEditScript(old, newer); ok {
		return lines
	}
	return replaceAll(old, newer)
}

// Format renders the diff from existing to rendered content the way the
// conflict menu shows it: removed lines as "-  line", added lines as
// "+  line" and unchanged lines as "   line".
func (dg *DiffGenerator) Format(existing, rendered []byte) string {
	if isBinary(existing) || isBinary(rendered) {
		return "Binary files differ\n"
	}

	oldLines := splitLines(string(existing))
	newLines := splitLines(string(rendered))
	if len(oldLines) > maxDiffLines || len(newLines) > maxDiffLines {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(oldLines), len(newLines))
	}

	script, ok := dg.computeEditScript(oldLines, newLines)
	if !ok {
		return fmt.Sprintf("Files differ too much for diff (more than %d changed lines)\n", maxEditDistance)
	}

	var buf strings.Builder
	for _, line := range script {
		switch line.Op {
		case LineRemoved:
			buf.WriteString(removedStyle.Render("-  "+line.Content) + "\n")
		case LineAdded:
			buf.WriteString(addedStyle.Render("+  "+line.Content) + "\n")
		default:
			buf.WriteString("   " + line.Content + "\n")
		}
	}
	return buf.String()
}

// FormatRender numbers rendered lines from 1, right-aligned to four columns.
func FormatRender(lines []string) string {
	var buf strings.Builder
	for i, line := range lines {
		buf.WriteString(lineNumStyle.Render(fmt.Sprintf("%4d:", i+1)) + "  " + line + "\n")
	}
	return buf.String()
}

// computeEditScript implements Myers diff algorithm to compute the shortest edit script.
// Based on "An O(ND) Difference Algorithm and Its Variations" by Eugene W. Myers (1986).
// It gives up, returning false, once the edit distance exceeds maxEditDistance.
func (dg *DiffGenerator) computeEditScript(old, newer []string) ([]DiffLine, bool) {
	n := len(old)
	m := len(newer)
	maxD := min(n+m, maxEditDistance)

	// v[offset+k] is the furthest x reached on diagonal k.
	offset := maxD + 1
	size := 2*maxD + 3
	if cap(dg.v) < size {
		dg.v = make([]int, size)
	} else {
		dg.v = dg.v[:size]
		clear(dg.v)
	}
	v := dg.v
	dg.trace = dg.trace[:0]

	// Forward pass: before each step d, record diagonals -d-1..d+1.
	done := false
forward:
	for d := 0; d <= maxD; d++ {
		snapshot := make([]int32, 2*d+3)
		for k := -d - 1; k <= d+1; k++ {
			snapshot[k+d+1] = int32(v[offset+k])
		}
		dg.trace = append(dg.trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1] // down: insertion
			} else {
				x = v[offset+k-1] + 1 // right: deletion
			}
			y := x - k

			for x < n && y < m && old[x] == newer[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				done = true
				break forward
			}
		}
	}
	if !done {
		return nil, false
	}

	// Backtrack from (n, m), prepending lines in reverse.
	var reversed []DiffLine
	x, y := n, m
	for d := len(dg.trace) - 1; d >= 0; d-- {
		snapshot := dg.trace[d]
		at := func(k int) int { return int(snapshot[k+d+1]) }
		k := x - y

		var prevK int
		if k == -d || (k != d && at(k-1) < at(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := at(prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			reversed = append(reversed, DiffLine{Op: LineUnchanged, Content: old[x], OldLine: x + 1, NewLine: y + 1})
		}

		if d > 0 {
			if x == prevX {
				y--
				reversed = append(reversed, DiffLine{Op: LineAdded, Content: newer[y], NewLine: y + 1})
			} else {
				x--
				reversed = append(reversed, DiffLine{Op: LineRemoved, Content: old[x], OldLine: x + 1})
			}
		}
	}

	result := make([]DiffLine, len(reversed))
	for i, line := range reversed {
		result[len(reversed)-1-i] = line
	}
	return result, true
}

// replaceAll removes every old line, then adds every new one.
func replaceAll(old, newer []string) []DiffLine {
	lines := make([]DiffLine, 0, len(old)+len(newer))
	for i, l := range old {
		lines = append(lines, DiffLine{Op: LineRemoved, Content: l, OldLine: i + 1})
	}
	for i, l := range newer {
		lines = append(lines, DiffLine{Op: LineAdded, Content: l, NewLine: i + 1})
	}
	return lines
}

// isBinary checks if content appears to be binary (contains null bytes)
func isBinary(data []byte) bool {
	checkLen := min(len(data), 8192)
	return bytes.IndexByte(data[:checkLen], 0) != -1
}

// splitLines splits content into lines, dropping the empty element a
// trailing newline produces.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
