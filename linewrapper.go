package kotlinpoet

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-runewidth"
)

// lineWrapper implements soft line wrapping on an output stream. Text is
// split into segments at each ♢; when a line is complete, segments that do
// not fit within the column limit are moved to continuation lines.
type lineWrapper struct {
	out         io.StringWriter
	indent      string
	columnLimit int
	closed      bool
	err         error

	// segments of the current line. The first segment is never wrapped.
	segments []string
	// indentLevel and linePrefix apply to continuation lines of the current
	// line. -1 means no wrap point has been seen yet.
	indentLevel int
	linePrefix  string
}

const specialCharacters = " \n·♢"

func newLineWrapper(out io.StringWriter, indent string, columnLimit int) *lineWrapper {
	return &lineWrapper{
		out:         out,
		indent:      indent,
		columnLimit: columnLimit,
		segments:    []string{""},
		indentLevel: -1,
	}
}

func (lw *lineWrapper) hasPendingSegments() bool {
	return len(lw.segments) != 1 || lw.segments[0] != ""
}

func (lw *lineWrapper) checkOpen() {
	if lw.closed {
		panic(errors.AssertionFailedf("line wrapper is closed"))
	}
}

// append writes s, treating ♢ as a wrap point, · as a space that never
// wraps and \n as the end of the line. indentLevel and linePrefix are used
// if the line is wrapped at one of the wrap points in s.
func (lw *lineWrapper) append(s string, indentLevel int, linePrefix string) {
	lw.checkOpen()
	for s != "" {
		switch {
		case strings.HasPrefix(s, WrapSpace):
			lw.indentLevel = indentLevel
			lw.linePrefix = linePrefix
			lw.segments = append(lw.segments, "")
			s = s[len(WrapSpace):]
		case s[0] == '\n':
			lw.newline()
			s = s[1:]
		case s[0] == ' ':
			lw.appendToLast(" ")
			s = s[1:]
		case strings.HasPrefix(s, NonWrappingSpace):
			lw.appendToLast(" ")
			s = s[len(NonWrappingSpace):]
		default:
			next := strings.IndexAny(s, specialCharacters)
			if next < 0 {
				next = len(s)
			}
			lw.appendToLast(s[:next])
			s = s[next:]
		}
	}
}

// appendNonWrapping writes s without interpreting wrap points, so a string
// literal is never split.
func (lw *lineWrapper) appendNonWrapping(s string) {
	lw.checkOpen()
	if strings.Contains(s, "\n") {
		panic(errors.AssertionFailedf("non-wrapping text contains a newline: %q", s))
	}
	lw.appendToLast(s)
}

func (lw *lineWrapper) appendToLast(s string) {
	lw.segments[len(lw.segments)-1] += s
}

func (lw *lineWrapper) newline() {
	lw.checkOpen()
	lw.emitCurrentLine()
	lw.write("\n")
	lw.indentLevel = -1
}

// close flushes the pending line. It returns the first error from the
// underlying writer.
func (lw *lineWrapper) close() error {
	if !lw.closed {
		lw.emitCurrentLine()
		lw.closed = true
	}
	return lw.err
}

func (lw *lineWrapper) emitCurrentLine() {
	start := 0
	columnCount := runewidth.StringWidth(lw.segments[0])
	for i := 1; i < len(lw.segments); i++ {
		width := runewidth.StringWidth(lw.segments[i])
		newColumnCount := columnCount + 1 + width
		if newColumnCount > lw.columnLimit {
			lw.emitSegmentRange(start, i)
			start = i
			columnCount = width + len(lw.indent)*lw.indentLevel + runewidth.StringWidth(lw.linePrefix)
			continue
		}
		columnCount = newColumnCount
	}
	lw.emitSegmentRange(start, len(lw.segments))
	lw.segments = append(lw.segments[:0], "")
}

func (lw *lineWrapper) emitSegmentRange(start, end int) {
	if start > 0 {
		lw.write("\n")
		for i := 0; i < lw.indentLevel; i++ {
			lw.write(lw.indent)
		}
		lw.write(lw.linePrefix)
	}
	lw.write(lw.segments[start])
	for i := start + 1; i < end; i++ {
		lw.write(" ")
		lw.write(lw.segments[i])
	}
}

func (lw *lineWrapper) write(s string) {
	if lw.err != nil || s == "" {
		return
	}
	if _, err := lw.out.WriteString(s); err != nil {
		lw.err = errors.Wrap(err, "write failed")
	}
}
