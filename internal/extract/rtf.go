package extract

import (
	"io"
	"strconv"
	"strings"
)

// RTFExtractor handles RTF files with a minimal control-word stripper. It
// understands group nesting, \par and \line breaks, hex escapes and skips
// destination groups that carry no body text (fonts, colors, stylesheets,
// embedded objects).
type RTFExtractor struct{}

// Destination groups whose content never belongs to the document body.
var rtfSkipGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"object":     true,
	"header":     true,
	"footer":     true,
}

func (e *RTFExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", extractionErr("rtf", "read", err)
	}
	return stripRTF(string(data)), nil
}

func stripRTF(src string) string {
	var b strings.Builder
	skipDepth := 0 // depth at which a skipped destination group started
	depth := 0

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '{':
			depth++
		case '}':
			if skipDepth != 0 && depth == skipDepth {
				skipDepth = 0
			}
			depth--
		case '\\':
			if i+1 >= len(src) {
				break
			}
			next := src[i+1]
			// Escaped literal braces and backslash.
			if next == '\\' || next == '{' || next == '}' {
				if skipDepth == 0 {
					b.WriteByte(next)
				}
				i++
				continue
			}
			// \* opens an ignorable destination group.
			if next == '*' {
				if skipDepth == 0 {
					skipDepth = depth
				}
				i++
				continue
			}
			// Hex escape \'xx.
			if next == '\'' && i+3 < len(src) {
				if v, err := strconv.ParseUint(src[i+2:i+4], 16, 8); err == nil && skipDepth == 0 {
					b.WriteByte(byte(v))
				}
				i += 3
				continue
			}
			word, arg, n := readRTFControlWord(src[i+1:])
			i += n
			if skipDepth != 0 {
				continue
			}
			switch word {
			case "par", "line", "sect", "page":
				b.WriteByte('\n')
			case "tab":
				b.WriteByte('\t')
			case "u":
				// Unicode escape; arg is the code point.
				if cp, err := strconv.Atoi(arg); err == nil && cp > 0 {
					b.WriteRune(rune(cp))
				}
			default:
				if rtfSkipGroups[word] {
					skipDepth = depth
				}
			}
		default:
			if skipDepth == 0 && c != '\r' && c != '\n' {
				b.WriteByte(c)
			}
		}
	}

	// Collapse per-line whitespace without disturbing line boundaries.
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// readRTFControlWord parses a control word (letters plus optional numeric
// argument) and returns the word, argument and bytes consumed, including the
// optional trailing space delimiter.
func readRTFControlWord(s string) (word, arg string, n int) {
	for n < len(s) && isASCIILetter(s[n]) {
		n++
	}
	word = s[:n]
	argStart := n
	if n < len(s) && (s[n] == '-' || isASCIIDigit(s[n])) {
		n++
		for n < len(s) && isASCIIDigit(s[n]) {
			n++
		}
	}
	arg = s[argStart:n]
	if n < len(s) && s[n] == ' ' {
		n++
	}
	return word, arg, n
}

func isASCIILetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isASCIIDigit(c byte) bool  { return c >= '0' && c <= '9' }
