package bmscore

// sourceLine is one logical line of input, 1-based.
type sourceLine struct {
	num  int
	text string
}

// isBmsSpace reports whether b is whitespace that trimBms strips:
// space, tab, form feed, vertical tab. Newlines are handled
// separately as line terminators.
func isBmsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\f', '\v':
		return true
	default:
		return false
	}
}

func trimBms(s string) string {
	i := 0
	for i < len(s) && isBmsSpace(s[i]) {
		i++
	}
	j := len(s)
	for j > i && isBmsSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

// scanLines splits text into logical lines on any of LF, CR, or CRLF,
// preserving bytes verbatim within each line. It does not interpret
// or validate line content.
func scanLines(text []byte) []sourceLine {
	var lines []sourceLine
	n := len(text)
	i := 0
	lineNo := 1
	for i < n {
		j := i
		for j < n && text[j] != '\n' && text[j] != '\r' {
			j++
		}
		lines = append(lines, sourceLine{num: lineNo, text: string(text[i:j])})
		if j >= n {
			break
		}
		if text[j] == '\r' && j+1 < n && text[j+1] == '\n' {
			j += 2
		} else {
			j++
		}
		i = j
		lineNo++
	}
	return lines
}

// declLine is a trimmed '#'-prefixed declaration ready for dispatch,
// with its '#' already stripped.
type declLine struct {
	num int
	rest string
}

// declarations walks the logical lines of text and returns every
// line whose first non-blank character is '#', trimmed and with the
// '#' stripped. All other lines (blank lines, comments, anything not
// starting with '#') are skipped silently.
func declarations(text []byte) []declLine {
	var out []declLine
	for _, l := range scanLines(text) {
		t := trimBms(l.text)
		if len(t) == 0 || t[0] != '#' {
			continue
		}
		out = append(out, declLine{num: l.num, rest: t[1:]})
	}
	return out
}
