package bmscore

import "fmt"

// maxDiagnosticMessage bounds the length of a Diagnostic's Message,
// mirroring the source loader's fixed-size BM_MSG_LEN log buffer
// (original_source/bmflat.h) but with headroom for longer text values.
const maxDiagnosticMessage = 128

// Diagnostic is a single non-fatal observation made while loading a
// chart: a source line number (1-based; -1 for whole-document notes
// such as a missing TITLE) and a human-readable message.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line < 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Error lets a Diagnostic be used wherever an error is expected,
// without implying that the loader ever fails because of one.
func (d Diagnostic) Error() string { return d.String() }

// sink collects diagnostics for a single Load call. Unlike the
// source's process-global bm_logs buffer, a sink is owned by one
// call and discarded with it, so concurrent Load calls never share
// state.
type sink struct {
	diags []Diagnostic
}

func (s *sink) emit(line int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > maxDiagnosticMessage {
		msg = msg[:maxDiagnosticMessage]
	}
	s.diags = append(s.diags, Diagnostic{Line: line, Message: msg})
}

func (s *sink) reset() {
	s.diags = s.diags[:0]
}
