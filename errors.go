package bmscore

import "errors"

// errNilInput is the one fatal condition Load can report on its own:
// everything else recoverable becomes a Diagnostic instead of an error.
var errNilInput = errors.New("bmscore: nil input buffer")
