// Package config provides flag-driven construction for the cmd/
// inspection tools: a flag value selects one of a small family of
// implementations, with a permissive default.
package config

import (
	"fmt"

	"github.com/chriskillpack/bmscore"
)

// EventFilter reports whether a Sequence event should be shown by an
// inspection tool.
type EventFilter interface {
	Accept(e bmscore.Event) bool
}

type allFilter struct{}

func (allFilter) Accept(bmscore.Event) bool { return true }

// notesFilter keeps only Note/NoteLong/NoteOff events.
type notesFilter struct{}

func (notesFilter) Accept(e bmscore.Event) bool {
	switch e.Type {
	case bmscore.EventNote, bmscore.EventNoteLong, bmscore.EventNoteOff:
		return true
	default:
		return false
	}
}

// bgmFilter keeps only background (track <= 0) Note events.
type bgmFilter struct{}

func (bgmFilter) Accept(e bmscore.Event) bool {
	return e.Type == bmscore.EventNote && e.Track <= 0
}

// tempoFilter keeps Barline and TempoChange events, the ones that
// govern playback timing.
type tempoFilter struct{}

func (tempoFilter) Accept(e bmscore.Event) bool {
	return e.Type == bmscore.EventBarline || e.Type == bmscore.EventTempoChange
}

// EventFilterFromFlag constructs an EventFilter from a command line
// flag value. An unrecognized value is an error; the caller is
// expected to fall back to "all" or abort.
func EventFilterFromFlag(name string) (EventFilter, error) {
	switch name {
	case "all", "":
		return allFilter{}, nil
	case "notes":
		return notesFilter{}, nil
	case "bgm":
		return bgmFilter{}, nil
	case "tempo":
		return tempoFilter{}, nil
	default:
		return nil, fmt.Errorf("unrecognized event filter %q", name)
	}
}
