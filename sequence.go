package bmscore

import (
	"math"
	"sort"
)

// EventType tags what a Event represents. The order of these
// constants is significant: it is the tie-break used to sort events
// that share the same Pos.
type EventType int

const (
	EventBarline EventType = iota
	EventTempoChange
	EventBgaBaseChange
	EventBgaLayerChange
	EventBgaPoorChange
	EventStop
	EventNote
	EventNoteLong
	EventNoteOff
)

func (t EventType) String() string {
	switch t {
	case EventBarline:
		return "Barline"
	case EventTempoChange:
		return "TempoChange"
	case EventBgaBaseChange:
		return "BgaBaseChange"
	case EventBgaLayerChange:
		return "BgaLayerChange"
	case EventBgaPoorChange:
		return "BgaPoorChange"
	case EventStop:
		return "Stop"
	case EventNote:
		return "Note"
	case EventNoteLong:
		return "NoteLong"
	case EventNoteOff:
		return "NoteOff"
	default:
		return "Unknown"
	}
}

// Event is one absolutely-positioned item of a Sequence. Pos is
// measured in 48ths of a quarter-note (1/192 of a whole note). Track
// is non-positive for background lanes (-k) and 11..29 for playable
// channels (long-note channels 51..69 are folded onto 11..29). Which of Value, ValueA, ValueF is meaningful depends on
// Type: Note/NoteLong/NoteOff carry Value (and ValueA as duration for
// long notes), TempoChange carries ValueF, Barline carries Value as
// the bar number and ValueA as its time-signature numerator.
type Event struct {
	Pos    int
	Type   EventType
	Track  int
	Value  int
	ValueA int
	ValueF float64
}

// Sequence is the totally ordered event stream lowered from a Chart,
// plus a prefiltered view of just the long-note events.
type Sequence struct {
	Events    []Event
	LongNotes []Event
}

// barPosition converts a (bar, beat) pair into an absolute position
// in 48ths of a quarter-note, given the cumulative quarter-note
// length barStart preceding each bar.
func barPosition(barStart []int, timeSig [1000]int, bar int, beat float64) int {
	return barStart[bar]*48 + int(math.Floor(beat*float64(timeSig[bar])*48))
}

// ToSequence lowers a normalised Chart into a Sequence. It returns its
// own diagnostics rather than writing into a shared sink, for the
// single case it can itself observe a problem: an ex_tempo note
// indexing an undefined tempo table slot — no such TempoChange is
// emitted, and a diagnostic is returned describing why.
func ToSequence(chart *Chart) (*Sequence, []Diagnostic) {
	sk := &sink{}

	barStart := make([]int, chart.MaxBar+2)
	for b := 0; b <= chart.MaxBar; b++ {
		barStart[b+1] = barStart[b] + chart.Tracks.TimeSig[b]
	}
	pos := func(bar int, beat float64) int {
		return barPosition(barStart, chart.Tracks.TimeSig, bar, beat)
	}

	var events []Event

	for b := 0; b <= chart.MaxBar; b++ {
		ts := chart.Tracks.TimeSig[b]
		if ts == 0 {
			break
		}
		events = append(events, Event{
			Pos: barStart[b] * 48, Type: EventBarline, Track: 0,
			Value: b, ValueA: ts,
		})
	}

	for _, n := range chart.Tracks.Tempo {
		events = append(events, Event{
			Pos: pos(n.Bar, n.Beat), Type: EventTempoChange, Track: 3,
			ValueF: float64(n.Value),
		})
	}

	for _, n := range chart.Tracks.ExTempo {
		bpm, ok := chart.Tables.Tempo[int(n.Value)]
		if !ok {
			sk.emit(-1, "Tempo index %s undefined", base36Encode(int(n.Value)))
			continue
		}
		events = append(events, Event{
			Pos: pos(n.Bar, n.Beat), Type: EventTempoChange, Track: 8,
			ValueF: bpm,
		})
	}

	for _, n := range chart.Tracks.BgaBase {
		events = append(events, Event{Pos: pos(n.Bar, n.Beat), Type: EventBgaBaseChange, Track: 4, Value: int(n.Value)})
	}
	for _, n := range chart.Tracks.BgaLayer {
		events = append(events, Event{Pos: pos(n.Bar, n.Beat), Type: EventBgaLayerChange, Track: 7, Value: int(n.Value)})
	}
	for _, n := range chart.Tracks.BgaPoor {
		events = append(events, Event{Pos: pos(n.Bar, n.Beat), Type: EventBgaPoorChange, Track: 6, Value: int(n.Value)})
	}
	for _, n := range chart.Tracks.Stop {
		events = append(events, Event{Pos: pos(n.Bar, n.Beat), Type: EventStop, Track: 9, Value: chart.Tables.Stop[int(n.Value)]})
	}

	for k := 0; k < chart.Tracks.BackgroundCount; k++ {
		for _, n := range chart.Tracks.Background[k] {
			events = append(events, Event{Pos: pos(n.Bar, n.Beat), Type: EventNote, Track: -k, Value: int(n.Value)})
		}
	}

	for idx, notes := range chart.Tracks.Object {
		if len(notes) == 0 {
			continue
		}
		channelID := objectChannelID(idx)
		for i := 0; i < len(notes); i++ {
			n := notes[i]
			switch {
			case n.Hold:
				headPos := pos(n.Bar, n.Beat)
				release := notes[i+1]
				duration := pos(release.Bar, release.Beat) - headPos
				events = append(events, Event{Pos: headPos, Type: EventNoteLong, Track: channelID, Value: int(n.Value), ValueA: duration})
				events = append(events, Event{Pos: pos(release.Bar, release.Beat), Type: EventNoteOff, Track: channelID, Value: int(n.Value), ValueA: duration})
			case n.Value == noteRelease:
				// consumed by the preceding hold note above.
			default:
				events = append(events, Event{Pos: pos(n.Bar, n.Beat), Type: EventNote, Track: channelID, Value: int(n.Value)})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Pos != events[j].Pos {
			return events[i].Pos < events[j].Pos
		}
		return events[i].Type < events[j].Type
	})

	var longNotes []Event
	for _, e := range events {
		if e.Type == EventNoteLong {
			longNotes = append(longNotes, e)
		}
	}

	return &Sequence{Events: events, LongNotes: longNotes}, sk.diags
}
