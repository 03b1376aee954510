package bmscore

import (
	"math"
	"strconv"
)

// parseLeadingFloat mirrors the leniency of C's strtof: it skips
// leading whitespace and parses the longest valid numeric prefix,
// ignoring anything that follows.
func parseLeadingFloat(s string) (float64, bool) {
	i := 0
	for i < len(s) && isBmsSpace(s[i]) {
		i++
	}
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	sawDigit := false
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
		sawDigit = true
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			sawDigit = true
		}
	}
	if !sawDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[i:j], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseChannelLine handles one "#BBBCC:payload" declaration, routing
// it to the track it declares notes for.
func (ps *parserState) parseChannelLine(lineNum, bar, channel int, payload string) {
	if channel == 2 {
		ps.parseTimeSig(lineNum, bar, payload)
		return
	}
	if channel == 5 {
		ps.sink.emit(lineNum, "Unknown track %02d", channel)
		return
	}

	filtered := make([]byte, 0, len(payload))
	for i := 0; i < len(payload); i++ {
		if isBmsSpace(payload[i]) {
			continue
		}
		filtered = append(filtered, payload[i])
	}
	n := len(filtered)
	count := n / 2
	if n%2 == 1 {
		ps.sink.emit(lineNum, "Extraneous trailing character %c, dropping", filtered[n-1])
	}

	if channel == 1 {
		ps.parseBackground(lineNum, bar, filtered, count)
		return
	}

	var dest *[]Note
	switch channel {
	case 3:
		dest = &ps.chart.Tracks.Tempo
	case 4:
		dest = &ps.chart.Tracks.BgaBase
	case 6:
		dest = &ps.chart.Tracks.BgaPoor
	case 7:
		dest = &ps.chart.Tracks.BgaLayer
	case 8:
		dest = &ps.chart.Tracks.ExTempo
	case 9:
		dest = &ps.chart.Tracks.Stop
	default:
		if idx, ok := objectIndex(channel); ok {
			dest = &ps.chart.Tracks.Object[idx]
		}
	}
	if dest == nil {
		ps.sink.emit(lineNum, "Unknown track %02d", channel)
		return
	}

	key := [2]int{bar, channel}
	if ps.channelSeen[key] {
		ps.sink.emit(lineNum, "Track %02d already defined previously, merging all notes", channel)
	}
	ps.channelSeen[key] = true

	for i := 0; i < count; i++ {
		a, b := filtered[i*2], filtered[i*2+1]
		v, ok := base36Pair(a, b)
		if !ok {
			ps.sink.emit(lineNum, "Invalid base-36 index %c%c", a, b)
			continue
		}
		if v == 0 {
			continue
		}
		*dest = append(*dest, Note{Bar: bar, Beat: float64(i) / float64(count), Value: int16(v)})
	}
}

// parseBackground appends one channel-01 declaration's notes into
// the next unused lane for bar. BMS authors can stack several BGM
// lines on the same bar, one lane each, for layered background audio.
func (ps *parserState) parseBackground(lineNum, bar int, filtered []byte, count int) {
	lane := ps.backgroundLanes[bar]
	if lane >= maxBackgroundLanes {
		ps.sink.emit(lineNum, "Too many background tracks for bar %03d, dropping", bar)
		return
	}
	ps.backgroundLanes[bar] = lane + 1
	if lane+1 > ps.chart.Tracks.BackgroundCount {
		ps.chart.Tracks.BackgroundCount = lane + 1
	}

	for i := 0; i < count; i++ {
		a, b := filtered[i*2], filtered[i*2+1]
		v, ok := base36Pair(a, b)
		if !ok {
			ps.sink.emit(lineNum, "Invalid base-36 index %c%c", a, b)
			continue
		}
		if v == 0 {
			continue
		}
		beat := float64(i) / float64(count)
		ps.chart.Tracks.Background[lane] = append(ps.chart.Tracks.Background[lane], Note{Bar: bar, Beat: beat, Value: int16(v)})
	}
}

// parseTimeSig handles channel 02: a single real x in [0.25, 63.75]
// giving the bar's length as a multiple of 4/4, stored as round(x*4)
// quarter-notes.
func (ps *parserState) parseTimeSig(lineNum, bar int, payload string) {
	x, ok := parseLeadingFloat(payload)
	if !ok || x < 0.25 || x > 63.75 {
		ps.sink.emit(lineNum, "Invalid time signature %q for bar %03d, ignoring", trimBms(payload), bar)
		return
	}

	raw := x * 4
	rounded := math.Round(raw)
	if math.Abs(rounded-raw) >= 1e-3 {
		ps.sink.emit(lineNum, "Inaccurate time signature, treating as %d/4", int(rounded))
	}

	if ps.timeSigDefined[bar] {
		ps.sink.emit(lineNum, "Time signature for bar %03d redefined, overwriting", bar)
	}
	ps.timeSigDefined[bar] = true
	ps.chart.Tracks.TimeSig[bar] = int(rounded)
}
