package bmscore

import (
	"math"
	"sort"
)

// positionEpsilon is the tolerance used when comparing (bar, beat)
// sums during sort and dedup, absorbing the rounding noise floating
// point beat fractions accumulate.
const positionEpsilon = 1e-6

func notePosition(n Note) float64 { return float64(n.Bar) + n.Beat }

// sortAndDedup stable-sorts notes by (bar, beat) ascending, then
// collapses consecutive entries that compare equal within
// positionEpsilon, keeping the later one — a later declaration of the
// same position in the source overrides an earlier one.
func sortAndDedup(notes []Note) []Note {
	if len(notes) < 2 {
		return notes
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notePosition(notes[i]) < notePosition(notes[j])-positionEpsilon
	})

	out := notes[:0:0]
	for _, n := range notes {
		if len(out) > 0 && math.Abs(notePosition(out[len(out)-1])-notePosition(n)) < positionEpsilon {
			out[len(out)-1] = n
			continue
		}
		out = append(out, n)
	}
	return out
}

// reinterpretTempoChannel rewrites channel-03 note values from the
// base-36 pair the parser captured into the hex-as-decimal reading
// the format actually uses: channel 03's payload is two hex digits,
// not base-36, so the parser's generic base-36 decode has to be
// corrected after the fact.
func reinterpretTempoChannel(notes []Note) {
	for i, n := range notes {
		v := int(n.Value)
		notes[i].Value = int16((v/36)*16 + v%36)
	}
}

// resolveLNObj implements the LNOBJ long-note dialect (channels
// 11..29): a note equal to the designated LNOBJ index closes the
// preceding note into a long note. The scan advances by two after a
// successful pairing, not one — a release cannot itself become a new
// head.
func resolveLNObj(notes []Note, lnobj int16) {
	for j := 1; j < len(notes); {
		if notes[j].Value == lnobj && notes[j-1].Value != noteRelease {
			notes[j-1].Hold = true
			notes[j].Value = noteRelease
			j += 2
			continue
		}
		j++
	}
}

// resolveLNType1 implements the LNTYPE-1 dialect (channels 51..69):
// two consecutive notes with equal value form a long note, the first
// becoming the head and the second the release.
func resolveLNType1(notes []Note) {
	for j := 0; j+1 < len(notes); {
		if notes[j].Value != noteRelease && notes[j].Value == notes[j+1].Value {
			notes[j].Hold = true
			notes[j+1].Value = noteRelease
			j += 2
			continue
		}
		j++
	}
}

// normalize runs the post-parse cleanup pipeline over an
// already-parsed chart: channel-03 reinterpretation, per-channel
// sort+dedup, max-bar computation, long-note resolution for both
// dialects, and time-signature filling. Metadata defaulting is
// applied separately by applyDefaults.
func normalize(chart *Chart) {
	reinterpretTempoChannel(chart.Tracks.Tempo)

	chart.Tracks.Tempo = sortAndDedup(chart.Tracks.Tempo)
	chart.Tracks.ExTempo = sortAndDedup(chart.Tracks.ExTempo)
	chart.Tracks.BgaBase = sortAndDedup(chart.Tracks.BgaBase)
	chart.Tracks.BgaLayer = sortAndDedup(chart.Tracks.BgaLayer)
	chart.Tracks.BgaPoor = sortAndDedup(chart.Tracks.BgaPoor)
	chart.Tracks.Stop = sortAndDedup(chart.Tracks.Stop)

	maxBar := 0
	updateMax := func(notes []Note) {
		if len(notes) > 0 {
			if b := notes[len(notes)-1].Bar; b > maxBar {
				maxBar = b
			}
		}
	}
	updateMax(chart.Tracks.Tempo)
	updateMax(chart.Tracks.ExTempo)
	updateMax(chart.Tracks.BgaBase)
	updateMax(chart.Tracks.BgaLayer)
	updateMax(chart.Tracks.BgaPoor)
	updateMax(chart.Tracks.Stop)

	for i := range chart.Tracks.Object {
		chart.Tracks.Object[i] = sortAndDedup(chart.Tracks.Object[i])
		updateMax(chart.Tracks.Object[i])
	}
	for i := 0; i < chart.Tracks.BackgroundCount; i++ {
		chart.Tracks.Background[i] = sortAndDedup(chart.Tracks.Background[i])
		updateMax(chart.Tracks.Background[i])
	}

	chart.MaxBar = maxBar

	for idx := 1; idx <= 19; idx++ {
		resolveLNObj(chart.Tracks.Object[idx], chart.LNObj)
	}
	for idx := 41; idx <= 59; idx++ {
		resolveLNType1(chart.Tracks.Object[idx])
	}

	for b := 0; b <= chart.MaxBar; b++ {
		if chart.Tracks.TimeSig[b] == 0 {
			chart.Tracks.TimeSig[b] = 4
		}
	}
}

// applyDefaults fills unset Metadata fields with their documented
// defaults. defined tracks which command tags were seen during
// parsing, keyed by tag name ("PLAYER", "GENRE", ...).
func applyDefaults(chart *Chart, defined map[string]bool, sk *sink) {
	if !defined["PLAYER"] {
		chart.Meta.PlayerNum = 1
		sk.emit(-1, "PLAYER did not appear, defaulting to 1")
	}
	if !defined["GENRE"] {
		chart.Meta.Genre = "(unknown)"
		sk.emit(-1, "GENRE did not appear, defaulting")
	}
	if !defined["TITLE"] {
		chart.Meta.Title = "(unknown)"
		sk.emit(-1, "TITLE did not appear, defaulting")
	}
	if !defined["ARTIST"] {
		chart.Meta.Artist = "(unknown)"
		sk.emit(-1, "ARTIST did not appear, defaulting")
	}
	if !defined["SUBARTIST"] {
		chart.Meta.Subartist = "(unknown)"
	}
	if !defined["STAGEFILE"] {
		chart.Meta.StageFile = "(none)"
	}
	if !defined["BANNER"] {
		chart.Meta.Banner = "(none)"
	}
	if !defined["BACKBMP"] {
		chart.Meta.BackBMP = "(none)"
	}
	if !defined["BPM"] {
		chart.Meta.InitTempo = 130
	}
	if !defined["PLAYLEVEL"] {
		chart.Meta.PlayLevel = 3
	}
	if !defined["RANK"] {
		chart.Meta.JudgeRank = 3
	}
	if !defined["TOTAL"] {
		chart.Meta.GaugeTotal = 160
	}
}
