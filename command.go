package bmscore

import (
	"strconv"
	"strings"
)

// splitCommand splits a stripped declaration "TAG arg..." at the
// first run of whitespace, preserving internal whitespace in arg.
func splitCommand(rest string) (tag, arg string) {
	i := 0
	for i < len(rest) && !isBmsSpace(rest[i]) {
		i++
	}
	tag = rest[:i]
	for i < len(rest) && isBmsSpace(rest[i]) {
		i++
	}
	return tag, rest[i:]
}

func parseIntRange(s string, lo, hi int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

func parseFloatRange(s string, lo, hi float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// indexSuffix validates a two-character base-36 index suffix such as
// the "xx" in WAVxx/BMPxx/BPMxx/STOPxx. Lowercase is rejected.
func indexSuffix(tag, prefix string) (idx int, ok bool) {
	if len(tag) != len(prefix)+2 || !strings.HasPrefix(tag, prefix) {
		return 0, false
	}
	return base36Pair(tag[len(prefix)], tag[len(prefix)+1])
}

// parseCommand handles one "#TAG ARG" declaration. It mutates ps.chart
// and emits diagnostics into ps.sink.
func (ps *parserState) parseCommand(lineNum int, tag, arg string) {
	if arg == "" {
		ps.sink.emit(lineNum, "Command requires non-empty arguments, ignoring")
		return
	}

	switch tag {
	case "PLAYER":
		ps.setIntField(lineNum, "PLAYER", arg, 1, 3, &ps.chart.Meta.PlayerNum)
		return
	case "GENRE":
		ps.setTextField(lineNum, "GENRE", arg, &ps.chart.Meta.Genre)
		return
	case "TITLE":
		ps.setTextField(lineNum, "TITLE", arg, &ps.chart.Meta.Title)
		return
	case "ARTIST":
		ps.setTextField(lineNum, "ARTIST", arg, &ps.chart.Meta.Artist)
		return
	case "SUBARTIST":
		ps.setTextField(lineNum, "SUBARTIST", arg, &ps.chart.Meta.Subartist)
		return
	case "BPM":
		ps.setFloatField(lineNum, "BPM", arg, 1.0, 999.0, &ps.chart.Meta.InitTempo)
		return
	case "PLAYLEVEL":
		ps.setIntField(lineNum, "PLAYLEVEL", arg, 1, 999, &ps.chart.Meta.PlayLevel)
		return
	case "RANK":
		ps.setIntField(lineNum, "RANK", arg, 0, 3, &ps.chart.Meta.JudgeRank)
		return
	case "TOTAL":
		ps.setIntField(lineNum, "TOTAL", arg, 1, 9999, &ps.chart.Meta.GaugeTotal)
		return
	case "DIFFICULTY":
		if v, ok := parseIntRange(arg, 1, 5); ok {
			if ps.metaDefined["DIFFICULTY"] {
				ps.sink.emit(lineNum, "DIFFICULTY redefined, overwriting")
			}
			ps.metaDefined["DIFFICULTY"] = true
			ps.chart.Meta.Difficulty = v
			ps.chart.Meta.HasDifficulty = true
		} else {
			ps.sink.emit(lineNum, "Invalid value for DIFFICULTY %q, ignoring", arg)
		}
		return
	case "STAGEFILE":
		ps.setTextField(lineNum, "STAGEFILE", arg, &ps.chart.Meta.StageFile)
		return
	case "BANNER":
		ps.setTextField(lineNum, "BANNER", arg, &ps.chart.Meta.Banner)
		return
	case "BACKBMP":
		ps.setTextField(lineNum, "BACKBMP", arg, &ps.chart.Meta.BackBMP)
		return
	case "LNOBJ":
		if len(strings.TrimSpace(arg)) >= 2 {
			t := strings.TrimSpace(arg)
			if idx, ok := base36Pair(t[0], t[1]); ok {
				ps.chart.LNObj = int16(idx)
				return
			}
		}
		ps.sink.emit(lineNum, "Invalid value for LNOBJ %q, ignoring", arg)
		return
	}

	if idx, ok := indexSuffix(tag, "WAV"); ok {
		if _, exists := ps.chart.Tables.Wav[idx]; exists {
			ps.sink.emit(lineNum, "WAV%s redefined, overwriting", base36Encode(idx))
		}
		ps.chart.Tables.Wav[idx] = arg
		return
	}
	if idx, ok := indexSuffix(tag, "BMP"); ok {
		ps.chart.Tables.Bmp[idx] = arg
		return
	}
	if idx, ok := indexSuffix(tag, "BPM"); ok {
		if v, ok := parseFloatRange(arg, 1.0, 999.0); ok {
			ps.chart.Tables.Tempo[idx] = v
		} else {
			ps.sink.emit(lineNum, "Invalid value for BPM%s %q, ignoring", base36Encode(idx), arg)
		}
		return
	}
	if idx, ok := indexSuffix(tag, "STOP"); ok {
		if v, ok := parseIntRange(arg, 0, 32767); ok {
			ps.chart.Tables.Stop[idx] = v
		} else {
			ps.sink.emit(lineNum, "Invalid value for STOP%s %q, ignoring", base36Encode(idx), arg)
		}
		return
	}

	ps.sink.emit(lineNum, "Unrecognized command %s, ignoring", tag)
}

func (ps *parserState) setTextField(lineNum int, name, arg string, field *string) {
	if ps.metaDefined[name] {
		ps.sink.emit(lineNum, "%s redefined, overwriting", name)
	}
	ps.metaDefined[name] = true
	*field = arg
}

func (ps *parserState) setIntField(lineNum int, name, arg string, lo, hi int, field *int) {
	v, ok := parseIntRange(arg, lo, hi)
	if !ok {
		ps.sink.emit(lineNum, "Invalid value for %s %q, ignoring", name, arg)
		return
	}
	if ps.metaDefined[name] {
		ps.sink.emit(lineNum, "%s redefined, overwriting", name)
	}
	ps.metaDefined[name] = true
	*field = v
}

func (ps *parserState) setFloatField(lineNum int, name, arg string, lo, hi float64, field *float64) {
	v, ok := parseFloatRange(arg, lo, hi)
	if !ok {
		ps.sink.emit(lineNum, "Invalid value for %s %q, ignoring", name, arg)
		return
	}
	if ps.metaDefined[name] {
		ps.sink.emit(lineNum, "%s redefined, overwriting", name)
	}
	ps.metaDefined[name] = true
	*field = v
}
