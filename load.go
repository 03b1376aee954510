package bmscore

// parserState carries the mutable bookkeeping needed across a single
// parse pass: the Chart under construction, the diagnostic sink, and
// the "have I seen this declaration before" tracking that drives the
// redefinition warnings. It is created fresh by Load and discarded
// afterwards — never shared across calls.
type parserState struct {
	chart *Chart
	sink  *sink

	metaDefined     map[string]bool
	timeSigDefined  [1000]bool
	channelSeen     map[[2]int]bool // (bar, channel) -> already declared
	backgroundLanes map[int]int     // bar -> lanes allocated so far
}

func newParserState() *parserState {
	chart := &Chart{
		Tables: newIndexTables(),
		LNObj:  -1,
	}
	return &parserState{
		chart:           chart,
		sink:            &sink{},
		metaDefined:     make(map[string]bool),
		channelSeen:     make(map[[2]int]bool),
		backgroundLanes: make(map[int]int),
	}
}

// isChannelPrefix reports whether rest begins with a channel-line
// header "BBBCC:" — five decimal digits then a colon. On success it
// also returns the decoded bar and channel numbers.
func isChannelPrefix(rest string) (bar, channel int, ok bool) {
	if len(rest) < 6 || rest[5] != ':' {
		return 0, 0, false
	}
	for i := 0; i < 5; i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return 0, 0, false
		}
	}
	bar = int(rest[0]-'0')*100 + int(rest[1]-'0')*10 + int(rest[2]-'0')
	channel = int(rest[3]-'0')*10 + int(rest[4]-'0')
	return bar, channel, true
}

// Load parses a BMS source buffer into a Chart: it scans the source
// into declaration lines, dispatches each to the command or channel
// parser, then normalises the result. The returned diagnostics are
// warnings only — Load never fails for a malformed chart; error is
// reserved for conditions outside the format entirely (a nil buffer).
func Load(text []byte) (*Chart, []Diagnostic, error) {
	if text == nil {
		return nil, nil, errNilInput
	}

	ps := newParserState()

	for _, d := range declarations(text) {
		if bar, channel, ok := isChannelPrefix(d.rest); ok {
			ps.parseChannelLine(d.num, bar, channel, d.rest[6:])
			continue
		}
		tag, arg := splitCommand(d.rest)
		ps.parseCommand(d.num, tag, arg)
	}

	normalize(ps.chart)
	applyDefaults(ps.chart, ps.metaDefined, ps.sink)

	return ps.chart, ps.sink.diags, nil
}
