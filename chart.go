package bmscore

// Chart is the structured representation produced by Load: metadata,
// resource index tables, and per-channel note sequences keyed by
// (bar, fractional position within bar). It is owned exclusively by
// the caller once returned; the loader keeps no reference to it.
type Chart struct {
	Meta   Metadata
	Tables IndexTables
	Tracks Tracks

	// MaxBar is the highest bar number observed across all channels,
	// set during normalisation.
	MaxBar int

	// LNObj is the base-36 index designated by #LNOBJ as the release
	// marker for channels 11..29. -1 means no #LNOBJ was declared.
	LNObj int16
}

// Metadata holds the optional single-valued song fields. Unset fields
// are filled with their documented defaults during normalisation.
type Metadata struct {
	PlayerNum int // 1=1P/SP, 2=2P, 3=9K; default 1

	Genre     string
	Title     string
	Artist    string
	Subartist string

	StageFile string
	Banner    string
	BackBMP   string

	InitTempo  float64 // BPM, [1.0, 999.0], default 130
	PlayLevel  int     // [1, 999], default 3
	JudgeRank  int     // [0, 3], default 3
	GaugeTotal int     // [1, 9999], default 160

	Difficulty    int // [1, 5], optional
	HasDifficulty bool
}

// indexCap is the size of each resource index table: two base-36
// digits address 36*36 = 1296 slots.
const indexCap = 36 * 36

// IndexTables are the four resource tables addressed by a base-36
// two-character key "00".."ZZ". Entries are sparse in practice, so
// presence is modelled with maps rather than fixed arrays with a
// sentinel.
type IndexTables struct {
	Wav   map[int]string
	Bmp   map[int]string
	Tempo map[int]float64
	Stop  map[int]int
}

func newIndexTables() IndexTables {
	return IndexTables{
		Wav:   make(map[int]string),
		Bmp:   make(map[int]string),
		Tempo: make(map[int]float64),
		Stop:  make(map[int]int),
	}
}

// Note is one entry of a channel: a raw value at a (bar, beat)
// position, possibly later marked as a long-note head.
type Note struct {
	Bar   int
	Beat  float64 // fractional position within the bar, in [0, 1)
	Value int16   // base-36 index, channel-03 decimal tempo, or -1 (release)
	Hold  bool    // set during normalisation: this note heads a long note
}

// noteRelease is the sentinel Value marking a synthesised release note.
const noteRelease int16 = -1

// maxBackgroundLanes bounds the number of parallel channel-01 lanes a
// single bar may allocate.
const maxBackgroundLanes = 64

// objectSlots is the size of the Object array: indices 1..19 cover
// channels 11..29 (LNOBJ dialect), indices 41..59 cover channels
// 51..69 (LNTYPE-1 dialect).
const objectSlots = 61

// Tracks holds the per-bar time signature grid and the per-channel
// note containers.
type Tracks struct {
	// TimeSig[bar] is the numerator of a bar length in quarter-note
	// units; 0 means unspecified until normalisation fills it with 4.
	TimeSig [1000]int

	Tempo    []Note // channel 03: raw decimal tempo changes
	ExTempo  []Note // channel 08: base-36 index into Tables.Tempo
	BgaBase  []Note // channel 04
	BgaLayer []Note // channel 07
	BgaPoor  []Note // channel 06
	Stop     []Note // channel 09: index into Tables.Stop

	// Object holds playable/long-note channels. See objectIndex and
	// objectChannelID for the channel<->index mapping.
	Object [objectSlots][]Note

	// Background holds channel-01 lanes; lane k is Background[k].
	Background      [maxBackgroundLanes][]Note
	BackgroundCount int
}

// objectIndex maps a playable channel id (11..29, 51..69, last digit
// != 0) to its slot in Tracks.Object. ok is false for any other
// channel id.
func objectIndex(channel int) (idx int, ok bool) {
	switch {
	case channel >= 11 && channel <= 29 && channel%10 != 0:
		return channel - 10, true
	case channel >= 51 && channel <= 69 && channel%10 != 0:
		return channel - 10, true
	default:
		return 0, false
	}
}

// objectChannelID maps an Object slot index back to the unified
// channel id reported in the Sequence: LNTYPE-1 channels 51..69 are
// folded onto 11..29 so a consumer need not know which dialect
// produced a given long note.
func objectChannelID(idx int) int {
	ch := idx + 10
	if ch < 50 {
		return ch
	}
	return ch - 40
}
