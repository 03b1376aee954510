package bmscore

import "testing"

// Scenario tests mirror the literal end-to-end examples used to validate
// this loader's behaviour bar-by-bar and event-by-event.

func TestScenarioMinimum(t *testing.T) {
	chart, diags, err := Load([]byte("#TITLE foo\n#BPM 130\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if chart.Meta.Title != "foo" {
		t.Errorf("Title = %q, want %q", chart.Meta.Title, "foo")
	}
	if chart.Meta.InitTempo != 130 {
		t.Errorf("InitTempo = %v, want 130", chart.Meta.InitTempo)
	}
	if chart.Meta.PlayerNum != 1 {
		t.Errorf("PlayerNum = %v, want 1 (defaulted)", chart.Meta.PlayerNum)
	}

	foundDefaultWarning := false
	for _, d := range diags {
		if d.Line == -1 {
			foundDefaultWarning = true
		}
	}
	if !foundDefaultWarning {
		t.Errorf("expected a whole-document default warning, got %+v", diags)
	}

	seq, _ := ToSequence(chart)
	if len(seq.Events) == 0 || seq.Events[0].Type != EventBarline {
		t.Fatalf("sequence does not begin with a Barline: %+v", seq.Events)
	}
	if seq.Events[0].Value != 0 {
		t.Errorf("first Barline bar = %d, want 0", seq.Events[0].Value)
	}
}

func TestScenarioTwoNotesFourFour(t *testing.T) {
	chart, _, err := Load([]byte("#WAV01 a.wav\n#00011:0101\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	notes := chart.Tracks.Object[1] // channel 11
	if len(notes) != 2 {
		t.Fatalf("got %d notes in channel 11, want 2: %+v", len(notes), notes)
	}
	if notes[0].Bar != 0 || notes[0].Beat != 0 || notes[0].Value != 1 {
		t.Errorf("notes[0] = %+v", notes[0])
	}
	if notes[1].Bar != 0 || notes[1].Beat != 0.5 || notes[1].Value != 1 {
		t.Errorf("notes[1] = %+v", notes[1])
	}

	seq, _ := ToSequence(chart)
	var barline *Event
	var notePositions []int
	for i := range seq.Events {
		e := &seq.Events[i]
		if e.Type == EventBarline {
			barline = e
		}
		if e.Type == EventNote && e.Track == 11 {
			notePositions = append(notePositions, e.Pos)
		}
	}
	if barline == nil || barline.Pos != 0 || barline.ValueA != 4 {
		t.Errorf("Barline = %+v, want Pos=0 ValueA=4", barline)
	}
	if len(notePositions) != 2 || notePositions[0] != 0 || notePositions[1] != 96 {
		t.Errorf("note positions = %v, want [0 96]", notePositions)
	}
}

func TestScenarioTimeSignatureThreeQuarters(t *testing.T) {
	chart, _, err := Load([]byte("#00102:0.75\n#00111:010101\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if chart.Tracks.TimeSig[1] != 3 {
		t.Fatalf("TimeSig[1] = %d, want 3", chart.Tracks.TimeSig[1])
	}

	seq, _ := ToSequence(chart)
	var positions []int
	for _, e := range seq.Events {
		if e.Type == EventNote && e.Track == 11 {
			positions = append(positions, e.Pos)
		}
	}
	want := []int{4*48 + 0, 4*48 + 48, 4*48 + 96}
	if len(positions) != len(want) {
		t.Fatalf("got %d note positions, want %d: %v", len(positions), len(want), positions)
	}
	for i, w := range want {
		if positions[i] != w {
			t.Errorf("positions[%d] = %d, want %d", i, positions[i], w)
		}
	}
}

func TestScenarioLongNoteViaLNOBJ(t *testing.T) {
	chart, _, err := Load([]byte("#LNOBJ ZZ\n#00011:010000ZZ\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	seq, _ := ToSequence(chart)
	if len(seq.LongNotes) != 1 {
		t.Fatalf("got %d long notes, want 1: %+v", len(seq.LongNotes), seq.LongNotes)
	}
	ln := seq.LongNotes[0]
	if ln.Pos != 0 || ln.ValueA != 144 || ln.Track != 11 {
		t.Errorf("long note = %+v, want Pos=0 ValueA=144 Track=11", ln)
	}
}

func TestScenarioLongNoteViaChannel51(t *testing.T) {
	chart, _, err := Load([]byte("#WAV0A x.wav\n#00051:0A0A\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	seq, _ := ToSequence(chart)
	if len(seq.LongNotes) != 1 {
		t.Fatalf("got %d long notes, want 1: %+v", len(seq.LongNotes), seq.LongNotes)
	}
	ln := seq.LongNotes[0]
	if ln.Track != 11 {
		t.Errorf("LN channel 51 should report unified Track 11, got %d", ln.Track)
	}
	if ln.Value != 10 {
		t.Errorf("Value = %d, want 10", ln.Value)
	}
	if ln.ValueA != 96 {
		t.Errorf("duration = %d, want 96", ln.ValueA)
	}
}

func TestScenarioDuplicateCoincidence(t *testing.T) {
	chart, diags, err := Load([]byte("#00011:01\n#00011:02\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	notes := chart.Tracks.Object[1]
	if len(notes) != 1 {
		t.Fatalf("got %d notes after dedup, want 1: %+v", len(notes), notes)
	}
	if notes[0].Value != 2 {
		t.Errorf("Value = %d, want 2 (last wins)", notes[0].Value)
	}

	foundRedefWarning := false
	for _, d := range diags {
		if d.Line == 2 {
			foundRedefWarning = true
		}
	}
	if !foundRedefWarning {
		t.Errorf("expected a redefinition warning on line 2, got %+v", diags)
	}
}

func TestLoadNilInputIsError(t *testing.T) {
	_, _, err := Load(nil)
	if err == nil {
		t.Fatal("expected an error for nil input")
	}
}

func TestLoadIsPure(t *testing.T) {
	text := []byte("#TITLE foo\n#BPM 130\n#00011:0101\n")
	c1, d1, _ := Load(text)
	c2, d2, _ := Load(text)

	if c1.Meta != c2.Meta {
		t.Errorf("metadata differs between calls: %+v vs %+v", c1.Meta, c2.Meta)
	}
	if len(d1) != len(d2) {
		t.Errorf("diagnostic counts differ: %d vs %d", len(d1), len(d2))
	}
}
