package bmscore

import "testing"

func TestSortAndDedupOrdersByPosition(t *testing.T) {
	notes := []Note{
		{Bar: 1, Beat: 0.5, Value: 2},
		{Bar: 0, Beat: 0.0, Value: 1},
		{Bar: 0, Beat: 0.75, Value: 3},
	}
	got := sortAndDedup(notes)

	want := []int16{1, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("got %d notes, want %d: %+v", len(got), len(want), got)
	}
	for i, v := range want {
		if got[i].Value != v {
			t.Errorf("got[%d].Value = %d, want %d", i, got[i].Value, v)
		}
	}
}

func TestSortAndDedupLastWins(t *testing.T) {
	notes := []Note{
		{Bar: 0, Beat: 0.0, Value: 1},
		{Bar: 0, Beat: 0.0, Value: 9},
	}
	got := sortAndDedup(notes)

	if len(got) != 1 {
		t.Fatalf("got %d notes, want 1: %+v", len(got), got)
	}
	if got[0].Value != 9 {
		t.Errorf("Value = %d, want 9 (last wins)", got[0].Value)
	}
}

func TestSortAndDedupIdempotent(t *testing.T) {
	notes := []Note{
		{Bar: 0, Beat: 0.0, Value: 1},
		{Bar: 0, Beat: 0.0, Value: 9},
		{Bar: 0, Beat: 0.5, Value: 2},
	}
	once := sortAndDedup(append([]Note{}, notes...))
	twice := sortAndDedup(append([]Note{}, once...))

	if len(once) != len(twice) {
		t.Fatalf("lengths differ: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("note %d differs: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestReinterpretTempoChannel(t *testing.T) {
	// base36 value for "14" is 1*36+4 = 40; (40/36)*16 + 40%36 = 16+4 = 20 (0x14).
	notes := []Note{{Value: 40}}
	reinterpretTempoChannel(notes)
	if notes[0].Value != 20 {
		t.Errorf("Value = %d, want 20", notes[0].Value)
	}
}

func TestResolveLNObj(t *testing.T) {
	lnobj := int16(99)
	notes := []Note{
		{Bar: 0, Beat: 0.00, Value: 1},
		{Bar: 0, Beat: 0.75, Value: lnobj},
	}
	resolveLNObj(notes, lnobj)

	if !notes[0].Hold {
		t.Errorf("head note not marked Hold: %+v", notes[0])
	}
	if notes[1].Value != noteRelease {
		t.Errorf("release note value = %d, want %d", notes[1].Value, noteRelease)
	}
}

func TestResolveLNObjAdvancesByTwo(t *testing.T) {
	lnobj := int16(99)
	// Two LNOBJ markers in a row after one head: only the first closes
	// the head; the scan advances by two, so the next marker cannot pair
	// with the just-created release.
	notes := []Note{
		{Value: 1},
		{Value: lnobj},
		{Value: lnobj},
	}
	resolveLNObj(notes, lnobj)

	if !notes[0].Hold {
		t.Errorf("notes[0].Hold = false, want true")
	}
	if notes[1].Value != noteRelease {
		t.Errorf("notes[1].Value = %d, want release", notes[1].Value)
	}
	if notes[2].Value == noteRelease {
		t.Errorf("notes[2] should not become a release (advance-by-two)")
	}
}

func TestResolveLNType1PairsEqualValues(t *testing.T) {
	notes := []Note{
		{Bar: 0, Beat: 0.0, Value: 10},
		{Bar: 0, Beat: 0.5, Value: 10},
		{Bar: 0, Beat: 0.75, Value: 20},
	}
	resolveLNType1(notes)

	if !notes[0].Hold {
		t.Errorf("notes[0].Hold = false, want true")
	}
	if notes[1].Value != noteRelease {
		t.Errorf("notes[1].Value = %d, want release", notes[1].Value)
	}
	if notes[2].Hold {
		t.Errorf("notes[2].Hold = true, want false (lone value)")
	}
}

func TestNormalizeFillsDefaultTimeSig(t *testing.T) {
	chart := &Chart{Tables: newIndexTables(), LNObj: -1}
	chart.Tracks.Object[1] = []Note{{Bar: 2, Beat: 0, Value: 1}}

	normalize(chart)

	if chart.MaxBar != 2 {
		t.Errorf("MaxBar = %d, want 2", chart.MaxBar)
	}
	for b := 0; b <= 2; b++ {
		if chart.Tracks.TimeSig[b] != 4 {
			t.Errorf("TimeSig[%d] = %d, want 4", b, chart.Tracks.TimeSig[b])
		}
	}
}
