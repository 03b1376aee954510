package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/chriskillpack/bmscore"
	"github.com/fatih/color"
)

var (
	white   = color.New(color.FgWhite).SprintfFunc()
	cyan    = color.New(color.FgCyan).SprintfFunc()
	magenta = color.New(color.FgMagenta).SprintfFunc()
	yellow  = color.New(color.FgYellow).SprintfFunc()
	green   = color.New(color.FgGreen).SprintfFunc()
)

const (
	escape     = "\x1b["
	hideCursor = escape + "?25l"
	showCursor = escape + "?25h"

	rowsBefore = 4
	rowsAfter  = 4
)

// eventColor returns the color function used to render one Event's type.
func eventColor(t bmscore.EventType) func(format string, a ...any) string {
	switch t {
	case bmscore.EventBarline:
		return white
	case bmscore.EventTempoChange:
		return yellow
	case bmscore.EventBgaBaseChange, bmscore.EventBgaLayerChange, bmscore.EventBgaPoorChange:
		return magenta
	case bmscore.EventStop:
		return cyan
	default:
		return green
	}
}

// SequenceViewer scrubs through a Sequence's events with the keyboard,
// the way AudioPlayer walks a live pattern position, but over a
// batch-built event list instead of a playing mixer.
type SequenceViewer struct {
	chart  *bmscore.Chart
	events []bmscore.Event
	cursor int

	ctx      chan struct{}
	stopOnce sync.Once
}

// NewSequenceViewer builds a viewer over the events that pass filter.
func NewSequenceViewer(chart *bmscore.Chart, seq *bmscore.Sequence, filter interface {
	Accept(bmscore.Event) bool
}) *SequenceViewer {
	var events []bmscore.Event
	for _, e := range seq.Events {
		if filter.Accept(e) {
			events = append(events, e)
		}
	}
	return &SequenceViewer{chart: chart, events: events, ctx: make(chan struct{})}
}

// Run hides the cursor, starts the keyboard listener and renders until
// the user quits.
func (v *SequenceViewer) Run() error {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT)
	go func() {
		<-sigch
		v.stop()
	}()

	doneCh := make(chan struct{})
	go func() {
		keyboard.Listen(func(key keys.Key) (stop bool, err error) {
			switch key.Code {
			case keys.CtrlC, keys.Escape:
				v.stop()
				return true, nil
			case keys.Up:
				if v.cursor > 0 {
					v.cursor--
				}
				v.redraw()
			case keys.Down:
				if v.cursor < len(v.events)-1 {
					v.cursor++
				}
				v.redraw()
			case keys.RuneKey:
				if len(key.Runes) > 0 && key.Runes[0] == 'q' {
					v.stop()
					return true, nil
				}
			}
			return false, nil
		})
		close(doneCh)
	}()

	fmt.Print(hideCursor)
	v.render()

	<-v.ctx
	<-doneCh
	fmt.Print(showCursor)
	return nil
}

func (v *SequenceViewer) stop() {
	v.stopOnce.Do(func() { close(v.ctx) })
}

// redraw moves the cursor back to the top of the last frame and
// renders again, the way AudioPlayer repositions before each redraw.
func (v *SequenceViewer) redraw() {
	fmt.Printf(escape+"%dF", rowsBefore+rowsAfter+2)
	v.render()
}

// render draws the events preceding and following the cursor, the way
// AudioPlayer's pattern view draws rows around the playhead.
func (v *SequenceViewer) render() {
	if len(v.events) == 0 {
		fmt.Println(v.chart.Meta.Title, "(no events matched the filter)")
		return
	}

	fmt.Println(v.chart.Meta.Title)
	for i := -rowsBefore; i <= rowsAfter; i++ {
		idx := v.cursor + i
		if idx < 0 || idx >= len(v.events) {
			fmt.Println()
			continue
		}
		v.renderEvent(v.events[idx], i == 0)
	}
}

func (v *SequenceViewer) renderEvent(e bmscore.Event, isCurrent bool) {
	prefix := "    "
	if isCurrent {
		prefix = ">>> "
	}
	c := eventColor(e.Type)
	fmt.Printf("%s%6d %s track=%-3d value=%-5d value_a=%-5d\n",
		prefix, e.Pos, c("%-12s", e.Type), e.Track, e.Value, e.ValueA)
}
