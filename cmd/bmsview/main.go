package main

import (
	"flag"
	"log"
	"os"

	"github.com/chriskillpack/bmscore"
	"github.com/chriskillpack/bmscore/internal/config"
)

var flagFilter = flag.String("filter", "all", "event filter: all, notes, bgm, tempo")

func main() {
	log.SetFlags(0)
	log.SetPrefix("bmsview: ")
	flag.Parse()

	if len(flag.Args()) == 0 {
		log.Fatal("Missing chart filename")
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	chart, diags, err := bmscore.Load(src)
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range diags {
		log.Print(d.String())
	}

	seq, seqDiags := bmscore.ToSequence(chart)
	for _, d := range seqDiags {
		log.Print(d.String())
	}

	filter, err := config.EventFilterFromFlag(*flagFilter)
	if err != nil {
		log.Fatal(err)
	}

	v := NewSequenceViewer(chart, seq, filter)
	if err := v.Run(); err != nil {
		log.Fatal(err)
	}
}
