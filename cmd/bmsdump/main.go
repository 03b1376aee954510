// Command bmsdump loads a BMS chart and prints its warnings, metadata,
// index tables and tracks, mirroring the reference loader's own
// inspection tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/chriskillpack/bmscore"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bmsdump: ")

	if len(os.Args) <= 1 {
		log.Fatal("Missing chart filename")
	}

	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	chart, diags, err := bmscore.Load(src)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d warning(s)\n", len(diags))
	for _, d := range diags {
		fmt.Println(d.String())
	}

	fmt.Println("----")
	fmt.Printf("Genre: %s\n", chart.Meta.Genre)
	fmt.Printf("Title: %s\n", chart.Meta.Title)
	fmt.Printf("Artist: %s\n", chart.Meta.Artist)
	fmt.Printf("Subartist: %s\n", chart.Meta.Subartist)
	fmt.Println()

	dumpTables(chart)
	dumpTracks(chart)
}

func dumpTables(chart *bmscore.Chart) {
	for i := 0; i < 1296; i++ {
		if path, ok := chart.Tables.Wav[i]; ok {
			fmt.Printf("Wave %s: %s\n", base36(i), path)
		}
	}
	for i := 0; i < 1296; i++ {
		if path, ok := chart.Tables.Bmp[i]; ok {
			fmt.Printf("Bitmap %s: %s\n", base36(i), path)
		}
	}
	fmt.Println()
}

func dumpTracks(chart *bmscore.Chart) {
	seq, seqDiags := bmscore.ToSequence(chart)
	for _, d := range seqDiags {
		fmt.Println(d.String())
	}

	for _, e := range seq.Events {
		fmt.Printf("%-6d %-12s track=%-3d value=%-5d value_a=%-5d\n",
			e.Pos, e.Type, e.Track, e.Value, e.ValueA)
	}
}

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func base36(idx int) string {
	return string([]byte{base36Alphabet[idx/36], base36Alphabet[idx%36]})
}
