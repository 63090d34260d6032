// Command surfacesnap replays a scripted input sequence against a surface
// and writes the final frame as a PNG.
//
// A script has one command per line, quoted like a shell command:
//
//	size 800 600
//	item a 0 0 160 80
//	path wire 160,40 320,40
//	down 1 20 20 move=a
//	move 1 120 60
//	up 1 120 60
//	wheel -120 400 300 mode=line
//	key ArrowRight alt
//	center item a
//	wait 500
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/inamate/inamate/surface-go/internal/config"
	"github.com/inamate/inamate/surface-go/internal/export"
)

func main() {
	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage: %s [flags] [script]\n", os.Args[0])
		fmt.Fprintf(w, "Reads the script from stdin when no file is given.\n\n")
		flag.PrintDefaults()
	}
	out := flag.String("o", "surface.png", "output PNG `file`")
	events := flag.Bool("events", false, "print emitted events as JSON lines")
	frame := flag.Bool("frame", false, "print the final frame as JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			slog.Error("open script", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	p, err := newPlayer(cfg.Surface.Options())
	if err != nil {
		slog.Error("create surface", "error", err)
		os.Exit(1)
	}
	if err := p.Run(in); err != nil {
		slog.Error("replay script", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if *events {
		for _, ev := range p.log {
			enc.Encode(ev)
		}
	}
	if *frame {
		enc.Encode(p.last)
	}

	img := export.Render(p.size, p.last, p.s.Items())
	f, err := os.Create(*out)
	if err != nil {
		slog.Error("create output", "error", err)
		os.Exit(1)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		slog.Error("encode png", "error", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		slog.Error("write png", "error", err)
		os.Exit(1)
	}
	slog.Info("snapshot written", "file", *out, "state", p.last.State, "zoom", p.last.Zoom, "items", len(p.s.Items()))
}
