// Command lookdemo applies a preset from the shipped catalog to a photo.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"os"

	"github.com/fotolab/look"
	_ "github.com/fotolab/look/gpu"
)

func main() {
	var (
		input   = flag.String("in", "", "input image (PNG or JPEG)")
		output  = flag.String("out", "out.png", "output file")
		preset  = flag.String("preset", "portra400", "preset ID from the catalog")
		seed    = flag.Uint("seed", 0x1337, "noise seed for grain, jitter and light leaks")
		list    = flag.Bool("list", false, "list available presets and exit")
		verbose = flag.Bool("v", false, "verbose engine logging")
	)
	flag.Parse()

	if *verbose {
		look.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *list {
		listPresets()
		return
	}
	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	p, ok := look.PresetByID(*preset)
	if !ok {
		log.Fatalf("Unknown preset %q; run with -list to see the catalog", *preset)
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to decode input: %v", err)
	}

	src := look.FromImage(img, look.OrientationNormal)
	proc := look.NewProcessor(look.WithSeed(uint32(*seed)))
	out, err := proc.Apply(p, src)
	if err != nil {
		log.Fatalf("Failed to process: %v", err)
	}

	if err := out.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Saved %s (%dx%d, preset %s, GPU %s)\n",
		*output, out.Width(), out.Height(), p.ID, look.DetectCapability())
}

func listPresets() {
	for _, cat := range look.Categories() {
		fmt.Printf("%s:\n", cat)
		for _, p := range look.PresetsByCategory(cat) {
			fmt.Printf("  %-14s %s\n", p.ID, p.Name)
		}
	}
}
