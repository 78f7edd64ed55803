package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"os"
	"strings"

	"envswitch-icons/internal/icon"
)

type inputList []string

func (l *inputList) String() string {
	return strings.Join(*l, ",")
}

func (l *inputList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	var inputs inputList
	flag.Var(&inputs, "in", "input PNG path (repeatable)")
	outPath := flag.String("out", "", "output ICO path")
	flag.Parse()

	if len(inputs) == 0 || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: png2ico -in <icon16.png> [-in <icon32.png> ...] -out <output.ico>")
		os.Exit(2)
	}

	entries := make([]icon.ICOEntry, 0, len(inputs))
	for _, in := range inputs {
		entry, err := readEntry(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", in, err)
			os.Exit(1)
		}
		entries = append(entries, entry)
	}

	icoData, err := icon.BuildICO(entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build ico: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, icoData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write ico: %v\n", err)
		os.Exit(1)
	}
}

// readEntry keeps the PNG bytes as-is; ICO files embed PNG payloads directly.
func readEntry(path string) (icon.ICOEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return icon.ICOEntry{}, fmt.Errorf("read png: %w", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return icon.ICOEntry{}, fmt.Errorf("decode png config: %w", err)
	}
	return icon.ICOEntry{Width: cfg.Width, Height: cfg.Height, PNG: data}, nil
}
