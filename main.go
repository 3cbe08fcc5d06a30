// Copyright © 2025 OSINTAMI. This is not yours.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/osintami/phototools/common"
	"github.com/osintami/sloan/log"
)

func main() {

	// handle command line arguments
	var inPath, outPath, selector, format string
	var factor int
	var window time.Duration
	var debug bool

	flag.StringVar(&inPath, "in", "DCIM", "camera or card dump to read from")
	flag.StringVar(&outPath, "out", "archive", "archive root")
	flag.StringVar(&selector, "select", "all", "all, duplicates, duplicates-hash, takes, raw-jpeg, instagram or panoramas")
	flag.StringVar(&format, "format", common.DefaultArchiveFormat, "strftime pattern of the archive subdirectory")
	flag.IntVar(&factor, "factor", 10, "largest visual distance inside a take")
	flag.DurationVar(&window, "window", 180*time.Second, "longest time span of a take")
	flag.BoolVar(&debug, "debug", false, "trace level logging")

	flag.Parse()

	// initialize logging interface
	level := "ERROR"
	if debug {
		level = "DEBUG"
	}
	log.InitLogger(".", "phototools.log", level, false)

	opts := common.DefaultOptions()
	opts.TakeWindow = window
	tools := common.NewPhotoTools(opts)

	sel, err := selectorFor(tools, selector, factor)
	if err != nil {
		log.Fatal().Err(err).Str("phototools", "flags").Msg("bad selector")
		return
	}

	stats, err := tools.Move(sel, inPath, outPath, format)
	if err != nil {
		log.Fatal().Err(err).Str("phototools", inPath).Msg("archive failed")
		return
	}

	fmt.Println("   INPUT: ", inPath)
	fmt.Println("  OUTPUT: ", outPath)
	fmt.Println("  SELECT: ", selector)
	fmt.Println("   MOVED: ", stats.Moved)
	fmt.Println(" SKIPPED: ", stats.Skipped)
	fmt.Println("  FAILED: ", stats.Failed)
	fmt.Println("  PRUNED: ", len(stats.Pruned))

	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func selectorFor(tools *common.PhotoTools, name string, factor int) (common.Selector, error) {
	switch name {
	case "all":
		return tools.All, nil
	case "duplicates":
		return tools.Duplicates, nil
	case "duplicates-hash":
		return tools.DuplicatesByHash, nil
	case "takes":
		return tools.Takes(factor), nil
	case "raw-jpeg":
		return tools.RawWithJPEG, nil
	case "instagram":
		return tools.Instagram, nil
	case "panoramas":
		return tools.Panoramas, nil
	}
	return nil, fmt.Errorf("unknown selector %q", name)
}
