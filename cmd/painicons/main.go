package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pain-lang/painicons/images"
	"github.com/pain-lang/painicons/internal/config"
	"github.com/pain-lang/painicons/internal/convert"
	"github.com/pain-lang/painicons/internal/iconset"
	"github.com/pain-lang/painicons/internal/master"
)

func main() {
	cfgPath := flag.String("config", config.ConfigName, "path to the override file")
	srcDir := flag.String("src", "", "override source directory")
	icoDir := flag.String("out-ico", "", "override ICO output directory")
	icnsDir := flag.String("out-icns", "", "override ICNS output directory")
	identity := flag.String("identity", "", "convert a single identity (pain or lsp)")
	regen := flag.Bool("regen", false, "regenerate sources from the embedded master artwork first")
	masterPath := flag.String("master", "", "regenerate one identity's sources from this PNG (requires -identity)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		exitErr(err)
	}
	if *srcDir != "" {
		cfg.SourceDir = *srcDir
	}
	if *icoDir != "" {
		cfg.ICODir = *icoDir
	}
	if *icnsDir != "" {
		cfg.ICNSDir = *icnsDir
	}
	if *identity != "" {
		cfg.Identities = []string{*identity}
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "painicons: ", 0)
	}

	runner := convert.New(cfg, logger)
	if *masterPath != "" {
		if *identity == "" {
			exitErr(fmt.Errorf("-master requires -identity"))
		}
		art, err := master.Load(*masterPath)
		if err != nil {
			exitErr(err)
		}
		if err := master.Generate(cfg.SourceDir, *identity, art, iconset.Resolutions); err != nil {
			exitErr(err)
		}
	} else if *regen {
		for _, id := range runner.Identities() {
			data := images.Master(id)
			if data == nil {
				exitErr(fmt.Errorf("no embedded master artwork for identity %q", id))
			}
			art, err := master.Decode(data)
			if err != nil {
				exitErr(err)
			}
			if err := master.Generate(cfg.SourceDir, id, art, iconset.Resolutions); err != nil {
				exitErr(err)
			}
		}
	}

	report, err := runner.Run()
	if err != nil {
		exitErr(err)
	}
	printReport(report)
}

func printReport(report *convert.Report) {
	for _, res := range report.Results {
		switch res.Status {
		case convert.StatusPacked:
			fmt.Printf("%s: packed %s (%s)\n", res.Identity, res.Path, sizeList(res.Sizes))
		case convert.StatusAwaitingExternalTool:
			fmt.Printf("%s: staged %s, run again on macOS to produce the .icns\n", res.Identity, res.Path)
		}
	}
	if report.Incomplete() {
		fmt.Println("note: macOS packing deferred; the staged iconsets are complete")
	}
}

func sizeList(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, " ")
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
