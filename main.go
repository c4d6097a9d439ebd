package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"scribe/config"
	"scribe/editor"
)

const version = "0.3.0"

func usage() {
	fmt.Fprintf(os.Stderr, "usage: scribe [-version] <file>\n")
	flag.PrintDefaults()
}

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("scribe " + version)
		return
	}
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v (using defaults)\n", config.ConfigPath(), err)
	}

	var logger *log.Logger
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot open log file: %v\n", err)
		} else {
			defer f.Close()
			logger = log.New(f, "[scribe] ", log.LstdFlags)
		}
	}

	if err := run(cfg, logger, path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger, path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	// Leave the terminal usable even if anything below panics.
	defer func() {
		r := recover()
		screen.Fini()
		if r != nil {
			panic(r)
		}
	}()

	session := editor.New(cfg, screen, logger)
	// An unreadable file is reported on the status bar and the session
	// starts with an empty, unnamed buffer.
	_ = session.Open(path)
	return session.Run()
}
