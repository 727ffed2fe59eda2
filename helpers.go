package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

const (
	modeRender  = "render"
	modeServe   = "serve"
	modeRemote  = "remote"
	modeExplore = "explore"
)

var modes = []string{modeRender, modeServe, modeRemote, modeExplore}

var (
	mode, settingsFile string
)

func parseArguments() {
	flag.StringVar(&mode, "mode", modeRender, fmt.Sprintf("What to run: %s", strings.Join(modes, ", ")))
	flag.StringVar(&settingsFile, "settings", "", "Json file with settings for the mode, defaults are used when empty")

	flag.Parse()

	for _, m := range modes {
		if mode == m {
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Unknown mode %q, please pick one of: %s\n", mode, strings.Join(modes, ", "))
	flag.Usage()
	os.Exit(2)
}
