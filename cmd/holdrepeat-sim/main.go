// Command holdrepeat-sim replays scripted input against a hold-repeat
// interaction at a fixed frame rate and prints the signal timeline.
//
//	holdrepeat-sim [-v] scenario.yaml...
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/comalice/holdrepeat/internal/scenario"
)

func main() {
	verbose := flag.Bool("v", false, "log every signal as it is emitted")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] scenario.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var opts scenario.Options
	if *verbose {
		opts.Logger = log.New(os.Stderr, "", log.Lmicroseconds)
	}

	failed := false
	for i, path := range flag.Args() {
		if i > 0 {
			fmt.Println()
		}
		if err := replay(path, opts); err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func replay(path string, opts scenario.Options) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	tl, err := scenario.Run(s, opts)
	if err != nil {
		return err
	}
	return scenario.Report(os.Stdout, s, tl)
}
