// Copyright 2024 Harness Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command probe submits a user value to the latency service
// and renders the response. With no -user flag it reads lines
// from stdin, treating each line as one submission.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/probeops/latencyprobe/client"
	"github.com/probeops/latencyprobe/form"
	"github.com/probeops/latencyprobe/logger"
	"github.com/probeops/latencyprobe/render"
)

var (
	// address of the latency service
	endpoint = flag.String("endpoint", client.DefaultEndpoint, "")

	// user value to submit
	user = flag.String("user", "", "")

	// runs with verbose output if true
	verbose = flag.Bool("verbose", false, "")

	// displays the help / usage if true
	help = flag.Bool("help", false, "")
)

func main() {

	// parse the input parameters
	flag.BoolVar(help, "h", false, "")
	flag.BoolVar(verbose, "v", false, "")
	flag.Usage = usage
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	// set the default logger (used by the form)
	slog.SetDefault(logger.New(os.Stderr, *verbose))

	// user may specify the value as a non-flag variable
	if flag.NArg() > 0 {
		user = &flag.Args()[0]
	}

	// the terminal stands in for the output region
	output := &render.Writer{W: os.Stdout}

	// one submission per line read at submission time
	var line string
	f := form.New(
		form.InputFunc(func() string { return line }),
		output,
		client.New(*endpoint),
	)

	// single submission when a value is given up front
	if *user != "" {
		line = *user
		f.Submit(context.Background())
		return
	}

	// otherwise each stdin line is one submission
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line = scanner.Text()
		f.Submit(context.Background())
	}
	if err := scanner.Err(); err != nil {
		log.Fatalln(err)
	}
}

var usage = func() {
	println(`Usage: probe [OPTION]... [USER]

      --endpoint       address of the latency service
      --user           user value to submit
  -v, --verbose        run with verbose output
  -h, --help           display this help and exit

Examples:
  probe --user 3
  echo 3 | probe
`)
}
