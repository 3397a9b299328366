// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command cordyc compiles a tree of Cordy units.
//
// Usage:
//
//	cordyc [-prelude dir,...] [-dump] [-quiet] root
//
// Diagnostics are written to the standard error. The IR of the compiled
// modules is written to the standard output if -dump is set. The exit
// status is 1 if any error has been reported.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/cordy-lang/cordy/build/diag"
	"github.com/cordy-lang/cordy/build/driver"
	"github.com/cordy-lang/cordy/tools/cordyflag"
)

var (
	preludes = cordyflag.StringList("prelude", "comma separated list of directories compiled before the root")
	dump     = flag.Bool("dump", false, "write the IR of the compiled modules on the standard output")
	quiet    = flag.Bool("quiet", false, "only report errors")
)

func run(root string) (int, error) {
	sink := diag.LogSink{Logger: log.New(os.Stderr, "", 0)}
	if *quiet {
		sink.Min = diag.Error
	}
	var preludeFS []fs.FS
	for _, dir := range *preludes {
		preludeFS = append(preludeFS, os.DirFS(dir))
	}
	drv, err := driver.New(driver.Options{Sink: sink, Preludes: preludeFS})
	if err != nil {
		return 0, err
	}
	units, err := drv.CompileTree(os.DirFS(root), ".")
	if *dump {
		for _, unit := range units {
			fmt.Println(unit.Module)
		}
	}
	return drv.ErrorCount(), err
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] root\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	count, err := run(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if count > 0 {
		log.Printf("%d error(s)", count)
		os.Exit(1)
	}
}
