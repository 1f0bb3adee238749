// Command casl2as assembles a CASL II source file into a COMET II
// object file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/comet2/casl2comet/encoder"
	"github.com/comet2/casl2comet/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("casl2as", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dump := fs.Bool("a", false, "print an annotated listing instead of assembling")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintln(stderr, "usage: casl2as [-a] input.cas [output.com]")
		return 2
	}

	input := rest[0]
	output := rest[0]
	if len(rest) >= 2 {
		output = rest[1]
	} else {
		ext := filepath.Ext(output)
		output = strings.TrimSuffix(output, ext) + ".com"
	}

	src, err := os.ReadFile(input) // #nosec G304 -- user-specified source path
	if err != nil {
		fmt.Fprintf(stderr, "casl2as: %v\n", err)
		return 1
	}

	if *dump {
		return printListing(input, string(src), stdout, stderr)
	}

	var out bytes.Buffer
	errs, err := encoder.Assemble(input, string(src), &out)
	if errs.HasErrors() {
		fmt.Fprint(stderr, errs.Error())
	} else if err != nil {
		fmt.Fprintf(stderr, "casl2as: %v\n", err)
	}
	if err != nil {
		return 1
	}

	if err := os.WriteFile(output, out.Bytes(), 0o644); err != nil { // #nosec G306 -- object file, not a secret
		fmt.Fprintf(stderr, "casl2as: %v\n", err)
		return 1
	}
	return 0
}

func printListing(filename, src string, stdout, stderr *os.File) int {
	prog, errs := parser.Parse(filename, src)
	if errs.HasErrors() {
		fmt.Fprint(stderr, errs.Error())
		return 1
	}
	_, image, err := encoder.EncodeProgram(prog)
	if err != nil {
		fmt.Fprintf(stderr, "casl2as: %v\n", err)
		return 1
	}

	for _, s := range prog.Stmts {
		var words []uint16
		if s.Size > 0 && int(s.Addr)+s.Size <= len(image) {
			words = image[s.Addr : int(s.Addr)+s.Size]
		}
		fmt.Fprintf(stdout, "%04X  %-20s %5d  %s\n", s.Addr, wordsHex(words), s.Line, s.Src)
	}
	return 0
}

func wordsHex(words []uint16) string {
	var sb strings.Builder
	for _, w := range words {
		fmt.Fprintf(&sb, "%04X ", w)
	}
	return sb.String()
}
