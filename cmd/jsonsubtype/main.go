// Command jsonsubtype decides whether every instance of one JSON Schema
// document is also an instance of a second, printing True or False.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	jsonsubtype "github.com/kaptinlin/jsonsubtype"
)

type output struct {
	IsSubtype bool     `json:"is_subtype" yaml:"is_subtype"`
	Reasons   []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("jsonsubtype", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "output format: text, json, or yaml")
	reasons := fs.Bool("reasons", false, "include containment failure reasons")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: jsonsubtype [--format text|json|yaml] [--reasons] <lhs.json> <rhs.json>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	lhs, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, "jsonsubtype:", err)
		return 1
	}
	rhs, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		fmt.Fprintln(stderr, "jsonsubtype:", err)
		return 1
	}

	result, err := jsonsubtype.IsSubschemaWithReason(lhs, rhs)
	if err != nil {
		fmt.Fprintln(stderr, "jsonsubtype:", err)
		return 1
	}

	out := output{IsSubtype: result.IsSubtype}
	if *reasons {
		out.Reasons = result.Reasons
	}

	switch *format {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, "jsonsubtype:", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			fmt.Fprintln(stderr, "jsonsubtype:", err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
	default:
		if result.IsSubtype {
			fmt.Fprintln(stdout, "True")
		} else {
			fmt.Fprintln(stdout, "False")
		}
		if *reasons {
			for _, r := range out.Reasons {
				fmt.Fprintln(stdout, " -", r)
			}
		}
	}

	return 0
}
