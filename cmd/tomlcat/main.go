// Command tomlcat parses one or more TOML documents and prints their flattened
// key/value form, the way a "cat" for TOML would.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	toml "github.com/ccuetoh/toml/pkg"
)

type cli struct {
	Files []string `arg:"" name:"file" help:"TOML file(s) to parse." type:"path"`
}

type result struct {
	path string
	flat map[string]any
	err  error
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("tomlcat"),
		kong.Description("Parse TOML documents and print their flattened form."),
		kong.UsageOnError(),
	)

	if err := run(afero.NewOsFs(), c.Files, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses every file independently and concurrently: each call to toml.Parse owns its own
// lexer and builder tree, so distinct files never share mutable state and can run in parallel.
func run(fs afero.Fs, paths []string, out *os.File) error {
	results := make([]result, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = parseFile(fs, path)
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for _, r := range results {
		if r.err != nil {
			failed = true
			fmt.Fprintf(out, "%s: %v\n", r.path, r.err)
			continue
		}

		enc, err := json.MarshalIndent(r.flat, "", "  ")
		if err != nil {
			failed = true
			fmt.Fprintf(out, "%s: %v\n", r.path, err)
			continue
		}
		fmt.Fprintf(out, "%s:\n%s\n", r.path, enc)
	}

	if failed {
		return fmt.Errorf("one or more files failed to parse")
	}
	return nil
}

func parseFile(fs afero.Fs, path string) result {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return result{path: path, err: err}
	}

	v, err := toml.Parse(string(data))
	if err != nil {
		return result{path: path, err: err}
	}

	return result{path: path, flat: v.Flatten()}
}
