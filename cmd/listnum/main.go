// Command listnum numbers extended markdown lists: hash, fancy, example, and
// custom label lists, resolving references to them.
package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

func main() {
	cli := CLI{Globals: Globals{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}}
	ctx := kong.Parse(&cli, cli.options()...)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// configPaths returns the config files loaded before flags are applied:
// the user config, then the nearest project config.
func configPaths() []string {
	paths := []string{"~/.config/listnum.json"}
	if _, path, err := findWDFile(".listnum.json"); err == nil && path != "" {
		paths = append(paths, path)
	}
	return paths
}

// findWDFile finds a named file in the working directory or its nearest
// parent that has one, returning its stat info and absolute path.
// A missing file is not an error: the returned path is then empty.
func findWDFile(name string) (os.FileInfo, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	for {
		path := filepath.Join(wd, name)
		if info, err := os.Stat(path); err == nil {
			return info, path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return nil, "", nil
		}
		wd = parent
	}
}
