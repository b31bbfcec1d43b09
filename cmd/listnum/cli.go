package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcorbin/listnum/internal/logging"
	"github.com/jcorbin/listnum/pipeline"
)

// CLI defines the command line interface.
type CLI struct {
	Globals

	Scan    ScanCmd    `cmd:"" help:"Dump the classification of every line."`
	Check   CheckCmd   `cmd:"" help:"Report strict mode violations and duplicate labels."`
	Resolve ResolveCmd `cmd:"" help:"Substitute numbers for markers and references."`
	HTML    HTMLCmd    `cmd:"" name:"html" help:"Render documents to HTML."`
	Labels  LabelsCmd  `cmd:"" help:"List, and optionally store, label registries."`
	Next    NextCmd    `cmd:"" help:"Print the marker that continues a list item."`
}

// Globals are flags shared by every command.
type Globals struct {
	Config         kong.ConfigFlag `help:"Load flag defaults from a JSON file." type:"path"`
	Strict         bool            `help:"Require blank lines around fancy lists, and two spaces after single capital letter markers."`
	ExtendedLabels bool            `name:"extended-labels" help:"Enable {::label} custom label markers and references."`
	LogLevel       string          `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})."`
	LogFormat      string          `name:"log-format" default:"text" enum:"text,json" help:"Log format (${enum})."`

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	workspace *pipeline.Workspace
}

func (cli *CLI) options() []kong.Option {
	return []kong.Option{
		kong.Name("listnum"),
		kong.Description("Number extended markdown lists and resolve references to them."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(kong.JSON, configPaths()...),
	}
}

// errDiagnostics is returned by commands that reported problems.
var errDiagnostics = errors.New("problems found")

var (
	fileStyle    = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	displayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
)

func (g *Globals) config() pipeline.Config {
	return pipeline.Config{
		StrictMode:     g.Strict,
		ExtendedLabels: g.ExtendedLabels,
	}
}

func (g *Globals) logger() *slog.Logger {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		level = logging.LevelWarn
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		format = logging.FormatText
	}
	w := g.stderr
	if w == nil {
		w = io.Discard
	}
	return logging.Init(level, format, w)
}

// AfterApply initializes the workspace after flags have been parsed.
func (g *Globals) AfterApply() error {
	g.workspace = pipeline.NewWorkspace(g.config(), g.logger())
	return nil
}

func (g *Globals) storeFor(name string) store {
	if name == "-" {
		return stdStore{in: g.stdin, out: g.stdout}
	}
	return fsStore{filename: name}
}

// document is one loaded and recomputed input.
type document struct {
	name string
	src  string
	res  *pipeline.Result
}

// load reads and recomputes a named document.
func (g *Globals) load(name string) (document, error) {
	src, err := readStore(g.storeFor(name))
	if err != nil {
		return document{}, fmt.Errorf("reading %v: %w", name, err)
	}
	res, err := g.workspace.Open(name).Recompute(pipeline.NewText(src))
	if err != nil {
		return document{}, fmt.Errorf("numbering %v: %w", name, err)
	}
	return document{name: name, src: src, res: res}, nil
}
