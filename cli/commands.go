package cli

import (
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/pin1yin1/pin1yin1/grammar"
	"github.com/pin1yin1/pin1yin1/loader"
	"github.com/pin1yin1/pin1yin1/parser"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Grammar   string `help:"Keyword and operator tables to parse with (TOML or YAML)." type:"existingfile" placeholder:"FILE"`
	MaxDepth  int    `help:"Nesting ceiling for blocks, brackets, calls and unary operators." default:"${max_depth}"`
}

// Vars are the interpolation variables the command tags refer to.
func Vars() kong.Vars {
	return kong.Vars{
		"max_depth": strconv.Itoa(parser.DefaultMaxDepth),
	}
}

// tables returns the grammar selected by --grammar.
func (g *Globals) tables() (*grammar.Config, error) {
	if g.Grammar == "" {
		return grammar.Default(), nil
	}
	return grammar.Load(g.Grammar)
}

// newLoader builds a loader configured from the global flags.
func (g *Globals) newLoader(opts ...loader.Option) (*loader.Loader, error) {
	cfg, err := g.tables()
	if err != nil {
		return nil, err
	}

	opts = append([]loader.Option{
		loader.WithGrammar(cfg),
		loader.WithMaxDepth(g.MaxDepth),
	}, opts...)

	return loader.New(opts...), nil
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Parse source files and report syntax errors."`
	AST    ASTCmd    `cmd:"" name:"ast" help:"Print the syntax tree of a source file."`
	Fmt    FmtCmd    `cmd:"" help:"Print a source file in canonical layout."`
	Watch  WatchCmd  `cmd:"" help:"Check source files again every time they change."`
	Serve  ServeCmd  `cmd:"" help:"Start the playground web server."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging source files and grammar tables."`
}
