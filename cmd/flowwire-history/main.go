// Command flowwire-history inspects and assembles binary workflow history
// files.
//
//	flowwire-history dump run.hist --format yaml
//	flowwire-history build events.yaml -o run.hist
//	flowwire-history check run.hist
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Verbose bool `short:"v" help:"Enable debug logging."`

	Dump  dumpCmd  `cmd:"" help:"Print the records of a history file."`
	Build buildCmd `cmd:"" help:"Encode a YAML event list into a history file."`
	Check checkCmd `cmd:"" help:"Verify that a history file holds only whole records."`
}

func newParser(c *cli, out io.Writer, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("flowwire-history"),
		kong.Description("Inspect and assemble flowwire history files."),
		kong.UsageOnError(),
		kong.Writers(out, os.Stderr),
		kong.BindTo(out, (*io.Writer)(nil)),
	}, opts...)
	return kong.New(c, opts...)
}

func main() {
	var c cli
	parser, err := newParser(&c, os.Stdout)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ctx.Bind(logger)

	ctx.FatalIfErrorf(ctx.Run())
}
