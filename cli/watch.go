package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"

	"github.com/pin1yin1/pin1yin1/loader"
)

// WatchCmd checks files once and again on every change until interrupted.
type WatchCmd struct {
	Files []string      `help:"Source files to watch." arg:"" type:"existingfile"`
	Delay time.Duration `help:"How long to wait for a burst of changes to settle." default:"100ms"`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ldr, err := globals.newLoader(loader.WithWatchDelay(cmd.Delay))
	if err != nil {
		return err
	}

	return cmd.watch(runCtx, ldr, ctx.Stdout, ctx.Stderr)
}

func (cmd *WatchCmd) watch(ctx context.Context, ldr *loader.Loader, stdout, stderr io.Writer) error {
	cmd.check(ctx, ldr, cmd.Files, stdout, stderr)
	printInfof(stdout, "Watching %d file(s), press Ctrl+C to stop", len(cmd.Files))

	return ldr.Watch(ctx, cmd.Files, func(changed []string) {
		cmd.check(ctx, ldr, changed, stdout, stderr)
	})
}

// check parses files and reports each one on its own line.
func (cmd *WatchCmd) check(ctx context.Context, ldr *loader.Loader, files []string, stdout, stderr io.Writer) {
	results, err := ldr.LoadAll(ctx, files...)
	if err != nil {
		return
	}

	renderer := NewErrorRenderer(nil)
	for _, res := range results {
		if res.Err != nil {
			_, _ = fmt.Fprintln(stderr, renderer.Render(res.Err))
			printError(stderr, fmt.Sprintf("%s has errors", res.Filename))
			continue
		}
		printSuccess(stdout, fmt.Sprintf("%s ok", pathStyle.Render(res.Filename)))
	}
}
