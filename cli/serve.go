package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/pin1yin1/pin1yin1/web"
)

type ServeCmd struct {
	File    string `help:"Source file to serve." arg:""`
	Port    int    `help:"Port to listen on." default:"8080"`
	Create  bool   `help:"Automatically create file if it doesn't exist (no confirmation prompt)." short:"c"`
	NoWatch bool   `help:"Do not reload clients when the file changes."`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runCtx, reportTelemetry := startTelemetry(runCtx, ctx, globals, "serve "+filepath.Base(cmd.File))
	defer reportTelemetry()

	file, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if err := cmd.ensureFile(ctx.Stdout, file); err != nil {
		return err
	}

	ldr, err := globals.newLoader()
	if err != nil {
		return err
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.NewWithVersion(cmd.Port, file, version, commitSHA)
	server.Loader = ldr
	server.WatchEnabled = !cmd.NoWatch

	printInfof(ctx.Stdout, "Starting server on http://%s:%d", server.Host, cmd.Port)
	printInfof(ctx.Stdout, "Serving: %s", pathStyle.Render(file))

	return server.Start(runCtx)
}

// ensureFile creates an empty file when it does not exist yet, after asking
// unless --create is set.
func (cmd *ServeCmd) ensureFile(w io.Writer, file string) error {
	_, err := os.Stat(file)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access file: %w", err)
	}

	shouldCreate := cmd.Create
	if !shouldCreate {
		confirmed, err := promptYesNo(fmt.Sprintf("File %q does not exist. Create it?", file))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		shouldCreate = confirmed
	}

	if !shouldCreate {
		return fmt.Errorf("file does not exist: %s", file)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := os.WriteFile(file, []byte(""), 0600); err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	printInfof(w, "Created empty file: %s", pathStyle.Render(file))
	return nil
}
