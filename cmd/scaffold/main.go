package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vk/packlane/internal/cli"
	"github.com/vk/packlane/internal/ctxlog"
	"github.com/vk/packlane/internal/scaffold"
)

// main is the entrypoint for the packlane project scaffolder.
func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		exitErr := cli.WrapExit(err)
		fmt.Fprintln(os.Stderr, exitErr.Message)
		os.Exit(exitErr.Code)
	}
}

// run encapsulates the scaffolder logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("packlane-scaffold", flag.ContinueOnError)
	flagSet.SetOutput(outW)

	flagSet.Usage = func() {
		fmt.Fprint(outW, `
Packlane scaffolder - instantiate a project template into a new project.

Usage:
  packlane-scaffold [options] TARGET_DIR

Arguments:
  TARGET_DIR
    Directory the new project is written into.

Options:
`)
		flagSet.PrintDefaults()
	}

	templateFlag := flagSet.String("template", "", "Path to the template directory. (required)")
	nameFlag := flagSet.String("name", "", "Project name. Defaults to the target directory name.")
	umdNameFlag := flagSet.String("umd-name", "app", "Global name the project's bundle is exposed under.")
	authorFlag := flagSet.String("author", "", "Author written into the manifest.")
	maxDepthFlag := flagSet.Int("max-depth", 0, "Maximum template tree depth. 0 uses the default of 10.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return &cli.ExitError{Code: cli.ExitUsage, Message: "exactly one TARGET_DIR argument is required"}
	}
	if *templateFlag == "" {
		return &cli.ExitError{Code: cli.ExitUsage, Message: "the -template flag is required"}
	}

	targetDir := flagSet.Arg(0)
	name := *nameFlag
	if name == "" {
		name = filepath.Base(targetDir)
	}

	level := slog.LevelInfo
	if *logLevelFlag == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	templateContext := map[string]string{
		"Name":    name,
		"UMDName": *umdNameFlag,
		"Author":  *authorFlag,
		"Year":    strconv.Itoa(time.Now().Year()),
	}

	if _, err := scaffold.Generate(ctx, scaffold.Options{
		TemplateDir: *templateFlag,
		TargetDir:   targetDir,
		Context:     templateContext,
		MaxDepth:    *maxDepthFlag,
	}); err != nil {
		return err
	}

	manifest := filepath.Join(targetDir, scaffold.ManifestFile)
	patch := map[string]string{"name": name}
	if *authorFlag != "" {
		patch["author"] = *authorFlag
	}
	if err := scaffold.PatchManifest(ctx, manifest, patch); err != nil {
		return err
	}

	logger.Info("🏁 Project ready.", "target", targetDir)
	return nil
}
