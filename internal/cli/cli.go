package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/packlane/internal/config"
)

// Options is the parsed CLI surface: the per-field configuration overrides
// plus the ambient logging switches.
type Options struct {
	// Overrides holds the configuration flags the user explicitly set.
	Overrides config.Overrides
	LogFormat string
	LogLevel  string
}

// Parse processes command-line arguments. It returns the parsed options, a
// boolean indicating the program should exit cleanly (help requested), or an
// ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("packlane", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Packlane - a configuration-driven bundler for webapps and libraries.

Configuration is read from packlane.json in the working directory, overridden
by PACKLANE_* environment variables (optionally fed from a local .env file)
and finally by the flags below.

Usage:
  packlane [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	// One flag per configuration field, registered from the schema table.
	for _, f := range config.Fields() {
		if f.Type == cty.Bool {
			flagSet.Bool(f.Flag, false, f.Usage)
		} else {
			flagSet.String(f.Flag, "", f.Usage)
		}
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// Only flags the user actually set may shadow the file layers.
	overrides := config.Overrides{}
	ambient := map[string]bool{"log-format": true, "log-level": true}
	flagSet.Visit(func(fl *flag.Flag) {
		if ambient[fl.Name] {
			return
		}
		overrides[fl.Name] = fl.Value.String()
	})

	return &Options{
		Overrides: overrides,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	}, false, nil
}
