// Package cli implements the tessbridge command line.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tessbridge/internal/config"
	"github.com/ironsheep/tessbridge/internal/frame"
	"github.com/ironsheep/tessbridge/internal/ocr"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError marks command line mistakes.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an Execute error to the process exit status: 0 on success,
// 2 for usage errors and 1 for everything else, including a missing input
// file or engine.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitFailure
}

// app carries the state shared by every command after flags are parsed.
type app struct {
	cfg    config.Config
	client *ocr.Client
	opts   ocr.Options
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tessbridge [-l lang] input_file",
		Short: "Extract text from images with tesseract",
		Long: "tessbridge drives an installed tesseract executable and prints the recognized\n" +
			"text of input_file. Subcommands expose boxes, TSV data, orientation and script\n" +
			"detection, PDF, hOCR and ALTO output.",
		Args: exactFile,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := inputFile(args[0])
			if err != nil {
				return err
			}
			out, err := a.client.ImageToString(cmd.Context(), path, a.opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := root.PersistentFlags()
	flags.StringP("lang", "l", "", "tesseract language, e.g. eng or eng+fra")
	flags.String("log-level", "INFO", "The logging level for the command (overrides "+config.EnvLogLevel+")")
	flags.String("config", "", "path to a YAML config file")
	flags.String("env-file", "", "path to a .env file (default ./.env)")
	flags.String("tesseract-cmd", "", "tesseract executable name or path")
	flags.StringP("engine-config", "c", "", "extra tesseract arguments, e.g. \"--psm 6\"")
	flags.Duration("timeout", 0, "maximum engine run time (0 disables)")
	flags.Int("nice", 0, "run tesseract under nice -n N (ignored on Windows)")

	root.AddCommand(
		newBoxesCmd(a),
		newDataCmd(a),
		newOSDCmd(a),
		newDocumentCmd(a, "pdf", "Write a searchable PDF"),
		newDocumentCmd(a, "hocr", "Write an hOCR document"),
		newDocumentCmd(a, "alto", "Write an ALTO XML document"),
		newVersionCmd(a),
		newLangsCmd(a),
	)
	return root
}

// setup resolves configuration, installs the logger and creates the client.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfgPath, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")

	cfg, err := config.Load(cfgPath, envFile)
	if err != nil {
		return err
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("lang") {
		cfg.Lang, _ = flags.GetString("lang")
	}
	if flags.Changed("tesseract-cmd") {
		cfg.TesseractCmd, _ = flags.GetString("tesseract-cmd")
	}
	if flags.Changed("engine-config") {
		cfg.EngineConfig, _ = flags.GetString("engine-config")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("nice") {
		cfg.Nice, _ = flags.GetInt("nice")
	}
	if err := cfg.Validate(); err != nil {
		return &UsageError{Err: err}
	}

	opts := &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
	slog.SetDefault(logger)

	cc, err := cfg.ClientConfig(logger)
	if err != nil {
		return err
	}
	cc.Frames = &frame.Parser{}

	a.cfg = cfg
	a.opts = cfg.Options()
	a.client = ocr.NewClient(cc)
	return nil
}

// exactFile requires one input file argument.
func exactFile(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &UsageError{Err: fmt.Errorf("usage: %s", cmd.UseLine())}
	}
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &UsageError{Err: err}
	}
	return nil
}

// inputFile checks that path names an existing file.
func inputFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return path, nil
}
