package ocr

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	version "github.com/hashicorp/go-version"
)

// DefaultCommand is the executable used when ClientConfig.Command is empty.
const DefaultCommand = "tesseract"

var langPattern = regexp.MustCompile(`^[a-z_]+$`)

// ClientConfig configures a Client. The zero value is usable.
type ClientConfig struct {
	// Command is the tesseract executable name or path.
	Command string

	// TempDir holds staged inputs and engine outputs. Empty means os.TempDir().
	TempDir string

	// Background is the colour transparent inputs are flattened onto.
	// Nil means white.
	Background color.Color

	// Frames builds OutputDataFrame results. Nil disables that output type.
	Frames FrameParser

	// Logger receives debug and warning records. Nil means slog.Default().
	Logger *slog.Logger

	// Fatal is called when the engine reports an unusable version. The
	// default prints msg to stderr and exits the process with status 1.
	Fatal func(msg string)
}

// Options are the per-call engine parameters.
type Options struct {
	// Lang is passed as -l when non-empty, e.g. "eng" or "eng+fra".
	Lang string

	// Config is extra command line arguments for the engine, split with
	// shell quoting rules, e.g. "--psm 6 -c tessedit_char_whitelist=0123456789".
	Config string

	// Nice runs the engine under nice(1) when non-zero. Ignored on Windows.
	Nice int

	// Timeout bounds the engine run. Zero means no limit.
	Timeout time.Duration

	// Type selects the returned representation.
	Type OutputType
}

// Client drives a tesseract executable. It is safe for concurrent use; each
// call stages its own temporary files.
type Client struct {
	cmdMu sync.RWMutex
	cmd   string

	stager stager
	frames FrameParser
	logger *slog.Logger
	fatal  func(msg string)

	versionMu sync.Mutex
	version   *version.Version

	langMu    sync.Mutex
	languages []string
	langDone  bool
}

// NewClient creates a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		cmd:    cfg.Command,
		stager: stager{dir: cfg.TempDir, background: cfg.Background},
		frames: cfg.Frames,
		logger: cfg.Logger,
		fatal:  cfg.Fatal,
	}
	if c.cmd == "" {
		c.cmd = DefaultCommand
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.fatal == nil {
		c.fatal = exitFatal
	}
	return c
}

func exitFatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

// Command returns the executable the client runs.
func (c *Client) Command() string {
	c.cmdMu.RLock()
	defer c.cmdMu.RUnlock()
	return c.cmd
}

// SetCommand changes the executable for subsequent calls. Cached version and
// language results are kept; pass refresh to Version or Languages to requery.
func (c *Client) SetCommand(cmd string) {
	c.cmdMu.Lock()
	c.cmd = cmd
	c.cmdMu.Unlock()
}

// ImageToString performs OCR on input and returns the recognized text.
//
// Parameters:
//   - ctx: Cancels the run. The engine is terminated when ctx is done.
//   - input: A file path, an *imaging.Picture, an image.Image or encoded
//     image bytes. Paths are handed to the engine unchanged.
//   - opts: Language, extra engine config, nice level, timeout and the
//     result shape in opts.Type.
//
// Returns:
//   - *Output: Text for OutputString, Raw for OutputBytes, or Fields
//     {"text": <text>} for OutputDict.
//   - error: ErrEngineNotFound, ErrTimeout, *ExecutionError, or
//     ErrUnsupportedOutputType for the other output types.
//
// # Text Handling
//
// Trailing whitespace and the engine's closing form feed are removed. Leading
// whitespace and interior line breaks are kept as the engine wrote them.
func (c *Client) ImageToString(ctx context.Context, input any, opts Options) (*Output, error) {
	switch opts.Type {
	case OutputString, OutputBytes, OutputDict:
	default:
		return nil, unsupportedType(opts.Type, KindText)
	}

	text, raw, err := c.runAndGetOutput(ctx, input, KindText, opts, opts.Config, opts.Type == OutputBytes)
	if err != nil {
		return nil, err
	}

	out := &Output{Type: opts.Type, Kind: KindText}
	switch opts.Type {
	case OutputBytes:
		out.Raw = raw
	case OutputDict:
		out.Fields = map[string]any{"text": text}
	default:
		out.Text = text
	}
	return out, nil
}

// ImageToBoxes returns recognized characters and their box boundaries.
//
// OutputDict decodes the box file into char, left, bottom, right, top and
// page columns.
func (c *Client) ImageToBoxes(ctx context.Context, input any, opts Options) (*Output, error) {
	switch opts.Type {
	case OutputString, OutputBytes, OutputDict:
	default:
		return nil, unsupportedType(opts.Type, KindBox)
	}

	config := joinConfig(opts.Config, engineConfig(KindBox))
	text, raw, err := c.runAndGetOutput(ctx, input, KindBox, opts, config, opts.Type == OutputBytes)
	if err != nil {
		return nil, err
	}

	out := &Output{Type: opts.Type, Kind: KindBox}
	switch opts.Type {
	case OutputBytes:
		out.Raw = raw
	case OutputDict:
		out.Dict = BoxesToDict(text)
	default:
		out.Text = text
	}
	return out, nil
}

// ImageToData returns word boxes, confidences and layout from the TSV
// output. Requires tesseract >= 3.05.
//
// Parameters:
//   - ctx: Cancels the version query and the run.
//   - input: Any input accepted by ImageToString.
//   - opts: Engine options. opts.Type selects OutputString, OutputBytes,
//     OutputDict or OutputDataFrame.
//
// Returns:
//   - *Output: Dict for OutputDict, Frame for OutputDataFrame, otherwise
//     Text or Raw holding the TSV as written by the engine.
//   - error: A *VersionError matching ErrTSVNotSupported on old engines,
//     ErrTabularUnavailable when OutputDataFrame is asked for without a
//     FrameParser, or any run error.
//
// # Columns
//
// OutputDict keeps every TSV column in header order. Numeric cells become
// ints (confidences are truncated); the text column stays a string. A last
// row missing its empty text cell is padded.
func (c *Client) ImageToData(ctx context.Context, input any, opts Options) (*Output, error) {
	switch opts.Type {
	case OutputString, OutputBytes, OutputDict:
	case OutputDataFrame:
		if c.frames == nil {
			return nil, ErrTabularUnavailable
		}
	default:
		return nil, unsupportedType(opts.Type, KindTSV)
	}

	if err := c.requireVersion(ctx, "TSV", MinVersion); err != nil {
		return nil, err
	}

	asBytes := opts.Type == OutputBytes || opts.Type == OutputDataFrame
	config := joinConfig(engineConfig(KindTSV), opts.Config)
	text, raw, err := c.runAndGetOutput(ctx, input, KindTSV, opts, config, asBytes)
	if err != nil {
		return nil, err
	}

	out := &Output{Type: opts.Type, Kind: KindTSV}
	switch opts.Type {
	case OutputBytes:
		out.Raw = raw
	case OutputDict:
		out.Dict = FileToDict(text, "\t", -1)
	case OutputDataFrame:
		frame, err := c.frames.ParseFrame(raw, '\t')
		if err != nil {
			return nil, fmt.Errorf("failed to build data frame: %w", err)
		}
		out.Frame = frame
	default:
		out.Text = text
	}
	return out, nil
}

// ImageToOSD runs orientation and script detection. Lang defaults to "osd".
//
// OutputDict returns Fields with page_num, orientation, rotate,
// orientation_conf, script and script_conf for every line that parsed.
func (c *Client) ImageToOSD(ctx context.Context, input any, opts Options) (*Output, error) {
	switch opts.Type {
	case OutputString, OutputBytes, OutputDict:
	default:
		return nil, unsupportedType(opts.Type, KindOSD)
	}
	if opts.Lang == "" {
		opts.Lang = "osd"
	}

	config := joinConfig("--psm 0", opts.Config)
	text, raw, err := c.runAndGetOutput(ctx, input, KindOSD, opts, config, opts.Type == OutputBytes)
	if err != nil {
		return nil, err
	}

	out := &Output{Type: opts.Type, Kind: KindOSD}
	switch opts.Type {
	case OutputBytes:
		out.Raw = raw
	case OutputDict:
		out.Fields = OSDToDict(text)
	default:
		out.Text = text
	}
	return out, nil
}

// ImageToPDFOrHOCR returns a searchable PDF or an hOCR document.
//
// Parameters:
//   - kind: KindPDF or KindHOCR. Any other kind fails with
//     ErrUnsupportedExtension before the engine is started.
//   - opts: Engine options. opts.Type is ignored; the document is always
//     returned as bytes.
//
// Returns:
//   - []byte: The document exactly as the engine wrote it.
//   - error: Non-nil if staging, the run or reading the output fails.
func (c *Client) ImageToPDFOrHOCR(ctx context.Context, input any, kind OutputKind, opts Options) ([]byte, error) {
	config := opts.Config
	switch kind {
	case KindPDF:
	case KindHOCR:
		config = joinConfig(engineConfig(KindHOCR), config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, kind)
	}

	_, raw, err := c.runAndGetOutput(ctx, input, kind, opts, config, true)
	return raw, err
}

// ImageToALTOXML returns an ALTO XML document. Requires tesseract >= 4.1.0.
func (c *Client) ImageToALTOXML(ctx context.Context, input any, opts Options) ([]byte, error) {
	if err := c.requireVersion(ctx, "ALTO", ALTOVersion); err != nil {
		return nil, err
	}

	config := joinConfig(engineConfig(KindALTO), opts.Config)
	_, raw, err := c.runAndGetOutput(ctx, input, KindALTO, opts, config, true)
	return raw, err
}

// RunMultipleOutput produces several output kinds from a single engine run.
//
// Parameters:
//   - input: Any input accepted by ImageToString.
//   - kinds: The outputs to produce, at least one. Duplicates are allowed.
//   - opts: Engine options. opts.Type may be OutputBytes to get every
//     output as Raw.
//
// Returns:
//   - []*Output: One entry per requested kind in request order. PDF and
//     hOCR are always Raw; the others are Text unless opts.Type is
//     OutputBytes.
//   - error: ErrUnsupportedExtension for an unknown kind, or any run error.
//
// # Engine Flags
//
// Kinds that the engine enables through -c variables (tsv, hocr, alto) or
// config files (box, osd) are never passed as positional config names. All
// -c variables precede the config files on the command line.
func (c *Client) RunMultipleOutput(ctx context.Context, input any, kinds []OutputKind, opts Options) (_ []*Output, err error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: no output kinds requested", ErrUnsupportedExtension)
	}
	for _, k := range kinds {
		if _, ok := ParseOutputKind(string(k)); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, k)
		}
	}

	staged, err := c.stager.stage(input)
	if err != nil {
		return nil, err
	}
	defer c.release(staged, &err)

	req := c.newRequest(staged, joinKinds(kinds), opts, joinConfig(engineConfig(kinds...), opts.Config))
	if err := c.execute(ctx, req); err != nil {
		return nil, err
	}

	outputs := make([]*Output, 0, len(kinds))
	for _, k := range kinds {
		asBytes := k.binary() || opts.Type == OutputBytes
		text, raw, err := readOutput(staged.OutputPath(k), asBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s output: %w", k, err)
		}
		out := &Output{Type: OutputString, Kind: k, Text: text}
		if asBytes {
			out = &Output{Type: OutputBytes, Kind: k, Raw: raw}
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// Version returns the installed engine version.
//
// Parameters:
//   - ctx: Cancels the `tesseract --version` query.
//   - refresh: Query the engine again instead of using the cached value.
//
// Returns:
//   - *version.Version: The parsed version, e.g. 5.3.0 or 3.5.1 for "3.05.01".
//   - error: ErrEngineNotFound, an *ExecutionError for a failed query, or an
//     error matching ErrInvalidVersion.
//
// # Caching
//
// The first successful result is cached for the life of the client.
// Concurrent callers wait for a single query rather than each starting one.
//
// # Unusable Engines
//
// An engine whose version cannot be parsed, or that is older than
// MinVersion, is fatal: the client's Fatal handler is invoked before the
// error is returned.
func (c *Client) Version(ctx context.Context, refresh bool) (*version.Version, error) {
	c.versionMu.Lock()
	defer c.versionMu.Unlock()

	if c.version != nil && !refresh {
		return c.version, nil
	}

	status, out, err := runCombined(ctx, []string{c.Command(), "--version"})
	if err != nil {
		return nil, err
	}
	raw := string(out)
	if status != 0 {
		return nil, &ExecutionError{Status: status, Message: joinLines(raw)}
	}

	v, err := ParseVersion(raw)
	if err == nil && v.LessThan(MinVersion) {
		err = fmt.Errorf("%w: %s is older than %s", ErrInvalidVersion, v, MinVersion)
	}
	if err != nil {
		c.fatal(fmt.Sprintf("Invalid tesseract version: %q", raw))
		return nil, err
	}

	c.version = v
	return v, nil
}

// Languages returns the language packs the engine reports.
//
// Parameters:
//   - config: Extra arguments for `tesseract --list-langs`, e.g.
//     "--tessdata-dir /opt/tessdata". May be empty.
//   - refresh: Query the engine again instead of using the cached list.
//
// Returns:
//   - []string: Language codes in the order the engine lists them. Never
//     nil on success.
//   - error: ErrEngineNotFound, or an *InvalidConfigError for a config
//     string that cannot be split into words.
//
// The first successful result is cached regardless of config.
func (c *Client) Languages(ctx context.Context, config string, refresh bool) ([]string, error) {
	c.langMu.Lock()
	defer c.langMu.Unlock()

	if c.langDone && !refresh {
		return c.languages, nil
	}

	argv := []string{c.Command(), "--list-langs"}
	if strings.TrimSpace(config) != "" {
		words, err := splitConfig(config)
		if err != nil {
			return nil, &InvalidConfigError{Config: config, Err: err}
		}
		argv = append(argv, words...)
	}

	status, out, err := runCombined(ctx, argv)
	if err != nil {
		return nil, err
	}
	// tesseract 3.x exits 1 after listing.
	if status != 0 && status != 1 {
		return nil, fmt.Errorf("%w: %s --list-langs exited with status %d", ErrEngineNotFound, argv[0], status)
	}

	languages := []string{}
	for _, line := range strings.Split(string(out), "\n") {
		lang := strings.TrimSpace(line)
		if langPattern.MatchString(lang) {
			languages = append(languages, lang)
		}
	}

	c.languages = languages
	c.langDone = true
	return languages, nil
}

// requireVersion fails with a *VersionError when the cached engine version
// is older than required.
func (c *Client) requireVersion(ctx context.Context, feature string, required *version.Version) error {
	v, err := c.Version(ctx, false)
	if err != nil {
		return err
	}
	if v.LessThan(required) {
		return &VersionError{Feature: feature, Required: required.String(), Actual: v.String()}
	}
	return nil
}

// runAndGetOutput stages input, runs the engine for one output kind and
// reads the result. Every staged file is removed before returning.
func (c *Client) runAndGetOutput(ctx context.Context, input any, kind OutputKind, opts Options, config string, asBytes bool) (_ string, _ []byte, err error) {
	staged, err := c.stager.stage(input)
	if err != nil {
		return "", nil, err
	}
	defer c.release(staged, &err)

	if err := c.execute(ctx, c.newRequest(staged, string(kind), opts, config)); err != nil {
		return "", nil, err
	}

	text, raw, err := readOutput(staged.OutputPath(kind), asBytes || kind.binary())
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s output: %w", kind, err)
	}
	return text, raw, nil
}

func (c *Client) newRequest(staged *Staged, kinds string, opts Options, config string) request {
	return request{
		input:      staged.InputPath,
		outputBase: staged.Base,
		kinds:      kinds,
		lang:       opts.Lang,
		config:     config,
		nice:       opts.Nice,
		timeout:    opts.Timeout,
	}
}

// execute builds the argument vector for req and runs it.
func (c *Client) execute(ctx context.Context, req request) error {
	argv, err := buildArgs(c.Command(), req)
	if err != nil {
		return err
	}
	c.logger.Debug("running tesseract", "args", argv)

	result, err := run(ctx, argv, req.timeout, false)
	if errors.Is(err, ErrTimeout) {
		c.logger.Warn("tesseract timed out", "timeout", req.timeout, "status", result.Status)
	}
	return err
}

// release removes the staged files. A cleanup failure is logged, and becomes
// the returned error only when the operation itself succeeded.
func (c *Client) release(staged *Staged, err *error) {
	if rerr := staged.Release(); rerr != nil {
		c.logger.Warn("failed to remove temporary files", "base", staged.Base, "error", rerr)
		if *err == nil {
			*err = rerr
		}
	}
}

// joinConfig concatenates non-empty config fragments.
func joinConfig(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func unsupportedType(t OutputType, kind OutputKind) error {
	return fmt.Errorf("%w: %s for %s output", ErrUnsupportedOutputType, t, kind)
}
