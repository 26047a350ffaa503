package ocr

import (
	"strconv"
	"strings"
	"time"
)

// request describes one tesseract invocation.
type request struct {
	input      string
	outputBase string
	kinds      string
	lang       string
	config     string
	nice       int
	timeout    time.Duration
}

// buildArgs assembles the argument vector for req. The first element is the
// program to execute.
func buildArgs(cmd string, req request) ([]string, error) {
	var args []string

	if prefix := nicePrefix(req.nice); prefix != nil {
		args = append(args, prefix...)
	}

	args = append(args, cmd, req.input, req.outputBase)

	if req.lang != "" {
		args = append(args, "-l", req.lang)
	}

	if strings.TrimSpace(req.config) != "" {
		words, err := splitConfig(req.config)
		if err != nil {
			return nil, &InvalidConfigError{Config: req.config, Err: err}
		}
		args = append(args, words...)
	}

	for _, kind := range strings.Fields(req.kinds) {
		if !OutputKind(kind).implicit() {
			args = append(args, kind)
		}
	}

	return args, nil
}

// niceArgs is shared by the platforms that support priority adjustment.
func niceArgs(nice int) []string {
	return []string{"nice", "-n", strconv.Itoa(nice)}
}

// engineConfig joins the engine flags for kinds into one config string with
// every -c variable ahead of the config file names, since tesseract stops
// reading options at the first config file.
func engineConfig(kinds ...OutputKind) string {
	var vars, files []string
	for _, k := range kinds {
		v, f := k.engineFlags()
		for _, s := range v {
			vars = append(vars, "-c", s)
		}
		files = append(files, f...)
	}
	return strings.Join(append(vars, files...), " ")
}
