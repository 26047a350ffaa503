// Package ocrtest provides a scripted stand-in for the tesseract executable.
//
// The fake engine is a POSIX shell script, so tests that use it are skipped
// on Windows.
package ocrtest

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Environment variables the fake engine reads at run time.
const (
	// EnvLog names a file that receives one line of arguments per invocation.
	EnvLog = "FAKE_TESSERACT_LOG"

	// EnvMode selects a failure: "fail" exits 1 with a message on stderr,
	// "sleep" blocks for ten seconds, "noversion" prints garbage for --version,
	// "litter" succeeds but leaves a non-empty {base}_dir behind.
	EnvMode = "FAKE_TESSERACT_MODE"
)

// Canned outputs written by the fake engine.
const (
	Text = "hello world"
	TSV  = "level\tpage_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
		"1\t1\t0\t0\t200\t50\t-1\t\n" +
		"5\t1\t10\t20\t30\t12\t96.5\thello\n" +
		"5\t1\t45\t20\t40\t12\t91\tworld"
	Box = "h 1 2 3 4 0\ni 5 6 7 8 0"
	OSD = "Page number: 0\nOrientation in degrees: 270\nRotate: 90\n" +
		"Orientation confidence: 2.51\nScript: Latin\nScript confidence: 4.33"
	HOCR = "<html><body><div class='ocr_page'>hello world</div></body></html>"
	ALTO = "<alto><String CONTENT=\"hello\"/></alto>"
	PDF  = "%PDF-1.5 fake"
)

// Languages are reported by --list-langs.
var Languages = []string{"chi_sim", "eng", "osd"}

const script = `#!/bin/sh
if [ -n "$FAKE_TESSERACT_LOG" ]; then
	echo "$@" >> "$FAKE_TESSERACT_LOG"
fi
case "$1" in
--version)
	if [ "$FAKE_TESSERACT_MODE" = "noversion" ]; then
		echo "not a version"
		exit 0
	fi
	echo "tesseract {{VERSION}}"
	echo " leptonica-1.82.0"
	exit 0
	;;
--list-langs)
	echo 'List of available languages in "/usr/share/tessdata/" (3):'
	{{LANGS}}
	exit 0
	;;
esac
case "$FAKE_TESSERACT_MODE" in
fail)
	echo "Error opening data file" >&2
	echo "Failed loading language" >&2
	exit 1
	;;
sleep)
	exec sleep 10
	;;
esac
base="$2"
printf '%s\n\n\f' {{TEXT}} > "$base.txt"
for arg in "$@"; do
	case "$arg" in
	tessedit_create_tsv=1) printf '%s' {{TSV}} > "$base.tsv" ;;
	makebox) printf '%s\n' {{BOX}} > "$base.box" ;;
	tessedit_create_hocr=1) printf '%s\n' {{HOCR}} > "$base.hocr" ;;
	tessedit_create_alto=1) printf '%s\n' {{ALTO}} > "$base.xml" ;;
	pdf) printf '%s' {{PDF}} > "$base.pdf" ;;
	osd) printf '%s\n' {{OSD}} > "$base.osd" ;;
	esac
done
if [ "$FAKE_TESSERACT_MODE" = "litter" ]; then
	mkdir -p "${base}_dir"
	echo x > "${base}_dir/keep"
fi
exit 0
`

// Engine writes the fake engine into a temporary directory and returns its
// path. version is what --version reports, e.g. "5.3.0".
func Engine(tb testing.TB, version string) string {
	tb.Helper()
	if runtime.GOOS == "windows" {
		tb.Skip("fake tesseract requires a POSIX shell")
	}

	langs := make([]string, len(Languages))
	for i, l := range Languages {
		langs[i] = "echo " + l
	}

	body := strings.NewReplacer(
		"{{VERSION}}", version,
		"{{LANGS}}", strings.Join(langs, "\n\t"),
		"{{TEXT}}", quote(Text),
		"{{TSV}}", quote(TSV),
		"{{BOX}}", quote(Box),
		"{{HOCR}}", quote(HOCR),
		"{{ALTO}}", quote(ALTO),
		"{{PDF}}", quote(PDF),
		"{{OSD}}", quote(OSD),
	).Replace(script)

	path := filepath.Join(tb.TempDir(), "tesseract")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		tb.Fatalf("failed to write fake tesseract: %v", err)
	}
	return path
}

// quote renders s as a single-quoted shell word. Tabs and newlines survive
// inside single quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Invocations returns the argument lines recorded in logPath.
func Invocations(tb testing.TB, logPath string) []string {
	tb.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		tb.Fatalf("failed to read invocation log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
