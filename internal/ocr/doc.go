// Package ocr drives an installed tesseract executable and decodes what it
// writes.
//
// Nothing here links against libtesseract. Every call stages its input as a
// file, runs the engine as a subprocess with an explicit argument vector,
// reads the output files back and removes every temporary file it created.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// The engine is looked up on PATH as "tesseract" unless ClientConfig.Command
// or Client.SetCommand names another executable.
//
// # Inputs
//
// Every Client method accepts a file path, an *imaging.Picture, an
// image.Image or encoded image bytes. Paths are handed to the engine as they
// are; in-memory images are flattened onto an opaque background and written
// next to the output base first.
//
// # Outputs
//
// Each method returns its result in the representation selected by
// Options.Type:
//
//   - OutputString: decoded text, trailing whitespace removed
//   - OutputBytes: the raw output file
//   - OutputDict: columns (TSV, boxes) or fields (OSD, text)
//   - OutputDataFrame: a Frame built by the configured FrameParser
//
// TSV requires tesseract >= 3.05 and ALTO XML requires >= 4.1.0; older
// engines fail with a *VersionError.
//
// # Errors
//
// A missing executable is ErrEngineNotFound. A non-zero exit is an
// *ExecutionError carrying the status and stderr. An expired Options.Timeout
// is ErrTimeout. A malformed Options.Config is an *InvalidConfigError. An
// unparseable or too old engine version is fatal and goes through
// ClientConfig.Fatal.
//
// # Thread Safety
//
// A Client may be shared between goroutines. The version and language
// queries run at most once per client until a refresh is requested.
package ocr
