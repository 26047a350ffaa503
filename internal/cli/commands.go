package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tessbridge/internal/frame"
	"github.com/ironsheep/tessbridge/internal/ocr"
)

func newBoxesCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "boxes input_file",
		Short: "Print recognized characters with their box boundaries",
		Args:  exactFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := inputFile(args[0])
			if err != nil {
				return err
			}
			opts := a.opts
			if asJSON {
				opts.Type = ocr.OutputDict
			}
			out, err := a.client.ImageToBoxes(cmd.Context(), path, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out.Dict)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print columns as JSON")
	return cmd
}

func newDataCmd(a *app) *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "data input_file",
		Short: "Print word boxes, confidences and layout (tesseract >= 3.05)",
		Args:  exactFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := inputFile(args[0])
			if err != nil {
				return err
			}
			format = strings.ToLower(format)
			opts := a.opts
			switch format {
			case "tsv":
				opts.Type = ocr.OutputBytes
			case "json", "xlsx":
				opts.Type = ocr.OutputDict
			default:
				return &UsageError{Err: fmt.Errorf("unknown format %q: want tsv, json or xlsx", format)}
			}

			out, err := a.client.ImageToData(cmd.Context(), path, opts)
			if err != nil {
				return err
			}

			return withOutput(cmd, outPath, func(w io.Writer) error {
				switch format {
				case "json":
					return writeJSON(w, out.Dict)
				case "xlsx":
					return frame.WriteWorkbook(w, out.Dict)
				}
				_, err := w.Write(out.Raw)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "tsv", "output format: tsv, json or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func newOSDCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "osd input_file",
		Short: "Detect page orientation and script",
		Args:  exactFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := inputFile(args[0])
			if err != nil {
				return err
			}
			opts := a.opts
			if asJSON {
				opts.Type = ocr.OutputDict
			}
			// -l selects recognition languages; detection uses the osd pack.
			if !cmd.Flags().Changed("lang") {
				opts.Lang = ""
			}
			out, err := a.client.ImageToOSD(cmd.Context(), path, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out.Fields)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print fields as JSON")
	return cmd
}

// newDocumentCmd builds the pdf, hocr and alto commands, which all write a
// whole document.
func newDocumentCmd(a *app, name, short string) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   name + " input_file",
		Short: short,
		Args:  exactFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := inputFile(args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch name {
			case "pdf":
				data, err = a.client.ImageToPDFOrHOCR(cmd.Context(), path, ocr.KindPDF, a.opts)
			case "hocr":
				data, err = a.client.ImageToPDFOrHOCR(cmd.Context(), path, ocr.KindHOCR, a.opts)
			default:
				data, err = a.client.ImageToALTOXML(cmd.Context(), path, a.opts)
			}
			if err != nil {
				return err
			}

			return withOutput(cmd, outPath, func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the installed tesseract version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.client.Version(cmd.Context(), false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
}

func newLangsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the installed tesseract language packs",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := a.client.Languages(cmd.Context(), a.cfg.EngineConfig, false)
			if err != nil {
				return err
			}
			for _, l := range langs {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withOutput runs write against path, or stdout when path is empty.
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
