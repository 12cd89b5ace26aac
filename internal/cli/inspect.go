package cli

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/favicon/internal/colour"
	"github.com/jmylchreest/favicon/internal/ico"
	imageutil "github.com/jmylchreest/favicon/internal/image"
)

func newInspectCmd() *cobra.Command {
	var showPreview bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Describe and verify an icon file",
		Long: `Print the directory of an icon file and check that each entry's declared
size and offset agree with the image data that follows. BMP entries are also
decoded by an independent BMP reader and compared pixel by pixel.

Other image formats are accepted and reported by dimensions only.

Examples:
  # Check the generated favicon
  favicon inspect public/favicon-small.ico

  # Show the pixels in the terminal
  favicon inspect --preview public/favicon-small.ico`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], showPreview)
		},
	}

	cmd.Flags().BoolVarP(&showPreview, "preview", "p", false, "render the image in the terminal")
	return cmd
}

func runInspect(cmd *cobra.Command, path string, showPreview bool) error {
	logger := newLogger(cmd)
	out := cmd.OutOrStdout()

	if !imageutil.IsImageFile(path) {
		return fmt.Errorf("%s: unsupported file extension (want one of %s)",
			path, strings.Join(imageutil.SupportedImageExtensions(), ", "))
	}
	if err := imageutil.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	if _, format, _ := image.DecodeConfig(bytes.NewReader(data)); format != "ico" {
		w, h, err := imageutil.GetImageDimensions(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s image, %dx%d\n", path, format, w, h)
	} else {
		report, err := ico.Verify(data)
		if err != nil {
			return fmt.Errorf("failed to verify icon: %w", err)
		}
		logger.Debug("verified icon", "path", path, "entries", len(report.Entries), "ok", report.OK())
		fmt.Fprint(out, formatReport(path, report))
		if !report.OK() {
			return fmt.Errorf("%s: icon failed verification", path)
		}
	}

	if showPreview {
		img, err := imageutil.NewFileLoader().Load(path)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}
		fmt.Fprint(out, renderPreview(img, isTerminal(out)))
	}
	return nil
}

// formatReport renders a verification report as a header line, a table of
// entries, and any problems found.
func formatReport(path string, r *ico.Report) string {
	var sb strings.Builder
	noun := "images"
	if r.Count == 1 {
		noun = "image"
	}
	fmt.Fprintf(&sb, "%s: %d bytes, %d %s\n\n", path, r.FileSize, r.Count, noun)

	table := NewTable([]string{"#", "FORMAT", "SIZE", "BPP", "BYTES", "OFFSET", "OPAQUE"})
	for _, col := range []int{3, 4, 5, 6} {
		table.AlignRight(col)
	}
	for _, e := range r.Entries {
		opaque := "-"
		if e.Format == "bmp" {
			opaque = strconv.Itoa(e.Opaque)
		}
		table.AddRow([]string{
			strconv.Itoa(e.Index),
			e.Format,
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			strconv.Itoa(e.BitCount),
			strconv.Itoa(e.Size),
			strconv.Itoa(e.Offset),
			opaque,
		})
	}
	sb.WriteString(table.Render())

	for _, p := range r.Problems {
		fmt.Fprintf(&sb, "problem: %s\n", p)
	}
	for _, e := range r.Entries {
		for _, p := range e.Problems {
			fmt.Fprintf(&sb, "problem: entry %d: %s\n", e.Index, p)
		}
	}
	if r.OK() {
		sb.WriteString("verification: ok\n")
	} else {
		sb.WriteString("verification: FAILED\n")
	}
	return sb.String()
}

// renderPreview draws img two columns per pixel, top row first.
func renderPreview(img image.Image, ansi bool) string {
	var sb strings.Builder
	b := img.Bounds()
	sb.WriteString("\n")
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sb.WriteString(colour.PixelCell(img.At(x, y), ansi))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
