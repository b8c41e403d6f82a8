// Package report exports advice as a Markdown or PDF document.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Title heads every exported report.
const Title = "Personalized Financial Report"

// Subtitle follows the title.
const Subtitle = "Based on your financial profile"

// Note closes every exported report.
const Note = "Empower your mind. Let AI guide, not decide."

// Write renders advice as a Markdown document to w.
func Write(w io.Writer, advice string, generated time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title)
	fmt.Fprintf(&b, "%s\n\n", Subtitle)
	fmt.Fprintf(&b, "_Generated %s_\n\n", generated.Format("2 Jan 2006 15:04"))
	b.WriteString(strings.TrimSpace(advice))
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "> Note: %s\n", Note)

	_, err := io.WriteString(w, b.String())
	return err
}

// Save writes the report to path, creating parent directories. A ".pdf"
// extension selects WritePDF; anything else gets Markdown.
func Save(path, advice string, generated time.Time) error {
	write := Write
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		write = WritePDF
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report dir: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := write(f, advice, generated); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}

// DefaultName returns a dated Markdown file name for a report.
func DefaultName(generated time.Time) string {
	return "financial-advice-" + generated.Format("2006-01-02") + ".md"
}

// DefaultPDFName returns PDFName with the report date before the extension.
func DefaultPDFName(generated time.Time) string {
	return strings.TrimSuffix(PDFName, ".pdf") + "_" + generated.Format("2006-01-02") + ".pdf"
}
