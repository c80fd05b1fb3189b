package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"
)

const runDirLayout = "20060102_150405"

// Writer persists the artifacts of one analysis run: the prompt sent to the
// model, the raw response, a run summary and the PDF report. All files of a
// run live under one timestamped directory per symbol.
type Writer struct {
	cfg *config.Config
	log *logger.Logger
}

// NewWriter creates a new instance of Writer.
func NewWriter(cfg *config.Config, log *logger.Logger) *Writer {
	return &Writer{cfg: cfg, log: log}
}

// RunDir creates and returns the directory for a run started at the given
// time, shaped <output_dir>/<SYMBOL>/<SYMBOL>_<timestamp>.
func (w *Writer) RunDir(symbol string, startedAt time.Time) (string, error) {
	sym := strings.ToUpper(symbol)
	dir := filepath.Join(w.cfg.Report.OutputDir, sym,
		fmt.Sprintf("%s_%s", sym, startedAt.Format(runDirLayout)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}

// WritePrompt stores the full prompt sent to the model.
func (w *Writer) WritePrompt(runDir, symbol, prompt string) error {
	return w.writeFile(runDir, strings.ToUpper(symbol)+"_prompt.txt", prompt)
}

// WriteResponse stores the raw model response.
func (w *Writer) WriteResponse(runDir, symbol, response string) error {
	return w.writeFile(runDir, strings.ToUpper(symbol)+"_response.txt", response)
}

// WriteSummary stores a short human-readable recap of the run.
func (w *Writer) WriteSummary(runDir string, result *dto.AnalysisResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s (%s)\n", result.Company, result.Symbol)
	fmt.Fprintf(&b, "Date: %s\n", result.AnalysisDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Recommendation: %s\n", result.Recommendation)
	fmt.Fprintf(&b, "News days from cache: %d\n", result.NewsStats.DaysFromCache)
	fmt.Fprintf(&b, "News days from remote: %d\n", result.NewsStats.DaysFromRemote)
	fmt.Fprintf(&b, "News days with no news: %d\n", result.NewsStats.DaysWithNoNews)
	if result.PDFPath != "" {
		fmt.Fprintf(&b, "Report: %s\n", result.PDFPath)
	}
	return w.writeFile(runDir, "run_summary.txt", b.String())
}

func (w *Writer) writeFile(runDir, name, content string) error {
	path := filepath.Join(runDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	w.log.Debug("Run artifact written", logger.StringField("path", path))
	return nil
}
