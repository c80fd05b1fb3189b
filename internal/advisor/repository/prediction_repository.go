package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"
)

// PredictionRepository integrates the external AI price prediction program.
// Every failure degrades to "no predictions": the analysis always proceeds.
type PredictionRepository interface {
	// GetPredictions runs the external predictor for the symbol and returns a
	// formatted prompt block, or an empty string when no predictions are
	// available.
	GetPredictions(ctx context.Context, symbol string) (string, error)
}

type predictionRepository struct {
	cfg *config.Config
	log *logger.Logger
}

// NewPredictionRepository creates a new instance of predictionRepository.
func NewPredictionRepository(cfg *config.Config, log *logger.Logger) PredictionRepository {
	return &predictionRepository{cfg: cfg, log: log}
}

func (r *predictionRepository) GetPredictions(ctx context.Context, symbol string) (string, error) {
	if !r.available() {
		r.log.Warn("Prediction system not available, proceeding without predictions")
		return "", nil
	}

	// A stale dataset only degrades prediction quality, so a failed download
	// is tolerated.
	if err := r.runScript(ctx, filepath.Join(r.cfg.Prediction.Path, "download_dataset.py")); err != nil {
		r.log.Warn("Unable to download updated dataset, proceeding with existing data", logger.ErrorField(err))
	}

	if err := r.runScript(ctx, filepath.Join(r.cfg.Prediction.Path, "main.py"), "--mode", "predict", "--symbol", symbol); err != nil {
		return "", fmt.Errorf("failed to run prediction program: %w", err)
	}

	csvPath, err := r.predictionFileFromConfig()
	if err != nil {
		return "", err
	}

	points, err := readPredictionCSV(csvPath)
	if err != nil {
		return "", err
	}
	if len(points) == 0 {
		return "", fmt.Errorf("no prediction data read from %s", csvPath)
	}

	r.log.Info("Predictions obtained", logger.IntField("count", len(points)), logger.StringField("symbol", symbol))
	return formatPredictions(points), nil
}

func (r *predictionRepository) available() bool {
	if r.cfg.Prediction.Path == "" {
		return false
	}
	for _, name := range []string{"", "main.py", "config.json"} {
		if _, err := os.Stat(filepath.Join(r.cfg.Prediction.Path, name)); err != nil {
			r.log.Warn("Prediction program file missing", logger.StringField("file", name), logger.ErrorField(err))
			return false
		}
	}
	return true
}

func (r *predictionRepository) runScript(ctx context.Context, script string, args ...string) error {
	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("script not found: %w", err)
	}

	cmdArgs := append([]string{script}, args...)
	cmd := exec.CommandContext(ctx, r.cfg.Prediction.PythonBin, cmdArgs...)
	cmd.Dir = r.cfg.Prediction.Path

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run %s: %w (output: %s)", filepath.Base(script), err, strings.TrimSpace(string(output)))
	}
	r.log.Debug("Prediction script completed", logger.StringField("script", filepath.Base(script)))
	return nil
}

// predictionFileFromConfig reads the predictor's own config.json and resolves
// the path of the last written prediction CSV.
func (r *predictionRepository) predictionFileFromConfig() (string, error) {
	configPath := filepath.Join(r.cfg.Prediction.Path, "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to read predictor config: %w", err)
	}

	var predictorConfig struct {
		Prediction struct {
			LastCSV string `json:"last_csv"`
		} `json:"prediction"`
	}
	if err := json.Unmarshal(data, &predictorConfig); err != nil {
		return "", fmt.Errorf("failed to parse predictor config: %w", err)
	}

	csvPath := predictorConfig.Prediction.LastCSV
	if csvPath == "" {
		return "", fmt.Errorf("prediction.last_csv not set in predictor config")
	}
	if _, err := os.Stat(csvPath); err != nil {
		return "", fmt.Errorf("prediction file does not exist: %w", err)
	}
	return csvPath, nil
}

// readPredictionCSV parses both CSV shapes the predictor emits: a single
// "predicted" column, or date,prediction rows.
func readPredictionCSV(path string) ([]dto.PredictionPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prediction file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read prediction file: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	body := rows[1:]

	var points []dto.PredictionPoint
	if len(header) == 1 && strings.EqualFold(strings.TrimSpace(header[0]), "predicted") {
		for i, row := range body {
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
			if err != nil {
				continue
			}
			points = append(points, dto.PredictionPoint{
				Date:       fmt.Sprintf("Day %d", i+1),
				Prediction: value,
			})
		}
		return points, nil
	}

	for _, row := range body {
		if len(row) < 2 {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			continue
		}
		points = append(points, dto.PredictionPoint{
			Date:       strings.TrimSpace(row[0]),
			Prediction: value,
		})
	}
	return points, nil
}

func formatPredictions(points []dto.PredictionPoint) string {
	var b strings.Builder
	b.WriteString("FUTURE PREDICTIONS:\n")
	for _, p := range points {
		fmt.Fprintf(&b, "- %s: $%.2f\n", p.Date, p.Prediction)
	}
	return b.String()
}
