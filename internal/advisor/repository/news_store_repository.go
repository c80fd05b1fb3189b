package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"
)

// NewsStoreRepository is the local per-symbol news cache. Each symbol owns a
// single JSON file mapping YYYY-MM-DD dates to day records; the file is
// rewritten as a whole on every save. The repository exclusively owns the
// on-disk state.
type NewsStoreRepository interface {
	// Load returns the full date->record mapping for a symbol. A missing or
	// unreadable file yields an empty mapping, never an error.
	Load(symbol string) map[string]entity.DayRecord
	// Save persists the full mapping, dates ordered most recent first.
	Save(symbol string, records map[string]entity.DayRecord) error
	// Get returns the record for one date, if present.
	Get(symbol, date string) (entity.DayRecord, bool)
	// Put sets one date's record via load-modify-save of the symbol's table.
	Put(symbol, date string, record entity.DayRecord) error
}

type newsStoreRepository struct {
	dir string
	log *logger.Logger
}

// NewNewsStoreRepository creates a file-backed news store rooted at dir.
func NewNewsStoreRepository(dir string, log *logger.Logger) (NewsStoreRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create news store directory: %w", err)
	}
	return &newsStoreRepository{dir: dir, log: log}, nil
}

func (r *newsStoreRepository) filePath(symbol string) string {
	return filepath.Join(r.dir, strings.ToUpper(symbol)+".json")
}

func (r *newsStoreRepository) Load(symbol string) map[string]entity.DayRecord {
	data, err := os.ReadFile(r.filePath(symbol))
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Error("Failed to read news store file", logger.ErrorField(err), logger.StringField("symbol", symbol))
		}
		return map[string]entity.DayRecord{}
	}

	var records map[string]entity.DayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.log.Error("Failed to parse news store file, treating as empty", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return map[string]entity.DayRecord{}
	}
	if records == nil {
		records = map[string]entity.DayRecord{}
	}
	return records
}

func (r *newsStoreRepository) Save(symbol string, records map[string]entity.DayRecord) error {
	data, err := marshalRecords(records)
	if err != nil {
		return fmt.Errorf("failed to marshal news records for %s: %w", symbol, err)
	}

	path := r.filePath(symbol)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write news store file for %s: %w", symbol, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace news store file for %s: %w", symbol, err)
	}
	return nil
}

func (r *newsStoreRepository) Get(symbol, date string) (entity.DayRecord, bool) {
	record, ok := r.Load(symbol)[date]
	return record, ok
}

func (r *newsStoreRepository) Put(symbol, date string, record entity.DayRecord) error {
	records := r.Load(symbol)
	records[date] = record
	return r.Save(symbol, records)
}

// marshalRecords renders the mapping with date keys sorted descending, so the
// most recent day sits at the top of the file.
func marshalRecords(records map[string]entity.DayRecord) ([]byte, error) {
	dates := make([]string, 0, len(records))
	for date := range records {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, date := range dates {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")

		encoded, err := encodeRecord(records[date])
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q: %s", date, encoded)
	}
	if len(dates) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func encodeRecord(record entity.DayRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("  ", "  ")
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
