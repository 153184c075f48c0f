package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotatingJSONLStore stores plan records in a JSONL file with automatic
// size/age based rotation.
type RotatingJSONLStore struct {
	logger *lumberjack.Logger
	path   string
}

// NewRotatingJSONLStore creates a store with rotation options in megabytes
// and days.
func NewRotatingJSONLStore(path string, maxSizeMB, maxBackups, maxAgeDays int) (*RotatingJSONLStore, error) {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   false,
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &RotatingJSONLStore{logger: lj, path: path}, nil
}

// Append writes the record and triggers rotation if needed.
func (s *RotatingJSONLStore) Append(ctx context.Context, rec PlanRecord) error {
	_ = ctx
	return json.NewEncoder(s.logger).Encode(rec)
}

// Query reads all log files including rotated ones.
func (s *RotatingJSONLStore) Query(ctx context.Context, q Query) ([]PlanRecord, error) {
	_ = ctx
	files, err := filepath.Glob(s.path + "*")
	if err != nil {
		return nil, err
	}
	var res []PlanRecord
	for _, fp := range files {
		file, err := os.Open(fp)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			var r PlanRecord
			if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
				continue
			}
			if q.matches(r) {
				res = append(res, r)
			}
		}
		_ = file.Close()
	}
	return res, nil
}

// Close closes the underlying writer.
func (s *RotatingJSONLStore) Close() error {
	return s.logger.Close()
}
