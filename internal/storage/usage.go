package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// UsageStore handles usage statistics persistence
type UsageStore struct {
	mu       sync.Mutex
	usageDir string
	now      func() time.Time
}

// NewUsageStore creates a new usage store
func NewUsageStore(usageDir string) *UsageStore {
	return &UsageStore{
		usageDir: usageDir,
		now:      time.Now,
	}
}

// UsageRecord is the per-day tally for one endpoint
type UsageRecord struct {
	Date             string `json:"date"` // YYYY-MM-DD
	Endpoint         string `json:"endpoint"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	TotalTokens      int64  `json:"total_tokens"`
	RequestCount     int64  `json:"request_count"`
}

// RecordUsage adds one request and its token counts to today's record for
// endpoint.
func (s *UsageStore) RecordUsage(endpoint string, promptTokens, completionTokens int64) error {
	if endpoint == "" || strings.ContainsAny(endpoint, `_/\.`) {
		return fmt.Errorf("invalid endpoint name: %q", endpoint)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.usageDir, 0755); err != nil {
		return fmt.Errorf("failed to create usage directory: %w", err)
	}

	today := s.now().Format(dateLayout)
	filePath := filepath.Join(s.usageDir, fmt.Sprintf("%s_%s.json", today, endpoint))

	record := UsageRecord{Date: today, Endpoint: endpoint}
	if data, err := os.ReadFile(filePath); err == nil {
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to parse usage file %s: %w", filePath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read usage file: %w", err)
	}

	record.PromptTokens += promptTokens
	record.CompletionTokens += completionTokens
	record.TotalTokens += promptTokens + completionTokens
	record.RequestCount++

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal usage record: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write usage file: %w", err)
	}

	return nil
}

// GetUsageHistory returns the records of the last days days, oldest first.
func (s *UsageStore) GetUsageHistory(days int) ([]UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.usageDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []UsageRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read usage directory: %w", err)
	}

	now := s.now()
	today, _ := time.Parse(dateLayout, now.Format(dateLayout))
	cutoff := today.AddDate(0, 0, -days)

	records := []UsageRecord{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		// YYYY-MM-DD_endpoint.json
		dateStr, _, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			continue
		}
		recordDate, err := time.Parse(dateLayout, dateStr)
		if err != nil || !recordDate.After(cutoff) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.usageDir, entry.Name()))
		if err != nil {
			continue
		}

		var record UsageRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].Endpoint < records[j].Endpoint
	})

	return records, nil
}
