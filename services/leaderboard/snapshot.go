package leaderboard

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"skillsync-backend/lib/scrapers/skillssh"
)

// Snapshot is the full-replacement result of syncing one category.
type Snapshot struct {
	Timestamp string         `json:"timestamp"`
	Count     int            `json:"count"`
	Rows      []skillssh.Row `json:"rows"`
}

const timestampFormat = "2006-01-02T15:04:05Z"

var csvHeader = []string{"rank", "skill_name", "owner_repo", "installs", "page_url", "category"}

func JsonPath(dir, category string) string {
	return filepath.Join(dir, fmt.Sprintf("skills_sh_list_%s.json", category))
}

func CsvPath(dir, category string) string {
	return filepath.Join(dir, fmt.Sprintf("skills_sh_list_%s.csv", category))
}

// WriteSnapshot persists one category's rows as a JSON snapshot and a
// flat CSV, replacing whatever a previous run left behind. Writes go
// through a temp file and rename so a crash never leaves a torn
// snapshot.
func WriteSnapshot(dir, category string, rows []skillssh.Row) (Snapshot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Timestamp: time.Now().UTC().Format(timestampFormat),
		Count:     len(rows),
		Rows:      rows,
	}
	if snapshot.Rows == nil {
		snapshot.Rows = []skillssh.Row{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return Snapshot{}, err
	}
	if err := writeAtomic(JsonPath(dir, category), data); err != nil {
		return Snapshot{}, err
	}

	csvData, err := marshalCsv(snapshot.Rows)
	if err != nil {
		return Snapshot{}, err
	}
	if err := writeAtomic(CsvPath(dir, category), csvData); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

func ReadSnapshot(dir, category string) (Snapshot, error) {
	data, err := os.ReadFile(JsonPath(dir, category))
	if err != nil {
		return Snapshot{}, err
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func marshalCsv(rows []skillssh.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		rank := ""
		if row.Rank != nil {
			rank = strconv.Itoa(*row.Rank)
		}
		record := []string{rank, row.SkillName, row.OwnerRepo, row.Installs, row.PageURL, row.Category}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
