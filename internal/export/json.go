package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/unwind/internal/wellness"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	CheckIns   []jsonCheckIn `json:"checkins"`
}

type jsonCheckIn struct {
	ID          string   `json:"id"`
	CreatedAt   string   `json:"created_at"`
	StressLevel int      `json:"stress_level"`
	StressLabel string   `json:"stress_label"`
	Mode        string   `json:"mode"`
	Moods       []string `json:"moods"`
	Notes       string   `json:"notes,omitempty"`
}

func ToJSON(records []wellness.StressRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	defer f.Close()
	return WriteJSON(f, records)
}

func WriteJSON(w io.Writer, records []wellness.StressRecord) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
	}

	for _, r := range records {
		moods := make([]string, len(r.MoodTags))
		for i, m := range r.MoodTags {
			moods[i] = string(m)
		}
		export.CheckIns = append(export.CheckIns, jsonCheckIn{
			ID:          r.ID,
			CreatedAt:   r.CreatedAt.Local().Format(time.RFC3339),
			StressLevel: r.StressLevel,
			StressLabel: wellness.StressLabel(r.StressLevel),
			Mode:        string(r.Mode),
			Moods:       moods,
			Notes:       r.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
