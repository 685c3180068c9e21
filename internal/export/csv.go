package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sadopc/unwind/internal/wellness"
)

func ToCSV(records []wellness.StressRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, records)
}

// WriteCSV writes one row per check-in, moods joined with ";".
func WriteCSV(out io.Writer, records []wellness.StressRecord) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Created", "Stress", "Label", "Mode", "Moods", "Notes"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.CreatedAt.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", r.StressLevel),
			wellness.StressLabel(r.StressLevel),
			string(r.Mode),
			joinMoods(r.MoodTags, ";"),
			r.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func joinMoods(moods []wellness.Mood, sep string) string {
	parts := make([]string, len(moods))
	for i, m := range moods {
		parts[i] = string(m)
	}
	return strings.Join(parts, sep)
}
