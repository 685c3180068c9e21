package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/unwind/internal/wellness"
)

func sampleData() []wellness.StressRecord {
	now := time.Now().UTC()
	return []wellness.StressRecord{
		{
			ID:          "a1",
			CreatedAt:   now.Add(-2 * time.Hour),
			StressLevel: 9,
			Mode:        wellness.ModeQuick,
			MoodTags:    []wellness.Mood{wellness.MoodAnxious, wellness.MoodTired},
		},
		{
			ID:          "b2",
			CreatedAt:   now.Add(-1 * time.Hour),
			StressLevel: 4,
			Mode:        wellness.ModeDetailed,
			Notes:       "walked it off",
		},
		{
			ID:          "c3",
			CreatedAt:   now,
			StressLevel: 1,
			Mode:        wellness.ModeDaily,
			MoodTags:    []wellness.Mood{wellness.MoodCalm},
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	expectedHeader := []string{"ID", "Created", "Stress", "Label", "Mode", "Moods", "Notes"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "a1" || row[2] != "9" || row[3] != "Very High" || row[4] != "Quick" {
		t.Fatalf("unexpected first row: %v", row)
	}
	if row[5] != "Anxious;Tired" {
		t.Fatalf("Moods = %q, want Anxious;Tired", row[5])
	}
	if records[2][6] != "walked it off" {
		t.Fatalf("Notes = %q", records[2][6])
	}
	if _, err := time.Parse(time.RFC3339, row[1]); err != nil {
		t.Fatalf("Created is not RFC3339: %q", row[1])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestWriteCSVSpecialCharacters(t *testing.T) {
	recs := []wellness.StressRecord{{
		ID:          "x",
		CreatedAt:   time.Now(),
		StressLevel: 5,
		Mode:        wellness.ModeDaily,
		Notes:       `notes with "quotes" and, commas`,
	}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, recs); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][6] != `notes with "quotes" and, commas` {
		t.Fatalf("notes mangled: %q", records[1][6])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 || len(result.CheckIns) != 3 {
		t.Fatalf("count = %d, checkins = %d, want 3", result.Count, len(result.CheckIns))
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	c := result.CheckIns[0]
	if c.ID != "a1" || c.StressLevel != 9 || c.StressLabel != "Very High" || c.Mode != "Quick" {
		t.Fatalf("unexpected first check-in: %+v", c)
	}
	if strings.Join(c.Moods, ",") != "Anxious,Tired" {
		t.Fatalf("moods = %v", c.Moods)
	}
	if result.CheckIns[1].Notes != "walked it off" {
		t.Fatalf("notes = %q", result.CheckIns[1].Notes)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.CheckIns != nil {
		t.Fatal("checkins should be null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestWriteJSONPrettyPrinted(t *testing.T) {
	var buf bytes.Buffer
	WriteJSON(&buf, sampleData())
	out := buf.String()
	if !strings.Contains(out, "\n  ") {
		t.Fatal("JSON should be indented")
	}
	if strings.Contains(out, `"notes": ""`) {
		t.Fatal("empty notes should be omitted")
	}
}
