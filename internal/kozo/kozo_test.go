package kozo

import (
	"fmt"
	"reflect"
	"testing"
)

// sequentialID returns a deterministic id generator for row tests.
func sequentialID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestParseFloors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "two story building",
			input:    "木造スレート葺２階建",
			expected: []string{"１階", "２階"},
		},
		{
			name:     "two story with basement",
			input:    "鉄筋コンクリート造陸屋根地下１階付２階建",
			expected: []string{"１階", "２階", "地下１階"},
		},
		{
			name:     "single story hirayadate",
			input:    "木造かわらぶき平家建",
			expected: []string{"１階"},
		},
		{
			name:     "half-width floor count",
			input:    "木造合金メッキ鋼板ぶき2階建",
			expected: []string{"１階", "２階"},
		},
		{
			name:     "no suffix counts as one floor",
			input:    "木造",
			expected: []string{"１階"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{"１階"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFloors(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseFloors(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseAnnexFloors(t *testing.T) {
	// Annex basement is tracked by a flag, so the structure string
	// never contributes basement floors.
	got := ParseAnnexFloors("木造かわらぶき地下１階付２階建")
	want := []string{"１階", "２階"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAnnexFloors() = %v, want %v", got, want)
	}
}

func TestComputeStructFloor(t *testing.T) {
	tests := []struct {
		name     string
		rows     []FloorArea
		expected string
	}{
		{
			name: "two filled ground floors",
			rows: []FloorArea{
				{Floor: "１階", Area: "50.12"},
				{Floor: "２階", Area: "45.00"},
			},
			expected: "２階建",
		},
		{
			name: "blank area rows are ignored",
			rows: []FloorArea{
				{Floor: "１階", Area: "50"},
				{Floor: "２階", Area: ""},
				{Floor: "地下１階", Area: "20"},
			},
			expected: "地下１階付平家建",
		},
		{
			name: "single floor renders hirayadate",
			rows: []FloorArea{
				{Floor: "１階", Area: "78.66"},
			},
			expected: "平家建",
		},
		{
			name:     "no rows at all",
			rows:     nil,
			expected: "平家建",
		},
		{
			name: "half-width labels are accepted",
			rows: []FloorArea{
				{Floor: "1階", Area: "30"},
				{Floor: "2階", Area: "30"},
				{Floor: "3階", Area: "30"},
			},
			expected: "３階建",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStructFloor(tt.rows); got != tt.expected {
				t.Errorf("ComputeStructFloor() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEnsureNextFloors(t *testing.T) {
	t.Run("appends next ground floor", func(t *testing.T) {
		rows := []FloorArea{
			{ID: "a", Floor: "１階", Area: "50"},
		}
		got := EnsureNextFloors(rows, false, sequentialID())
		if len(got) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(got))
		}
		if got[1].Floor != "２階" || got[1].Area != "" {
			t.Errorf("Expected blank ２階 row, got %+v", got[1])
		}
	})

	t.Run("does not duplicate an existing blank row", func(t *testing.T) {
		rows := []FloorArea{
			{ID: "a", Floor: "１階", Area: "50"},
			{ID: "b", Floor: "２階", Area: ""},
		}
		got := EnsureNextFloors(rows, false, sequentialID())
		if len(got) != 2 {
			t.Errorf("Expected no new rows, got %d", len(got))
		}
	})

	t.Run("appends basement row when flagged", func(t *testing.T) {
		rows := []FloorArea{
			{ID: "a", Floor: "１階", Area: "50"},
		}
		got := EnsureNextFloors(rows, true, sequentialID())
		if len(got) != 3 {
			t.Fatalf("Expected 3 rows, got %d", len(got))
		}
		if got[2].Floor != "地下１階" {
			t.Errorf("Expected 地下１階 row, got %+v", got[2])
		}
	})

	t.Run("never removes or reorders rows", func(t *testing.T) {
		rows := []FloorArea{
			{ID: "b", Floor: "２階", Area: "45"},
			{ID: "a", Floor: "１階", Area: "50"},
		}
		got := EnsureNextFloors(rows, false, sequentialID())
		if got[0].ID != "b" || got[1].ID != "a" {
			t.Errorf("Existing rows were reordered: %+v", got)
		}
		if got[2].Floor != "３階" {
			t.Errorf("Expected ３階 appended, got %+v", got[2])
		}
	})
}

func TestRegenerateRows(t *testing.T) {
	t.Run("preserves areas by label", func(t *testing.T) {
		prev := []FloorArea{
			{ID: "a", Floor: "１階", Area: "50.12"},
			{ID: "b", Floor: "２階", Area: "45.00"},
			{ID: "c", Floor: "地下１階", Area: "20.00"},
		}
		labels := []string{"１階", "２階", "３階"}
		got := RegenerateRows(labels, prev, sequentialID())
		if len(got) != 3 {
			t.Fatalf("Expected 3 rows, got %d", len(got))
		}
		if got[0].ID != "a" || got[0].Area != "50.12" {
			t.Errorf("Row １階 not preserved: %+v", got[0])
		}
		if got[1].ID != "b" || got[1].Area != "45.00" {
			t.Errorf("Row ２階 not preserved: %+v", got[1])
		}
		if got[2].ID != "id-1" || got[2].Area != "" {
			t.Errorf("Row ３階 should be fresh: %+v", got[2])
		}
	})

	t.Run("matches labels across widths", func(t *testing.T) {
		prev := []FloorArea{
			{ID: "a", Floor: "1階", Area: "50"},
		}
		got := RegenerateRows([]string{"１階"}, prev, sequentialID())
		if got[0].ID != "a" || got[0].Area != "50" {
			t.Errorf("Half-width label should match full-width: %+v", got[0])
		}
	})
}
