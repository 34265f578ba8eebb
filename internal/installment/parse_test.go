package installment

import "testing"

func TestExtractPeriods(t *testing.T) {
	tests := []struct {
		name        string
		itemName    string
		wantCurrent int
		wantTotal   int
	}{
		{
			name:        "parenthesized marker",
			itemName:    "裝修費 (第2期/共5期)",
			wantCurrent: 2,
			wantTotal:   5,
		},
		{
			name:        "bare marker",
			itemName:    "家電分期第3期/共12期",
			wantCurrent: 3,
			wantTotal:   12,
		},
		{
			name:        "no marker defaults to single period",
			itemName:    "水電費",
			wantCurrent: 1,
			wantTotal:   1,
		},
		{
			name:        "empty name",
			itemName:    "",
			wantCurrent: 1,
			wantTotal:   1,
		},
		{
			name:        "marker mid-string",
			itemName:    "第10期/共24期 車貸",
			wantCurrent: 10,
			wantTotal:   24,
		},
		{
			name:        "zero total falls back to single period",
			itemName:    "裝修費 第1期/共0期",
			wantCurrent: 1,
			wantTotal:   1,
		},
		{
			name:        "zero current falls back to single period",
			itemName:    "裝修費 第0期/共5期",
			wantCurrent: 1,
			wantTotal:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, total := ExtractPeriods(tt.itemName)
			if current != tt.wantCurrent || total != tt.wantTotal {
				t.Errorf("ExtractPeriods(%q) = (%d, %d), want (%d, %d)",
					tt.itemName, current, total, tt.wantCurrent, tt.wantTotal)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name     string
		itemName string
		want     string
	}{
		{
			name:     "parenthesized suffix stripped",
			itemName: "裝修費 (第2期/共5期)",
			want:     "裝修費",
		},
		{
			// The stripping pattern requires the leading space and
			// parentheses; the bare marker survives.
			name:     "bare marker preserved",
			itemName: "家電分期第3期/共12期",
			want:     "家電分期第3期/共12期",
		},
		{
			name:     "parenthesized without leading space preserved",
			itemName: "裝修費(第2期/共5期)",
			want:     "裝修費(第2期/共5期)",
		},
		{
			name:     "plain name untouched",
			itemName: "水電費",
			want:     "水電費",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseName(tt.itemName); got != tt.want {
				t.Errorf("BaseName(%q) = %q, want %q", tt.itemName, got, tt.want)
			}
		})
	}
}

func TestExtractProjectTotal(t *testing.T) {
	tests := []struct {
		name   string
		notes  string
		want   int64
		wantOK bool
	}{
		{"plain digits", "總費用=25000", 25000, true},
		{"thousands separators", "備註 總費用=1,000,000 待確認", 1000000, true},
		{"no marker", "一般備註", 0, false},
		{"empty notes", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractProjectTotal(tt.notes)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractProjectTotal(%q) = (%d, %v), want (%d, %v)",
					tt.notes, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
