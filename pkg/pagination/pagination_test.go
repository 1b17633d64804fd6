package pagination

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, DefaultPage, DefaultLimit, 0},
		{"second_page", 2, 20, 2, 20, 20},
		{"capped", 1, 10000, 1, MaxLimit, 0},
		{"negative", -3, -1, DefaultPage, DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.page, tt.limit)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Errorf("Expected %d/%d/%d, got %d/%d/%d", tt.wantPage, tt.wantLimit, tt.wantOffset, p.Page, p.Limit, p.Offset)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		n         int
		wantStart int
		wantEnd   int
	}{
		{"first_page", New(1, 10), 25, 0, 10},
		{"last_partial", New(3, 10), 25, 20, 25},
		{"past_end", New(4, 10), 25, 25, 25},
		{"empty", New(1, 10), 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Window(tt.n)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Expected [%d, %d), got [%d, %d)", tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}
