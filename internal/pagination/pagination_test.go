package pagination

import "testing"

func TestPageRequestDefaults(t *testing.T) {
	tests := []struct {
		name         string
		in           PageRequest
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{"zero_values", PageRequest{}, 1, 20, 0},
		{"explicit", PageRequest{Page: 3, PageSize: 10}, 3, 10, 20},
		{"oversized_page_size", PageRequest{Page: 2, PageSize: 500}, 2, 100, 100},
		{"negative_page", PageRequest{Page: -1, PageSize: 5}, 1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Defaults()
			if p.Page != tt.wantPage || p.PageSize != tt.wantPageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", p.Page, p.PageSize, tt.wantPage, tt.wantPageSize)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", p.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, 1, 20, 41)
	if resp.Data == nil {
		t.Error("expected nil data to be replaced by an empty slice")
	}
	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}

	empty := NewPageResponse([]string{}, 1, 20, 0)
	if empty.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", empty.TotalPages)
	}
}
