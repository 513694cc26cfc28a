package pagination

import (
	"encoding/json"
	"net/url"
	"testing"
)

func testConfig() Config {
	return Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		req          PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"defaults applied", PageRequest{}, 1, 20},
		{"negative page", PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size clamped", PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid untouched", PageRequest{Page: 3, PageSize: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(testConfig())
			if tt.req.Page != tt.wantPage {
				t.Errorf("page: got %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantPageSize {
				t.Errorf("page size: got %d, want %d", tt.req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "example")
	values.Set("sort", "-created_at")

	req := PageRequestFromQuery(values, testConfig())

	if req.Page != 2 || req.PageSize != 10 {
		t.Errorf("unexpected pagination: %+v", req)
	}
	if req.Search == nil || *req.Search != "example" {
		t.Errorf("unexpected search: %v", req.Search)
	}
	if len(req.Sort) != 1 || req.Sort[0].Field != "created_at" || !req.Sort[0].Descending {
		t.Errorf("unexpected sort: %v", req.Sort)
	}
}

func TestSortFieldsUnmarshalString(t *testing.T) {
	var req PageRequest
	data := `{"page": 1, "page_size": 20, "sort": "priority,-id"}`

	if err := json.Unmarshal([]byte(data), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(req.Sort) != 2 {
		t.Fatalf("expected 2 sort fields, got %d", len(req.Sort))
	}
	if req.Sort[1].Field != "id" || !req.Sort[1].Descending {
		t.Errorf("unexpected second sort field: %+v", req.Sort[1])
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact division", 40, 20, 2},
		{"remainder adds page", 41, 20, 3},
		{"empty still one page", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("total pages: got %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestNewPageResultNilData(t *testing.T) {
	result := NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("expected empty slice, got nil")
	}
}
