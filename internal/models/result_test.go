package models

import (
	"encoding/json"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	codes := map[string]int{
		"ok":       StatusOK,
		"error":    StatusError,
		"login":    StatusLoginError,
		"access":   StatusAccessError,
		"remote":   StatusRemoteError,
		"repeat":   StatusRepError,
		"notfound": StatusNotFound,
	}
	want := map[string]int{
		"ok":       20000,
		"error":    20001,
		"login":    20002,
		"access":   20003,
		"remote":   20004,
		"repeat":   20005,
		"notfound": 20006,
	}

	for name, code := range codes {
		if code != want[name] {
			t.Errorf("%s: expected %d, got %d", name, want[name], code)
		}
	}
}

func TestResult_OmitsEmptyData(t *testing.T) {
	body, err := json.Marshal(Result{Success: true, Code: StatusOK, Message: "ok"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(body) != `{"success":true,"code":20000,"message":"ok"}` {
		t.Errorf("Unexpected envelope %s", body)
	}
}

func TestPage_Offset(t *testing.T) {
	tests := []struct {
		page, size, want int
	}{
		{1, 10, 0},
		{3, 10, 20},
		{2, 1, 1},
	}
	for _, tt := range tests {
		if got := (Page{Page: tt.page, Size: tt.size}).Offset(); got != tt.want {
			t.Errorf("Page{%d,%d}.Offset() = %d, want %d", tt.page, tt.size, got, tt.want)
		}
	}
}
