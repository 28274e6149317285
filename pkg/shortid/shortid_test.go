package shortid

import (
	"strings"
	"testing"
)

func TestNewInvoiceNo(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		no, err := NewInvoiceNo()
		if err != nil {
			t.Fatalf("NewInvoiceNo failed: %v", err)
		}
		if len(no) != InvoiceLength {
			t.Fatalf("invoice number %q length = %d, want %d", no, len(no), InvoiceLength)
		}
		for _, r := range no {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("invoice number %q contains %q outside the alphabet", no, r)
			}
		}
		if seen[no] {
			t.Fatalf("duplicate invoice number %q within 100 draws", no)
		}
		seen[no] = true
	}
}

func TestNewEmployeeCode(t *testing.T) {
	code, err := NewEmployeeCode()
	if err != nil {
		t.Fatalf("NewEmployeeCode failed: %v", err)
	}
	if len(code) != EmployeeLength {
		t.Fatalf("employee code %q length = %d, want %d", code, len(code), EmployeeLength)
	}
}
