package customflags

import (
	"testing"
)

func TestSize(t *testing.T) {
	s := NewSize(1e6)

	s.Set("1KB")
	if s.Int64() != 1024 {
		t.Errorf("Expected '1K' => 1024 bytes, got %d", s.Int64())
	}

	if s.String() != "1KiB" {
		t.Errorf("Expected '1KB'.String() => 1KiB, got %s", s.String())
	}
}

func TestSizePlainNumber(t *testing.T) {
	s := NewSize(0)

	if err := s.Set("500"); err != nil || s.Int() != 500 {
		t.Errorf("Expected '500' => 500, got %d (%v)", s.Int(), err)
	}
}

func TestSizeInvalid(t *testing.T) {
	s := NewSize(42)

	if err := s.Set("lots"); err == nil {
		t.Errorf("Expected error parsing 'lots'")
	}
	if s.Int64() != 42 {
		t.Errorf("Expected failed Set() to keep 42, got %d", s.Int64())
	}
}

func TestSizeUnmarshalText(t *testing.T) {
	var s Size
	if err := s.UnmarshalText([]byte("2MB")); err != nil || s.Int64() != 2*1024*1024 {
		t.Errorf("Expected 2MB => %d, got %d (%v)", 2*1024*1024, s.Int64(), err)
	}
}
