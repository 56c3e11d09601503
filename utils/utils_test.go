package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestIsValidMobile(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"9876543210", true},
		{"0000000000", true},
		{"98765", false},
		{"98765432101", false},
		{"98765-43210", false},
		{"+919876543210", false},
		{"abcdefghij", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidMobile(tt.number); got != tt.want {
			t.Errorf("IsValidMobile(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter22")) != nil {
		t.Error("hash does not verify against the original password")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")) == nil {
		t.Error("hash verified against a wrong password")
	}
}
