package idhash

import (
	"testing"

	"github.com/mr-tron/base58"
)

func TestComputeDatasetFingerprint(t *testing.T) {
	tests := []struct {
		name     string
		period   string
		strategy string
		content  string
	}{
		{"basic", "12", "quantum_allocation", "a,b\n1,2"},
		{"empty content", "0", "classical_greedy", ""},
		{"unicode", "3", "quantum_allocation", "region\nغزة"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := ComputeDatasetFingerprint(tt.period, tt.strategy, tt.content)

			decoded, err := base58.Decode(fp)
			if err != nil {
				t.Fatalf("fingerprint is not base58: %v", err)
			}
			if len(decoded) != 32 {
				t.Errorf("expected 32 decoded bytes, got %d", len(decoded))
			}

			// Deterministic
			if again := ComputeDatasetFingerprint(tt.period, tt.strategy, tt.content); again != fp {
				t.Errorf("fingerprint not deterministic: %s vs %s", fp, again)
			}
		})
	}
}

func TestComputeDatasetFingerprint_Distinct(t *testing.T) {
	base := ComputeDatasetFingerprint("12", "quantum_allocation", "a\n1")

	if ComputeDatasetFingerprint("13", "quantum_allocation", "a\n1") == base {
		t.Error("period should change the fingerprint")
	}
	if ComputeDatasetFingerprint("12", "classical_greedy", "a\n1") == base {
		t.Error("strategy should change the fingerprint")
	}
	if ComputeDatasetFingerprint("12", "quantum_allocation", "a\n2") == base {
		t.Error("content should change the fingerprint")
	}
}

func TestShort(t *testing.T) {
	if got := Short("abcdef", 3); got != "abc" {
		t.Errorf("expected abc, got %s", got)
	}
	if got := Short("ab", 8); got != "ab" {
		t.Errorf("expected ab, got %s", got)
	}
	if got := Short("abc", 0); got != "abc" {
		t.Errorf("expected abc, got %s", got)
	}
}
