package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
)

// minimalPDF is enough of a PDF for content sniffing.
const minimalPDF = "%PDF-1.4\n1 0 obj << /Type /Catalog >> endobj\ntrailer << /Root 1 0 R >>\n%%EOF\n"

// WritePDF writes a small PDF fixture and returns its path.
func WritePDF(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(minimalPDF), 0o644); err != nil {
		t.Fatalf("write pdf fixture: %v", err)
	}
	return path
}

// WriteTextKey writes a plain text answer key ("1. A" per line) and returns its path.
func WriteTextKey(t testing.TB, dir, name string, key map[string]string) string {
	t.Helper()
	numbers := make([]int, 0, len(key))
	for k := range key {
		n, err := strconv.Atoi(k)
		if err != nil {
			t.Fatalf("answer key question %q is not numeric", k)
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	var b strings.Builder
	for _, n := range numbers {
		fmt.Fprintf(&b, "%d. %s\n", n, key[strconv.Itoa(n)])
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write answer key fixture: %v", err)
	}
	return path
}

// AnswerKey builds a key of n questions cycling through A-E.
func AnswerKey(n int) map[string]string {
	options := []string{"A", "B", "C", "D", "E"}
	key := make(map[string]string, n)
	for i := 1; i <= n; i++ {
		key[strconv.Itoa(i)] = options[(i-1)%len(options)]
	}
	return key
}
