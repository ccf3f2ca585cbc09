package source

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestWrapForStreamingBOM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with UTF-8 BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("ID,City")...),
			expected: "ID,City",
		},
		{
			name:     "file without BOM",
			input:    []byte("ID,City"),
			expected: "ID,City",
		},
		{
			name:     "UTF-16 little endian with BOM",
			input:    []byte{0xFF, 0xFE, 'I', 0, 'D', 0},
			expected: "ID",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(WrapForStreaming(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestStreamingUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("Urban,Jam"),
			expected: "Urban,Jam",
		},
		{
			name:     "valid UTF-8 with multibyte",
			input:    []byte("Bengaluru,café"),
			expected: "Bengaluru,café",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
		{
			name:     "empty input",
			input:    []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewStreamingUTF8Sanitizer(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestStreamingUTF8SanitizerSplitRune(t *testing.T) {
	// "é" is split across two reads.
	input := []byte("caf\xc3\xa9!")
	reader := NewStreamingUTF8Sanitizer(io.MultiReader(bytes.NewReader(input[:4]), bytes.NewReader(input[4:])))

	result, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != "café!" {
		t.Errorf("got %q, want %q", string(result), "café!")
	}
}

func TestCountingReader(t *testing.T) {
	input := strings.Repeat("x", 1000)
	reader := NewCountingReader(strings.NewReader(input))

	buf := make([]byte, 100)
	totalRead := 0
	for {
		n, err := reader.Read(buf)
		totalRead += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if totalRead != len(input) {
		t.Errorf("total read = %d, want %d", totalRead, len(input))
	}
	if reader.BytesRead() != int64(len(input)) {
		t.Errorf("BytesRead = %d, want %d", reader.BytesRead(), len(input))
	}
}

func TestWrapForStreaming(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			// The BOM selects x/text's UTF-8 decoder, which substitutes U+FFFD.
			name:     "BOM and invalid byte",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte{'h', 'e', 0x80, 'l', 'o'}...),
			expected: "he\uFFFDlo",
		},
		{
			name:     "invalid byte without BOM",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := WrapForStreaming(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
			if reader.BytesRead() != int64(len(result)) {
				t.Errorf("BytesRead = %d, want %d", reader.BytesRead(), len(result))
			}
		})
	}
}
