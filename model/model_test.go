package model

import "testing"

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "empty", data: nil, want: false},
		{name: "text", data: []byte("hello\nworld\n"), want: false},
		{name: "nul", data: []byte("PK\x03\x04\x00"), want: true},
		{name: "nul after sniff window", data: []byte(stringOf('a', 8500) + "\x00"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinary(tt.data); got != tt.want {
				t.Errorf("IsBinary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentLines(t *testing.T) {
	c := NewTextContent("a.txt", "one\r\ntwo\nthree\n")
	lines := c.Lines()
	if len(lines) != 3 || lines[0] != "one" || lines[2] != "three" {
		t.Errorf("Lines() = %q, want [one two three]", lines)
	}

	if got := NewBinaryContent("a.bin", []byte{0, 1}).Lines(); got != nil {
		t.Errorf("binary Lines() = %q, want nil", got)
	}
	if got := NewEmptyContent("gone.txt").Lines(); got != nil {
		t.Errorf("empty Lines() = %q, want nil", got)
	}
}

func stringOf(r byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = r
	}
	return string(b)
}
