package terminal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetSizeFallsBack(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name string
		file *os.File
	}{
		{"nil file", nil},
		{"regular file", f},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := GetSize(tt.file)
			if w != DefaultWidth || h != DefaultHeight {
				t.Errorf("GetSize() = %d, %d, want %d, %d", w, h, DefaultWidth, DefaultHeight)
			}
			if GetWidth(tt.file) != DefaultWidth {
				t.Errorf("GetWidth() = %d", GetWidth(tt.file))
			}
			if IsTerminal(tt.file) {
				t.Error("IsTerminal() = true")
			}
		})
	}
}
