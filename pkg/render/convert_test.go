package render

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="red"/></svg>`

func TestConvertArgs(t *testing.T) {
	tests := []struct {
		name   string
		format string
		opts   ConvertOptions
		want   []string
	}{
		{"pdf plain", "pdf", ConvertOptions{}, []string{"-f", "pdf"}},
		{"unit scale dropped", "png", ConvertOptions{Scale: 1}, []string{"-f", "png"}},
		{"scaled", "png", ConvertOptions{Scale: 2}, []string{"-f", "png", "-z", "2.00"}},
		{"background", "png", ConvertOptions{Scale: 1.5, Background: "white"}, []string{"-f", "png", "-z", "1.50", "-b", "white"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, convertArgs(tt.format, tt.opts)); diff != "" {
				t.Errorf("convertArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertUnsupportedFormat(t *testing.T) {
	if _, err := Convert(context.Background(), []byte(tinySVG), "gif", ConvertOptions{}); err == nil {
		t.Error("expected error for gif")
	}
}

func TestConvertWithoutConverter(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := Convert(context.Background(), []byte(tinySVG), "pdf", ConvertOptions{})
	if !errors.Is(err, ErrNoConverter) {
		t.Errorf("Convert() error = %v, want ErrNoConverter", err)
	}
}

func TestConvertPNG(t *testing.T) {
	if _, err := exec.LookPath(converter); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	png, err := Convert(context.Background(), []byte(tinySVG), "png", ConvertOptions{Scale: 2})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
