package charts

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestBarProducesPNG(t *testing.T) {
	png, err := Bar("Water", []Value{
		{Label: "logged", Value: 300},
		{Label: "goal", Value: 2600},
	})
	if err != nil {
		t.Fatalf("Bar: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatalf("output is not a PNG, first bytes: %v", png[:min(len(png), 4)])
	}
}

func TestBarRejectsEmptyInput(t *testing.T) {
	if _, err := Bar("empty", nil); err == nil {
		t.Fatal("expected error for empty values")
	}
}
