package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nf/c8/chip8"
)

func TestReadROM(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, b []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, b, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	if _, err := readROM(filepath.Join(dir, "missing.ch8")); err == nil {
		t.Error("missing file: got nil error")
	}
	if _, err := readROM(write("empty.ch8", nil)); err == nil {
		t.Error("empty file: got nil error")
	}
	if _, err := readROM(write("big.ch8", make([]byte, chip8.MaxROMSize+1))); err == nil {
		t.Error("oversized file: got nil error")
	}
	rom, err := readROM(write("max.ch8", make([]byte, chip8.MaxROMSize)))
	if err != nil {
		t.Errorf("maximum-size file: %v", err)
	}
	if len(rom) != chip8.MaxROMSize {
		t.Errorf("got %d bytes, want %d", len(rom), chip8.MaxROMSize)
	}
}

func TestDisasm(t *testing.T) {
	var b bytes.Buffer
	disasm(&b, []byte{
		0x00, 0xe0, // CLS
		0xa2, 0x10, // LD I, 210
		0xf1, 0xff, // not an instruction
		0x80, // trailing data byte
	})
	want := "0200: 00e0  CLS\n" +
		"0202: a210  LD   I, 210\n" +
		"0204: f1ff  ???\n" +
		"0206: 80\n"
	if got := b.String(); got != want {
		t.Errorf("listing is:\n%s\nwant:\n%s", got, want)
	}
}
