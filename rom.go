package main

import (
	"fmt"
	"os"

	"github.com/nf/c8/chip8"
)

// readROM reads a ROM file and validates its size. The machine loads
// programs at a fixed offset and performs no bounds checks of its
// own, so the rejection of oversized files happens here.
func readROM(path string) ([]byte, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(rom) == 0 {
		return nil, fmt.Errorf("%s: empty ROM", path)
	}
	if len(rom) > chip8.MaxROMSize {
		return nil, fmt.Errorf("%s: ROM is %d bytes; the machine fits %d",
			path, len(rom), chip8.MaxROMSize)
	}
	return rom, nil
}
