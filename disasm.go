package main

import (
	"fmt"
	"io"

	"github.com/nf/c8/chip8"
)

// disasm writes an address, opcode, and mnemonic listing of rom as it
// would sit in machine memory.
func disasm(w io.Writer, rom []byte) {
	i := 0
	for ; i+1 < len(rom); i += 2 {
		opcode := uint16(rom[i])<<8 | uint16(rom[i+1])
		fmt.Fprintf(w, "%.4x: %.4x  %s\n", chip8.ROMStart+i, opcode, decodeText(opcode))
	}
	if i < len(rom) {
		fmt.Fprintf(w, "%.4x: %.2x\n", chip8.ROMStart+i, rom[i])
	}
}

// decodeText renders an opcode's mnemonic, or "???" for bit patterns
// that are not instructions (sprite data, for example).
func decodeText(opcode uint16) (s string) {
	defer func() {
		if recover() != nil {
			s = "???"
		}
	}()
	return chip8.Decode(opcode).String()
}
