package chip8

import (
	"fmt"
	"strings"
)

// Op identifies one of the 35 CHIP-8 instructions.
type Op byte

// The suffix conventions distinguish encodings that share a mnemonic:
// b for a byte immediate, v0/dt/st/f/bcd/i for the fixed operand, and
// k for the key-wait form.
const (
	SYS   Op = iota // 0nnn (machine code escape, executes as a no-op)
	CLS             // 00E0
	RET             // 00EE
	JP              // 1nnn
	CALL            // 2nnn
	SEb             // 3xkk
	SNEb            // 4xkk
	SE              // 5xy0
	LDb             // 6xkk
	ADDb            // 7xkk
	LD              // 8xy0
	OR              // 8xy1
	AND             // 8xy2
	XOR             // 8xy3
	ADD             // 8xy4
	SUB             // 8xy5
	SHR             // 8xy6
	SUBN            // 8xy7
	SHL             // 8xyE
	SNE             // 9xy0
	LDI             // Annn
	JPv0            // Bnnn
	RND             // Cxkk
	DRW             // Dxyn
	SKP             // Ex9E
	SKNP            // ExA1
	LDdt            // Fx07 (Vx = delay timer)
	LDk             // Fx0A (wait for key)
	LDdtv           // Fx15 (delay timer = Vx)
	LDstv           // Fx18 (sound timer = Vx)
	ADDI            // Fx1E
	LDf             // Fx29 (I = glyph address)
	LDbcd           // Fx33
	LDiv            // Fx55 (memory[I..] = V0..Vx)
	LDvi            // Fx65 (V0..Vx = memory[I..])
)

func (o Op) String() string { return opStrings[o] }

var opStrings = strings.Fields(`
	SYS
	CLS
	RET
	JP
	CALL
	SE
	SNE
	SE
	LD
	ADD
	LD
	OR
	AND
	XOR
	ADD
	SUB
	SHR
	SUBN
	SHL
	SNE
	LD
	JP
	RND
	DRW
	SKP
	SKNP
	LD
	LD
	LD
	LD
	ADD
	LD
	LD
	LD
	LD
`)

// Instr is a decoded instruction: an Op tag plus every operand field
// the 16-bit encoding carries. Which fields are meaningful depends on
// the Op, but all are populated by Decode so that execution and
// display share one decode step and cannot diverge.
type Instr struct {
	Op  Op
	X   byte   // bits 8-11, register index
	Y   byte   // bits 4-7, register index
	N   byte   // bits 0-3, 4-bit immediate
	KK  byte   // bits 0-7, 8-bit immediate
	NNN uint16 // bits 0-11, 12-bit address
}

// Decode classifies a 16-bit opcode. It panics with BadOpcode if the
// opcode's primary group is recognized but its sub-encoding is not;
// the operand space of each group is fully enumerated by the ISA, so
// such a pattern is a program defect rather than a decodable value.
func Decode(opcode uint16) Instr {
	in := Instr{
		X:   byte(opcode>>8) & 0xf,
		Y:   byte(opcode>>4) & 0xf,
		N:   byte(opcode) & 0xf,
		KK:  byte(opcode),
		NNN: opcode & 0xfff,
	}
	switch opcode >> 12 {
	case 0x0:
		switch in.N {
		case 0x0:
			in.Op = CLS
		case 0xe:
			in.Op = RET
		default:
			in.Op = SYS
		}
	case 0x1:
		in.Op = JP
	case 0x2:
		in.Op = CALL
	case 0x3:
		in.Op = SEb
	case 0x4:
		in.Op = SNEb
	case 0x5:
		in.Op = SE
	case 0x6:
		in.Op = LDb
	case 0x7:
		in.Op = ADDb
	case 0x8:
		switch in.N {
		case 0x0:
			in.Op = LD
		case 0x1:
			in.Op = OR
		case 0x2:
			in.Op = AND
		case 0x3:
			in.Op = XOR
		case 0x4:
			in.Op = ADD
		case 0x5:
			in.Op = SUB
		case 0x6:
			in.Op = SHR
		case 0x7:
			in.Op = SUBN
		case 0xe:
			in.Op = SHL
		default:
			panic(BadOpcode)
		}
	case 0x9:
		in.Op = SNE
	case 0xa:
		in.Op = LDI
	case 0xb:
		in.Op = JPv0
	case 0xc:
		in.Op = RND
	case 0xd:
		in.Op = DRW
	case 0xe:
		switch in.N {
		case 0xe:
			in.Op = SKP
		case 0x1:
			in.Op = SKNP
		default:
			panic(BadOpcode)
		}
	case 0xf:
		switch in.KK {
		case 0x07:
			in.Op = LDdt
		case 0x0a:
			in.Op = LDk
		case 0x15:
			in.Op = LDdtv
		case 0x18:
			in.Op = LDstv
		case 0x1e:
			in.Op = ADDI
		case 0x29:
			in.Op = LDf
		case 0x33:
			in.Op = LDbcd
		case 0x55:
			in.Op = LDiv
		case 0x65:
			in.Op = LDvi
		default:
			panic(BadOpcode)
		}
	}
	return in
}

// String renders the instruction in the conventional mnemonic form,
// for example "SE   V1, 0a" or "LD   [I], V3". The SYS escape renders
// as an empty string.
func (in Instr) String() string {
	switch in.Op {
	case SYS:
		return ""
	case CLS, RET:
		return in.Op.String()
	case JP, CALL:
		return fmt.Sprintf("%-4s %03x", in.Op, in.NNN)
	case SEb, SNEb, LDb, ADDb, RND:
		return fmt.Sprintf("%-4s V%X, %02x", in.Op, in.X, in.KK)
	case SE, SNE, LD, OR, AND, XOR, ADD, SUB, SHR, SUBN, SHL:
		return fmt.Sprintf("%-4s V%X, V%X", in.Op, in.X, in.Y)
	case LDI:
		return fmt.Sprintf("%-4s I, %03x", in.Op, in.NNN)
	case JPv0:
		return fmt.Sprintf("%-4s V0, %03x", in.Op, in.NNN)
	case DRW:
		return fmt.Sprintf("%-4s V%X, V%X, %x", in.Op, in.X, in.Y, in.N)
	case SKP, SKNP:
		return fmt.Sprintf("%-4s V%X", in.Op, in.X)
	case LDdt:
		return fmt.Sprintf("%-4s V%X, DT", in.Op, in.X)
	case LDk:
		return fmt.Sprintf("%-4s V%X, K", in.Op, in.X)
	case LDdtv:
		return fmt.Sprintf("%-4s DT, V%X", in.Op, in.X)
	case LDstv:
		return fmt.Sprintf("%-4s ST, V%X", in.Op, in.X)
	case ADDI:
		return fmt.Sprintf("%-4s I, V%X", in.Op, in.X)
	case LDf:
		return fmt.Sprintf("%-4s F, V%X", in.Op, in.X)
	case LDbcd:
		return fmt.Sprintf("%-4s B, V%X", in.Op, in.X)
	case LDiv:
		return fmt.Sprintf("%-4s [I], V%X", in.Op, in.X)
	case LDvi:
		return fmt.Sprintf("%-4s V%X, [I]", in.Op, in.X)
	default:
		panic(fmt.Errorf("internal error: %v not implemented", in.Op))
	}
}
