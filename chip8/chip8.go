// Package chip8 provides an implementation of a CHIP-8 interpreter,
// called Machine, that can be used to execute CHIP-8 bytecode.
package chip8

import (
	"fmt"
	"math/rand"
)

// Screen dimensions of the CHIP-8 monochrome display, in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

const (
	// ROMStart is the memory offset at which program bytes are loaded
	// and execution begins. The region below it is reserved for the
	// interpreter; the hex digit glyphs live at its bottom.
	ROMStart = 0x200

	// MaxROMSize is the largest program that fits in memory.
	MaxROMSize = 4096 - ROMStart
)

// Machine is an implementation of a CHIP-8 interpreter.
//
// A Machine is owned by a single driver goroutine: the driver writes
// Keys wholesale before calling Tick, reads GFX between ticks, and
// polls and clears Beep. The Machine itself never blocks and has no
// internal synchronization.
type Machine struct {
	V     [16]byte   // general-purpose registers; V[0xf] is the flag register
	I     uint16     // index register
	PC    uint16     // program counter
	Stack [16]uint16 // subroutine return addresses
	SP    byte       // stack pointer; always in [0, 16]
	Delay byte       // delay timer
	Sound byte       // sound timer
	Mem   [4096]byte

	// Keys holds the pressed state of the 16-key pad, sampled by the
	// driver and overwritten wholesale between ticks.
	Keys [16]bool

	// GFX is the monochrome framebuffer, row-major.
	GFX [ScreenWidth * ScreenHeight]bool

	// Beep is set on the 1 -> 0 edge of the sound timer and cleared
	// by the driver once the signal has sounded.
	Beep bool

	// Rand supplies the byte consumed by the RND instruction.
	// NewMachine sets it to math/rand; tests may replace it.
	Rand func() byte

	// Quirks selects between historical ISA variants.
	Quirks Quirks
}

// Quirks selects deviations between generations of the CHIP-8 ISA.
// The zero value matches the behavior this package documents.
type Quirks struct {
	// CopyShift makes SHR and SHL copy Vy into Vx before shifting,
	// as the original COSMAC VIP interpreter did. When false the
	// shift operates on Vx alone.
	CopyShift bool
}

// glyphs holds the five-byte bitmap sprites for hex digits 0-F,
// loaded at the bottom of memory by NewMachine for the LD F,Vx
// convention.
var glyphs = [0x50]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x08, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x08, 0x80, // F
}

// NewMachine returns a Machine loaded with the given rom at ROMStart.
// The rom must fit below the top of memory; NewMachine performs no
// validation of its own and truncates an oversized rom, so callers
// loading untrusted files should check against MaxROMSize first.
func NewMachine(rom []byte) *Machine {
	m := &Machine{PC: ROMStart}
	m.Rand = func() byte { return byte(rand.Intn(256)) }
	copy(m.Mem[:], glyphs[:])
	copy(m.Mem[ROMStart:], rom)
	return m
}

// Opcode returns the 16-bit big-endian opcode at the program counter.
// It panics if the program counter is outside memory.
func (m *Machine) Opcode() uint16 {
	if int(m.PC)+1 >= len(m.Mem) {
		panic(BadAddress)
	}
	return uint16(m.Mem[m.PC])<<8 | uint16(m.Mem[m.PC+1])
}

// Tick performs one fetch-decode-execute step followed by one timer
// decay step. It returns a non-nil error only if it encounters a halt
// condition (a stack bound violation, an unrecognized opcode encoding,
// or a memory access outside the 4K address space), in which case the
// machine state must be considered corrupt and the session ended.
func (m *Machine) Tick() (err error) {
	var (
		opPC   = m.PC
		opcode uint16
	)
	defer func() {
		if e := recover(); e != nil {
			if code, ok := e.(HaltCode); ok {
				err = HaltError{
					Addr:     opPC,
					Opcode:   opcode,
					HaltCode: code,
				}
			} else {
				panic(e)
			}
		}
	}()

	opcode = m.Opcode()
	m.exec(Decode(opcode))

	if m.Delay > 0 {
		m.Delay--
	}
	if m.Sound > 0 {
		if m.Sound == 1 {
			m.Beep = true
		}
		m.Sound--
	}
	return nil
}

func (m *Machine) exec(in Instr) {
	switch in.Op {
	case SYS:
		// Machine code escape on the original hardware; a no-op here.
		m.PC += 2
	case CLS:
		m.GFX = [ScreenWidth * ScreenHeight]bool{}
		m.PC += 2
	case RET:
		if m.SP == 0 {
			panic(StackUnderflow)
		}
		m.SP--
		m.PC = m.Stack[m.SP] + 2
	case JP:
		m.PC = in.NNN
	case CALL:
		if int(m.SP) == len(m.Stack) {
			panic(StackOverflow)
		}
		m.Stack[m.SP] = m.PC
		m.SP++
		m.PC = in.NNN
	case SEb:
		m.skipIf(m.V[in.X] == in.KK)
	case SNEb:
		m.skipIf(m.V[in.X] != in.KK)
	case SE:
		m.skipIf(m.V[in.X] == m.V[in.Y])
	case LDb:
		m.V[in.X] = in.KK
		m.PC += 2
	case ADDb:
		// No carry flag, unlike the register form.
		m.V[in.X] += in.KK
		m.PC += 2
	case LD:
		m.V[in.X] = m.V[in.Y]
		m.PC += 2
	case OR:
		m.V[in.X] |= m.V[in.Y]
		m.PC += 2
	case AND:
		m.V[in.X] &= m.V[in.Y]
		m.PC += 2
	case XOR:
		m.V[in.X] ^= m.V[in.Y]
		m.PC += 2
	case ADD:
		vx, vy := m.V[in.X], m.V[in.Y]
		m.V[in.X] = vx + vy
		m.setVF(uint16(vx)+uint16(vy) > 0xff)
		m.PC += 2
	case SUB:
		vx, vy := m.V[in.X], m.V[in.Y]
		m.V[in.X] = vx - vy
		m.setVF(vx >= vy) // VF = NOT borrow
		m.PC += 2
	case SHR:
		vx := m.V[in.X]
		if m.Quirks.CopyShift {
			vx = m.V[in.Y]
		}
		m.V[in.X] = vx >> 1
		m.V[0xf] = vx & 1
		m.PC += 2
	case SUBN:
		vx, vy := m.V[in.X], m.V[in.Y]
		m.V[in.X] = vy - vx
		m.setVF(vy >= vx)
		m.PC += 2
	case SHL:
		vx := m.V[in.X]
		if m.Quirks.CopyShift {
			vx = m.V[in.Y]
		}
		m.V[in.X] = vx << 1
		m.V[0xf] = vx >> 7
		m.PC += 2
	case SNE:
		m.skipIf(m.V[in.X] != m.V[in.Y])
	case LDI:
		m.I = in.NNN
		m.PC += 2
	case JPv0:
		m.PC = uint16(m.V[0]) + in.NNN
	case RND:
		m.V[in.X] = m.Rand() & in.KK
		m.PC += 2
	case DRW:
		m.draw(int(m.V[in.X]), int(m.V[in.Y]), int(in.N))
		m.PC += 2
	case SKP:
		m.skipIf(m.Keys[m.V[in.X]&0xf])
	case SKNP:
		m.skipIf(!m.Keys[m.V[in.X]&0xf])
	case LDdt:
		m.V[in.X] = m.Delay
		m.PC += 2
	case LDk:
		// No key pressed: leave PC alone so the instruction runs
		// again next tick. The wait is the driver's repeated calls.
		for k, down := range m.Keys {
			if down {
				m.V[in.X] = byte(k)
				m.PC += 2
				break
			}
		}
	case LDdtv:
		m.Delay = m.V[in.X]
		m.PC += 2
	case LDstv:
		m.Sound = m.V[in.X]
		m.PC += 2
	case ADDI:
		m.I += uint16(m.V[in.X])
		m.PC += 2
	case LDf:
		m.I = uint16(m.V[in.X]) * 5
		m.PC += 2
	case LDbcd:
		vx := m.V[in.X]
		m.store(m.I, vx/100)
		m.store(m.I+1, vx/10%10)
		m.store(m.I+2, vx%10)
		m.PC += 2
	case LDiv:
		for i := uint16(0); i <= uint16(in.X); i++ {
			m.store(m.I+i, m.V[i])
		}
		m.PC += 2
	case LDvi:
		for i := uint16(0); i <= uint16(in.X); i++ {
			m.V[i] = m.load(m.I + i)
		}
		m.PC += 2
	default:
		panic(fmt.Errorf("internal error: %v not implemented", in.Op))
	}
}

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.PC += 4
	} else {
		m.PC += 2
	}
}

// setVF writes the flag register. Callers must write the destination
// register first so that an instruction with x=15 leaves the computed
// flag, matching the legacy write order.
func (m *Machine) setVF(cond bool) {
	if cond {
		m.V[0xf] = 1
	} else {
		m.V[0xf] = 0
	}
}

func (m *Machine) load(addr uint16) byte {
	if int(addr) >= len(m.Mem) {
		panic(BadAddress)
	}
	return m.Mem[addr]
}

func (m *Machine) store(addr uint16, v byte) {
	if int(addr) >= len(m.Mem) {
		panic(BadAddress)
	}
	m.Mem[addr] = v
}

// draw XOR-blits an n-row sprite read from memory at I onto the
// framebuffer at (x, y), wrapping each pixel modulo the screen
// dimensions, and sets VF if any pixel was erased by the blit.
func (m *Machine) draw(x, y, n int) {
	collision := false
	for row := 0; row < n; row++ {
		bits := m.load(m.I + uint16(row))
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			i := (y+row)%ScreenHeight*ScreenWidth + (x+col)%ScreenWidth
			if m.GFX[i] {
				collision = true
			}
			m.GFX[i] = !m.GFX[i]
		}
	}
	m.setVF(collision)
}

// HaltError is returned by Tick if execution reaches a state the
// machine cannot continue from.
type HaltError struct {
	HaltCode
	Opcode uint16
	Addr   uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s executing %.4x at %.4x", e.HaltCode, e.Opcode, e.Addr)
}

// HaltCode signifies the type of condition that halted execution.
type HaltCode byte

const (
	StackUnderflow HaltCode = iota
	StackOverflow
	BadOpcode
	BadAddress
)

func (c HaltCode) String() string {
	if s, ok := map[HaltCode]string{
		StackUnderflow: "stack underflow",
		StackOverflow:  "stack overflow",
		BadOpcode:      "unrecognized opcode encoding",
		BadAddress:     "memory access out of range",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%.2x)", byte(c))
}
