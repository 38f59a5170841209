package chip8

import "testing"

func TestDecodeString(t *testing.T) {
	for _, c := range []struct {
		opcode uint16
		want   string
	}{
		{0x0123, ""}, // SYS escape renders as nothing
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x1234, "JP   234"},
		{0x2345, "CALL 345"},
		{0x312a, "SE   V1, 2a"},
		{0x412a, "SNE  V1, 2a"},
		{0x5120, "SE   V1, V2"},
		{0x612a, "LD   V1, 2a"},
		{0x7105, "ADD  V1, 05"},
		{0x8120, "LD   V1, V2"},
		{0x8121, "OR   V1, V2"},
		{0x8122, "AND  V1, V2"},
		{0x8123, "XOR  V1, V2"},
		{0x8124, "ADD  V1, V2"},
		{0x8125, "SUB  V1, V2"},
		{0x8126, "SHR  V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812e, "SHL  V1, V2"},
		{0x9120, "SNE  V1, V2"},
		{0xa123, "LD   I, 123"},
		{0xb123, "JP   V0, 123"},
		{0xc2f0, "RND  V2, f0"},
		{0xd125, "DRW  V1, V2, 5"},
		{0xe19e, "SKP  V1"},
		{0xe1a1, "SKNP V1"},
		{0xf107, "LD   V1, DT"},
		{0xf10a, "LD   V1, K"},
		{0xf115, "LD   DT, V1"},
		{0xf118, "LD   ST, V1"},
		{0xf11e, "ADD  I, V1"},
		{0xf129, "LD   F, V1"},
		{0xf133, "LD   B, V1"},
		{0xf155, "LD   [I], V1"},
		{0xf165, "LD   V1, [I]"},
		{0xfa07, "LD   VA, DT"},
		{0xdab0, "DRW  VA, VB, 0"},
	} {
		if got := Decode(c.opcode).String(); got != c.want {
			t.Errorf("Decode(%.4x).String() returned %q, want %q", c.opcode, got, c.want)
		}
	}
}

func TestDecodeOperands(t *testing.T) {
	in := Decode(0xd125)
	if in.Op != DRW {
		t.Errorf("Op is %v, want DRW", in.Op)
	}
	if in.X != 1 || in.Y != 2 || in.N != 5 {
		t.Errorf("operands are x=%x y=%x n=%x, want 1 2 5", in.X, in.Y, in.N)
	}
	in = Decode(0x6a42)
	if in.X != 0xa || in.KK != 0x42 {
		t.Errorf("operands are x=%x kk=%x, want a 42", in.X, in.KK)
	}
	in = Decode(0x1abc)
	if in.NNN != 0xabc {
		t.Errorf("nnn is %x, want abc", in.NNN)
	}
}

// An unrecognized sub-encoding within a matched primary group is a
// program defect, not a decodable value.
func TestDecodeBadEncoding(t *testing.T) {
	for _, opcode := range []uint16{
		0x8128, // group 8 defines sub-cases 0-7 and E only
		0x812a,
		0x812f,
		0xe100, // group E defines 9E and A1 only
		0xe1ff,
		0xf100, // group F's low-byte cases are fully enumerated
		0xf101,
		0xf1ff,
	} {
		func() {
			defer func() {
				if e := recover(); e != BadOpcode {
					t.Errorf("Decode(%.4x) panicked with %v, want BadOpcode", opcode, e)
				}
			}()
			Decode(opcode)
		}()
	}
}

// Every opcode either decodes to one of the 35 instructions or panics
// with BadOpcode; there is no third outcome.
func TestDecodeTotal(t *testing.T) {
	for opcode := 0; opcode <= 0xffff; opcode++ {
		func() {
			defer func() {
				if e := recover(); e != nil && e != BadOpcode {
					t.Fatalf("Decode(%.4x) panicked with %v", opcode, e)
				}
			}()
			in := Decode(uint16(opcode))
			if in.Op > LDvi {
				t.Fatalf("Decode(%.4x) produced unknown op %d", opcode, in.Op)
			}
		}()
	}
}
