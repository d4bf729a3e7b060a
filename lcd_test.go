package numero

import "testing"

// Scenario 4: LCD cursor advance.
func TestLCDCursorAdvanceXUp(t *testing.T) {
	l := NewLCD(ModelGeneric)
	l.WordLen = 8
	l.CursorMode = CursorXUp
	l.X, l.Y = 63, 0

	l.DataWrite(0xAA, 0)

	if l.RAM[63][0] != 0xAA {
		t.Fatalf("display[63,0] = 0x%02X, want 0xAA", l.RAM[63][0])
	}
	requireInt(t, "X", l.X, 0)
	requireInt(t, "Y", l.Y, 0)
}

// Scenario 5: LCD busy gate.
func TestLCDBusyGate(t *testing.T) {
	l := NewLCD(Model83Plus)

	l.CommandWrite(0x02, 100) // display on, accepted
	l.CommandWrite(0x00, 110) // within 60 T-states, ignored
	if l.WordLen != 8 {
		t.Fatalf("second command should have been ignored, WordLen = %d", l.WordLen)
	}

	status := l.CommandRead(115)
	if status&0x80 == 0 {
		t.Fatal("status read within busy window should report bit 7 set")
	}
}

func TestLCDNoBusyGateOnGenericModel(t *testing.T) {
	l := NewLCD(ModelGeneric)

	l.CommandWrite(0x02, 100)
	l.CommandWrite(0x00, 101) // generic model has no busy gate

	if l.WordLen != 6 {
		t.Fatalf("WordLen = %d, want 6 (second command should have been accepted)", l.WordLen)
	}
}

func TestLCDDataReadPreviousThenLatch(t *testing.T) {
	l := NewLCD(ModelGeneric)
	l.WordLen = 8
	l.CursorMode = CursorXUp
	l.RAM[0][0] = 0x11
	l.RAM[0][1] = 0x22
	l.LastRead = 0xFF

	first := l.DataRead(0) // returns stale LastRead, latches byte(0,0), advances to x=1
	second := l.DataRead(0)

	requireU8(t, "first read", first, 0xFF)
	requireU8(t, "second read", second, 0x11)
}

func TestContrastBase(t *testing.T) {
	l := NewLCD(Model83Plus)
	l.CommandWrite(0xFF, 0) // contrast command, bits 5:0 = 0x3F
	if l.Contrast != 0x3F-24 {
		t.Fatalf("Contrast = %d, want %d", l.Contrast, 0x3F-24)
	}
}
