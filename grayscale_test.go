package numero

import "testing"

// Scenario 6: grayscale overlay at mid contrast approximates a linear
// ramp before the contrast blend is applied; the render is checked at
// contrast=MID, where the blend's alpha is 0 and the ramp shows
// through unchanged.
func TestGrayscaleOverlayRamp(t *testing.T) {
	var ring grayscaleRing
	ring.init(4)

	// Push frames so that pixel (0,0) is set in exactly k of the 4
	// snapshots, for k = 0..4 (tested independently per subcase).
	for k := 0; k <= 4; k++ {
		ring.reset()
		ring.shades = 4
		for i := 0; i < k; i++ {
			var snap RAMSnapshot
			snap[0][0] = 0x80 // most significant bit of byte 0, i.e. column 0
			ring.push(&snap, 0)
		}
		for i := k; i < 4; i++ {
			var snap RAMSnapshot
			ring.push(&snap, 0)
		}

		alpha, overlay := contrastBlend(contrastMid)
		frame := ring.render(contrastMid)
		got := frame[0]

		pixel := k * 0xFF / 4
		want := alpha*int(overlay)/100 + pixel*(100-alpha)/100
		if int(got) != want {
			t.Fatalf("k=%d: pixel(0,0) = %d, want %d", k, got, want)
		}
	}
}

func TestGrayscaleUniformFrameMatchesSingleSnapshot(t *testing.T) {
	var multi grayscaleRing
	multi.init(4)
	var single grayscaleRing
	single.init(1)

	var f RAMSnapshot
	f[3][5] = 0xFF

	for i := 0; i < 4; i++ {
		multi.push(&f, 0)
	}
	single.push(&f, 0)

	mf := multi.render(contrastMid)
	sf := single.render(contrastMid)

	idx := 3*LCDWidth + 5*8
	if mf[idx] != sf[idx] {
		t.Fatalf("uniform multi-snapshot render = %d, single-snapshot render = %d", mf[idx], sf[idx])
	}
}

func TestLCDInactiveRendersZero(t *testing.T) {
	l := NewLCD(ModelGeneric)
	l.Active = false
	l.RAM[0][0] = 0xFF

	frame := l.Image()
	for _, b := range frame {
		if b != 0 {
			t.Fatal("inactive LCD should render an all-zero frame")
		}
	}
}
