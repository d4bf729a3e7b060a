// ops_cb.go - CB-prefixed (rotate/shift/BIT/RES/SET) and DDCB/FDCB
// indexed opcode handlers.
//
// The plain CB table never substitutes registers: CB bytes following
// a DD/FD prefix always introduce the DDCB/FDCB indexed encoding
// (handled separately by cbOpsIndexed), never a "CB with H/L
// substituted" form - there is no such form on real hardware.

package numero

func (c *CPU) initCBOps() {
	for i := 0; i < 256; i++ {
		op := byte(i)
		group := op >> 6
		reg := op & 0x07
		bit := (op >> 3) & 0x07

		switch group {
		case 0:
			shiftKind := (op >> 3) & 0x07
			c.cbOps[i] = makeCBShift(shiftKind, reg)
		case 1:
			c.cbOps[i] = makeCBBit(bit, reg)
		case 2:
			c.cbOps[i] = makeCBRes(bit, reg)
		case 3:
			c.cbOps[i] = makeCBSet(bit, reg)
		}
	}
}

func (c *CPU) cbReadPlain(reg byte) byte {
	if reg == 6 {
		return c.readMem(c.HL())
	}
	return c.regPlain8(reg)
}

func (c *CPU) cbWritePlain(reg byte, v byte) {
	if reg == 6 {
		c.writeMem(c.HL(), v)
		return
	}
	c.setRegPlain8(reg, v)
}

func makeCBShift(kind byte, reg byte) func(*CPU) {
	return func(c *CPU) {
		v := c.cbReadPlain(reg)
		var res byte
		switch kind {
		case 0:
			res = c.rlc(v)
		case 1:
			res = c.rrc(v)
		case 2:
			res = c.rl(v)
		case 3:
			res = c.rr(v)
		case 4:
			res = c.sla(v)
		case 5:
			res = c.sra(v)
		case 6:
			res = c.sll(v)
		case 7:
			res = c.srl(v)
		}
		c.cbWritePlain(reg, res)
		if reg == 6 {
			c.tick(15)
		} else {
			c.tick(8)
		}
	}
}

func makeCBBit(bit byte, reg byte) func(*CPU) {
	return func(c *CPU) {
		v := c.cbReadPlain(reg)
		c.bitTest(bit, v)
		if reg == 6 {
			c.tick(12)
		} else {
			c.tick(8)
		}
	}
}

func makeCBRes(bit byte, reg byte) func(*CPU) {
	mask := ^(byte(1) << bit)
	return func(c *CPU) {
		v := c.cbReadPlain(reg) & mask
		c.cbWritePlain(reg, v)
		if reg == 6 {
			c.tick(15)
		} else {
			c.tick(8)
		}
	}
}

func makeCBSet(bit byte, reg byte) func(*CPU) {
	mask := byte(1) << bit
	return func(c *CPU) {
		v := c.cbReadPlain(reg) | mask
		c.cbWritePlain(reg, v)
		if reg == 6 {
			c.tick(15)
		} else {
			c.tick(8)
		}
	}
}

// cbOpsIndexed implements the DDCB/FDCB encoding: a displacement byte
// has already been consumed and addr is the resolved (IX+d)/(IY+d)
// effective address. Rotate/shift/RES/SET forms always operate on
// memory at addr, additionally writing the result back into the
// plain register named by the low 3 bits of sub (unless that field is
// 6, meaning "memory only"). BIT never writes back.
func (c *CPU) cbOpsIndexed(addr uint16, sub byte) {
	group := sub >> 6
	reg := sub & 0x07
	bit := (sub >> 3) & 0x07

	switch group {
	case 0:
		v := c.readMem(addr)
		var res byte
		switch bit {
		case 0:
			res = c.rlc(v)
		case 1:
			res = c.rrc(v)
		case 2:
			res = c.rl(v)
		case 3:
			res = c.rr(v)
		case 4:
			res = c.sla(v)
		case 5:
			res = c.sra(v)
		case 6:
			res = c.sll(v)
		case 7:
			res = c.srl(v)
		}
		c.writeMem(addr, res)
		if reg != 6 {
			c.setRegPlain8(reg, res)
		}
		c.tick(23)
	case 1:
		v := c.readMem(addr)
		c.bitTest(bit, v)
		c.tick(20)
	case 2:
		v := c.readMem(addr) &^ (1 << bit)
		c.writeMem(addr, v)
		if reg != 6 {
			c.setRegPlain8(reg, v)
		}
		c.tick(23)
	case 3:
		v := c.readMem(addr) | (1 << bit)
		c.writeMem(addr, v)
		if reg != 6 {
			c.setRegPlain8(reg, v)
		}
		c.tick(23)
	}
}
