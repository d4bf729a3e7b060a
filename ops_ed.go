// ops_ed.go - ED-prefixed opcode handlers: extended 8/16-bit loads,
// block transfer/search/IO instructions, interrupt-mode and
// refresh-register instructions.
//
// ED ignores any preceding DD/FD: the dispatch loop in Step clears
// c.prefix before looking up edOps, since the real Z80 has no indexed
// ED forms; a preceding prefix byte is simply wasted (its 4 T-states
// were already charged by the prefix-consumption loop).

package numero

func (c *CPU) initEDOps() {
	for i := 0; i < 256; i++ {
		c.edOps[i] = opEDUnimplemented
	}

	pairs := [4]regPair{regPairBC, regPairDE, regPairHL, regPairSP}
	for i, p := range pairs {
		c.edOps[0x42+byte(i)*8] = makeSBCHL(p)
		c.edOps[0x4A+byte(i)*8] = makeADCHL(p)
		c.edOps[0x43+byte(i)*8] = makeLDIndRR(p)
		c.edOps[0x4B+byte(i)*8] = makeLDRRInd(p)
	}

	for _, op := range []byte{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		c.edOps[op] = opNEG
	}
	for _, op := range []byte{0x45, 0x55, 0x65, 0x75} {
		c.edOps[op] = opRETN
	}
	for _, op := range []byte{0x4D, 0x5D, 0x6D, 0x7D} {
		c.edOps[op] = opRETI
	}
	for _, op := range []byte{0x46, 0x4E, 0x66, 0x6E} {
		c.edOps[op] = makeIM(IM0)
	}
	for _, op := range []byte{0x56, 0x76} {
		c.edOps[op] = makeIM(IM1)
	}
	for _, op := range []byte{0x5E, 0x7E} {
		c.edOps[op] = makeIM(IM2)
	}

	c.edOps[0x47] = opLDIA
	c.edOps[0x4F] = opLDRA
	c.edOps[0x57] = opLDAI
	c.edOps[0x5F] = opLDAR
	c.edOps[0x67] = opRRD
	c.edOps[0x6F] = opRLD

	for r := byte(0); r < 8; r++ {
		c.edOps[0x40+r*8] = makeINrC(r)
		c.edOps[0x41+r*8] = makeOUTCr(r)
	}

	c.edOps[0xA0] = opLDI
	c.edOps[0xA1] = opCPI
	c.edOps[0xA2] = opINI
	c.edOps[0xA3] = opOUTI
	c.edOps[0xA8] = opLDD
	c.edOps[0xA9] = opCPD
	c.edOps[0xAA] = opIND
	c.edOps[0xAB] = opOUTD
	c.edOps[0xB0] = opLDIR
	c.edOps[0xB1] = opCPIR
	c.edOps[0xB2] = opINIR
	c.edOps[0xB3] = opOTIR
	c.edOps[0xB8] = opLDDR
	c.edOps[0xB9] = opCPDR
	c.edOps[0xBA] = opINDR
	c.edOps[0xBB] = opOTDR
}

func opEDUnimplemented(c *CPU) { c.tick(8) }

func makeSBCHL(p regPair) func(*CPU) {
	return func(c *CPU) {
		res := c.sbcHL(c.getPairPlainHL(p))
		c.setHL(res)
		c.tick(15)
	}
}

func makeADCHL(p regPair) func(*CPU) {
	return func(c *CPU) {
		res := c.adcHL(c.getPairPlainHL(p))
		c.setHL(res)
		c.tick(15)
	}
}

// getPairPlainHL reads a pair operand for the ED 16-bit ALU/LD forms,
// which always reference literal HL (never IX/IY; ED ignores prefix).
func (c *CPU) getPairPlainHL(p regPair) uint16 {
	switch p {
	case regPairBC:
		return c.BC()
	case regPairDE:
		return c.DE()
	case regPairHL:
		return c.HL()
	case regPairSP:
		return c.SP
	}
	panic("getPairPlainHL: bad pair")
}

func (c *CPU) setPairPlain(p regPair, v uint16) {
	switch p {
	case regPairBC:
		c.setBC(v)
	case regPairDE:
		c.setDE(v)
	case regPairHL:
		c.setHL(v)
	case regPairSP:
		c.SP = v
	}
}

func makeLDIndRR(p regPair) func(*CPU) {
	return func(c *CPU) {
		addr := c.fetchWord()
		v := c.getPairPlainHL(p)
		c.writeMem(addr, byte(v))
		c.writeMem(addr+1, byte(v>>8))
		c.tick(20)
	}
}

func makeLDRRInd(p regPair) func(*CPU) {
	return func(c *CPU) {
		addr := c.fetchWord()
		lo := c.readMem(addr)
		hi := c.readMem(addr + 1)
		c.setPairPlain(p, uint16(hi)<<8|uint16(lo))
		c.tick(20)
	}
}

func opNEG(c *CPU) {
	v := c.A
	c.A = 0
	c.subA(v, false, false)
	c.tick(8)
}

func opRETN(c *CPU) {
	c.IFF1 = c.IFF2
	c.PC = c.popWord()
	c.tick(14)
}

func opRETI(c *CPU) {
	c.IFF1 = c.IFF2
	c.PC = c.popWord()
	c.tick(14)
}

func makeIM(mode int) func(*CPU) {
	return func(c *CPU) {
		c.IM = mode
		c.tick(8)
	}
}

func opLDIA(c *CPU) { c.I = c.A; c.tick(9) }
func opLDRA(c *CPU) { c.R = c.A & 0x7F; c.tick(9) }

func opLDAI(c *CPU) {
	c.A = c.I
	f := c.F & FlagC
	if c.A&0x80 != 0 {
		f |= FlagS
	}
	if c.A == 0 {
		f |= FlagZ
	}
	if c.IFF2 {
		f |= FlagPV
	}
	f |= c.A & (FlagX5 | FlagX3)
	c.F = f
	c.tick(9)
}

func opLDAR(c *CPU) {
	c.A = c.R
	f := c.F & FlagC
	if c.A&0x80 != 0 {
		f |= FlagS
	}
	if c.A == 0 {
		f |= FlagZ
	}
	if c.IFF2 {
		f |= FlagPV
	}
	f |= c.A & (FlagX5 | FlagX3)
	c.F = f
	c.tick(9)
}

func opRRD(c *CPU) {
	addr := c.HL()
	m := c.readMem(addr)
	res := (c.A & 0xF0) | (m & 0x0F)
	newM := (m >> 4) | (c.A << 4)
	c.A = res
	c.writeMem(addr, newM)
	c.setLogicFlags()
	c.tick(18)
}

func opRLD(c *CPU) {
	addr := c.HL()
	m := c.readMem(addr)
	res := (c.A & 0xF0) | (m >> 4)
	newM := (m << 4) | (c.A & 0x0F)
	c.A = res
	c.writeMem(addr, newM)
	c.setLogicFlags()
	c.tick(18)
}

func makeINrC(r byte) func(*CPU) {
	return func(c *CPU) {
		v := c.Ports.In(c.C)
		if r != 6 {
			c.setRegPlain8(r, v)
		}
		f := c.F & FlagC
		if v&0x80 != 0 {
			f |= FlagS
		}
		if v == 0 {
			f |= FlagZ
		}
		if parity8(v) {
			f |= FlagPV
		}
		f |= v & (FlagX5 | FlagX3)
		c.F = f
		c.tick(12)
	}
}

func makeOUTCr(r byte) func(*CPU) {
	return func(c *CPU) {
		var v byte
		if r == 6 {
			v = 0
		} else {
			v = c.regPlain8(r)
		}
		c.Ports.Out(c.C, v)
		c.tick(12)
	}
}

// Block instruction family. Each increments/decrements HL (and DE for
// the LD group) and decrements BC (only B for the I/O group), setting
// flags via the shared updateLDIFlags/updateCPFlags/setBlockIOFlags
// formulas. The repeating (R) forms rewind PC by 2 to re-execute the
// same ED xx pair when BC (B for the I/O group; for CPIR/CPDR, BC and
// match status) indicates more work remains - this
// bounds interrupt latency to the cost of one iteration plus the
// prefix/opcode refetch, rather than looping internally.

func opLDI(c *CPU) {
	v := c.readMem(c.HL())
	c.writeMem(c.DE(), v)
	c.setHL(c.HL() + 1)
	c.setDE(c.DE() + 1)
	bc := c.BC() - 1
	c.setBC(bc)
	c.updateLDIFlags(v, bc)
	c.tick(16)
}

func opLDD(c *CPU) {
	v := c.readMem(c.HL())
	c.writeMem(c.DE(), v)
	c.setHL(c.HL() - 1)
	c.setDE(c.DE() - 1)
	bc := c.BC() - 1
	c.setBC(bc)
	c.updateLDIFlags(v, bc)
	c.tick(16)
}

func opLDIR(c *CPU) {
	opLDI(c)
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func opLDDR(c *CPU) {
	opLDD(c)
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func opCPI(c *CPU) {
	v := c.readMem(c.HL())
	c.setHL(c.HL() + 1)
	bc := c.BC() - 1
	c.setBC(bc)
	c.updateCPFlags(v, bc)
	c.tick(16)
}

func opCPD(c *CPU) {
	v := c.readMem(c.HL())
	c.setHL(c.HL() - 1)
	bc := c.BC() - 1
	c.setBC(bc)
	c.updateCPFlags(v, bc)
	c.tick(16)
}

func opCPIR(c *CPU) {
	opCPI(c)
	if c.BC() != 0 && c.F&FlagZ == 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func opCPDR(c *CPU) {
	opCPD(c)
	if c.BC() != 0 && c.F&FlagZ == 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func opINI(c *CPU) {
	v := c.Ports.In(c.C)
	c.writeMem(c.HL(), v)
	c.setHL(c.HL() + 1)
	c.B--
	c.setBlockIOFlags()
	c.tick(16)
}

func opIND(c *CPU) {
	v := c.Ports.In(c.C)
	c.writeMem(c.HL(), v)
	c.setHL(c.HL() - 1)
	c.B--
	c.setBlockIOFlags()
	c.tick(16)
}

func opINIR(c *CPU) {
	opINI(c)
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func opINDR(c *CPU) {
	opIND(c)
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func opOUTI(c *CPU) {
	v := c.readMem(c.HL())
	c.Ports.Out(c.C, v)
	c.setHL(c.HL() + 1)
	c.B--
	c.setBlockIOFlags()
	c.tick(16)
}

func opOUTD(c *CPU) {
	v := c.readMem(c.HL())
	c.Ports.Out(c.C, v)
	c.setHL(c.HL() - 1)
	c.B--
	c.setBlockIOFlags()
	c.tick(16)
}

func opOTIR(c *CPU) {
	opOUTI(c)
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func opOTDR(c *CPU) {
	opOUTD(c)
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

// setBlockIOFlags implements the INI/IND/OUTI/OUTD flag formula. PV
// is set from B (after the decrement) being nonzero, per the spec's
// "carries BC != 0" wording read against B being the only counter
// this instruction family decrements; this is the same reuse-one-
// shared-formula resolution documented for LDD/LDDR in alu.go.
func (c *CPU) setBlockIOFlags() {
	f := c.F & FlagC
	if c.B&0x80 != 0 {
		f |= FlagS
	}
	if c.B == 0 {
		f |= FlagZ
	}
	if c.B != 0 {
		f |= FlagPV
	}
	f |= FlagN
	f |= c.B & (FlagX5 | FlagX3)
	c.F = f
}
