package vm

// execLD2 implements LD r,adr,x (RAdrX form, opcode 0x10): loads the
// word at the effective address into GR[r] and sets ZF/SF from the
// loaded value (OF is always cleared).
func (vm *VM) execLD2(addr uint16) (StepOutcome, error) {
	r, ea := vm.operandsRAdrX(addr)
	v := vm.Memory.Read(ea)
	vm.CPU.GR[r] = v
	zf, sf, of := flagsBitwise(v)
	vm.CPU.SetFlags(zf, sf, of)
	return StepOutcome{Kind: Continue}, nil
}

// execLD1 implements LD r1,r2 (R1R2 form, opcode 0x14): copies GR[r2]
// into GR[r1] and sets flags from the destination register's new
// value. The reference implementation's flags() call uses the
// destination register; this must not be confused with a
// source-register read, which is the bug the specification calls
// out explicitly.
func (vm *VM) execLD1(addr uint16) (StepOutcome, error) {
	r1, r2 := vm.operandsR1R2(addr)
	vm.CPU.GR[r1] = vm.CPU.GR[r2]
	zf, sf, of := flagsBitwise(vm.CPU.GR[r1])
	vm.CPU.SetFlags(zf, sf, of)
	return StepOutcome{Kind: Continue}, nil
}

// execST implements ST r,adr,x: stores GR[r] at the effective
// address. Flags are unaffected.
func (vm *VM) execST(addr uint16) (StepOutcome, error) {
	r, ea := vm.operandsRAdrX(addr)
	vm.Memory.Write(ea, vm.CPU.GR[r])
	return StepOutcome{Kind: Continue}, nil
}

// execLAD implements LAD r,adr,x: loads the effective address itself
// (not the word stored there) into GR[r]. Flags are unaffected.
func (vm *VM) execLAD(addr uint16) (StepOutcome, error) {
	w0 := vm.Memory.Read(addr)
	adrWord := vm.Memory.Read(addr + 1)
	r := decodeR(w0)
	x := decodeX(w0)
	ea := vm.EffectiveAddress(adrWord, x)
	vm.CPU.GR[r] = ea
	return StepOutcome{Kind: Continue}, nil
}
