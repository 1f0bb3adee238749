package vm

// execPUSH implements PUSH adr,x: pushes the effective address itself
// (not the word stored there) onto the stack.
func (vm *VM) execPUSH(addr uint16) (StepOutcome, error) {
	ea := vm.operandsAdrX(addr)
	sp := vm.CPU.SP() - 1
	vm.CPU.SetSP(sp)
	vm.Memory.Write(sp, ea)
	return StepOutcome{Kind: Continue}, nil
}

// execPOP implements POP r: pops the top of stack into GR[r].
func (vm *VM) execPOP(addr uint16) (StepOutcome, error) {
	r := vm.operandsR(addr)
	sp := vm.CPU.SP()
	vm.CPU.GR[r] = vm.Memory.Read(sp)
	vm.CPU.SetSP(sp + 1)
	return StepOutcome{Kind: Continue}, nil
}

// execRPUSH implements RPUSH: pushes GR1 through GR7 (never GR8/SP
// itself) onto the stack in ascending register order. The reference
// implementation's loop range also pushes SP, which both corrupts the
// saved values and double-moves the stack pointer; the corrected
// range below does not reproduce that bug.
func (vm *VM) execRPUSH() (StepOutcome, error) {
	for i := GR1; i <= GR7; i++ {
		sp := vm.CPU.SP() - 1
		vm.CPU.SetSP(sp)
		vm.Memory.Write(sp, vm.CPU.GR[i])
	}
	return StepOutcome{Kind: Continue}, nil
}

// execRPOP implements RPOP: restores GR7 through GR1 in descending
// order, the inverse of RPUSH's push order.
func (vm *VM) execRPOP() (StepOutcome, error) {
	for i := GR7; i >= GR1; i-- {
		sp := vm.CPU.SP()
		vm.CPU.GR[i] = vm.Memory.Read(sp)
		vm.CPU.SetSP(sp + 1)
	}
	return StepOutcome{Kind: Continue}, nil
}
