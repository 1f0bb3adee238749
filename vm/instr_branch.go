package vm

// execJump implements the JMI/JNZ/JZE/JUMP/JPL/JOV family: if cond()
// is true, control transfers to the effective address; otherwise
// execution falls through to the next instruction. JOV's condition
// is OF == true, correcting the reference implementation's inverted
// OF == false check.
func (vm *VM) execJump(addr uint16, cond func() bool) (StepOutcome, error) {
	ea := vm.operandsAdrX(addr)
	if cond() {
		return StepOutcome{Kind: Jumped, Addr: ea}, nil
	}
	return StepOutcome{Kind: Continue}, nil
}

// execCALL implements CALL adr,x: pushes the address of the
// instruction following the CALL (addr+info.Size, i.e. the normal
// post-advance PR) and jumps to the effective address. This pushes
// the post-advance return address directly, unlike the reference
// implementation, which pushes a pre-advance PR and has RET
// compensate with a +2 offset; that compensation is not reproduced.
func (vm *VM) execCALL(addr uint16, info InstInfo) (StepOutcome, error) {
	ea := vm.operandsAdrX(addr)
	returnAddr := addr + uint16(info.Size)
	sp := vm.CPU.SP() - 1
	vm.CPU.SetSP(sp)
	vm.Memory.Write(sp, returnAddr)
	vm.CallLevel++
	return StepOutcome{Kind: Jumped, Addr: ea}, nil
}

// execRET implements RET: at call depth zero it halts the machine
// (a top-level RET ends the program, matching the reference
// implementation's exit-on-underflow behavior); otherwise it pops the
// return address pushed by CALL and jumps there directly, with no
// offset correction needed since CALL pushed the correct address.
func (vm *VM) execRET() (StepOutcome, error) {
	if vm.CallLevel == 0 {
		return StepOutcome{Kind: Halted}, nil
	}
	sp := vm.CPU.SP()
	returnAddr := vm.Memory.Read(sp)
	vm.CPU.SetSP(sp + 1)
	vm.CallLevel--
	return StepOutcome{Kind: Jumped, Addr: returnAddr}, nil
}

// execSVC implements SVC adr,x: the base machine has no supervisor
// call handler installed, so SVC re-executes itself (PR is not
// advanced), matching the reference implementation's default
// behavior. A host may override this by replacing execSVC's
// behavior at a higher layer; no such override is part of the base
// architecture.
func (vm *VM) execSVC(addr uint16) (StepOutcome, error) {
	return StepOutcome{Kind: Jumped, Addr: addr}, nil
}
