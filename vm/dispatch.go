package vm

// execute dispatches a fetched instruction to its implementation. The
// switch is keyed on the opcode byte rather than on a decoded
// InstructionType enum (the teacher's ARM decoder builds a richer
// InstructionType from 32-bit bit-pattern classification; COMET II's
// opcode occupies a whole byte with no further bit-field
// classification needed, so InstInfo.Opcode is dispatch-ready as is).
func (vm *VM) execute(addr uint16, w0 uint16, info InstInfo) (StepOutcome, error) {
	switch info.Opcode {
	case OpNOP:
		return StepOutcome{Kind: Continue}, nil

	case OpLD2:
		return vm.execLD2(addr)
	case OpLD1:
		return vm.execLD1(addr)
	case OpST:
		return vm.execST(addr)
	case OpLAD:
		return vm.execLAD(addr)

	case OpADDA2:
		return vm.execArithAdrX(addr, true, true)
	case OpSUBA2:
		return vm.execArithAdrX(addr, true, false)
	case OpADDL2:
		return vm.execArithAdrX(addr, false, true)
	case OpSUBL2:
		return vm.execArithAdrX(addr, false, false)
	case OpADDA1:
		return vm.execArithR1R2(addr, true, true)
	case OpSUBA1:
		return vm.execArithR1R2(addr, true, false)
	case OpADDL1:
		return vm.execArithR1R2(addr, false, true)
	case OpSUBL1:
		return vm.execArithR1R2(addr, false, false)

	case OpAND2:
		return vm.execLogicAdrX(addr, logicAND)
	case OpOR2:
		return vm.execLogicAdrX(addr, logicOR)
	case OpXOR2:
		return vm.execLogicAdrX(addr, logicXOR)
	case OpAND1:
		return vm.execLogicR1R2(addr, logicAND)
	case OpOR1:
		return vm.execLogicR1R2(addr, logicOR)
	case OpXOR1:
		return vm.execLogicR1R2(addr, logicXOR)

	case OpCPA2:
		return vm.execCompareAdrX(addr, true)
	case OpCPL2:
		return vm.execCompareAdrX(addr, false)
	case OpCPA1:
		return vm.execCompareR1R2(addr, true)
	case OpCPL1:
		return vm.execCompareR1R2(addr, false)

	case OpSLA:
		return vm.execShift(addr, shiftArithmeticLeft)
	case OpSRA:
		return vm.execShift(addr, shiftArithmeticRight)
	case OpSLL:
		return vm.execShift(addr, shiftLogicalLeft)
	case OpSRL:
		return vm.execShift(addr, shiftLogicalRight)

	case OpJMI:
		return vm.execJump(addr, func() bool { return vm.CPU.SF })
	case OpJNZ:
		return vm.execJump(addr, func() bool { return !vm.CPU.ZF })
	case OpJZE:
		return vm.execJump(addr, func() bool { return vm.CPU.ZF })
	case OpJUMP:
		return vm.execJump(addr, func() bool { return true })
	case OpJPL:
		return vm.execJump(addr, func() bool { return !vm.CPU.SF && !vm.CPU.ZF })
	case OpJOV:
		return vm.execJump(addr, func() bool { return vm.CPU.OF })

	case OpPUSH:
		return vm.execPUSH(addr)
	case OpPOP:
		return vm.execPOP(addr)
	case OpRPUSH:
		return vm.execRPUSH()
	case OpRPOP:
		return vm.execRPOP()

	case OpCALL:
		return vm.execCALL(addr, info)
	case OpRET:
		return vm.execRET()

	case OpIN:
		return vm.execIN(addr)
	case OpOUT:
		return vm.execOUT(addr)

	case OpSVC:
		return vm.execSVC(addr)
	}

	return StepOutcome{}, &InvalidOperationError{Addr: addr}
}
