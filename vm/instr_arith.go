package vm

// execArithAdrX implements ADDA/SUBA/ADDL/SUBL r,adr,x. signed
// selects arithmetic (true) vs logical (false) overflow semantics;
// add selects addition (true) vs subtraction (false).
func (vm *VM) execArithAdrX(addr uint16, signed, add bool) (StepOutcome, error) {
	r, ea := vm.operandsRAdrX(addr)
	operand := vm.Memory.Read(ea)
	return vm.doArith(r, operand, signed, add)
}

// execArithR1R2 implements the R1R2 forms of the same four
// instructions: the second operand is GR[r2] instead of a memory
// word.
func (vm *VM) execArithR1R2(addr uint16, signed, add bool) (StepOutcome, error) {
	r1, r2 := vm.operandsR1R2(addr)
	return vm.doArith(r1, vm.CPU.GR[r2], signed, add)
}

func (vm *VM) doArith(r int, operand uint16, signed, add bool) (StepOutcome, error) {
	var result int32
	if signed {
		a := ToSigned(vm.CPU.GR[r])
		b := ToSigned(operand)
		if add {
			result = a + b
		} else {
			result = a - b
		}
		vm.CPU.GR[r] = ToUnsigned(result)
		zf, sf, of := flagsArithmetic(result)
		vm.CPU.SetFlags(zf, sf, of)
	} else {
		a := int32(vm.CPU.GR[r])
		b := int32(operand)
		if add {
			result = a + b
		} else {
			result = a - b
		}
		vm.CPU.GR[r] = ToUnsigned(result)
		zf, sf, of := flagsLogical(result)
		vm.CPU.SetFlags(zf, sf, of)
	}
	return StepOutcome{Kind: Continue}, nil
}

type logicOp int

const (
	logicAND logicOp = iota
	logicOR
	logicXOR
)

func applyLogic(op logicOp, a, b uint16) uint16 {
	switch op {
	case logicAND:
		return a & b
	case logicOR:
		return a | b
	case logicXOR:
		return a ^ b
	}
	return 0
}

// execLogicAdrX implements AND/OR/XOR r,adr,x.
func (vm *VM) execLogicAdrX(addr uint16, op logicOp) (StepOutcome, error) {
	r, ea := vm.operandsRAdrX(addr)
	v := applyLogic(op, vm.CPU.GR[r], vm.Memory.Read(ea))
	vm.CPU.GR[r] = v
	zf, sf, of := flagsBitwise(v)
	vm.CPU.SetFlags(zf, sf, of)
	return StepOutcome{Kind: Continue}, nil
}

// execLogicR1R2 implements the R1R2 forms of AND/OR/XOR.
func (vm *VM) execLogicR1R2(addr uint16, op logicOp) (StepOutcome, error) {
	r1, r2 := vm.operandsR1R2(addr)
	v := applyLogic(op, vm.CPU.GR[r1], vm.CPU.GR[r2])
	vm.CPU.GR[r1] = v
	zf, sf, of := flagsBitwise(v)
	vm.CPU.SetFlags(zf, sf, of)
	return StepOutcome{Kind: Continue}, nil
}

// execCompareAdrX implements CPA/CPL r,adr,x: computes GR[r] minus
// the operand without storing the result, only updating ZF/SF (OF is
// always clear).
func (vm *VM) execCompareAdrX(addr uint16, signed bool) (StepOutcome, error) {
	r, ea := vm.operandsRAdrX(addr)
	return vm.doCompare(vm.CPU.GR[r], vm.Memory.Read(ea), signed)
}

// execCompareR1R2 implements the R1R2 forms of CPA/CPL.
func (vm *VM) execCompareR1R2(addr uint16, signed bool) (StepOutcome, error) {
	r1, r2 := vm.operandsR1R2(addr)
	return vm.doCompare(vm.CPU.GR[r1], vm.CPU.GR[r2], signed)
}

func (vm *VM) doCompare(a, b uint16, signed bool) (StepOutcome, error) {
	var diff int32
	if signed {
		diff = ToSigned(a) - ToSigned(b)
	} else {
		diff = int32(a) - int32(b)
	}
	zf, sf, of := flagsCompare(diff)
	vm.CPU.SetFlags(zf, sf, of)
	return StepOutcome{Kind: Continue}, nil
}
