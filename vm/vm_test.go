package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVM() *VM {
	return NewVM(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
}

func encodeAdrX(op Opcode, x int, adr uint16) []uint16 {
	return []uint16{uint16(op)<<8 | uint16(x&0x0f), adr}
}

func encodeRAdrX(op Opcode, r, x int, adr uint16) []uint16 {
	return []uint16{uint16(op)<<8 | uint16(r&0x0f)<<4 | uint16(x&0x0f), adr}
}

func encodeR1R2(op Opcode, r1, r2 int) []uint16 {
	return []uint16{uint16(op)<<8 | uint16(r1&0x0f)<<4 | uint16(r2&0x0f)}
}

func TestResetState(t *testing.T) {
	c := NewCPU()
	assert.Equal(t, InitialSP, c.SP())
	assert.Equal(t, uint16(0), c.PR)
	assert.True(t, c.ZF)
	assert.False(t, c.SF)
	assert.False(t, c.OF)
	assert.Equal(t, uint8(0b001), c.FR())
}

func TestLD1UsesDestinationRegisterForFlags(t *testing.T) {
	m := newTestVM()
	m.CPU.GR[GR2] = 0x8000 // negative when reinterpreted into GR1
	image := encodeR1R2(OpLD1, GR1, GR2)
	require.NoError(t, m.Load(0, image))
	require.NoError(t, m.Step())
	assert.Equal(t, uint16(0x8000), m.CPU.GR[GR1])
	assert.True(t, m.CPU.SF)
	assert.False(t, m.CPU.ZF)
}

func TestADDAOverflow(t *testing.T) {
	m := newTestVM()
	m.CPU.GR[GR1] = ToUnsigned(32000)
	image := encodeRAdrX(OpADDA2, GR1, 0, 10)
	m.Memory.LoadImage(0, image)
	m.Memory.Write(10, ToUnsigned(1000))
	m.CPU.PR = 0
	require.NoError(t, m.Step())
	assert.True(t, m.CPU.OF, "32000+1000 exceeds int16 range and must set OF")
}

func TestADDLOverflow(t *testing.T) {
	m := newTestVM()
	m.CPU.GR[GR1] = 60000
	image := encodeRAdrX(OpADDL2, GR1, 0, 10)
	m.Memory.LoadImage(0, image)
	m.Memory.Write(10, 10000)
	m.CPU.PR = 0
	require.NoError(t, m.Step())
	assert.True(t, m.CPU.OF)
	assert.Equal(t, uint16(60000+10000-65536), m.CPU.GR[GR1])
}

func TestJOVJumpsOnOverflowSet(t *testing.T) {
	m := newTestVM()
	m.CPU.OF = true
	image := encodeAdrX(OpJOV, 0, 0x1234)
	require.NoError(t, m.Load(0, image))
	require.NoError(t, m.Step())
	assert.Equal(t, uint16(0x1234), m.CPU.PR, "JOV must jump when OF==1, not OF==0")
}

func TestJOVFallsThroughWhenOverflowClear(t *testing.T) {
	m := newTestVM()
	m.CPU.OF = false
	image := encodeAdrX(OpJOV, 0, 0x1234)
	require.NoError(t, m.Load(0, image))
	require.NoError(t, m.Step())
	assert.Equal(t, uint16(2), m.CPU.PR)
}

func TestRPUSHRPOPExcludesSP(t *testing.T) {
	m := newTestVM()
	for i := GR1; i <= GR7; i++ {
		m.CPU.GR[i] = uint16(0x100 + i)
	}
	spBefore := m.CPU.SP()
	image := []uint16{uint16(OpRPUSH) << 8, uint16(OpRPOP) << 8}
	require.NoError(t, m.Load(0, image))
	require.NoError(t, m.Step()) // RPUSH
	assert.Equal(t, spBefore-7, m.CPU.SP())

	for i := GR1; i <= GR7; i++ {
		m.CPU.GR[i] = 0
	}
	require.NoError(t, m.Step()) // RPOP
	assert.Equal(t, spBefore, m.CPU.SP())
	for i := GR1; i <= GR7; i++ {
		assert.Equal(t, uint16(0x100+i), m.CPU.GR[i])
	}
}

func TestCallPushesPostAdvanceReturnAddress(t *testing.T) {
	m := newTestVM()
	image := make([]uint16, 20)
	// CALL #0010 at address 0 (2 words)
	copy(image[0:2], encodeAdrX(OpCALL, 0, 0x0010))
	// RET at address 0x0010
	image[0x0010] = uint16(OpRET) << 8
	require.NoError(t, m.Load(0, image))

	require.NoError(t, m.Step()) // CALL
	assert.Equal(t, uint16(0x0010), m.CPU.PR)
	assert.Equal(t, 1, m.CallLevel)
	returnAddr := m.Memory.Read(m.CPU.SP())
	assert.Equal(t, uint16(2), returnAddr, "CALL must push the address following itself")

	require.NoError(t, m.Step()) // RET
	assert.Equal(t, uint16(2), m.CPU.PR)
	assert.Equal(t, 0, m.CallLevel)
}

func TestRETAtDepthZeroHalts(t *testing.T) {
	m := newTestVM()
	image := []uint16{uint16(OpRET) << 8}
	require.NoError(t, m.Load(0, image))
	require.NoError(t, m.Step())
	assert.True(t, m.Halted)
}

func TestShiftArithmeticLeftPreservesSign(t *testing.T) {
	m := newTestVM()
	m.CPU.GR[GR1] = ToUnsigned(-4) // 0xfffc
	image := encodeRAdrX(OpSLA, GR1, 0, 1)
	require.NoError(t, m.Load(0, image))
	require.NoError(t, m.Step())
	assert.Equal(t, int32(-8), ToSigned(m.CPU.GR[GR1]))
}

func TestShiftByZeroIsNoOp(t *testing.T) {
	m := newTestVM()
	m.CPU.GR[GR1] = 0x1234
	m.CPU.OF = true
	image := encodeRAdrX(OpSLL, GR1, 0, 0)
	require.NoError(t, m.Load(0, image))
	require.NoError(t, m.Step())
	assert.Equal(t, uint16(0x1234), m.CPU.GR[GR1])
	assert.True(t, m.CPU.OF, "shift by zero must leave flags untouched")
}

func TestInvalidOpcodeReportsAddress(t *testing.T) {
	m := newTestVM()
	image := []uint16{0xFFFF}
	require.NoError(t, m.Load(0, image))
	err := m.Step()
	require.Error(t, err)
	var ioErr *InvalidOperationError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, uint16(0), ioErr.Addr)
	assert.Equal(t, "Invalid operation is found at #0000.", err.Error())
}

func TestEffectiveAddressWrapsModulo65536(t *testing.T) {
	m := newTestVM()
	m.CPU.GR[GR1] = 10
	ea := m.EffectiveAddress(65530, GR1)
	assert.Equal(t, uint16(4), ea)
}

func TestINOUTRoundTrip(t *testing.T) {
	m := NewVM(strings.NewReader("HELLO\n"), &bytes.Buffer{}, &bytes.Buffer{})
	// IN buf=100 len=200 ; OUT buf=100 len=200
	image := make([]uint16, 10)
	image[0] = uint16(OpIN) << 8
	image[1] = 100
	image[2] = 200
	image[3] = uint16(OpOUT) << 8
	image[4] = 100
	image[5] = 200
	require.NoError(t, m.Load(0, image))
	require.NoError(t, m.Step()) // IN
	assert.Equal(t, uint16(5), m.Memory.Read(200))
	require.NoError(t, m.Step()) // OUT
	out := m.Out.(*bytes.Buffer).String()
	assert.Equal(t, "HELLO\n", out)
}
