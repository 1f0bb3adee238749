package debugger

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comet2/casl2comet/vm"
)

func newTestDebugger(image []uint16) (*Debugger, *bytes.Buffer) {
	m := vm.NewVM(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	_ = m.Load(0, image)
	out := &bytes.Buffer{}
	d := NewDebugger(m, strings.NewReader(""), out, &bytes.Buffer{})
	return d, out
}

func TestBreakpointDuplicateWarns(t *testing.T) {
	d, out := newTestDebugger([]uint16{uint16(vm.OpNOP) << 8})
	quit, err := d.Execute("b #0000")
	require.NoError(t, err)
	require.False(t, quit)
	out.Reset()

	_, err = d.Execute("b #0000")
	require.NoError(t, err)
	assert.Equal(t, "#0000 is already set.\n", out.String())
}

func TestInfoReportsNoBreakPoints(t *testing.T) {
	d, out := newTestDebugger([]uint16{uint16(vm.OpNOP) << 8})
	_, err := d.Execute("i")
	require.NoError(t, err)
	assert.Equal(t, "No break points.\n", out.String())
}

func TestDeleteInvalidIndex(t *testing.T) {
	d, out := newTestDebugger([]uint16{uint16(vm.OpNOP) << 8})
	_, err := d.Execute("d 0")
	require.NoError(t, err)
	assert.Equal(t, "Invalid number is specified.\n", out.String())
}

func TestStepThenPrintStatusShowsStepCount(t *testing.T) {
	d, out := newTestDebugger([]uint16{uint16(vm.OpNOP) << 8})
	_, err := d.Execute("s")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "STEP 1")
}

func TestQuitSignalsTrue(t *testing.T) {
	d, _ := newTestDebugger([]uint16{uint16(vm.OpNOP) << 8})
	quit, err := d.Execute("q")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestInvalidOpcodeSurfacesToRunCLI(t *testing.T) {
	d, out := newTestDebugger([]uint16{0xFFFF})
	in := "s\nq\n"
	d.In = bufio.NewReader(strings.NewReader(in))
	require.NoError(t, RunCLI(d))
	assert.Contains(t, out.String(), "Invalid operation is found at #0000.")
}

func TestWatchTokenFormatsRegisterAndMemory(t *testing.T) {
	m := vm.NewVM(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	m.CPU.GR[1] = 0x002a
	m.Memory.Write(0x10, 7)
	assert.Equal(t, "GR1=#002a", watchToken(m, "GR1", false))
	assert.Equal(t, "GR1=42", watchToken(m, "GR1", true))
	assert.Equal(t, "#0010=#0007", watchToken(m, "#10", false))
}
