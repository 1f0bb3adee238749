package encoder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comet2/casl2comet/object"
	"github.com/comet2/casl2comet/vm"
)

const prog1 = `MAIN     START
         LAD      GR1, 5
         CALL     SUB
         RET
         END
SUB      START
         NOP
         RET
         END
`

func TestAssembleRunsOnVM(t *testing.T) {
	var buf bytes.Buffer
	errs, err := Assemble("prog1.cas", prog1, &buf)
	require.NoError(t, err, errs.Error())

	obj, err := object.Read(&buf)
	require.NoError(t, err)

	m := vm.NewVM(bytes.NewReader(nil), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, m.Load(obj.Entry, obj.Image))
	require.NoError(t, m.Run())
	assert.Equal(t, uint16(5), m.CPU.GR[vm.GR1])
}

func TestResolveOpcodeDisambiguatesByOperand(t *testing.T) {
	op, ok := ResolveOpcode("LD", true)
	require.True(t, ok)
	assert.Equal(t, vm.OpLD1, op)

	op, ok = ResolveOpcode("LD", false)
	require.True(t, ok)
	assert.Equal(t, vm.OpLD2, op)
}

func TestAssembleFailsOnUndefinedLabel(t *testing.T) {
	src := "MAIN     START\n         JUMP     NOWHERE\n         END\n"
	var buf bytes.Buffer
	_, err := Assemble("bad.cas", src, &buf)
	require.Error(t, err)
}
