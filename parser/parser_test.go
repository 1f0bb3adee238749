package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `MAIN     START
         LD       GR1, =5
         ADDA     GR1, ONE
         JUMP     LOOP
LOOP     NOP
ONE      DC       1
         END
`

func TestParseAssignsAddressesAndLabels(t *testing.T) {
	prog, errs := Parse("sample.cas", sampleSource)
	require.False(t, errs.HasErrors(), errs.Error())

	addr, ok := prog.Symbols.Resolve("MAIN", "LOOP")
	require.True(t, ok)
	// LD GR1,=5 (2 words) + ADDA GR1,ONE (2 words) + JUMP LOOP (2 words) = 6
	assert.Equal(t, uint16(6), addr)
}

func TestParseDuplicateLabelIsFatal(t *testing.T) {
	src := "MAIN     START\n" +
		"X        NOP\n" +
		"X        NOP\n" +
		"         END\n"
	_, errs := Parse("dup.cas", src)
	require.True(t, errs.HasErrors())
}

func TestParseLiteralIsQueuedAndFlushedAtEnd(t *testing.T) {
	prog, errs := Parse("lit.cas", sampleSource)
	require.False(t, errs.HasErrors(), errs.Error())

	var sawLiteral bool
	for _, s := range prog.Stmts {
		if s.Kind == StmtLiteral {
			sawLiteral = true
			assert.Equal(t, "_L0001", s.Label)
		}
	}
	assert.True(t, sawLiteral)
}

func TestParseMissingEndIsFatal(t *testing.T) {
	src := "MAIN     START\n         NOP\n"
	_, errs := Parse("noend.cas", src)
	require.True(t, errs.HasErrors())
}

func TestParseAmbiguousMnemonicSizeByOperandShape(t *testing.T) {
	src := "MAIN     START\n" +
		"         LD       GR1, GR2\n" +
		"         LD       GR1, 100\n" +
		"         END\n"
	prog, errs := Parse("amb.cas", src)
	require.False(t, errs.HasErrors(), errs.Error())
	require.Len(t, prog.Stmts, 2)
	assert.Equal(t, 1, prog.Stmts[0].Size, "LD GR1,GR2 is the one-word R1R2 form")
	assert.Equal(t, 2, prog.Stmts[1].Size, "LD GR1,100 is the two-word RAdrX form")
}

func TestStartWithEntryOperandSetsGoto(t *testing.T) {
	src := "SUB      START    ENTRY\n" +
		"         NOP\n" +
		"ENTRY    NOP\n" +
		"         END\n"
	prog, errs := Parse("sub.cas", src)
	require.False(t, errs.HasErrors(), errs.Error())
	addr, ok := prog.Symbols.Resolve("", "SUB")
	require.True(t, ok)
	assert.Equal(t, uint16(1), addr, "resolving SUB must follow the goto to ENTRY, not SUB's own address 0")
}
