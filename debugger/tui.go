package debugger

import (
	"bytes"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/comet2/casl2comet/disasm"
)

// TUI is the full-screen debugger mode: a register/flag panel, a
// disassembly panel, a memory-dump panel, and a command input line,
// all driven by a tview.Application. It is purely additive to the
// line-oriented REPL in interface.go — RunCLI remains the default.
type TUI struct {
	app  *tview.Application
	dbg  *Debugger
	regs *tview.TextView
	disa *tview.TextView
	mem  *tview.TextView
	cmd  *tview.InputField
}

// NewTUI builds a TUI wired to dbg.
func NewTUI(dbg *Debugger) *TUI {
	t := &TUI{
		app:  tview.NewApplication(),
		dbg:  dbg,
		regs: tview.NewTextView().SetDynamicColors(true),
		disa: tview.NewTextView().SetDynamicColors(true),
		mem:  tview.NewTextView().SetDynamicColors(true),
	}
	t.regs.SetBorder(true).SetTitle("Registers")
	t.disa.SetBorder(true).SetTitle("Disassembly")
	t.mem.SetBorder(true).SetTitle("Memory")

	t.cmd = tview.NewInputField().SetLabel(Prompt)
	t.cmd.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := t.cmd.GetText()
		t.cmd.SetText("")
		quit, err := t.dbg.Execute(line)
		if quit {
			t.app.Stop()
			return
		}
		_ = err // not displayed; the refresh below shows the resulting machine state
		t.refresh()
	})

	return t
}

func (t *TUI) refresh() {
	var regBuf bytes.Buffer
	printStatus(&regBuf, t.dbg.VM, t.dbg.lastInst)
	t.regs.SetText(regBuf.String())

	var disBuf bytes.Buffer
	for _, l := range disasm.Disassemble(t.dbg.VM.Memory, t.dbg.VM.CPU.PR, 16) {
		fmt.Fprintf(&disBuf, "#%04x\t%s\n", l.Addr, l.Text)
	}
	t.disa.SetText(disBuf.String())

	var memBuf bytes.Buffer
	dumpMemory(&memBuf, t.dbg.VM.Memory, 0, 16)
	t.mem.SetText(memBuf.String())
}

// Run starts the TUI event loop; it returns when the user quits.
func (t *TUI) Run() error {
	t.refresh()

	top := tview.NewFlex().
		AddItem(t.regs, 0, 1, false).
		AddItem(t.disa, 0, 1, false).
		AddItem(t.mem, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, false).
		AddItem(t.cmd, 1, 0, true)

	return t.app.SetRoot(root, true).SetFocus(t.cmd).Run()
}

// RunTUI is the entry point cmd/comet2 calls for `-tui`.
func RunTUI(dbg *Debugger) error {
	return NewTUI(dbg).Run()
}
