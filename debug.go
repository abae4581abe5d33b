package rampart

import (
	"fmt"
	"os"
	"time"
)

// logFrame prints one phase's timing to stderr. Only called in debug mode.
func (m *Manager) logFrame(phase string, d time.Duration) {
	_, _ = fmt.Fprintf(os.Stderr, "[rampart] %s: %v | controls: %d | active: %s\n",
		phase, d, len(m.controls), controlName(m.active))
}

func controlName(c Control) string {
	if c == nil {
		return "<none>"
	}
	return c.UI().Name()
}

// debugCheckTreeDepth warns on stderr if the parent chain exceeds the
// threshold. Only called when the manager is in debug mode.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(c Control) {
	depth := 0
	for p := c; p != nil; p = p.UI().parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[rampart] warning: tree depth %d exceeds %d (control %q)\n",
			depth, debugMaxTreeDepth, c.UI().Name())
	}
}

// debugCheckChildCount warns on stderr if a control has more than 1000
// children.
const debugMaxChildCount = 1000

func debugCheckChildCount(b *ControlBase) {
	if len(b.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[rampart] warning: control %q has %d children (threshold %d)\n",
			b.Name(), len(b.children), debugMaxChildCount)
	}
}
