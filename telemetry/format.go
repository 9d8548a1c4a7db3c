package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/pin1yin1/pin1yin1/output"
)

// slowThreshold marks operations highlighted in a report.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes the timing tree rooted at root.
//
//	check main.py1: 12ms
//	├─ loader.load main.py1: 9ms
//	│  ├─ parser.decode: 0ms
//	│  └─ parser.parse main.py1: 8ms
//	└─ errors.render: 1ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), formatDuration(root.duration()))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	d := node.duration()
	_, _ = fmt.Fprintf(w, "%s%s: %s\n",
		styles.Dim(prefix+branch), node.name, styles.Timing(formatDuration(d), d >= slowThreshold))

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

// duration of a timer; timers still running at report time count up to now.
func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return time.Since(n.start)
	}
	return n.end.Sub(n.start)
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
