// Large Pin1Yin1 File Generator
//
// This tool generates a large Pin1Yin1 source file for performance testing and profiling.
// It writes many functions mixing every statement form to stress-test the parser and formatter.
//
// Usage:
//
//	go run main.go > large.py1
//	go run main.go 20000000 > large.py1  # Specify target size in bytes
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
	maxBlockDepth     = 4
)

var (
	types = []string{"zheng3", "fu2", "zi4", "bu4", "she4 zheng3", "zhi3 zi4", "wu2fu2 zheng3"}

	names = []string{
		"shu4", "he2ji4", "ge4shu4", "zui4da4", "zui4xiao3", "zhi2", "suo3yin3",
		"chang2du4", "kuan1du4", "gao1du4", "ji4shu4", "jie2guo3", "huan3cun2",
	}

	binaryOps  = []string{"jia1", "jian3", "cheng2", "chu2", "yu2", "zuo3yi2", "you4yi2", "wei4yu3", "wei4huo4"}
	compareOps = []string{"xiao3", "da4", "xiao3deng3", "da4deng3", "deng3", "bu4deng3"}

	remarks = []string{
		"update the running total", "bail out early", "walk the buffer",
		"clamp to the upper bound", "nothing to do here", "cache the result",
	}
)

type generator struct {
	w     *bufio.Writer
	rnd   *rand.Rand
	depth int
	fns   []string
	bytes int
}

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	g := &generator{
		w:   bufio.NewWriter(os.Stdout),
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	defer func() { _ = g.w.Flush() }()

	g.line("shi4 Large Pin1Yin1 file for performance testing")
	g.line("shi4 Generated " + time.Now().Format("2006-01-02 15:04:05"))
	g.line("")

	functionCount := 0
	for g.bytes < targetSize {
		g.function(fmt.Sprintf("han2shu4%d", functionCount))
		functionCount++
	}

	_ = g.w.Flush()
	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d functions\n", g.bytes, functionCount)
}

func (g *generator) line(s string) {
	n, _ := g.w.WriteString(strings.Repeat("\t", g.depth) + s + "\n")
	g.bytes += n
}

func (g *generator) pick(list []string) string {
	return list[g.rnd.Intn(len(list))]
}

func (g *generator) function(name string) {
	params := make([]string, g.rnd.Intn(4))
	for i := range params {
		params[i] = fmt.Sprintf("%s %s", g.pick(types), g.pick(names))
	}

	if g.rnd.Intn(3) == 0 {
		g.line("shi4 " + g.pick(remarks))
	}
	g.line(fmt.Sprintf("zheng3 %s can1 %s jie2 han2", name, strings.Join(params, " fen1 ")))
	g.depth++
	for i := g.rnd.Intn(12) + 3; i > 0; i-- {
		g.statement()
	}
	g.line(fmt.Sprintf("fan3 %s fen1", g.expr(3)))
	g.depth--
	g.line("jie2")
	g.line("")

	g.fns = append(g.fns, name)
}

func (g *generator) statement() {
	choice := g.rnd.Intn(10)
	if g.depth >= maxBlockDepth && choice >= 6 {
		choice = g.rnd.Intn(6)
	}

	switch choice {
	case 0, 1: // variable definition
		g.line(fmt.Sprintf("%s %s wei2 %s fen1", g.pick(types), g.pick(names), g.expr(3)))

	case 2, 3: // assignment
		g.line(fmt.Sprintf("%s wei2 %s fen1", g.pick(names), g.expr(3)))

	case 4: // comment
		g.line("shi4 " + g.pick(remarks))

	case 5: // call
		g.line(fmt.Sprintf("%s fen1", g.call()))

	case 6, 7: // if chain
		g.line(fmt.Sprintf("ruo4 can1 %s jie2 han2", g.condition()))
		g.block()
		for i := g.rnd.Intn(3); i > 0; i-- {
			g.line(fmt.Sprintf("jie2 ze2 ruo4 can1 %s jie2 han2", g.condition()))
			g.block()
		}
		if g.rnd.Intn(2) == 0 {
			g.line("jie2 ze2 han2")
			g.block()
		}
		g.line("jie2")

	case 8: // loop
		g.line(fmt.Sprintf("chong2 can1 %s jie2 han2", g.condition()))
		g.block()
		g.line("jie2")

	case 9: // bare block
		g.line("han2")
		g.block()
		g.line("jie2")
	}
}

func (g *generator) block() {
	g.depth++
	for i := g.rnd.Intn(4) + 1; i > 0; i-- {
		g.statement()
	}
	g.depth--
}

func (g *generator) call() string {
	callee := "xie3"
	if len(g.fns) > 0 && g.rnd.Intn(2) == 0 {
		callee = g.pick(g.fns)
	}
	args := make([]string, g.rnd.Intn(3))
	for i := range args {
		args[i] = g.expr(1)
	}
	if len(args) == 0 {
		return callee + " can1 jie2"
	}
	return fmt.Sprintf("%s can1 %s jie2", callee, strings.Join(args, " fen1 "))
}

func (g *generator) condition() string {
	cond := fmt.Sprintf("%s %s %s", g.atom(), g.pick(compareOps), g.atom())
	switch g.rnd.Intn(4) {
	case 0:
		return cond + " yu3 " + g.pick(names) + " bu4deng3 0"
	case 1:
		return "fei1 can1 " + cond + " jie2"
	}
	return cond
}

func (g *generator) expr(terms int) string {
	parts := []string{g.atom()}
	for i := g.rnd.Intn(terms); i > 0; i-- {
		parts = append(parts, g.pick(binaryOps), g.atom())
	}
	return strings.Join(parts, " ")
}

func (g *generator) atom() string {
	switch g.rnd.Intn(8) {
	case 0, 1, 2:
		return g.pick(names)
	case 3, 4:
		return strconv.Itoa(g.rnd.Intn(100000))
	case 5:
		return fmt.Sprintf("%d.%02d", g.rnd.Intn(1000), g.rnd.Intn(100))
	case 6:
		return "fu4 " + g.pick(names)
	default:
		return fmt.Sprintf("can1 %s jie2", g.expr(2))
	}
}
