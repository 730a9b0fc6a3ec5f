package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// progress is the activity indicator for the slow render steps (graphviz
// layout, rsvg conversion). It animates on stderr and clears itself
// before the final status line is printed.
type progress struct {
	msg    string
	out    io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

const progressInterval = 100 * time.Millisecond

var progressFrames = []rune{'◐', '◓', '◑', '◒'}

// startProgress begins animating msg on stderr until Done, Fail, or the
// context ends.
func startProgress(ctx context.Context, msg string) *progress {
	return startProgressTo(ctx, os.Stderr, msg)
}

func startProgressTo(ctx context.Context, out io.Writer, msg string) *progress {
	pctx, cancel := context.WithCancel(ctx)
	p := &progress{
		msg:    msg,
		out:    out,
		parent: ctx,
		ctx:    pctx,
		cancel: cancel,
	}
	p.wg.Add(1)
	go p.loop()
	return p
}

func (p *progress) loop() {
	defer p.wg.Done()
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-p.ctx.Done():
			p.clear()
			return
		case <-ticker.C:
			frame := progressFrames[i%len(progressFrames)]
			fmt.Fprintf(p.out, "\r%s %s", styleIconSpinner.Render(string(frame)), StyleDim.Render(p.msg))
		}
	}
}

func (p *progress) clear() {
	fmt.Fprintf(p.out, "\r%s\r", strings.Repeat(" ", len(p.msg)+4))
}

// stop halts the animation and waits for the line to be cleared. Safe to
// call more than once.
func (p *progress) stop() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

// Done stops the indicator and prints a success line.
func (p *progress) Done(format string, args ...any) {
	p.stop()
	printSuccess(format, args...)
}

// Fail stops the indicator and prints an error line.
func (p *progress) Fail(format string, args ...any) {
	p.stop()
	printError(format, args...)
}

// Cancelled reports whether the surrounding context ended before the
// work did.
func (p *progress) Cancelled() bool {
	return p.parent.Err() != nil
}
