package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

const actionPrompt = "Set/unset mines marks or claim a cell as free: "

// ConsoleInput reads answers and moves line by line. Lines are scanned on a
// separate goroutine so a pending read can be abandoned when ctx is done.
type ConsoleInput struct {
	out       io.Writer
	lines     chan string
	err       error // written before lines is closed
	done      chan struct{}
	closeOnce sync.Once
}

func NewConsoleInput(r io.Reader, w io.Writer) *ConsoleInput {
	in := &ConsoleInput{
		out:   w,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go in.scan(r)
	return in
}

// Close stops handing out lines; later reads report io.EOF. The scanner
// goroutine exits once its pending read from r returns.
func (in *ConsoleInput) Close() {
	in.closeOnce.Do(func() { close(in.done) })
}

func (in *ConsoleInput) scan(r io.Reader) {
	defer close(in.lines)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case in.lines <- scanner.Text():
		case <-in.done:
			return
		}
	}
	in.err = scanner.Err()
}

func (in *ConsoleInput) readLine(ctx context.Context) (string, error) {
	select {
	case <-in.done:
		return "", io.EOF
	default:
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-in.lines:
		if !ok {
			if in.err != nil {
				return "", in.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// ReadBoundedInt asks until the answer is a number inside the bound.
func (in *ConsoleInput) ReadBoundedInt(ctx context.Context, bound Bound) (int, error) {
	for {
		fmt.Fprintf(in.out, "%s [%d, %d]? ", bound.Prompt, bound.Min, bound.Max)
		line, err := in.readLine(ctx)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || !bound.Contains(n) {
			fmt.Fprintf(in.out, "Error: wrong %s!\n", bound.Name)
			continue
		}
		return n, nil
	}
}

func (in *ConsoleInput) ReadAction(ctx context.Context) (Action, error) {
	fmt.Fprint(in.out, actionPrompt)
	line, err := in.readLine(ctx)
	if err != nil {
		return Action{}, err
	}
	return ParseAction(line)
}
