package expect

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
)

// Stream identifies which output stream a rule watches.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// Rule reacts to recognized text on one output stream.
type Rule struct {
	// Stream selects the watched output stream.
	Stream Stream

	// Match reports whether the rule triggers. buffer is the stream's
	// accumulated content including the new chunk; chunk is only the
	// newly arrived data.
	Match func(buffer, chunk string) bool

	// React runs when Match reports true.
	React func(p *Process, buffer, chunk string)

	// KeepBuffer leaves the accumulated buffer intact after React.
	// By default the buffer is cleared so the same text cannot
	// re-trigger the rule.
	KeepBuffer bool
}

// Command describes one external program invocation.
type Command struct {
	// Path is the program to run.
	Path string

	// Args are the program arguments, not including the program name.
	Args []string

	// Env is the complete environment for the child process. A nil Env
	// runs the child with an empty environment, not the parent's.
	Env []string

	// Rules are evaluated in order against every arriving chunk of the
	// stream they watch.
	Rules []Rule
}

// Outcome is the final result of a watched process run.
type Outcome struct {
	// Fragment holds the captured failure text. Empty means success.
	Fragment string
}

// OK reports whether the run recorded no failure.
func (o Outcome) OK() bool {
	return o.Fragment == ""
}

// Process is the handle rules use to react to recognized output.
type Process struct {
	stdin io.WriteCloser
	cmd   *exec.Cmd

	mu       sync.Mutex
	buffers  [2]string
	fragment string
	final    bool
}

// WriteLine writes s followed by a newline to the process's stdin.
func (p *Process) WriteLine(s string) error {
	if _, err := io.WriteString(p.stdin, s+"\n"); err != nil {
		return fmt.Errorf("writing to process stdin: %w", err)
	}
	return nil
}

// Fail records fragment as the failure text. Later calls replace earlier
// ones; a fragment recorded by Abort is final and cannot be replaced.
func (p *Process) Fail(fragment string) {
	if p.final {
		return
	}
	p.fragment = fragment
}

// Abort records fragment as the final failure text and kills the process
// without waiting for further output.
func (p *Process) Abort(fragment string) {
	p.fragment = fragment
	p.final = true
	p.kill()
}

// kill signals the whole process group. Killing only the direct child is
// not enough: a descendant it forked inherits the output pipes, and the
// pipe readers would block until that orphan exits on its own.
func (p *Process) kill() {
	if p.cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-p.cmd.Process.Pid, syscall.SIGKILL)
}

// Run spawns the command and blocks until it exits, feeding output through
// the rules as it arrives. The returned Outcome carries the recorded
// failure fragment, if any; err is reserved for spawn and plumbing
// failures, not for the program's own exit status. A program that exits
// non-zero after a rule recorded its complaint still yields (Outcome, nil).
// Cancelling ctx kills the process group and Run returns normally with
// whatever fragment was recorded.
func Run(ctx context.Context, command Command) (Outcome, error) {
	cmd := exec.Command(command.Path, command.Args...)
	cmd.Env = command.Env
	if cmd.Env == nil {
		cmd.Env = []string{}
	}
	// The child gets its own process group so Abort and cancellation can
	// take down everything it forked, not just the direct child.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Outcome{}, fmt.Errorf("opening stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Outcome{}, fmt.Errorf("opening stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Outcome{}, fmt.Errorf("opening stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return Outcome{}, fmt.Errorf("starting %s: %w", command.Path, err)
	}

	p := &Process{stdin: stdin, cmd: cmd}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			p.kill()
		case <-done:
		}
	}()

	var readers sync.WaitGroup
	readers.Add(2)
	go watch(p, Stdout, stdout, command.Rules, &readers)
	go watch(p, Stderr, stderr, command.Rules, &readers)
	readers.Wait()

	// Exit status alone is not an outcome: the recorded fragment (or its
	// absence) is. kinit exiting 1 after printing its complaint to stderr
	// is a Failure with that text, not a plumbing error.
	_ = cmd.Wait()
	close(done)

	p.mu.Lock()
	defer p.mu.Unlock()
	return Outcome{Fragment: p.fragment}, nil
}

// watch reads one stream in chunks and evaluates the matching rules under
// the process lock, so rules on different streams never interleave.
func watch(p *Process, stream Stream, r io.Reader, rules []Rule, readers *sync.WaitGroup) {
	defer readers.Done()

	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			p.mu.Lock()
			p.buffers[stream] += chunk
			for _, rule := range rules {
				if rule.Stream != stream {
					continue
				}
				if rule.Match(p.buffers[stream], chunk) {
					rule.React(p, p.buffers[stream], chunk)
					if !rule.KeepBuffer {
						p.buffers[stream] = ""
					}
				}
			}
			p.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}
