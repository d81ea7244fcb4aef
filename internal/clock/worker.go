package clock

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/wire"
)

// WorkerCommandName is the hidden subcommand that runs the clock loop; the
// client spawns the current binary with this argument.
const WorkerCommandName = "worker"

// execCommand is swapped in tests to run the loop in a helper process.
var execCommand = exec.Command

// Worker is the isolated clock: the timing loop runs in a child process
// whose scheduling is independent of the UI thread, reached only through
// length-prefixed CBOR frames on its stdin and stdout. Any failure of the
// child after a successful start surfaces as a single KindFault event.
type Worker struct {
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	writer     *wire.FrameWriter
	events     chan Event
	readerDone chan struct{}
	closing    atomic.Bool
	waitOnce   sync.Once
	waitErr    error
	session    string
	logger     *zap.Logger
}

// NewWorker spawns the worker process and starts reading its events.
// Errors here mean the isolated clock is unavailable and the caller should
// fall back to a Ticker.
func NewWorker(logger *zap.Logger) (*Worker, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable: %w", err)
	}

	cmd := execCommand(exe, WorkerCommandName)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open worker stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open worker stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}

	w := &Worker{
		cmd:        cmd,
		stdin:      stdin,
		writer:     wire.NewFrameWriter(stdin),
		events:     make(chan Event, eventBufferSize),
		readerDone: make(chan struct{}),
		session:    uuid.NewString(),
		logger:     logger,
	}
	w.logger.Info("worker started",
		zap.String("session", w.session),
		zap.Int("pid", cmd.Process.Pid))

	go w.readEvents(stdout)
	return w, nil
}

func (w *Worker) StartFrom(ms int64) {
	w.post(wire.Command{Type: wire.CmdStart, FromMs: uint64(ms)})
}

func (w *Worker) Pause() {
	w.post(wire.Command{Type: wire.CmdPause})
}

func (w *Worker) Reset() {
	w.post(wire.Command{Type: wire.CmdReset})
}

func (w *Worker) QueryState() {
	w.post(wire.Command{Type: wire.CmdQueryState})
}

// Events returns the channel the worker reports on. It is closed after a
// fault or a clean Close.
func (w *Worker) Events() <-chan Event {
	return w.events
}

// Close asks the worker to shut down and reaps the process. Safe to call
// on a worker that has already faulted.
func (w *Worker) Close() error {
	w.closing.Store(true)
	w.post(wire.Command{Type: wire.CmdShutdown})
	_ = w.stdin.Close()
	<-w.readerDone

	if err := w.wait(); err != nil {
		return fmt.Errorf("worker exited uncleanly: %w", err)
	}
	w.logger.Info("worker stopped", zap.String("session", w.session))
	return nil
}

// post encodes and sends one command. Send failures are logged only; the
// reader notices the broken pipe and raises the fault.
func (w *Worker) post(cmd wire.Command) {
	data, err := wire.EncodeCommand(cmd)
	if err != nil {
		w.logger.Error("failed to encode command",
			zap.String("session", w.session),
			zap.Error(err))
		return
	}
	if err := w.writer.WriteFrame(data); err != nil && !w.closing.Load() {
		w.logger.Warn("failed to send command",
			zap.String("session", w.session),
			zap.Stringer("command", cmd.Type),
			zap.Error(err))
	}
}

func (w *Worker) readEvents(stdout io.Reader) {
	defer close(w.events)
	defer close(w.readerDone)

	reader := wire.NewFrameReader(stdout)
	var lastElapsed int64
	for {
		payload, err := reader.ReadFrame()
		if err != nil {
			if w.closing.Load() {
				return
			}
			if err == io.EOF {
				w.logger.Warn("worker exited unexpectedly",
					zap.String("session", w.session))
			} else {
				w.logger.Warn("worker stream failed",
					zap.String("session", w.session),
					zap.Error(err))
			}
			w.fail(lastElapsed)
			return
		}

		evt, err := wire.DecodeEvent(payload)
		if err != nil {
			if errors.Is(err, wire.ErrUnknownMessage) {
				w.logger.Warn("ignoring unknown event",
					zap.String("session", w.session),
					zap.Error(err))
				continue
			}
			w.logger.Warn("worker stream corrupted",
				zap.String("session", w.session),
				zap.Error(err))
			w.fail(lastElapsed)
			return
		}

		out := fromWire(evt)
		if out.Kind != KindReady {
			lastElapsed = out.ElapsedMs
		}
		w.events <- out
	}
}

// fail reaps the dead or misbehaving process and reports the fault with the
// last elapsed value the worker ever sent.
func (w *Worker) fail(lastElapsed int64) {
	_ = w.stdin.Close()
	_ = w.cmd.Process.Kill()
	_ = w.wait()
	w.events <- Event{Kind: KindFault, ElapsedMs: lastElapsed}
}

func (w *Worker) wait() error {
	w.waitOnce.Do(func() {
		w.waitErr = w.cmd.Wait()
	})
	return w.waitErr
}

func fromWire(evt wire.Event) Event {
	out := Event{ElapsedMs: int64(evt.Elapsed), Running: evt.Running}
	switch evt.Type {
	case wire.EvtReady:
		out.Kind = KindReady
	case wire.EvtTick:
		out.Kind = KindTick
	case wire.EvtStarted:
		out.Kind = KindStarted
	case wire.EvtPaused:
		out.Kind = KindPaused
	case wire.EvtReset:
		out.Kind = KindReset
	case wire.EvtState:
		out.Kind = KindState
	}
	return out
}
