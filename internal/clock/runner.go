package clock

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/wire"
)

// RunWorker drives the isolated clock loop over r and w until the command
// stream ends, a shutdown command arrives, or the stream turns out corrupt.
// The controller side is Worker; the worker subcommand calls this on its
// stdio. The logger must not write to w.
func RunWorker(r io.Reader, w io.Writer, logger *zap.Logger) error {
	reader := wire.NewFrameReader(r)
	writer := wire.NewFrameWriter(w)

	send := func(evt wire.Event) error {
		data, err := wire.EncodeEvent(evt)
		if err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		if err := writer.WriteFrame(data); err != nil {
			return fmt.Errorf("failed to send %s event: %w", evt.Type, err)
		}
		return nil
	}

	frames := make(chan []byte, 8)
	readErr := make(chan error, 1)
	go func() {
		defer close(frames)
		for {
			payload, err := reader.ReadFrame()
			if err != nil {
				readErr <- err
				return
			}
			frames <- payload
		}
	}()

	if err := send(wire.Event{Type: wire.EvtReady}); err != nil {
		return err
	}
	logger.Info("worker clock ready")

	var (
		clock  timebase
		ticker *time.Ticker
		tickCh <-chan time.Time
	)
	stopTicking := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickCh = nil
		}
	}
	defer stopTicking()

	for {
		select {
		case payload, ok := <-frames:
			if !ok {
				err := <-readErr
				if err == io.EOF {
					logger.Info("command stream closed, exiting")
					return nil
				}
				return fmt.Errorf("command stream failed: %w", err)
			}

			cmd, err := wire.DecodeCommand(payload)
			if err != nil {
				if errors.Is(err, wire.ErrUnknownMessage) {
					logger.Warn("ignoring unknown command", zap.Error(err))
					continue
				}
				return fmt.Errorf("command stream corrupted: %w", err)
			}

			switch cmd.Type {
			case wire.CmdStart:
				if !clock.start(int64(cmd.FromMs)) {
					continue
				}
				ticker = time.NewTicker(Interval)
				tickCh = ticker.C
				if err := send(wire.Event{Type: wire.EvtStarted, Elapsed: cmd.FromMs}); err != nil {
					return err
				}
			case wire.CmdPause:
				if !clock.pause() {
					continue
				}
				stopTicking()
				if err := send(wire.Event{Type: wire.EvtPaused, Elapsed: uint64(clock.elapsed())}); err != nil {
					return err
				}
			case wire.CmdReset:
				clock.reset()
				stopTicking()
				if err := send(wire.Event{Type: wire.EvtReset}); err != nil {
					return err
				}
			case wire.CmdQueryState:
				evt := wire.Event{
					Type:    wire.EvtState,
					Elapsed: uint64(clock.elapsed()),
					Running: clock.running,
				}
				if err := send(evt); err != nil {
					return err
				}
			case wire.CmdShutdown:
				logger.Info("shutdown requested, exiting")
				return nil
			}
		case <-tickCh:
			if err := send(wire.Event{Type: wire.EvtTick, Elapsed: uint64(clock.elapsed())}); err != nil {
				return err
			}
		}
	}
}
