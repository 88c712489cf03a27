package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// inputStream is the part of a PortAudio input stream the session drives.
// Read fills the buffer handed to the stream when it was opened.
type inputStream interface {
	Read() error
	Stop() error
	Close() error
}

type portaudioSession struct {
	stream    inputStream
	buffer    []int16
	terminate func() error

	reader *io.PipeReader
	writer *io.PipeWriter

	quit chan struct{}
	done chan struct{}

	stopOnce sync.Once
	stopErr  error
}

func newPortaudioSession(stream inputStream, buffer []int16, terminate func() error) *portaudioSession {
	pr, pw := io.Pipe()
	s := &portaudioSession{
		stream:    stream,
		buffer:    buffer,
		terminate: terminate,
		reader:    pr,
		writer:    pw,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *portaudioSession) readLoop() {
	defer close(s.done)

	frame := make([]byte, 2*len(s.buffer))
	for {
		select {
		case <-s.quit:
			_ = s.writer.Close()
			return
		default:
		}

		if err := s.stream.Read(); err != nil {
			select {
			case <-s.quit:
				_ = s.writer.Close()
			default:
				_ = s.writer.CloseWithError(fmt.Errorf("portaudio read: %w", err))
			}
			return
		}
		for i, sample := range s.buffer {
			binary.LittleEndian.PutUint16(frame[2*i:], uint16(sample))
		}
		if _, err := s.writer.Write(frame); err != nil {
			return
		}
	}
}

func (s *portaudioSession) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close drops unread audio so a read loop blocked on the pipe can exit.
func (s *portaudioSession) Close() error {
	_ = s.reader.Close()
	return s.Stop()
}

// Stop ends the read loop after the buffer in flight and releases the device.
// The stream is closed only once the read loop has left stream.Read.
func (s *portaudioSession) Stop() error {
	s.stopOnce.Do(func() {
		close(s.quit)
		// Stopping the stream unblocks a pending stream.Read.
		if err := s.stream.Stop(); err != nil {
			s.stopErr = err
		}
		<-s.done
		if err := s.stream.Close(); err != nil && s.stopErr == nil {
			s.stopErr = err
		}
		if s.terminate != nil {
			if err := s.terminate(); err != nil && s.stopErr == nil {
				s.stopErr = err
			}
		}
	})
	return s.stopErr
}
