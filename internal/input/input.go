// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a steering key counts as held after its last
// byte. Terminals send no release events, only auto-repeat.
const keyHoldDuration = 120 * time.Millisecond

// Input is one frame's key state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Confirm bool // Space or Enter pressed this frame
	Pause   bool // P pressed this frame
	Pressed []byte
}

// SteerX returns the horizontal steering axis in {-1, 0, 1}.
func (in Input) SteerX() float64 { return axis(in.Left, in.Right) }

// SteerY returns the vertical steering axis in {-1, 0, 1}.
func (in Input) SteerY() float64 { return axis(in.Up, in.Down) }

func axis(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

// keyState tracks the last time each steering key was seen.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch    chan byte
	state keyState
	buf   []byte
}

// StartStream spawns a goroutine that reads from r until it fails.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains the available bytes without blocking. A closed stream
// reads as Quit.
func ReadInput(s *Stream) Input {
	s.buf = s.buf[:0]
	closed := false
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}
	in := s.state.parse(s.buf, time.Now())
	in.Quit = in.Quit || closed
	return in
}

// Reset forgets held keys.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// parse applies buf to the key state and reports the frame's input.
func (st *keyState) parse(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// Arrow keys arrive as ESC [ X, or ESC O X in application cursor mode.
		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			if st.arrow(buf[i+2], now) {
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'a', 'A', 'h', 'H':
			st.left = now
		case 'd', 'D', 'l', 'L':
			st.right = now
		case 'w', 'W', 'k', 'K':
			st.up = now
		case 's', 'S', 'j', 'J':
			st.down = now
		case ' ', '\r', '\n':
			in.Confirm = true
		case 'p', 'P', '\x1b':
			in.Pause = true
		}
	}

	in.Left = now.Sub(st.left) < keyHoldDuration
	in.Right = now.Sub(st.right) < keyHoldDuration
	in.Up = now.Sub(st.up) < keyHoldDuration
	in.Down = now.Sub(st.down) < keyHoldDuration
	return in
}

func (st *keyState) arrow(code byte, now time.Time) bool {
	switch code {
	case 'A':
		st.up = now
	case 'B':
		st.down = now
	case 'C':
		st.right = now
	case 'D':
		st.left = now
	default:
		return false
	}
	return true
}
