package input

import (
	"bufio"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamWith(data string) *Stream {
	s := &Stream{ch: make(chan byte, len(data)+1)}
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
	return s
}

func TestReadInputKeys(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(t *testing.T, in Input)
	}{
		{"arrow up", "\x1b[A", func(t *testing.T, in Input) {
			assert.True(t, in.Up)
			assert.False(t, in.Down)
			assert.False(t, in.Escape, "arrow sequence must not register as escape")
		}},
		{"arrow down", "\x1b[B", func(t *testing.T, in Input) { assert.True(t, in.Down) }},
		{"horizontal arrows ignored", "\x1b[C\x1b[D", func(t *testing.T, in Input) {
			assert.False(t, in.Up)
			assert.False(t, in.Down)
			assert.False(t, in.Escape)
		}},
		{"wasd", "ws", func(t *testing.T, in Input) {
			assert.True(t, in.Up)
			assert.True(t, in.Down)
		}},
		{"vi style", "K", func(t *testing.T, in Input) { assert.True(t, in.Down) }},
		{"quit", "q", func(t *testing.T, in Input) { assert.True(t, in.Quit) }},
		{"ctrl-c quits", "\x03", func(t *testing.T, in Input) { assert.True(t, in.Quit) }},
		{"space and enter", " \r", func(t *testing.T, in Input) {
			assert.True(t, in.Space)
			assert.True(t, in.Enter)
		}},
		{"lone escape", "\x1b", func(t *testing.T, in Input) { assert.True(t, in.Escape) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := streamWith(tt.data)
			in := readInputAt(s, time.Now())
			assert.Equal(t, []byte(tt.data), in.Pressed)
			tt.check(t, in)
		})
	}
}

func TestReadInputHoldExpires(t *testing.T) {
	s := streamWith("w")
	start := time.Now()

	assert.True(t, readInputAt(s, start).Up)
	assert.True(t, readInputAt(s, start.Add(keyHoldDuration/2)).Up, "key stays held inside the hold window")
	assert.False(t, readInputAt(s, start.Add(keyHoldDuration)).Up, "key is released after the hold window")
}

func TestResetKeyInput(t *testing.T) {
	s := streamWith(" ")
	now := time.Now()
	require.True(t, readInputAt(s, now).Space)

	ResetKeyInput(s)
	assert.False(t, readInputAt(s, now).Space)

	ResetKeyInput(nil)
}

func TestStartStreamDeliversBytes(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))

	require.Eventually(t, func() bool {
		return ReadInput(s).Quit
	}, time.Second, time.Millisecond)
}

func TestKeySet(t *testing.T) {
	ks := NewKeySet()
	assert.False(t, ks.Held(KeyUp))

	ks.Press(KeyUp)
	ks.Press(KeyUp)
	assert.True(t, ks.Held(KeyUp))
	assert.False(t, ks.Held(KeyDown))

	ks.Release(KeyUp)
	assert.False(t, ks.Held(KeyUp))

	ks.Apply(Input{Up: true, Down: true})
	assert.True(t, ks.Held(KeyUp))
	assert.True(t, ks.Held(KeyDown))

	ks.Apply(Input{Down: true})
	assert.False(t, ks.Held(KeyUp))
	assert.True(t, ks.Held(KeyDown))

	ks.Clear()
	assert.False(t, ks.Held(KeyDown))
}

func TestKeySetConcurrentAccess(t *testing.T) {
	ks := NewKeySet()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			ks.Set(KeyUp, i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = ks.Held(KeyUp)
		}
	}()
	wg.Wait()
}
