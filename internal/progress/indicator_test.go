package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// syncBuffer guards the output buffer so the render goroutine and the test
// can't race on it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestIndicator_StartStop(t *testing.T) {
	out := &syncBuffer{}
	in := New("Converting clip.mp3", out, time.Millisecond)
	in.Start()
	time.Sleep(20 * time.Millisecond)
	in.Stop()

	got := out.String()
	assert.Contains(t, got, "Converting clip.mp3... ", "should render the label")
	assert.Contains(t, got, "Converting clip.mp3... Done!", "should print the final line")
}

func TestIndicator_CyclesFrames(t *testing.T) {
	out := &syncBuffer{}
	in := New("Normalizing Loudness", out, time.Millisecond)
	in.Start()
	time.Sleep(30 * time.Millisecond)
	in.Stop()

	got := out.String()
	for _, frame := range []string{"|", "/", "-", "\\"} {
		assert.Contains(t, got, "... "+frame, "frame %q should appear", frame)
	}
}

func TestIndicator_StopIdempotent(t *testing.T) {
	out := &syncBuffer{}
	in := New("Finalizing", out, time.Millisecond)
	in.Start()
	in.Stop()
	in.Stop() // second stop must not panic or block

	if n := strings.Count(out.String(), "Done!"); n != 1 {
		t.Errorf("Done! printed %d times, want 1", n)
	}
}

func TestIndicator_StopWithoutStart(t *testing.T) {
	in := New("Idle", &syncBuffer{}, time.Millisecond)
	in.Stop() // must be a no-op
}

func TestIndicator_RestartAfterStop(t *testing.T) {
	out := &syncBuffer{}
	in := New("Enhancing", out, time.Millisecond)
	in.Start()
	in.Stop()
	in.Start()
	time.Sleep(5 * time.Millisecond)
	in.Stop()

	if n := strings.Count(out.String(), "Done!"); n != 2 {
		t.Errorf("Done! printed %d times, want 2", n)
	}
}
