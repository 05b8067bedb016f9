package spell

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const banner = "@(#) International Ispell Version 3.2.06 (but really Hunspell 1.7.0)\n"

// fakeEngine answers pipe-mode queries from a fixed reply table.
type fakeEngine struct {
	mu      sync.Mutex
	seen    []string
	replies map[string]string // word -> reply lines, default "*\n"
	hangUp  bool              // close stdout after the first query
	done    chan struct{}
}

func startFake(t *testing.T, engine *fakeEngine, opts ...Option) *Session {
	t.Helper()

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	engine.done = make(chan struct{})

	go func() {
		defer close(engine.done)
		defer outW.Close()

		if _, err := io.WriteString(outW, banner); err != nil {
			return
		}
		scanner := bufio.NewScanner(inR)
		for scanner.Scan() {
			word := scanner.Text()
			engine.mu.Lock()
			engine.seen = append(engine.seen, word)
			engine.mu.Unlock()

			if engine.hangUp {
				return
			}
			reply, ok := engine.replies[word]
			if !ok {
				reply = "*\n"
			}
			if _, err := io.WriteString(outW, reply+"\n"); err != nil {
				return
			}
		}
	}()

	s, err := NewSession(inW, outR, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func (e *fakeEngine) queried() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.seen...)
}

func TestSession_IsAccepted(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{replies: map[string]string{
		"Teh":   "& Teh 3 0: The, Tech, Ted\n",
		"quikc": "# quikc 0\n",
	}}
	s := startFake(t, engine)

	for _, tc := range []struct {
		word string
		want bool
	}{
		{"Teh", false},
		{"quikc", false},
		{"brown", true},
		{"fox", true},
	} {
		got, err := s.IsAccepted(tc.word)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.word)
	}
	assert.Equal(t, 4, s.Queries())

	require.NoError(t, s.Close())
	<-engine.done
	assert.Equal(t, []string{"Teh", "quikc", "brown", "fox"}, engine.queried())
}

func TestSession_NoQueryForSymbols(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	s := startFake(t, engine)

	tests := []struct {
		word string
		want bool
	}{
		{"", true},
		{"--", true},
		{"::", true},
		{"#define", false},
		{"@param", false},
		{"*ptr", false},
	}
	for _, tt := range tests {
		got, err := s.IsAccepted(tt.word)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.word)
	}
	assert.Zero(t, s.Queries())

	require.NoError(t, s.Close())
	<-engine.done
	assert.Empty(t, engine.queried())
}

func TestSession_NonASCIIWordsAreQueried(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	s := startFake(t, engine)

	ok, err := s.IsAccepted("éclair")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, s.Queries())
}

func TestSession_MultiLineReply(t *testing.T) {
	t.Parallel()

	// A word the engine splits yields one reply line per part. Any
	// non-accepting line rejects it and the whole batch is consumed.
	engine := &fakeEngine{replies: map[string]string{
		"foo-barr": "*\n& barr 2 4: bar, barre\n",
	}}
	s := startFake(t, engine)

	ok, err := s.IsAccepted("foo-barr")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.IsAccepted("next")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSession_AcceptMarkers(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{replies: map[string]string{
		"walked": "+ walk\n",
		"colour": "- colo\n",
	}}

	t.Run("default markers", func(t *testing.T) {
		t.Parallel()

		s := startFake(t, &fakeEngine{replies: engine.replies})
		ok, err := s.IsAccepted("walked")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("root and compound accepted", func(t *testing.T) {
		t.Parallel()

		s := startFake(t, &fakeEngine{replies: engine.replies}, WithAcceptMarkers("*+-"))
		for _, w := range []string{"walked", "colour"} {
			ok, err := s.IsAccepted(w)
			require.NoError(t, err)
			assert.True(t, ok, w)
		}
	})
}

func TestSession_EngineHangsUp(t *testing.T) {
	t.Parallel()

	s := startFake(t, &fakeEngine{hangUp: true})

	_, err := s.IsAccepted("word")
	require.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_Closed(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	s := startFake(t, engine)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.IsAccepted("word")
	assert.ErrorIs(t, err, ErrSessionClosed)

	ok, err := s.IsAccepted("--")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewSession_NoBanner(t *testing.T) {
	t.Parallel()

	_, inW := io.Pipe()
	_, err := NewSession(inW, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrSessionClosed)
}

// shellEngine runs a tiny pipe-mode engine written in sh.
type shellEngine struct{ script string }

func (e shellEngine) Command() (string, []string) { return "sh", []string{"-c", e.script} }
func (e shellEngine) Name() string                { return "sh" }

func TestStart_Process(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	t.Parallel()

	script := `echo "banner"; while read w; do if [ "$w" = "wrng" ]; then echo "# wrng 0"; else echo "*"; fi; echo; done`
	s, err := Start(context.Background(), shellEngine{script: script})
	require.NoError(t, err)

	ok, err := s.IsAccepted("right")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsAccepted("wrng")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Close())
}

func TestStart_BannerFailureReportsStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	t.Parallel()

	_, err := Start(context.Background(), shellEngine{script: `echo "Can't open affix or dictionary files" >&2; exit 1`})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Contains(t, err.Error(), "Can't open affix or dictionary files")
}

func TestStart_MissingExecutable(t *testing.T) {
	t.Parallel()

	_, err := Start(context.Background(), &Hunspell{Path: "/nonexistent/hunspell"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start hunspell")
}

func TestHunspell_Command(t *testing.T) {
	t.Parallel()

	name, args := (&Hunspell{}).Command()
	assert.Equal(t, "hunspell", name)
	assert.Equal(t, []string{"-a"}, args)

	name, args = (&Hunspell{Path: "/opt/bin/hunspell", Dictionary: "en_GB", PersonalDict: "/home/u/.words"}).Command()
	assert.Equal(t, "/opt/bin/hunspell", name)
	assert.Equal(t, []string{"-a", "-d", "en_GB", "-p", "/home/u/.words"}, args)
}
