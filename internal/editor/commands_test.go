package editor

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/willibrandon/vex/internal/input"
	"github.com/willibrandon/vex/internal/logger"
)

func (s *EditorSuite) TestQuit() {
	s.load("a")
	s.ErrorIs(s.command("q"), ErrQuit)
}

func (s *EditorSuite) TestQuitGuardsUnsavedChanges() {
	s.load("a")
	s.press("ix")
	s.Require().NoError(s.ed.Process(input.KeyEscape))

	s.NoError(s.command("q"))
	s.Equal("No write since last change (add ! to override)", s.ed.StatusMessage())
	s.Equal(ModeNormal, s.ed.Mode())

	s.ErrorIs(s.command("q!"), ErrQuit)
}

func (s *EditorSuite) TestCtrlQ() {
	s.load("a")
	s.press("ix")
	s.Require().NoError(s.ed.Process(input.KeyEscape))

	s.NoError(s.ed.Process(input.Ctrl('q')))
	s.Equal("No write since last change (add ! to override)", s.ed.StatusMessage())

	s.NoError(s.command("w " + filepath.Join(s.T().TempDir(), "a.txt")))
	s.ErrorIs(s.ed.Process(input.Ctrl('q')), ErrQuit)
}

func (s *EditorSuite) TestCtrlCShowsQuitHint() {
	s.load("a")
	s.press("2d")

	s.NoError(s.ed.Process(input.Ctrl('c')))

	s.Equal("Press ^Q or type :q to quit", s.ed.StatusMessage())
	s.Equal(OpNone, s.ed.pendingOp)
	s.Zero(s.ed.pendingCount)
	s.Equal(ModeNormal, s.ed.Mode())
}

func (s *EditorSuite) TestCommandTrimsWhitespace() {
	s.load("a")
	s.ErrorIs(s.command("   q   "), ErrQuit)
}

func (s *EditorSuite) TestUnknownCommand() {
	s.NoError(s.command("frob now"))
	s.Equal("Not an editor command: frob", s.ed.StatusMessage())
}

func (s *EditorSuite) TestEmptyCommandIsIgnored() {
	s.ed.SetStatus("before")
	s.NoError(s.command("  "))
	s.Equal("before", s.ed.StatusMessage())
}

func (s *EditorSuite) TestWriteWithoutFilename() {
	s.load("a")
	s.NoError(s.command("w"))
	s.Equal("No file name", s.ed.StatusMessage())
}

func (s *EditorSuite) TestWriteAdoptsFilename() {
	path := filepath.Join(s.T().TempDir(), "out.txt")
	s.load("x", "yz")

	s.NoError(s.command("w " + path))

	s.Equal(path, s.ed.Buffer().Filename())
	s.Equal("\""+path+"\" 2L, 5B written", s.ed.StatusMessage())
	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal("x\nyz\n", string(data))
}

func (s *EditorSuite) TestWriteFailureKeepsDirty() {
	s.press("ix")
	s.Require().NoError(s.ed.Process(input.KeyEscape))

	s.NoError(s.command("w " + s.T().TempDir()))

	s.True(s.ed.Buffer().Dirty())
	s.NotEmpty(s.ed.StatusMessage())
}

func (s *EditorSuite) TestEditReloads() {
	path := s.writeFile("doc.txt", "first\nsecond\n")
	s.ed.Open(path)
	s.press("jA!")
	s.Require().NoError(s.ed.Process(input.KeyEscape))

	s.NoError(s.command("e"))
	s.Equal("No write since last change (add ! to override)", s.ed.StatusMessage())
	s.Equal([]string{"first", "second!"}, s.ed.Buffer().Lines())

	s.NoError(s.command("e!"))
	s.Equal([]string{"first", "second"}, s.ed.Buffer().Lines())
	s.False(s.ed.Buffer().Dirty())
	s.Equal(0, s.ed.Cursor().Row)
}

func (s *EditorSuite) TestEditOtherFile() {
	path := s.writeFile("other.txt", "other\n")
	s.load("a")

	s.NoError(s.command("e " + path))

	s.Equal([]string{"other"}, s.ed.Buffer().Lines())
	s.Equal(path, s.ed.Buffer().Filename())
	s.Equal("\""+path+"\" 1L", s.ed.StatusMessage())
}

func (s *EditorSuite) TestEditWithoutFilename() {
	s.NoError(s.command("e"))
	s.Equal("No file name", s.ed.StatusMessage())
}

func (s *EditorSuite) TestPromptCancel() {
	tests := []struct {
		name string
		keys []input.Key
	}{
		{name: "escape", keys: []input.Key{'q', input.KeyEscape}},
		{name: "ctrl-c", keys: []input.Key{'q', input.Ctrl('c')}},
		{name: "backspace on empty line", keys: []input.Key{'q', input.KeyBackspace, input.KeyBackspace}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.keys.push(tt.keys...)
			s.NoError(s.ed.Process(':'))
			s.Equal(ModeNormal, s.ed.Mode())
			s.Empty(s.keys.keys)
		})
	}
}

func (s *EditorSuite) TestPromptBackspaceEdits() {
	s.load("a")
	s.keys.push('x', input.KeyBackspace, 'q', input.KeyEnter)

	s.ErrorIs(s.ed.Process(':'), ErrQuit)
}

func (s *EditorSuite) TestMessages() {
	var buf bytes.Buffer
	logger.InitWriter(&buf, slog.LevelInfo)
	s.T().Cleanup(func() { logger.Log = nil })

	s.NoError(s.command("messages"))
	s.Equal("No messages", s.ed.StatusMessage())

	logger.With("component", "test").Warn("disk full")
	s.NoError(s.command("messages"))
	s.Contains(s.ed.StatusMessage(), "WARN  disk full (1 warnings, 0 errors)")
}

func (s *EditorSuite) TestCommandNames() {
	s.Equal([]string{"e", "e!", "messages", "q", "q!", "w", "wq"}, s.ed.commands.Names())
}
