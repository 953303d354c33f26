package editor

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/willibrandon/vex/internal/input"
)

// frameLines splits a frame into its screen lines, dropping the leading
// hide-cursor and home sequences.
func (s *EditorSuite) frameLines() []string {
	frame := s.ed.Frame()
	s.Require().True(strings.HasPrefix(frame, "\x1b[?25l\x1b[H"))
	s.Require().True(strings.HasSuffix(frame, "\x1b[?25h"))
	return strings.Split(strings.TrimPrefix(frame, "\x1b[?25l\x1b[H"), "\r\n")
}

func (s *EditorSuite) TestBannerOnEmptyBuffer() {
	lines := s.frameLines()
	s.Require().Len(lines, 24)

	banner := "~" + strings.Repeat(" ", 30) + "vex -- version 1.0\x1b[K"
	for y := 0; y < 22; y++ {
		if y == 7 {
			s.Equal(banner, lines[y], "row %d", y)
			continue
		}
		s.Equal("~\x1b[K", lines[y], "row %d", y)
	}
}

func (s *EditorSuite) TestRowsWithLineNumbers() {
	s.load("abc", "\tx")

	lines := s.frameLines()

	s.Equal("   1 abc\x1b[K", lines[0])
	s.Equal("   2         x\x1b[K", lines[1])
	s.Equal("~\x1b[K", lines[2])
}

func (s *EditorSuite) TestRowsWithoutLineNumbers() {
	s.ed = s.newEditor(24, 80, false)
	s.load("abc")

	lines := s.frameLines()

	s.Equal("abc\x1b[K", lines[0])
	s.True(strings.HasSuffix(lines[23], "\x1b[1;1H\x1b[?25h"))
}

func (s *EditorSuite) TestStatusBar() {
	s.load("abc", "def")
	s.press("jl")

	lines := s.frameLines()

	left := "NORMAL [No Name] - 2 lines"
	right := "2:2"
	bar := left + strings.Repeat(" ", 80-len(left)-len(right)) + right
	s.Equal("\x1b[7m"+bar+"\x1b[m", lines[22])
}

func (s *EditorSuite) TestStatusBarModifiedAndLongName() {
	s.ed.Buffer().SetFilename("a-very-long-file-name-indeed.txt")
	s.press("ix")

	lines := s.frameLines()

	s.Contains(lines[22], "INSERT a-very-long-file-nam[+] - 1 lines")
}

func (s *EditorSuite) TestStatusBarNarrowTerminal() {
	s.ed = s.newEditor(10, 12, true)
	s.load("abc")

	lines := s.frameLines()

	s.Equal("\x1b[7mNORMAL [No N\x1b[m", lines[8])
}

func (s *EditorSuite) TestCursorPlacementAccountsForGutter() {
	s.load("a\tb")
	s.press("ll")

	lines := s.frameLines()

	// rx is 8 after the tab; the gutter takes 5 cells.
	s.True(strings.HasSuffix(lines[23], "\x1b[1;14H\x1b[?25h"), lines[23])
}

func (s *EditorSuite) TestStatusMessageExpires() {
	s.load("abc")
	s.ed.SetStatus("hello")

	s.True(strings.HasPrefix(s.frameLines()[23], "\x1b[Khello"))

	s.clock.Advance(4 * time.Second)
	s.True(strings.HasPrefix(s.frameLines()[23], "\x1b[Khello"))

	s.clock.Advance(time.Second)
	s.False(strings.Contains(s.frameLines()[23], "hello"))
}

func (s *EditorSuite) TestPromptOnMessageLine() {
	s.load("abc")
	s.keys.pushString("ab")
	s.keys.push(input.KeyEscape)

	s.Require().NoError(s.ed.Process(':'))

	out := s.out.String()
	s.Contains(out, "\x1b[K:ab\x1b[24;4H")
	s.Equal(ModeNormal, s.ed.Mode())
	s.Empty(s.ed.prompt)
}

func (s *EditorSuite) TestHorizontalScroll() {
	s.ed = s.newEditor(10, 20, true)
	s.load(strings.Repeat("x", 40) + "END")

	s.press("$")
	lines := s.frameLines()

	_, colOffset := s.ed.Viewport()
	s.Equal(43-15+1, colOffset)
	s.Equal("   1 "+strings.Repeat("x", 11)+"END\x1b[K", lines[0])
}

func (s *EditorSuite) TestScrollKeepsCursorVisible() {
	const rows, cols = 12, 30
	s.ed = s.newEditor(rows, cols, true)

	rng := rand.New(rand.NewPCG(7, 11))
	lines := make([]string, 200)
	for i := range lines {
		var b strings.Builder
		for j := rng.IntN(80); j > 0; j-- {
			if rng.IntN(6) == 0 {
				b.WriteByte('\t')
			} else {
				b.WriteByte('a' + byte(rng.IntN(26)))
			}
		}
		lines[i] = b.String()
	}
	s.load(lines...)

	keys := []input.Key{'h', 'j', 'k', 'l', '$', '_', 'g', 'G', input.KeyPageDown, input.KeyPageUp}
	for i := 0; i < 2000; i++ {
		k := keys[rng.IntN(len(keys))]
		if rng.IntN(4) == 0 {
			s.Require().NoError(s.ed.Process(input.Key('1' + rng.IntN(9))))
		}
		s.Require().NoError(s.ed.Process(k))
		s.ed.Frame()

		rowOffset, colOffset := s.ed.Viewport()
		pos := s.ed.Cursor()
		msg := fmt.Sprintf("step %d key %s cursor %+v rx %d", i, k, pos, s.ed.rx)
		s.Require().GreaterOrEqual(pos.Row, rowOffset, msg)
		s.Require().Less(pos.Row, rowOffset+s.ed.screenRows, msg)
		s.Require().GreaterOrEqual(s.ed.rx, colOffset, msg)
		s.Require().Less(s.ed.rx, colOffset+s.ed.textCols(), msg)
	}
}

func (s *EditorSuite) TestLineNumber() {
	s.Equal("   7", lineNumber(7, 4))
	s.Equal("1234", lineNumber(1234, 4))
	s.Equal("2345", lineNumber(12345, 4))
}
