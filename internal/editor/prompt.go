package editor

import "github.com/willibrandon/vex/internal/input"

// commandLine reads an ex command on the message line and evaluates it.
// The editor is back in Normal mode however the prompt ends.
func (e *Editor) commandLine() error {
	e.switchMode(ModeCommand)
	line, ok, err := e.readPrompt(":")
	e.switchMode(ModeNormal)
	if err != nil || !ok {
		return err
	}
	return e.Execute(line)
}

// readPrompt collects printable keys after label, repainting on every key.
// Enter accepts the line. Escape, Ctrl-C and Backspace on an empty line
// cancel it and report ok == false.
func (e *Editor) readPrompt(label string) (line string, ok bool, err error) {
	defer func() { e.prompt = "" }()

	var buf []byte
	for {
		e.prompt = label + string(buf)
		if err := e.Refresh(); err != nil {
			return "", false, err
		}

		k, err := e.keys.ReadKey()
		if err != nil {
			return "", false, err
		}

		switch {
		case k == input.KeyEnter:
			return string(buf), true, nil
		case k == input.KeyEscape || k == input.Ctrl('c'):
			return "", false, nil
		case k == input.KeyBackspace || k == input.Ctrl('h'):
			if len(buf) == 0 {
				return "", false, nil
			}
			buf = buf[:len(buf)-1]
		case k.IsText():
			buf = append(buf, k.Byte())
		}
	}
}
