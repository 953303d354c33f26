package editor

import (
	"sort"
	"strings"

	"github.com/willibrandon/vex/internal/logger"
)

// CommandFn runs an ex command. arg is the text after the first space, or
// empty. Returning ErrQuit ends the editing loop.
type CommandFn func(e *Editor, arg string) error

// CommandRegistry maps ex command names to their implementations.
type CommandRegistry struct {
	commands map[string]CommandFn
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{commands: make(map[string]CommandFn)}
}

// Register adds cmd under name, replacing any previous command.
func (r *CommandRegistry) Register(name string, cmd CommandFn) {
	r.commands[name] = cmd
}

// Get returns the command registered under name, or nil.
func (r *CommandRegistry) Get(name string) CommandFn {
	return r.commands[name]
}

// Names returns the registered command names in sorted order.
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registerCommands(r *CommandRegistry) {
	r.Register("q", quit)
	r.Register("q!", forceQuit)
	r.Register("w", write)
	r.Register("wq", writeQuit)
	r.Register("e", edit)
	r.Register("e!", forceEdit)
	r.Register("messages", messages)
}

// Execute evaluates one command line.
func (e *Editor) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	cmd := e.commands.Get(name)
	if cmd == nil {
		e.log.Debug("Unknown command", "command", name)
		e.SetStatus("Not an editor command: %s", name)
		return nil
	}
	return cmd(e, arg)
}

func quit(e *Editor, _ string) error {
	if e.buf.Dirty() {
		e.SetStatus("No write since last change (add ! to override)")
		return nil
	}
	return ErrQuit
}

func forceQuit(*Editor, string) error {
	return ErrQuit
}

func write(e *Editor, arg string) error {
	e.Save(arg)
	return nil
}

func writeQuit(e *Editor, arg string) error {
	e.Save(arg)
	return ErrQuit
}

func edit(e *Editor, arg string) error {
	if e.buf.Dirty() {
		e.SetStatus("No write since last change (add ! to override)")
		return nil
	}
	return forceEdit(e, arg)
}

func forceEdit(e *Editor, arg string) error {
	path := arg
	if path == "" {
		path = e.buf.Filename()
	}
	if path == "" {
		e.SetStatus("No file name")
		return nil
	}
	e.Open(path)
	return nil
}

func messages(e *Editor, _ string) error {
	e.SetStatus("%s", logger.Summary())
	return nil
}
