// Package shell runs the line-oriented terminal front end: read a line,
// parse it, call the service, render the outcome.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-ports/todo/internal/apperr"
	"github.com/go-ports/todo/internal/command"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/service"
)

const (
	welcomeText = "Welcome to Todo CLI! Type 'help' for commands."
	goodbyeText = "Goodbye!"
	closedText  = "Thanks for using the Todo App"
)

// MaxLineBytes bounds one input line. Longer lines are rejected and skipped.
const MaxLineBytes = 64 * 1024

const helpText = `
=== TODO APP HELP ===

Available commands:
  login <username>         Switch to or create a user
  logout                   Log out the current user
  whoami                   Show the current user
  add "<text>"             Add a todo
  list [all|pending|done]  Show todos, newest first
  done <id>                Mark a todo as finished
  delete <id>              Delete a todo
  help                     Show this menu
  exit | quit              Close the app
`

// Options configures a Shell.
type Options struct {
	In  io.Reader
	Out io.Writer
	// Prompt is printed before each read when Interactive is set.
	Prompt      string
	Interactive bool
	// Color is "auto", "always" or "never".
	Color  string
	Logger *slog.Logger
}

// Shell is one terminal session over a Service.
type Shell struct {
	svc         *service.Service
	in          *bufio.Reader
	out         io.Writer
	printer     *Printer
	prompt      string
	interactive bool
	logger      *slog.Logger
}

// New creates a Shell. Nil In/Out default to stdin/stdout and a nil Logger
// to slog.Default().
func New(svc *service.Service, opts Options) *Shell {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Shell{
		svc:         svc,
		in:          bufio.NewReader(opts.In),
		out:         opts.Out,
		printer:     NewPrinter(opts.Out, opts.Color),
		prompt:      opts.Prompt,
		interactive: opts.Interactive,
		logger:      opts.Logger,
	}
}

// Run processes lines until exit, end of input, or ctx cancellation.
// Cancellation is observed between lines.
func (s *Shell) Run(ctx context.Context) error {
	s.printer.Plain(welcomeText)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.interactive {
			fmt.Fprint(s.out, s.prompt)
		}
		line, tooLong, err := s.readLine()
		if errors.Is(err, io.EOF) {
			if s.interactive {
				fmt.Fprintln(s.out)
			}
			s.printer.Plain(closedText)
			return nil
		}
		if err != nil {
			return fmt.Errorf("shell: read input: %w", err)
		}
		if tooLong {
			s.fail("read", apperr.Newf(apperr.KindInvalidArgument, "Line too long (max %d bytes)", MaxLineBytes))
			continue
		}
		if s.Execute(line) {
			s.printer.Plain(goodbyeText)
			return nil
		}
	}
}

// readLine returns the next line without its line ending. A line longer than
// MaxLineBytes is consumed up to its newline and reported as tooLong.
// io.EOF is returned only when no bytes remain.
func (s *Shell) readLine() (line string, tooLong bool, err error) {
	var buf []byte
	read := false
	for {
		chunk, isPrefix, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		read = true
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > MaxLineBytes {
				tooLong, buf = true, nil
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Execute handles one input line and reports whether the user asked to
// exit. Failures are rendered, never returned.
func (s *Shell) Execute(line string) (exit bool) {
	cmd, err := command.Parse(line)
	if err != nil {
		s.fail("parse", err)
		return false
	}
	if cmd == nil {
		return false
	}
	s.logger.Debug("dispatch", "command", cmd.Name())

	switch c := cmd.(type) {
	case command.Login:
		s.login(c)
	case command.Logout:
		s.logout()
	case command.Whoami:
		s.whoami()
	case command.Add:
		s.add(c)
	case command.List:
		s.list(c)
	case command.Done:
		s.done(c)
	case command.Delete:
		s.delete(c)
	case command.Help:
		s.printer.Plain(helpText)
	case command.Exit:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Command handlers
// ---------------------------------------------------------------------------

func (s *Shell) login(c command.Login) {
	u, created, err := s.svc.Login(c.Username)
	if err != nil {
		s.fail(c.Name(), err)
		return
	}
	if created {
		s.printer.Info("Created new user: " + u.Name)
	}
	s.printer.Success(fmt.Sprintf("Welcome %s!", u.Name))
}

func (s *Shell) logout() {
	name, ok := s.svc.Logout()
	if !ok {
		s.printer.Info("Nobody is logged in")
		return
	}
	s.printer.Success("Logged out " + name)
}

func (s *Shell) whoami() {
	u, err := s.svc.CurrentUser()
	if err != nil {
		s.fail("whoami", err)
		return
	}
	if u == nil {
		s.printer.Info("Nobody is logged in")
		return
	}
	s.printer.Info("You are logged in as: " + u.Name)
}

func (s *Shell) add(c command.Add) {
	t, err := s.svc.Add(c.Text)
	if err != nil {
		s.fail(c.Name(), err)
		return
	}
	s.printer.Success(fmt.Sprintf("Added #%d: %s", t.ID, t.Text))
}

func (s *Shell) list(c command.List) {
	todos, err := s.svc.List(c.Filter)
	if err != nil {
		s.fail(c.Name(), err)
		return
	}
	if len(todos) == 0 {
		f, _ := models.ParseFilter(c.Filter)
		s.printer.Info(fmt.Sprintf("No %s todos", f))
		return
	}
	s.printer.Todos(todos)
}

func (s *Shell) done(c command.Done) {
	t, err := s.svc.Complete(c.ID)
	if err != nil {
		s.fail(c.Name(), err)
		return
	}
	s.printer.Success(fmt.Sprintf("Marked #%d as finished", t.ID))
}

func (s *Shell) delete(c command.Delete) {
	t, err := s.svc.Remove(c.ID)
	if err != nil {
		s.fail(c.Name(), err)
		return
	}
	s.printer.Success(fmt.Sprintf("Deleted #%d: %s", t.ID, t.Text))
}

// fail renders err as one line. Storage failures are logged at error level;
// rule violations are expected and only logged at debug.
func (s *Shell) fail(op string, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		s.logger.Error("command failed", "command", op, "err", err)
	} else {
		s.logger.Debug("command rejected", "command", op, "kind", string(kind), "err", err)
	}
	s.printer.Error(err.Error())
}
