// Package command turns one line of shell input into a typed command.
package command

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-ports/todo/internal/apperr"
)

// Command is one parsed shell command. The concrete types below are the
// only implementations.
type Command interface {
	// Name returns the canonical command name.
	Name() string
}

// Login switches to (or creates) the named user.
type Login struct{ Username string }

// Logout ends the active session.
type Logout struct{}

// Whoami reports the active user.
type Whoami struct{}

// Add creates a todo.
type Add struct{ Text string }

// List shows todos. Filter is passed to the service unparsed.
type List struct{ Filter string }

// Done marks a todo as finished.
type Done struct{ ID int }

// Delete removes a todo.
type Delete struct{ ID int }

// Help prints the command listing.
type Help struct{}

// Exit ends the shell.
type Exit struct{}

func (Login) Name() string  { return "login" }
func (Logout) Name() string { return "logout" }
func (Whoami) Name() string { return "whoami" }
func (Add) Name() string    { return "add" }
func (List) Name() string   { return "list" }
func (Done) Name() string   { return "done" }
func (Delete) Name() string { return "delete" }
func (Help) Name() string   { return "help" }
func (Exit) Name() string   { return "exit" }

// Parse tokenizes line and builds the matching Command. A blank line
// returns (nil, nil).
func Parse(line string) (Command, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return nil, nil
	}
	name, args := strings.ToLower(tokens[0]), tokens[1:]

	switch name {
	case "login":
		return Login{Username: arg(args, 0)}, nil
	case "logout":
		return Logout{}, nil
	case "whoami":
		return Whoami{}, nil
	case "add":
		return Add{Text: strings.Join(args, " ")}, nil
	case "list":
		return List{Filter: arg(args, 0)}, nil
	case "done":
		id, err := parseID(name, args)
		if err != nil {
			return nil, err
		}
		return Done{ID: id}, nil
	case "delete":
		id, err := parseID(name, args)
		if err != nil {
			return nil, err
		}
		return Delete{ID: id}, nil
	case "help":
		return Help{}, nil
	case "exit", "quit":
		return Exit{}, nil
	}
	return nil, apperr.Newf(apperr.KindUnknownCommand, "Unknown command: %s. Try \"help\"", tokens[0])
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func parseID(name string, args []string) (int, error) {
	if len(args) == 0 || args[0] == "" {
		return 0, apperr.Newf(apperr.KindInvalidArgument, "Usage: %s <id>", name)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, apperr.Newf(apperr.KindInvalidArgument, "Invalid todo id %q", args[0])
	}
	return id, nil
}

// Tokenize splits line into arguments. A token is either a double-quoted
// run containing at least one non-quote character, kept verbatim with its
// spaces, or a run of non-space characters. One leading and one trailing
// double quote are stripped from bare tokens.
func Tokenize(line string) []string {
	var out []string
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		if r == '"' {
			if end := strings.IndexByte(line[i+1:], '"'); end > 0 {
				out = append(out, line[i+1:i+1+end])
				i += end + 2
				continue
			}
		}
		j := i
		for j < len(line) {
			r, size := utf8.DecodeRuneInString(line[j:])
			if unicode.IsSpace(r) {
				break
			}
			j += size
		}
		out = append(out, trimQuotes(line[i:j]))
		i = j
	}
	return out
}

func trimQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
