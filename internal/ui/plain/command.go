package plain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"examctl/internal/answers"
	"examctl/internal/lifecycle"
)

// ErrUnknownCommand is returned for input lines that match no command.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one parsed input line. Exactly one of Action, Export or Help
// is set.
type Command struct {
	Action *lifecycle.Action
	Export string
	Help   bool
}

func actionCommand(action lifecycle.Action) Command {
	return Command{Action: &action}
}

// ParseCommand parses a line such as "start", "3 b", "clear 3", "submit",
// "yes" or "export html".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	switch fields[0] {
	case "start":
		return actionCommand(lifecycle.Start()), nil
	case "submit":
		return actionCommand(lifecycle.RequestSubmit()), nil
	case "yes", "y", "confirm":
		return actionCommand(lifecycle.ConfirmSubmit()), nil
	case "no", "n", "cancel":
		return actionCommand(lifecycle.CancelSubmit()), nil
	case "reload", "retry":
		return actionCommand(lifecycle.Reload()), nil
	case "quit", "exit", "q":
		return actionCommand(lifecycle.Quit()), nil
	case "help", "?":
		return Command{Help: true}, nil
	case "clear":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: usage: clear <question>", ErrUnknownCommand)
		}
		question, err := parseQuestion(fields[1])
		if err != nil {
			return Command{}, err
		}
		return actionCommand(lifecycle.Clear(question)), nil
	case "export":
		format := "json"
		if len(fields) > 1 {
			format = fields[1]
		}
		if format != "json" && format != "html" {
			return Command{}, fmt.Errorf("%w: export format must be json or html", ErrUnknownCommand)
		}
		return Command{Export: format}, nil
	}
	if len(fields) == 2 {
		question, err := parseQuestion(fields[0])
		if err != nil {
			return Command{}, err
		}
		option, ok := answers.NormalizeOption(fields[1])
		if !ok {
			return Command{}, fmt.Errorf("%w: %q", answers.ErrInvalidOption, fields[1])
		}
		return actionCommand(lifecycle.Select(question, option)), nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}

func parseQuestion(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", answers.ErrQuestionOutOfRange, value)
	}
	return n, nil
}

const helpText = `Commands:
  start              start the exam
  <n> <a-e>          answer question n
  clear <n>          clear question n
  submit             submit (stopwatch exams)
  yes | no           confirm or cancel a submission
  export [json|html] save the result
  reload             retry loading after an error
  quit               leave`
