package lifecycle

// ActionKind identifies a user intent sent to the controller.
type ActionKind int

const (
	// ActionStart asks the server to start a pending exam.
	ActionStart ActionKind = iota
	// ActionSelect records an option for a question.
	ActionSelect
	// ActionClear removes the answer for a question.
	ActionClear
	// ActionRequestSubmit opens the submit confirmation.
	ActionRequestSubmit
	// ActionConfirmSubmit confirms a pending submission.
	ActionConfirmSubmit
	// ActionCancelSubmit dismisses a pending submission.
	ActionCancelSubmit
	// ActionReload fetches the exam again after a load failure.
	ActionReload
	// ActionQuit leaves the exam view.
	ActionQuit
)

// Action carries a user intent and its payload.
type Action struct {
	Kind     ActionKind
	Question int
	Option   string
}

func (k ActionKind) String() string {
	switch k {
	case ActionStart:
		return "start"
	case ActionSelect:
		return "select"
	case ActionClear:
		return "clear"
	case ActionRequestSubmit:
		return "request_submit"
	case ActionConfirmSubmit:
		return "confirm_submit"
	case ActionCancelSubmit:
		return "cancel_submit"
	case ActionReload:
		return "reload"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

func Start() Action         { return Action{Kind: ActionStart} }
func RequestSubmit() Action { return Action{Kind: ActionRequestSubmit} }
func ConfirmSubmit() Action { return Action{Kind: ActionConfirmSubmit} }
func CancelSubmit() Action  { return Action{Kind: ActionCancelSubmit} }
func Reload() Action        { return Action{Kind: ActionReload} }
func Quit() Action          { return Action{Kind: ActionQuit} }

// Select records option for question.
func Select(question int, option string) Action {
	return Action{Kind: ActionSelect, Question: question, Option: option}
}

// Clear removes the answer for question.
func Clear(question int) Action {
	return Action{Kind: ActionClear, Question: question}
}
