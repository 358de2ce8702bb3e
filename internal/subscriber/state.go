package subscriber

// Label is the logical caption of the toggle button.
type Label int

const (
	LabelSubscribe Label = iota
	LabelUnsubscribe
	LabelLoading
)

func (l Label) String() string {
	switch l {
	case LabelSubscribe:
		return "subscribe"
	case LabelUnsubscribe:
		return "unsubscribe"
	case LabelLoading:
		return "loading"
	default:
		return "unknown"
	}
}

func (l Label) messageKey() MessageKey {
	switch l {
	case LabelUnsubscribe:
		return MsgUnsubscribe
	case LabelLoading:
		return MsgLoading
	default:
		return MsgSubscribe
	}
}

// UIState is everything the page shows for the subscription toggle.
type UIState struct {
	Enabled        bool
	Label          Label
	ButtonText     string
	Message        string
	MessageVisible bool
}

// View renders controller state onto the page.
type View interface {
	Render(state UIState)
}
