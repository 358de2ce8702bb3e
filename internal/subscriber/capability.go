package subscriber

// CapabilityResult is the outcome of the capability probe.
type CapabilityResult int

const (
	Ready CapabilityResult = iota
	NotificationsUnsupported
	CapabilityPermissionDenied
	PushUnsupported
)

func (r CapabilityResult) String() string {
	switch r {
	case Ready:
		return "ready"
	case NotificationsUnsupported:
		return "notifications_unsupported"
	case CapabilityPermissionDenied:
		return "permission_denied"
	case PushUnsupported:
		return "push_unsupported"
	default:
		return "unknown"
	}
}

type capabilityEffect struct {
	message     MessageKey
	resetButton bool
}

// Ready has no entry: it leaves the UI untouched.
var capabilityEffects = map[CapabilityResult]capabilityEffect{
	NotificationsUnsupported:   {message: MsgNotificationsNotSupported},
	CapabilityPermissionDenied: {message: MsgDenied, resetButton: true},
	PushUnsupported:            {message: MsgNoPush, resetButton: true},
}

// probeCapability runs the checks in their fixed order and returns the first
// failure, or Ready.
func probeCapability(reg Registration, platform Platform) CapabilityResult {
	if reg == nil || !reg.SupportsNotifications() {
		return NotificationsUnsupported
	}
	if platform.Permission() == PermissionDenied {
		return CapabilityPermissionDenied
	}
	if !platform.PushSupported() {
		return PushUnsupported
	}
	return Ready
}
