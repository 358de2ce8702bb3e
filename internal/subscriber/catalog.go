package subscriber

// MessageKey identifies a user-facing string in the catalog.
type MessageKey string

const (
	MsgSubscribe                 MessageKey = "subscribe"
	MsgUnsubscribe               MessageKey = "unsubscribe"
	MsgLoading                   MessageKey = "loading"
	MsgDenied                    MessageKey = "denied"
	MsgNoPush                    MessageKey = "no_push"
	MsgNoSubscription            MessageKey = "no_subscription"
	MsgWorkerNotSupported        MessageKey = "sw_not_supported"
	MsgNotificationsNotSupported MessageKey = "notifications_not_supported"
	MsgSubscribeOK               MessageKey = "subscribe_ok"
	MsgUnsubscribeOK             MessageKey = "unsubscribe_ok"
	MsgUnsubscribeError          MessageKey = "unsubscribe_error"
)

var defaultMessages = map[MessageKey]string{
	MsgSubscribe:                 "Subscribe to Push Messaging",
	MsgUnsubscribe:               "Unsubscribe to Push Messaging",
	MsgLoading:                   "Loading...",
	MsgDenied:                    "The Push Notification is blocked in your browser.",
	MsgNoPush:                    "Push Notification is not available in the browser",
	MsgNoSubscription:            "Subscription is not available",
	MsgWorkerNotSupported:        "Service Worker is not supported in your Browser!",
	MsgNotificationsNotSupported: "Showing Notifications is not supported in your browser",
	MsgSubscribeOK:               "Successfully subscribed for Push Notification",
	MsgUnsubscribeOK:             "Successfully unsubscribed to Push Notification",
	MsgUnsubscribeError:          "Error during unsubscribe from Push Notification",
}

// Catalog maps status keys to display strings. Host overrides replace the
// built-in defaults key by key; unknown override keys are kept so a host can
// look them up too.
type Catalog struct {
	messages map[MessageKey]string
}

// NewCatalog merges overrides on top of the defaults.
func NewCatalog(overrides map[string]string) *Catalog {
	messages := make(map[MessageKey]string, len(defaultMessages)+len(overrides))
	for k, v := range defaultMessages {
		messages[k] = v
	}
	for k, v := range overrides {
		messages[MessageKey(k)] = v
	}
	return &Catalog{messages: messages}
}

// Get returns the string for key, or the key itself when nothing is defined.
func (c *Catalog) Get(key MessageKey) string {
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return string(key)
}
