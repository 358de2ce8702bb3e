//go:build js && wasm

package browser

import (
	"context"
	"errors"
	"strings"
	"syscall/js"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/subscriber"
)

// Element ids and globals the host page provides.
const (
	ButtonID       = "simplepush-subscribe-button"
	MessageID      = "simplepush-message"
	WorkerScriptID = "service-worker-js"
	MessagesGlobal = "simplepush_messages"
)

var ErrNoButton = errors.New("page has no #" + ButtonID + " element")

// Page holds the DOM handles of the toggle.
type Page struct {
	button  js.Value
	message js.Value
	clicks  js.Func
}

// LookupPage finds the toggle elements. The message element is optional.
func LookupPage() (*Page, error) {
	doc := js.Global().Get("document")
	button := doc.Call("getElementById", ButtonID)
	if !button.Truthy() {
		return nil, ErrNoButton
	}
	return &Page{
		button:  button,
		message: doc.Call("getElementById", MessageID),
	}, nil
}

// Dataset returns the button's data-* attributes named by attrs.
func (p *Page) Dataset(attrs ...string) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		if v := p.button.Call("getAttribute", "data-"+attr); v.Type() == js.TypeString {
			out[attr] = v.String()
		}
	}
	return out
}

// ButtonDisabled reports the disabled state the page rendered the button with.
func (p *Page) ButtonDisabled() bool {
	return p.button.Get("disabled").Truthy()
}

// ButtonText returns the caption the page rendered on the button.
func (p *Page) ButtonText() string {
	return strings.TrimSpace(p.button.Get("textContent").String())
}

// WorkerScript returns the src of the page's worker script tag, if any.
func WorkerScript() string {
	el := js.Global().Get("document").Call("getElementById", WorkerScriptID)
	if !el.Truthy() {
		return ""
	}
	return el.Get("src").String()
}

// HostMessages returns window.simplepush_messages.
func HostMessages() map[string]string {
	return stringMap(js.Global().Get(MessagesGlobal))
}

// Render implements subscriber.View.
func (p *Page) Render(state subscriber.UIState) {
	p.button.Set("textContent", state.ButtonText)
	p.button.Set("disabled", !state.Enabled)
	if !p.message.Truthy() {
		return
	}
	if state.MessageVisible {
		p.message.Set("textContent", state.Message)
		p.message.Get("style").Set("display", "block")
	}
}

// OnClick runs fn in its own goroutine for every click on the button.
// syscall/js callbacks must not block.
func (p *Page) OnClick(ctx context.Context, fn func(context.Context)) {
	p.clicks = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		go fn(ctx)
		return nil
	})
	p.button.Call("addEventListener", "click", p.clicks)
}
