//go:build js && wasm

package browser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/subscriber"
)

var errUnsubscribeRefused = errors.New("platform refused to unsubscribe")

// Platform binds subscriber.Platform to navigator and window.
type Platform struct {
	window    js.Value
	navigator js.Value
}

func NewPlatform() *Platform {
	window := js.Global()
	return &Platform{
		window:    window,
		navigator: window.Get("navigator"),
	}
}

func (p *Platform) container() js.Value {
	return p.navigator.Get("serviceWorker")
}

func (p *Platform) WorkerSupported() bool {
	return p.container().Truthy()
}

func (p *Platform) Register(ctx context.Context, scriptURL string) (subscriber.Registration, error) {
	v, err := await(ctx, p.container().Call("register", scriptURL))
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", scriptURL, err)
	}
	return registration{v: v}, nil
}

func (p *Platform) Ready(ctx context.Context) (subscriber.Registration, error) {
	v, err := await(ctx, p.container().Get("ready"))
	if err != nil {
		return nil, err
	}
	return registration{v: v}, nil
}

func (p *Platform) Permission() subscriber.Permission {
	n := p.window.Get("Notification")
	if !n.Truthy() {
		return subscriber.PermissionDefault
	}
	return subscriber.Permission(n.Get("permission").String())
}

func (p *Platform) PushSupported() bool {
	return p.window.Get("PushManager").Truthy()
}

func (p *Platform) UserAgent() string {
	return p.navigator.Get("userAgent").String()
}

type registration struct {
	v js.Value
}

func (r registration) SupportsNotifications() bool {
	return r.v.Get("showNotification").Truthy()
}

func (r registration) PushManager() subscriber.PushManager {
	pm := r.v.Get("pushManager")
	if !pm.Truthy() {
		return nil
	}
	return pushManager{v: pm}
}

type pushManager struct {
	v js.Value
}

func (m pushManager) GetSubscription(ctx context.Context) (subscriber.Subscription, error) {
	v, err := await(ctx, m.v.Call("getSubscription"))
	if err != nil {
		return nil, err
	}
	if v.IsNull() || v.IsUndefined() {
		return nil, nil
	}
	return subscription{v: v}, nil
}

func (m pushManager) Subscribe(ctx context.Context, opts subscriber.SubscribeOptions) (subscriber.Subscription, error) {
	options := map[string]any{"userVisibleOnly": opts.UserVisibleOnly}
	if opts.ApplicationServerKey != "" {
		key, err := decodeServerKey(opts.ApplicationServerKey)
		if err != nil {
			return nil, fmt.Errorf("application server key: %w", err)
		}
		options["applicationServerKey"] = key
	}
	v, err := await(ctx, m.v.Call("subscribe", options))
	if err != nil {
		return nil, err
	}
	return subscription{v: v}, nil
}

// decodeServerKey turns a base64url VAPID key into a Uint8Array.
func decodeServerKey(key string) (js.Value, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(key, "="))
	if err != nil {
		return js.Undefined(), err
	}
	arr := js.Global().Get("Uint8Array").New(len(raw))
	js.CopyBytesToJS(arr, raw)
	return arr, nil
}

type subscription struct {
	v js.Value
}

func (s subscription) JSON() (models.SubscriptionJSON, error) {
	var out models.SubscriptionJSON
	raw := js.Global().Get("JSON").Call("stringify", s.v).String()
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode subscription: %w", err)
	}
	return out, nil
}

func (s subscription) Unsubscribe(ctx context.Context) error {
	ok, err := await(ctx, s.v.Call("unsubscribe"))
	if err != nil {
		return err
	}
	if ok.Type() == js.TypeBoolean && !ok.Bool() {
		return errUnsubscribeRefused
	}
	return nil
}
