package subscriber

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/models"
)

var (
	errNoRegistration = errors.New("no worker registration")
	errNoPushManager  = errors.New("registration exposes no push manager")
)

// Options configures a Controller.
type Options struct {
	WorkerScriptURL      string
	Group                string
	ApplicationServerKey string
	// StartDisabled mirrors a button the page rendered as disabled.
	StartDisabled bool
	// InitialButtonText is the caption the page rendered. It is kept until
	// the first label change.
	InitialButtonText string
}

// Controller reconciles the platform push subscription with the toggle
// button, the message area and the remote endpoint.
//
// UI operations never return errors: capability, permission and consistency
// problems end up in the message area, transport and platform failures are
// logged and leave the button disabled.
type Controller struct {
	platform Platform
	view     View
	sync     RemoteSync
	catalog  *Catalog
	logger   *slog.Logger
	opts     Options

	mu           sync.Mutex
	ui           UIState
	pushEnabled  bool
	registration Registration
}

func NewController(platform Platform, view View, remote RemoteSync, catalog *Catalog, logger *slog.Logger, opts Options) *Controller {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		platform: platform,
		view:     view,
		sync:     remote,
		catalog:  catalog,
		logger:   logger,
		opts:     opts,
	}
	c.ui.Enabled = !opts.StartDisabled
	c.setLabel(&c.ui, LabelSubscribe)
	if opts.InitialButtonText != "" {
		c.ui.ButtonText = opts.InitialButtonText
	}
	return c
}

// State returns a snapshot of the UI state.
func (c *Controller) State() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ui
}

// PushEnabled reports whether a subscription exists and the endpoint
// acknowledged it.
func (c *Controller) PushEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pushEnabled
}

// Start waits for a worker to control the page and then initializes. It
// blocks until the platform reports ready or ctx ends.
func (c *Controller) Start(ctx context.Context) {
	if !c.platform.WorkerSupported() {
		c.logger.Warn("background worker not supported, skipping initial probe")
		return
	}
	reg, err := c.platform.Ready(ctx)
	if err != nil {
		c.logger.Error("worker never became ready", slog.Any("error", err))
		return
	}
	c.Initialize(ctx, reg)
}

// Initialize probes capability against reg and, when ready, adopts an
// existing subscription without contacting the endpoint.
func (c *Controller) Initialize(ctx context.Context, reg Registration) CapabilityResult {
	result := c.probe(reg)
	if result != Ready {
		return result
	}

	pm := reg.PushManager()
	if pm == nil {
		c.logger.Error("initial subscription lookup failed", slog.Any("error", errNoPushManager))
		return result
	}
	sub, err := pm.GetSubscription(ctx)
	if err != nil {
		c.logger.Error("initial subscription lookup failed", slog.Any("error", err))
		return result
	}
	if sub == nil {
		return result
	}

	c.update(func(ui *UIState) {
		c.registration = reg
		c.pushEnabled = true
		c.setLabel(ui, LabelUnsubscribe)
		ui.Enabled = true
	})
	c.logger.Debug("existing push subscription found")
	return result
}

// OnToggleClicked handles a click on the toggle button. Clicks arriving while
// the button is disabled are ignored.
func (c *Controller) OnToggleClicked(ctx context.Context) {
	c.mu.Lock()
	if !c.ui.Enabled {
		c.mu.Unlock()
		return
	}
	c.ui.Enabled = false
	c.view.Render(c.ui)
	enabled := c.pushEnabled
	c.mu.Unlock()

	if enabled {
		c.unsubscribe(ctx)
		return
	}

	if !c.platform.WorkerSupported() {
		c.update(func(ui *UIState) {
			c.showMessage(ui, MsgWorkerNotSupported)
		})
		return
	}

	reg, err := c.platform.Register(ctx, c.opts.WorkerScriptURL)
	if err != nil {
		c.logger.Error("worker registration failed",
			slog.String("script", c.opts.WorkerScriptURL),
			slog.Any("error", err))
		return
	}
	c.update(func(ui *UIState) {
		c.registration = reg
		c.setLabel(ui, LabelLoading)
	})

	if c.probe(reg) != Ready {
		return
	}
	c.subscribe(ctx, reg)
}

func (c *Controller) probe(reg Registration) CapabilityResult {
	result := probeCapability(reg, c.platform)
	effect, ok := capabilityEffects[result]
	if !ok {
		return result
	}
	c.update(func(ui *UIState) {
		c.showMessage(ui, effect.message)
		if effect.resetButton {
			c.setLabel(ui, LabelSubscribe)
			ui.Enabled = true
		}
	})
	c.logger.Info("push capability unavailable", slog.String("result", result.String()))
	return result
}

func (c *Controller) subscribe(ctx context.Context, reg Registration) {
	sub, err := c.getOrCreateSubscription(ctx, reg)
	if err != nil {
		c.logger.Error("subscription error", slog.Any("error", err))
		return
	}
	c.post(ctx, models.StatusSubscribe, sub)
}

func (c *Controller) unsubscribe(ctx context.Context) {
	var sub Subscription
	if reg := c.currentRegistration(); reg != nil {
		pm := reg.PushManager()
		if pm == nil {
			c.logger.Error("subscription lookup failed", slog.Any("error", errNoPushManager))
			return
		}
		var err error
		sub, err = pm.GetSubscription(ctx)
		if err != nil {
			c.logger.Error("subscription lookup failed", slog.Any("error", err))
			return
		}
	}

	if sub == nil {
		c.update(func(ui *UIState) {
			c.pushEnabled = false
			c.setLabel(ui, LabelSubscribe)
			ui.Enabled = true
			c.showMessage(ui, MsgNoSubscription)
		})
		c.logger.Warn("unsubscribe requested without an active subscription")
		return
	}
	c.post(ctx, models.StatusUnsubscribe, sub)
}

func (c *Controller) getOrCreateSubscription(ctx context.Context, reg Registration) (Subscription, error) {
	if reg == nil {
		return nil, errNoRegistration
	}
	pm := reg.PushManager()
	if pm == nil {
		return nil, errNoPushManager
	}
	sub, err := pm.GetSubscription(ctx)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return sub, nil
	}
	return pm.Subscribe(ctx, SubscribeOptions{
		UserVisibleOnly:      true,
		ApplicationServerKey: c.opts.ApplicationServerKey,
	})
}

func (c *Controller) post(ctx context.Context, statusType models.StatusType, sub Subscription) {
	payload, err := sub.JSON()
	if err != nil {
		c.logger.Error("failed to serialise subscription", slog.Any("error", err))
		return
	}
	req := models.SyncRequest{
		StatusType:   statusType,
		Subscription: payload,
		Browser:      BrowserFamily(c.platform.UserAgent()),
		Group:        c.opts.Group,
	}

	status, err := c.sync.Post(ctx, req)
	if err != nil {
		c.logger.Error("remote sync failed",
			slog.String("status_type", string(statusType)),
			slog.Any("error", err))
		return
	}

	switch {
	case status == http.StatusCreated && statusType == models.StatusSubscribe:
		c.update(func(ui *UIState) {
			c.pushEnabled = true
			c.setLabel(ui, LabelUnsubscribe)
			ui.Enabled = true
			c.showMessage(ui, MsgSubscribeOK)
		})
	case status == http.StatusAccepted && statusType == models.StatusUnsubscribe:
		c.release(ctx)
	default:
		c.logger.Warn("remote sync returned unexpected status",
			slog.String("status_type", string(statusType)),
			slog.Int("status", status))
	}
}

// release drops the platform-side subscription once the endpoint has deleted
// its copy. On failure PushEnabled stays true even though the endpoint no
// longer knows the subscription.
func (c *Controller) release(ctx context.Context) {
	sub, err := c.getOrCreateSubscription(ctx, c.currentRegistration())
	if err == nil {
		err = sub.Unsubscribe(ctx)
	}
	if err != nil {
		c.logger.Error("local unsubscribe failed", slog.Any("error", err))
		c.update(func(ui *UIState) {
			c.setLabel(ui, LabelUnsubscribe)
			ui.Enabled = true
			c.showMessage(ui, MsgUnsubscribeError)
		})
		return
	}

	c.update(func(ui *UIState) {
		c.pushEnabled = false
		c.setLabel(ui, LabelSubscribe)
		ui.Enabled = true
		c.showMessage(ui, MsgUnsubscribeOK)
	})
}

func (c *Controller) currentRegistration() Registration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registration
}

// update mutates the UI state under the lock and renders the result.
func (c *Controller) update(fn func(ui *UIState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.ui)
	c.view.Render(c.ui)
}

func (c *Controller) setLabel(ui *UIState, label Label) {
	ui.Label = label
	ui.ButtonText = c.catalog.Get(label.messageKey())
}

func (c *Controller) showMessage(ui *UIState, key MessageKey) {
	ui.Message = c.catalog.Get(key)
	ui.MessageVisible = true
}
