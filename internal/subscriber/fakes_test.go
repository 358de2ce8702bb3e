package subscriber

import (
	"context"
	"errors"
	"sync"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/models"
)

var errRejected = errors.New("rejected by platform")

type fakeSubscription struct {
	owner          *fakePushManager
	payload        models.SubscriptionJSON
	unsubscribeErr error
	unsubscribed   int
}

func (s *fakeSubscription) JSON() (models.SubscriptionJSON, error) {
	return s.payload, nil
}

func (s *fakeSubscription) Unsubscribe(ctx context.Context) error {
	s.unsubscribed++
	if s.unsubscribeErr != nil {
		return s.unsubscribeErr
	}
	if s.owner != nil && s.owner.current == s {
		s.owner.current = nil
	}
	return nil
}

type fakePushManager struct {
	current        *fakeSubscription
	getErr         error
	subscribeErr   error
	subscribeCalls int
	lastOptions    SubscribeOptions
}

func (m *fakePushManager) GetSubscription(ctx context.Context) (Subscription, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.current == nil {
		return nil, nil
	}
	return m.current, nil
}

func (m *fakePushManager) Subscribe(ctx context.Context, opts SubscribeOptions) (Subscription, error) {
	m.subscribeCalls++
	m.lastOptions = opts
	if m.subscribeErr != nil {
		return nil, m.subscribeErr
	}
	m.current = newFakeSubscription(m)
	return m.current, nil
}

func newFakeSubscription(owner *fakePushManager) *fakeSubscription {
	return &fakeSubscription{
		owner: owner,
		payload: models.SubscriptionJSON{
			Endpoint: "https://push.example.com/send/abc123",
			Keys: map[string]string{
				models.KeyP256dh: "BNcRdreALRFXTkOOUHK1EtK2wtaz5Ry4YfYCA_0QTpQtUbVlUls0VJXg7A8u-Ts1XbjhazAkj7I99e8QcYP7DkM",
				models.KeyAuth:   "tBHItJI5svbpez7KI4CCXg",
			},
		},
	}
}

type fakeRegistration struct {
	notifications bool
	pm            *fakePushManager
}

func (r *fakeRegistration) SupportsNotifications() bool { return r.notifications }

func (r *fakeRegistration) PushManager() PushManager {
	if r.pm == nil {
		return nil
	}
	return r.pm
}

func newReadyRegistration() *fakeRegistration {
	return &fakeRegistration{notifications: true, pm: &fakePushManager{}}
}

type fakePlatform struct {
	workerSupported bool
	permission      Permission
	pushSupported   bool
	userAgent       string

	reg           *fakeRegistration
	registerErr   error
	registerCalls int
	lastScript    string
	readyErr      error
}

func newFakePlatform(reg *fakeRegistration) *fakePlatform {
	return &fakePlatform{
		workerSupported: true,
		permission:      PermissionDefault,
		pushSupported:   true,
		userAgent:       "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
		reg:             reg,
	}
}

func (p *fakePlatform) WorkerSupported() bool { return p.workerSupported }

func (p *fakePlatform) Register(ctx context.Context, scriptURL string) (Registration, error) {
	p.registerCalls++
	p.lastScript = scriptURL
	if p.registerErr != nil {
		return nil, p.registerErr
	}
	return p.reg, nil
}

func (p *fakePlatform) Ready(ctx context.Context) (Registration, error) {
	if p.readyErr != nil {
		return nil, p.readyErr
	}
	return p.reg, nil
}

func (p *fakePlatform) Permission() Permission { return p.permission }
func (p *fakePlatform) PushSupported() bool    { return p.pushSupported }
func (p *fakePlatform) UserAgent() string      { return p.userAgent }

type recordingView struct {
	mu     sync.Mutex
	states []UIState
}

func (v *recordingView) Render(state UIState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, state)
}

func (v *recordingView) history() []UIState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]UIState(nil), v.states...)
}

type fakeSync struct {
	mu       sync.Mutex
	status   int
	err      error
	requests []models.SyncRequest

	// started and gate let a test hold a request in flight.
	started chan struct{}
	gate    chan struct{}
}

func (s *fakeSync) Post(ctx context.Context, req models.SyncRequest) (int, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	return s.status, s.err
}

func (s *fakeSync) sent() []models.SyncRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SyncRequest(nil), s.requests...)
}
