package subscriber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeCapabilityProducesExactlyOneResult(t *testing.T) {
	permissions := []Permission{PermissionGranted, PermissionDenied, PermissionDefault}
	for _, notifications := range []bool{true, false} {
		for _, perm := range permissions {
			for _, push := range []bool{true, false} {
				reg := &fakeRegistration{notifications: notifications}
				platform := newFakePlatform(reg)
				platform.permission = perm
				platform.pushSupported = push

				got := probeCapability(reg, platform)

				var want CapabilityResult
				switch {
				case !notifications:
					want = NotificationsUnsupported
				case perm == PermissionDenied:
					want = CapabilityPermissionDenied
				case !push:
					want = PushUnsupported
				default:
					want = Ready
				}
				assert.Equal(t, want, got, "notifications=%v permission=%s push=%v", notifications, perm, push)

				_, hasEffect := capabilityEffects[got]
				assert.Equal(t, got != Ready, hasEffect)
			}
		}
	}
}

func TestProbeCapabilityNilRegistration(t *testing.T) {
	assert.Equal(t, NotificationsUnsupported, probeCapability(nil, newFakePlatform(nil)))
}

func TestCapabilityResultString(t *testing.T) {
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "permission_denied", CapabilityPermissionDenied.String())
	assert.Equal(t, "unknown", CapabilityResult(42).String())
}
