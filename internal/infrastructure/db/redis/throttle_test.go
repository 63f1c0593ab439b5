package redis

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestLoginThrottle_Key(t *testing.T) {
	th := NewLoginThrottle(nil, 3, time.Minute)

	if got := th.key("ana@example.com"); got != "login_fail:ana@example.com" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestNewLoginThrottle_Defaults(t *testing.T) {
	th := NewLoginThrottle(redis.NewClient(&redis.Options{}), 0, 0)

	if th.maxAttempts != defaultMaxAttempts {
		t.Errorf("expected %d attempts, got %d", defaultMaxAttempts, th.maxAttempts)
	}
	if th.window != defaultWindow {
		t.Errorf("expected %v window, got %v", defaultWindow, th.window)
	}
}

func TestNewLoginThrottle_Custom(t *testing.T) {
	th := NewLoginThrottle(nil, 10, time.Hour)

	if th.maxAttempts != 10 || th.window != time.Hour {
		t.Errorf("unexpected settings: %d %v", th.maxAttempts, th.window)
	}
}
