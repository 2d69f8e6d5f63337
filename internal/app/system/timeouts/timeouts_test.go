package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	if Ping() != DefaultPing || Short() != DefaultShort || Medium() != DefaultMedium || Long() != DefaultLong {
		t.Errorf("defaults: ping=%v short=%v medium=%v long=%v", Ping(), Short(), Medium(), Long())
	}
}

func TestConfigure_ZeroValuesKeepCurrent(t *testing.T) {
	Reset()
	defer Reset()

	Configure(Config{Medium: 42 * time.Second})

	if Medium() != 42*time.Second {
		t.Errorf("Medium: got %v, want 42s", Medium())
	}
	if Short() != DefaultShort || Long() != DefaultLong {
		t.Errorf("zero-value fields must keep defaults: short=%v long=%v", Short(), Long())
	}

	Reset()
	if Medium() != DefaultMedium {
		t.Errorf("Reset did not restore Medium: %v", Medium())
	}
}
