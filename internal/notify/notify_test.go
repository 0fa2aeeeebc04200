package notify

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type recordedCall struct {
	name string
	args []string
}

func newRecordingNotifier(fail bool) (*DBusNotifier, *[]recordedCall) {
	var calls []recordedCall
	n := NewDBusNotifier(time.Second, log.New(io.Discard))
	n.run = func(ctx context.Context, name string, args ...string) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("missing deadline")
		}
		calls = append(calls, recordedCall{name: name, args: args})
		if fail {
			return errors.New("no session bus")
		}
		return nil
	}
	return n, &calls
}

func TestDBusNotifier_Signals(t *testing.T) {
	n, calls := newRecordingNotifier(false)

	n.NotifyCacheStale()
	n.NotifyConfigReloaded()

	if len(*calls) != 2 {
		t.Fatalf("Expected 2 dbus-send calls, got %d", len(*calls))
	}

	tests := []struct {
		name   string
		call   recordedCall
		member string
	}{
		{name: "cache stale", call: (*calls)[0], member: "org.kde.Silver.Style.updateDecorationColorCache"},
		{name: "reload", call: (*calls)[1], member: "org.kde.KWin.reloadConfig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.call.name != "dbus-send" {
				t.Errorf("command = %q, want dbus-send", tt.call.name)
			}
			if !slices.Contains(tt.call.args, "--type=signal") {
				t.Errorf("args %v missing --type=signal", tt.call.args)
			}
			if tt.call.args[len(tt.call.args)-1] != tt.member {
				t.Errorf("member = %q, want %q", tt.call.args[len(tt.call.args)-1], tt.member)
			}
		})
	}
}

func TestDBusNotifier_FailureIsSwallowed(t *testing.T) {
	var buf strings.Builder
	n, calls := newRecordingNotifier(true)
	n.logger = log.New(&buf)

	n.NotifyCacheStale()
	n.NotifyConfigReloaded()

	if len(*calls) != 2 {
		t.Errorf("Expected both signals to be attempted, got %d", len(*calls))
	}
	if !strings.Contains(buf.String(), "compositor notification failed") {
		t.Errorf("Expected failure to be logged, got %q", buf.String())
	}
}

func TestNew(t *testing.T) {
	logger := log.New(io.Discard)

	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{name: "dbus", kind: KindDBus},
		{name: "none", kind: KindNone},
		{name: "unknown", kind: "carrier-pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.kind, time.Second, logger)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			}
			if !tt.wantErr && n == nil {
				t.Errorf("New(%q) returned nil notifier", tt.kind)
			}
		})
	}
}

func TestNopNotifier(t *testing.T) {
	n, _ := New(KindNone, time.Second, log.New(io.Discard))

	// must not panic or block
	n.NotifyCacheStale()
	n.NotifyConfigReloaded()
}
