// Package notify tells a running compositor that decoration settings changed.
//
// Signals are sent on the session bus with dbus-send. Delivery is best effort:
// failures are logged and never returned.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"silver-settings/internal/interfaces"
)

// Notifier kinds accepted by New
const (
	KindDBus = "dbus"
	KindNone = "none"
)

// signal is one session bus signal: object path and interface.member
type signal struct {
	path   string
	member string
}

var (
	cacheStaleSignal   = signal{path: "/SilverDecoration", member: "org.kde.Silver.Style.updateDecorationColorCache"}
	reloadConfigSignal = signal{path: "/KWin", member: "org.kde.KWin.reloadConfig"}
)

type runFunc func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", name, err, out)
	}
	return nil
}

// DBusNotifier emits compositor signals through dbus-send
type DBusNotifier struct {
	timeout time.Duration
	logger  *log.Logger
	run     runFunc
}

// NewDBusNotifier creates a notifier whose signals each give up after timeout
func NewDBusNotifier(timeout time.Duration, logger *log.Logger) *DBusNotifier {
	return &DBusNotifier{
		timeout: timeout,
		logger:  logger,
		run:     runCommand,
	}
}

// NotifyCacheStale signals that the decoration color cache must be rebuilt
func (n *DBusNotifier) NotifyCacheStale() {
	n.emit(cacheStaleSignal)
}

// NotifyConfigReloaded asks the compositor to reload its configuration
func (n *DBusNotifier) NotifyConfigReloaded() {
	n.emit(reloadConfigSignal)
}

func (n *DBusNotifier) emit(s signal) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	err := n.run(ctx, "dbus-send", "--session", "--type=signal", s.path, s.member)
	if err != nil {
		n.logger.Warn("compositor notification failed", "signal", s.member, "error", err)
		return
	}
	n.logger.Debug("compositor notified", "signal", s.member)
}

// NopNotifier drops every notification
type NopNotifier struct {
	logger *log.Logger
}

func (n *NopNotifier) NotifyCacheStale() {
	n.logger.Debug("notifier disabled, skipping cache refresh signal")
}

func (n *NopNotifier) NotifyConfigReloaded() {
	n.logger.Debug("notifier disabled, skipping reload signal")
}

// New returns the notifier for kind
func New(kind string, timeout time.Duration, logger *log.Logger) (interfaces.Notifier, error) {
	switch kind {
	case KindDBus:
		return NewDBusNotifier(timeout, logger), nil
	case KindNone:
		return &NopNotifier{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown notifier %q (must be %q or %q)", kind, KindDBus, KindNone)
	}
}
