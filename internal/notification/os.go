//go:build linux || darwin || windows

package notification

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// osChannel delivers notifications through the platform's native
// notification command.
type osChannel struct {
	executor CommandExecutor
	platform string
}

// newOSChannel creates a desktop notification channel.
func newOSChannel(opts ...Option) Channel {
	ch := &osChannel{platform: runtime.GOOS}

	for _, opt := range opts {
		opt(ch)
	}

	if ch.executor == nil {
		ch.executor = &realCommandExecutor{}
	}

	return ch
}

// Send delivers the notification via the OS notification system.
func (c *osChannel) Send(n Notification) error {
	switch c.platform {
	case "linux":
		return c.executor.Execute("notify-send", n.Title, n.Message)
	case "darwin":
		return c.sendDarwin(n)
	case "windows":
		return c.sendWindows(n)
	default:
		return fmt.Errorf("unsupported platform: %s", c.platform)
	}
}

// escapeAppleScript escapes a string for AppleScript double-quoted strings
// to prevent command injection.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func (c *osChannel) sendDarwin(n Notification) error {
	msg := escapeAppleScript(n.Message)
	title := escapeAppleScript(n.Title)
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, msg, title)
	return c.executor.Execute("osascript", "-e", script)
}

// escapePowerShell escapes a string for PowerShell double-quoted strings.
// Backtick is PowerShell's escape character; $ starts a subexpression.
func escapePowerShell(s string) string {
	s = strings.ReplaceAll(s, "`", "``")
	s = strings.ReplaceAll(s, `"`, "`\"")
	s = strings.ReplaceAll(s, "$", "`$")
	return s
}

func (c *osChannel) sendWindows(n Notification) error {
	title := escapePowerShell(n.Title)
	msg := escapePowerShell(n.Message)
	script := fmt.Sprintf(`
Add-Type -AssemblyName System.Windows.Forms
$notification = New-Object System.Windows.Forms.NotifyIcon
$notification.Icon = [System.Drawing.SystemIcons]::Information
$notification.BalloonTipTitle = "%s"
$notification.BalloonTipText = "%s"
$notification.Visible = $true
$notification.ShowBalloonTip(5000)
`, title, msg)
	return c.executor.Execute("powershell", "-Command", script)
}

// Close cleans up resources.
func (c *osChannel) Close() error {
	return nil
}

// realCommandExecutor executes real system commands.
type realCommandExecutor struct{}

// Execute runs a command.
func (e *realCommandExecutor) Execute(cmd string, args ...string) error {
	return exec.Command(cmd, args...).Run()
}
