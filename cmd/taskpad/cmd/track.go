package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskpad/internal/config"
	"taskpad/internal/credentials"
	"taskpad/internal/notification"
	"taskpad/internal/shutdown"
	"taskpad/internal/tracker"
	"taskpad/internal/utils"
)

// shutdownGrace bounds how long cleanups may run after a stop signal.
const shutdownGrace = 10 * time.Second

func newTrackCmd(a *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Run the due-task notification loop in the foreground",
		Long:  "track polls for due tasks on a fixed interval and raises desktop, log, and email\nnotifications, deduped hourly per task. Stop it with Ctrl-C.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}
			cfg := a.cfg

			mgr := notification.NewManager(&notification.Config{
				Enabled:        cfg.Notifications.Enabled,
				OSNotification: notification.OSConfig{Enabled: cfg.Notifications.OSNotification},
				LogNotification: notification.LogConfig{
					Enabled:   cfg.Notifications.LogNotification,
					Path:      config.ExpandPath(cfg.Notifications.LogPath),
					MaxSizeMB: cfg.Notifications.LogMaxSizeMB,
				},
			})

			var schedOpts []notification.SchedulerOption
			if cfg.Notifications.Email.Host != "" {
				mailer := notification.NewSMTPMailer(notification.EmailConfig{
					Host:     cfg.Notifications.Email.Host,
					Port:     cfg.Notifications.Email.Port,
					Username: cfg.Notifications.Email.Username,
					From:     cfg.Notifications.Email.From,
				}, credentials.NewManager())
				schedOpts = append(schedOpts, notification.WithMailer(mailer))
			}
			sched := notification.NewScheduler(mgr, s, s, schedOpts...)

			bgLog, err := utils.NewBackgroundLogger(cfg.IsBackgroundLoggingEnabled())
			if err != nil {
				utils.Warnf("background log unavailable: %v", err)
			}

			if interval == 0 {
				interval = cfg.GetPollInterval()
			}
			tr := tracker.New(s, sched, userID, interval, bgLog)

			mgrShutdown := shutdown.NewManager()
			mgrShutdown.RegisterCleanup("notification-manager", func(ctx context.Context) error {
				return mgr.Close()
			})
			mgrShutdown.RegisterCleanup("background-log", func(ctx context.Context) error {
				bgLog.Close()
				return nil
			})
			mgrShutdown.HandleSignals()

			_, _ = fmt.Fprintf(a.stdout, "Tracking due tasks every %v (Ctrl-C to stop)\n", interval)
			_ = tr.Run(mgrShutdown.Context())

			cleanupCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return mgrShutdown.Wait(cleanupCtx)
		},
	}
	addUserFlag(cmd)
	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval (default from config)")
	return cmd
}
