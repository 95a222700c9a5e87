package app

import (
	"github.com/adanyl0v/taskflow/internal/config"
	"github.com/adanyl0v/taskflow/internal/delivery/http/v1"
	"github.com/adanyl0v/taskflow/internal/effects"
	"github.com/adanyl0v/taskflow/internal/mail"
	"github.com/adanyl0v/taskflow/internal/services"
	"github.com/adanyl0v/taskflow/internal/storage"
)

var (
	globalStorage storage.Storage
	globalMailer  mail.Sender
)

func MustInitStorage() {
	dir := config.Global().StorageDir
	disk, err := storage.NewDisk(dir)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("dir", dir).
			Msg("failed to init attachment storage")
		panic(err)
	}
	globalStorage = disk
	globalLogger.Info().
		Str("dir", dir).
		Msg("initialized attachment storage")
}

func InitMailer() {
	cfg := config.Global().SMTP
	if cfg.Host == "" {
		globalMailer = mail.NewNopSender(globalLogger)
		globalLogger.Warn().Msg("smtp host is not set, emails are disabled")
		return
	}

	globalMailer = mail.NewSMTPSender(mail.SMTPConfig{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Username:    cfg.Username,
		Password:    cfg.Password,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		Timeout:     cfg.Timeout,
	})
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Dur("timeout", cfg.Timeout).
		Msg("initialized smtp mailer")
}

func newServices() v1.Services {
	cfg := config.Global()
	jwtCfg := cfg.JWT

	notifications := services.NewNotificationService(globalLogger, globalDB, globalMailer, cfg.AppURL)
	dispatcher := effects.NewDispatcher(globalLogger, globalDB, notifications)

	return v1.Services{
		Auth: services.NewAuthService(
			globalLogger,
			globalDB,
			jwtCfg.Issuer,
			[]byte(jwtCfg.SigningKey),
			jwtCfg.AccessTokenTTL,
			jwtCfg.RefreshTokenTTL,
		),
		Sessions:      services.NewSessionService(globalLogger, globalDB),
		Users:         services.NewUserService(globalLogger, globalDB),
		Projects:      services.NewProjectService(globalLogger, globalDB, globalStorage, dispatcher),
		Tasks:         services.NewTaskService(globalLogger, globalDB, globalStorage, dispatcher),
		Attachments:   services.NewAttachmentService(globalLogger, globalDB, globalStorage),
		Notifications: notifications,
		Activity:      services.NewActivityService(globalLogger, globalDB),
		Dashboard:     services.NewDashboardService(globalLogger, globalDB),
	}
}
