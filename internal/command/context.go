package command

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hansol-io/banter/internal/api"
	"github.com/hansol-io/banter/internal/auth"
	"github.com/hansol-io/banter/internal/config"
)

// Context is the per-invocation runtime shared by commands: settings,
// stored credentials and the file logger.
type Context struct {
	Config   config.Config
	Session  *auth.Session
	JSONMode bool
	Logger   zerolog.Logger

	logFile io.Closer
}

// GetContext loads config and credentials for a command invocation.
func GetContext(cmd *cobra.Command) (*Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	session, err := auth.Load(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}
	jsonMode, _ := cmd.Flags().GetBool("json")

	logger := zerolog.Nop()
	var logFile io.Closer
	if cfg.LogFile != "" {
		if file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			logger = zerolog.New(file).With().Timestamp().Logger()
			logFile = file
		}
	}

	return &Context{
		Config:   cfg,
		Session:  session,
		JSONMode: jsonMode,
		Logger:   logger,
		logFile:  logFile,
	}, nil
}

// Close releases the context's resources.
func (ctx *Context) Close() {
	if ctx.logFile != nil {
		_ = ctx.logFile.Close()
	}
}

// APIClient builds a client from the stored session.
func (ctx *Context) APIClient() (*api.Client, error) {
	if ctx.Session == nil || ctx.Session.Token == "" {
		return nil, fmt.Errorf("not logged in; run: %s login <server-url> --token <token>", AppName)
	}
	client, err := api.NewClient(ctx.Session.ServerURL, ctx.Session.Token)
	if err != nil {
		return nil, err
	}
	client.SetDeviceID(ctx.Session.DeviceID)
	return client, nil
}
