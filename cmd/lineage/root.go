package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lineagehub/internal/api"
	"lineagehub/internal/cache"
	"lineagehub/internal/config"
	"lineagehub/internal/session"
	"lineagehub/internal/storage"
	"lineagehub/pkg/logger"
)

// app holds the wired client components for the lifetime of one command
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   *storage.Store
	session *session.Session
	cache   *cache.Cache
	client  *api.Client
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Family tree client for the LineageHub backend",
	Long: `lineage is a command line client for a LineageHub genealogy server:
authentication, member management, family relationships and tree views,
using the same REST contract as the web front-end.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		current, err = newApp()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			current.close()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newApp() (*app, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	store, err := storage.Open(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	sess, err := session.Restore(store)
	if err != nil {
		store.Close()
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		session: sess,
		cache:   cache.New(),
	}
	a.client = api.NewClient(cfg.APIBaseURL, sess,
		api.WithLogger(log),
		api.WithUnauthorizedHook(a.forceLogout),
	)
	return a, nil
}

// forceLogout clears all authenticated state after the server rejected the
// token. Fired by the gateway on any 401.
func (a *app) forceLogout() {
	a.log.Warn("session rejected by server, logging out")
	if err := a.session.ClearAuth(); err != nil {
		a.log.WithError(err).Error("failed to clear session")
	}
	a.cache.Clear()
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.WithError(err).Error("failed to close local store")
	}
}

// requireAuth fails fast when no valid session is present instead of letting
// the server bounce the request
func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return errors.New("not logged in (run 'lineage login')")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(membersCmd, relCmd, treeCmd, usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
