// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     app
// Description: Component wiring shared by all client variants
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/msto63/ninjachat/internal/assistant"
	"github.com/msto63/ninjachat/internal/assistant/audio"
	"github.com/msto63/ninjachat/internal/assistant/client"
	"github.com/msto63/ninjachat/internal/assistant/tts"
	"github.com/msto63/ninjachat/internal/credential"
	"github.com/msto63/ninjachat/internal/journal"
	"github.com/msto63/ninjachat/internal/session"
	"github.com/msto63/ninjachat/internal/settings"
	"github.com/msto63/ninjachat/pkg/core/config"
	"github.com/msto63/ninjachat/pkg/core/health"
	"github.com/msto63/ninjachat/pkg/core/logging"
	"github.com/msto63/ninjachat/pkg/core/version"
)

// App holds the long lived components of one client run
type App struct {
	config    *config.Config
	logger    *logging.Logger
	settings  *settings.Store
	resolver  *credential.Resolver
	artifacts *audio.ArtifactStore
	journal   *journal.Store
	player    audio.Player
}

// Services are the hosted clients built from one API key
type Services struct {
	Chat   *client.OpenAIClient
	Speech *tts.OpenAISpeech
}

// New wires the components. The audio directory must be creatable; the
// journal is optional and only logged when it cannot be opened.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:    cfg,
		logger:    logging.New("app"),
		settings:  settings.NewStore(cfg.Resolve(cfg.Storage.SettingsFile)),
		artifacts: audio.NewArtifactStore(cfg.Resolve(cfg.Audio.Dir), cfg.Audio.FileBase),
	}

	if err := a.artifacts.EnsureDir(); err != nil {
		return nil, err
	}
	a.logger.Info("Audio output directory ready", "dir", a.artifacts.Dir())

	store, err := credential.NewStore(credential.Options{
		Backend:        cfg.Credential.Backend,
		DotFile:        cfg.Resolve(cfg.Credential.DotFile),
		KeyringService: cfg.Credential.KeyringService,
		KeyringUser:    cfg.Credential.KeyringUser,
	})
	if err != nil {
		return nil, err
	}
	a.resolver = &credential.Resolver{
		Explicit: cfg.OpenAI.APIKey,
		DotFile:  cfg.Resolve(cfg.Credential.DotFile),
		Store:    store,
	}

	return a, nil
}

// Config returns the loaded configuration
func (a *App) Config() *config.Config { return a.config }

// Settings returns the settings store
func (a *App) Settings() *settings.Store { return a.settings }

// Resolver returns the credential resolver
func (a *App) Resolver() *credential.Resolver { return a.resolver }

// Artifacts returns the speech artifact store
func (a *App) Artifacts() *audio.ArtifactStore { return a.artifacts }

// OpenJournal opens the turn journal if enabled. A nil store with a nil
// error means the journal is switched off.
func (a *App) OpenJournal() (*journal.Store, error) {
	if a.journal != nil || !a.config.JournalEnabled() {
		return a.journal, nil
	}
	store, err := journal.Open(journal.Config{Path: a.config.Resolve(a.config.Storage.Journal)})
	if err != nil {
		return nil, err
	}
	a.journal = store
	return store, nil
}

// Player creates the playback backend once
func (a *App) Player() (audio.Player, error) {
	if a.player != nil {
		return a.player, nil
	}
	player, err := audio.NewPlayer(audio.Options{
		Backend:      a.config.Audio.Backend,
		Command:      a.config.Audio.Command,
		BufferFrames: a.config.Audio.BufferFrames,
	})
	if err != nil {
		return nil, err
	}
	a.player = player
	return player, nil
}

// Connect builds the hosted clients for key
func (a *App) Connect(key string) (*Services, error) {
	api, err := client.NewAPI(client.Config{
		APIKey:       key,
		BaseURL:      a.config.OpenAI.BaseURL,
		Organization: a.config.OpenAI.Organization,
	})
	if err != nil {
		return nil, err
	}
	return &Services{
		Chat: client.NewOpenAIClient(api, a.config.OpenAI.ChatModel),
		Speech: tts.NewOpenAISpeech(api, tts.Config{
			Model:  a.config.OpenAI.SpeechModel,
			Voice:  a.config.Assistant.ConsoleVoice,
			Format: a.config.OpenAI.SpeechFormat,
		}),
	}, nil
}

// Resolve connects with the current credential. Services is nil when no
// key is configured.
func (a *App) Resolve() (*Services, credential.Source, error) {
	key, source := a.resolver.Resolve()
	if key == "" {
		return nil, source, nil
	}
	services, err := a.Connect(key)
	if err != nil {
		return nil, source, err
	}
	return services, source, nil
}

// Labels returns the transcript labels from the configuration
func (a *App) Labels() session.Labels {
	return session.Labels{
		User:      a.config.Assistant.UserLabel,
		Assistant: a.config.Assistant.Name,
		Error:     a.config.Assistant.ErrorLabel,
	}
}

// Controller builds the controller for a variant. The pipeline is left
// unconfigured when no API key is available yet.
func (a *App) Controller(ctx context.Context, features assistant.Features) (*assistant.Controller, error) {
	services, source, err := a.Resolve()
	if err != nil {
		return nil, err
	}
	a.logger.Info("Credential resolved", "source", source)

	player, err := a.Player()
	if err != nil {
		return nil, err
	}

	pipelineCfg := assistant.PipelineConfig{Artifacts: a.artifacts}
	if services != nil {
		pipelineCfg.Chat = services.Chat
		pipelineCfg.Speech = services.Speech
	}

	store, err := a.OpenJournal()
	if err != nil {
		a.logger.Warn("Turn journal unavailable", "error", err)
	} else if store != nil {
		conv, err := store.StartConversation(ctx, string(features.Variant), a.config.OpenAI.ChatModel, map[string]string{
			"version": version.App,
			"os":      runtime.GOOS,
		})
		if err != nil {
			a.logger.Warn("Failed to start journal conversation", "error", err)
		} else {
			pipelineCfg.Recorder = store
			pipelineCfg.ConversationID = conv.ID
		}
	}

	ctrlCfg := assistant.ControllerConfig{
		Features:     features,
		Settings:     a.settings.Load(),
		Store:        a.settings,
		Conversation: session.New(a.Labels()),
		Pipeline:     assistant.NewPipeline(pipelineCfg),
		Player:       player,
		Voice:        a.config.Assistant.ConsoleVoice,
	}
	if features.Variant == assistant.VariantConsole {
		ctrlCfg.BasePrompt = a.config.Assistant.ConsolePrompt
	}

	controller := assistant.NewController(ctrlCfg)
	controller.StateMachine().AddListener(func(from, to assistant.State) {
		a.logger.Debug("State changed", "from", from.String(), "to", to.String())
	})
	return controller, nil
}

// Diagnostics registers the checks run by the doctor command
func (a *App) Diagnostics() *health.Registry {
	registry := health.NewRegistry(a.config.General.Name, version.App)

	registry.RegisterFunc("credential", func(ctx context.Context) health.CheckResult {
		key, source := a.resolver.Resolve()
		if key == "" {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: "no API key; set " + credential.EnvKey + " or run \"ninjachat apikey set\""}
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: fmt.Sprintf("%s from %s", credential.Mask(key), source)}
	})

	registry.RegisterFunc("chat service", func(ctx context.Context) health.CheckResult {
		services, _, err := a.Resolve()
		if err != nil {
			return health.Result("chat service", err, "")
		}
		if services == nil {
			return health.CheckResult{Status: health.StatusDegraded, Message: "skipped, no API key"}
		}
		return health.Result("chat service", services.Chat.HealthCheck(ctx), services.Chat.Model()+" reachable")
	})

	registry.Register(health.DirWritable("audio output", a.artifacts.Dir()))
	registry.Register(health.FileReadable("settings", a.settings.Path()))

	registry.RegisterFunc("playback", func(ctx context.Context) health.CheckResult {
		_, err := a.Player()
		backend := a.config.Audio.Backend
		if backend == "" {
			backend = "default"
		}
		return health.Result("playback", err, backend+" backend")
	})

	registry.RegisterFunc("journal", func(ctx context.Context) health.CheckResult {
		store, err := a.OpenJournal()
		if err != nil {
			return health.Result("journal", err, "")
		}
		if store == nil {
			return health.CheckResult{Status: health.StatusHealthy, Message: "disabled"}
		}
		stats, err := store.Statistics(ctx)
		if err != nil {
			return health.Result("journal", err, "")
		}
		return health.Result("journal", nil, fmt.Sprintf("%v turns recorded", stats["total_turns"]))
	})

	return registry
}

// Close releases the journal and stops playback
func (a *App) Close() error {
	var firstErr error
	if a.player != nil {
		if err := a.player.Stop(); err != nil {
			firstErr = err
		}
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close journal: %w", err)
		}
	}
	return firstErr
}
