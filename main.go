package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voltraggio/internal/adapters/file"
	"voltraggio/internal/adapters/handler"
	"voltraggio/internal/adapters/lifecycle"
	"voltraggio/internal/adapters/sender"
	"voltraggio/internal/adapters/settings"
	"voltraggio/internal/core/domain"
	"voltraggio/internal/core/domain/command"
	"voltraggio/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	exitCode  int
	logCloser io.Closer = io.NopCloser(nil)
)

func main() {
	root := newRootCmd(viper.GetViper())
	err := root.Execute()
	_ = logCloser.Close()
	if err != nil {
		os.Exit(1)
	}

	os.Exit(exitCode)
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	serve := newServeCmd(v)

	cmd := &cobra.Command{
		Use:           "voltraggio",
		Short:         "Telegram bot that corrects people who say the wrong thing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := initConfig(v); err != nil {
				return err
			}

			closer, err := setupLogging(v.GetString("bot.log_level"), v.GetString("bot.log_file"))
			if err != nil {
				return err
			}
			logCloser = closer

			return nil
		},
		RunE: serve.RunE,
	}

	cmd.PersistentFlags().String("config", "", "Config file path (optional).")
	cmd.PersistentFlags().String("settings", "", "Settings JSON file path.")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error.")
	_ = v.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("bot.settings_path", cmd.PersistentFlags().Lookup("settings"))
	_ = v.BindPFlag("bot.log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(serve)
	cmd.AddCommand(newSuperviseCmd(v))

	return cmd
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot until /stop, /reset or an interrupt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := serve(cmd.Context(), v)
			if err != nil {
				log.Err(err).Msg("bot failed")
				return err
			}
			exitCode = code
			return nil
		},
	}
}

func newSuperviseCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "supervise",
		Short: "Run the bot as a child process and relaunch it on /reset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			executable, err := os.Executable()
			if err != nil {
				return fmt.Errorf("could not locate executable: %w", err)
			}

			supervisor := lifecycle.NewSupervisor(
				lifecycle.ExecRunner(executable, childArgs(cmd)),
				durationOrDefault(v, "supervisor.restart_delay", time.Second),
				v.GetInt("supervisor.max_restarts"),
			)

			code, err := supervisor.Run(ctx)
			if err != nil {
				log.Err(err).Msg("supervisor stopped")
				return err
			}
			exitCode = code
			return nil
		},
	}
}

// childArgs forwards the flags given to supervise to the serve child.
func childArgs(cmd *cobra.Command) []string {
	args := []string{"serve"}
	for _, name := range []string{"config", "settings", "log-level"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetString(name)
		args = append(args, "--"+name+"="+value)
	}
	return args
}

func serve(parent context.Context, v *viper.Viper) (int, error) {
	log.Info().Msg("starting voltraggio...")

	store, err := settings.Load(v.GetString("bot.settings_path"))
	if err != nil {
		return 1, err
	}

	token := v.GetString("telegram.bot_token")
	if token == "" {
		token = store.Token()
	}
	if token == "" {
		return 1, fmt.Errorf("no bot token in config or %s", store.Path())
	}

	ctx, cancel := signal.NotifyContext(contextOrBackground(parent), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	controller := lifecycle.NewController(cancel)
	handlerTimeout := durationOrDefault(v, "handler.timeout", 30*time.Second)

	// the bot client and the handlers depend on each other, so the default
	// handler is resolved once both exist
	var textHandler *handler.Text
	var notifier *service.Notifier

	opts := []bot.Option{
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			textHandler.Handle(ctx, b, update)
		}),
		bot.WithErrorsHandler(func(err error) {
			log.Err(err).Msg("telegram polling error")
		}),
		bot.WithMiddlewares(func(next bot.HandlerFunc) bot.HandlerFunc {
			return func(ctx context.Context, b *bot.Bot, update *models.Update) {
				handler.Recover(notifier)(next)(ctx, b, update)
			}
		}),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return 1, fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	s := sender.NewTelegram(b)
	notifier = service.NewNotifier(store, s)
	auth := service.NewAdminAuthorizer(store, s)
	dispatcher := service.NewDispatcher(store, s, s, file.ReadAsset)

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewStatic(s, "/start", command.StartMessage))
	commandRegistry.Register(command.NewStatic(s, "/ping", command.PingMessage))
	commandRegistry.Register(command.NewStats(store, s, "/stats"))
	commandRegistry.Register(command.NewGauss(store, s, s, file.ReadAsset, "/gauss"))
	commandRegistry.Register(command.NewReset(auth, s, controller, "/reset"))
	commandRegistry.Register(command.NewStop(auth, store, s, controller, "/stop"))
	commandRegistry.Register(command.NewDebug(auth, store, s, "/debug"))

	me, err := b.GetMe(ctx)
	if err != nil {
		return 1, fmt.Errorf("failed fetching bot identity: %w", err)
	}

	commandHandler := handler.NewCommand(commandRegistry, notifier, handlerTimeout, me.Username)
	textHandler = handler.NewText(domain.NewMatcher(store.Triggers()), dispatcher, notifier, handlerTimeout)

	b.RegisterHandlerMatchFunc(handler.IsBotCommand, commandHandler.Handle)

	if err := notifier.NotifyStarted(ctx); err != nil {
		log.Warn().Err(err).Msg("could not notify every admin about the start")
	}

	log.Info().Int("triggers", len(store.Triggers())).Msg("bot listening")
	b.Start(ctx)

	if err := store.Save(); err != nil {
		log.Err(err).Msg("failed to flush settings on shutdown")
	}

	log.Info().Int("exitCode", controller.ExitCode()).Msg("bot stopped")
	return controller.ExitCode(), nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
