package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PipeOpsHQ/support-chat/internal/metrics"
	"github.com/PipeOpsHQ/support-chat/internal/server"
	"github.com/PipeOpsHQ/support-chat/observe"
	obsotel "github.com/PipeOpsHQ/support-chat/observe/otel"
	"github.com/PipeOpsHQ/support-chat/widget"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := flags.loadSettings()
			if err != nil {
				return err
			}
			if flags.logLevel == "" && settings.LogLevel != "" {
				if err := initLogger(cmd.ErrOrStderr(), settings.LogLevel); err != nil {
					return err
				}
			}
			if addr != "" {
				settings.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tp, err := obsotel.NewTracerProvider(ctx, obsotel.TracingConfig{
				OTLPEndpoint:   settings.OTLPEndpoint,
				ServiceVersion: Version,
			})
			if err != nil {
				return errors.Wrap(err, "set up tracing")
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("tracer shutdown failed")
				}
			}()

			logSink := observe.NewAsyncSink(observe.NewLogSink(log.Logger), 256)
			defer logSink.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			initial := widget.Resolve(settings.Connection)
			log.Info().
				Str("mode", string(initial.Mode)).
				Bool("has_credential", initial.HasCredential()).
				Bool("reload_env", settings.ReloadEnv).
				Str("sdk_base", settings.SDKBaseURL).
				Msg("connection resolved")

			srv := server.New(server.Options{
				Addr:            settings.Addr,
				Source:          settings.Source(),
				Labels:          widget.DefaultLabels(),
				Assets:          widget.AssetsFromBase(settings.SDKBaseURL),
				Sink:            observe.NewMultiSink(logSink, obsotel.NewSink(tp)),
				Metrics:         metrics.MustNew(reg),
				Gatherer:        reg,
				TracerProvider:  tp,
				Logger:          &log.Logger,
				ShutdownTimeout: settings.ShutdownTimeout,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides SUPPORT_CHAT_ADDR)")
	return cmd
}
