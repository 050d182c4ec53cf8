package cli

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PipeOpsHQ/support-chat/internal/config"
)

// initLogger sets the global logger. An empty level falls back to the
// environment, then to info.
func initLogger(w io.Writer, level string) error {
	level = strings.TrimSpace(level)
	if level == "" {
		level = config.StringEnv(nil, config.DefaultLogLevel, config.EnvLogLevel)
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)

	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}
