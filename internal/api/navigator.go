package api

import "github.com/rs/zerolog"

// LogNavigator records navigation requests raised outside a request cycle,
// such as a session expiring mid-call. The redirect itself is issued by the
// error handler on the request that observed the 401.
type LogNavigator struct {
	log zerolog.Logger
}

func NewLogNavigator(log zerolog.Logger) *LogNavigator {
	return &LogNavigator{log: log}
}

func (n *LogNavigator) Navigate(path string) {
	n.log.Info().Str("to", path).Msg("navigation requested")
}
