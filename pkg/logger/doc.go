// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers that keep key names consistent across the
// validation engine and its backends.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevelName("debug"),
//	    logger.WithAttr(logger.Component("validator")),
//	)
//
//	log.Debug("rule failed",
//	    logger.Field("email"),
//	    logger.Rule("required"),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally. Discard returns a logger that drops every record; it is the
// default for validators that were not given a logger.
package logger
