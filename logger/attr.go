package logger

import (
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
)

// shortPath keeps the last directory and file name of path.
//
//	/home/dev/ridewitus/directory/service.go => directory/service.go
func shortPath(path string) string {
	dir, file := filepath.Split(path)
	return filepath.Join(filepath.Base(dir), file)
}

// TruncSourceAttr shortens the source file path in a log to its last directory and file name.
// It is a ReplaceAttr function for a [log/slog.HandlerOptions].
func TruncSourceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.SourceKey {
		return a
	}

	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}

	src.File = shortPath(src.File)
	return slog.Any(slog.SourceKey, src)
}

// ColorizeLevel colors the level of a log according to its severity.
// It is a ReplaceAttr function for a [log/slog.HandlerOptions].
func ColorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}

	lvl, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	var c *color.Color
	switch {
	case lvl >= slog.LevelError:
		c = color.New(color.FgRed, color.Bold)
	case lvl >= slog.LevelWarn:
		c = color.New(color.FgYellow)
	case lvl >= slog.LevelInfo:
		c = color.New(color.FgBlue)
	default:
		c = color.New(color.FgWhite)
	}

	return slog.String(slog.LevelKey, c.Sprint(lvl.String()))
}

// DeleteLevelAttr drops the level from a log.
func DeleteLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		return slog.Attr{}
	}

	return a
}

// DeleteMessageAttr drops the message from a log.
func DeleteMessageAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.MessageKey {
		return slog.Attr{}
	}

	return a
}
