package git

import (
	"log/slog"
	"sync"
)

// Created lazily so that it picks up the default handler configured in main.
var logger = sync.OnceValue(func() *slog.Logger {
	return slog.Default().With("package", "git")
})
