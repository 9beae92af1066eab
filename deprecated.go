package demoji

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const deprecationMsg = "is deprecated and will be removed in a future version; " +
	"emoji codes are now distributed directly with the demoji package"

// Directory returns the legacy on-disk cache directory (~/.demoji).
//
// Deprecated: the package no longer caches emoji data on disk. The value is
// kept for backward compatibility only; calling this emits a warning.
func Directory() string {
	log.Warn().Str("attribute", "demoji.Directory").Msg(deprecationMsg)
	return legacyDir()
}

// CachePath returns the legacy on-disk cache file (~/.demoji/codes.json).
//
// Deprecated: the package no longer caches emoji data on disk. The value is
// kept for backward compatibility only; calling this emits a warning.
func CachePath() string {
	log.Warn().Str("attribute", "demoji.CachePath").Msg(deprecationMsg)
	return filepath.Join(legacyDir(), "codes.json")
}

func legacyDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".demoji")
}
