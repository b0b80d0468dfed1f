package profile

import (
	"os"
	"strings"

	"linepatch/internal/patch"
)

// OverrideContext substitutes one specific key's value before the entries
// reach the patch core. Off deactivates the override without unsetting it.
type OverrideContext struct {
	Key   string
	Value string
	Off   bool
}

// Environment variable names recognized by OverrideFromEnv.
const (
	EnvOverrideKey   = "LINEPATCH_OVERRIDE_KEY"
	EnvOverrideValue = "LINEPATCH_OVERRIDE_VALUE"
	EnvOverrideOff   = "LINEPATCH_OVERRIDE_OFF"
)

// OverrideFromEnv builds the override context from the process environment.
func OverrideFromEnv() OverrideContext {
	off := strings.ToLower(os.Getenv(EnvOverrideOff))
	return OverrideContext{
		Key:   os.Getenv(EnvOverrideKey),
		Value: os.Getenv(EnvOverrideValue),
		Off:   off == "1" || off == "true" || off == "yes",
	}
}

// ResolveOverrides returns a copy of entries with the override applied: the
// matching key (case-insensitive) gets ctx.Value instead of its own. A pure
// function; entries and order are otherwise untouched. An empty key or an
// Off context returns the input unchanged.
func ResolveOverrides(entries []patch.Entry, ctx OverrideContext) []patch.Entry {
	if ctx.Key == "" || ctx.Off {
		return entries
	}
	out := make([]patch.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if strings.EqualFold(out[i].Key, ctx.Key) {
			out[i].Value = ctx.Value
		}
	}
	return out
}
