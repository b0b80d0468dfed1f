// Package meta exposes build metadata of the running binary for the
// -version flag. Best-effort: fields stay empty when the binary was built
// without module or VCS information.
package meta

import "runtime/debug"

// Info is a minimal, tool-friendly summary of build metadata.
type Info struct {
	Version  string // module version, e.g. "v1.2.0" or "(devel)"
	Revision string // VCS revision, short form
	Modified bool   // VCS tree had local modifications
}

// Detect reads the binary's embedded build info.
func Detect() Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}
	}
	inf := Info{Version: bi.Main.Version}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) > 12 {
				inf.Revision = s.Value[:12]
			} else {
				inf.Revision = s.Value
			}
		case "vcs.modified":
			inf.Modified = s.Value == "true"
		}
	}
	return inf
}

// String renders the info for display, tolerating absent fields.
func (i Info) String() string {
	out := i.Version
	if out == "" {
		out = "(unknown)"
	}
	if i.Revision != "" {
		out += " " + i.Revision
		if i.Modified {
			out += "+dirty"
		}
	}
	return out
}
