package version

// Version and Commit are overridden at build time via -ldflags, the same
// way most standalone Go CLIs stamp their binaries; both default to
// placeholders for a plain `go build`.
var (
	Version = "dev"
	Commit  = "none"
)

// String renders the one-line version banner printed by `minipyc version`.
func String() string {
	return "minipyc " + Version + " (" + Commit + ")"
}
