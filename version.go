package kawiarnia

// Version is the release of the module. Overridden at build time with
// -ldflags "-X github.com/aretw0/kawiarnia.Version=...".
var Version = "0.3.0"
