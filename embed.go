package blockpress

import "embed"

// EmbeddedAssets contains the static editor shell served under /admin/
// and /static/. The shell is intentionally thin: it handles login and
// mounts the editor UI, which talks to the /api routes for everything.
//
//go:embed static/*
var EmbeddedAssets embed.FS
