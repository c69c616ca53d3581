package inkpress

import "embed"

// Templates contains the HTML templates shipped with the framework,
// currently just the pre-rendered post shell.
//
//go:embed templates/*
var Templates embed.FS
