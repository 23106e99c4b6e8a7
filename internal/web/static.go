package web

import (
	"embed"
)

// staticFiles holds the browser UI served under / and /static/.
//
//go:embed static/*
var staticFiles embed.FS
