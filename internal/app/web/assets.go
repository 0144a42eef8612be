package web

import (
	"embed"
	"net/http"
)

//go:embed assets/*
var content embed.FS

type getRoutabler interface {
	Handle(string, http.Handler)
}

// PublicAssets will register /assets/ and serve the stylesheet and anything else in ./assets.
func PublicAssets(mux getRoutabler) {
	mux.Handle(
		"/assets/*",
		http.StripPrefix("/", http.FileServer(http.FS(content))),
	)
}
