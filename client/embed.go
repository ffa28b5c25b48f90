// Package client embeds the browser script that connects the portfolio page
// to its live socket.
package client

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed src/*.js
var assets embed.FS

// Script is the file name of the page script.
const Script = "golivefolio.js"

// Assets returns the embedded scripts rooted at src.
func Assets() fs.FS {
	fsys, err := fs.Sub(assets, "src")
	if err != nil {
		panic(err)
	}
	return fsys
}

// Handler serves the embedded scripts.
func Handler() http.Handler {
	return http.FileServer(http.FS(Assets()))
}
