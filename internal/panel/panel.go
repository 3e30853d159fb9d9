package panel

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
)

//go:embed web/*
var content embed.FS

// Handler returns an http.Handler that serves the rig calculator UI.
//
// When dir names an existing directory, assets are read from disk on every
// request. Otherwise the embedded copy is used. Requests for files that do
// not exist fall back to index.html.
// Panics if the embedded web assets cannot be loaded.
func Handler(dir string) http.Handler {
	var fileSystem http.FileSystem

	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			fileSystem = http.Dir(dir)
		}
	}

	if fileSystem == nil {
		webFS, err := fs.Sub(content, "web")
		if err != nil {
			panic(fmt.Sprintf("panel: failed to load embedded web assets: %v", err))
		}
		fileSystem = http.FS(webFS)
	}

	fileServer := http.FileServer(fileSystem)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Asset names are not content-hashed.
		w.Header().Set("Cache-Control", "no-cache, must-revalidate")

		upath := path.Clean(r.URL.Path)
		if upath == "." {
			upath = "/"
		}

		if upath == "/" {
			fileServer.ServeHTTP(w, r)
			return
		}

		filePath := upath[1:]
		f, err := fileSystem.Open(filePath)
		if err != nil {
			r.URL.Path = "/"
			fileServer.ServeHTTP(w, r)
			return
		}
		f.Close()
		fileServer.ServeHTTP(w, r)
	})
}
