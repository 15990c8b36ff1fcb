// Command weftserve serves files from a directory over http.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nefry/weft"
	"github.com/nefry/weft/specs"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	root := flag.String("root", ".", "directory to serve")
	workers := flag.Int("workers", weft.DefaultWorkers, "connection worker limit")
	flag.Parse()

	logger := log.New(os.Stderr, "weftserve: ", log.LstdFlags)

	server := &weft.Server{
		Handler: fileHandler(*root, logger),
		Logger:  logger,
		Workers: *workers,
	}
	logger.Printf("serving %s on %s", *root, *addr)
	logger.Fatal(server.ListenAndServe(*addr))
}

func fileHandler(root string, logger *log.Logger) weft.Handler {
	return func(ctx context.Context, req *weft.Request) *weft.Response {
		if req.Method != specs.HttpMethodGet && req.Method != specs.HttpMethodHead {
			resp, _ := weft.NewResponseBuilder().
				Status(specs.StatusCodeMethodNotAllowed).
				Header("Allow", "GET, HEAD").
				Build()
			return resp
		}

		// The target is origin-form; parse it against a placeholder
		// host to split off query and fragment.
		url, err := specs.ParseUrl("http://files" + req.Target)
		if err != nil {
			return statusResponse(specs.StatusCodeBadRequest)
		}

		name := strings.TrimPrefix(url.Path, "/")
		if name == "" {
			name = "index.html"
		}
		// Reject traversal out of the served root.
		if name != filepath.ToSlash(filepath.Clean(name)) || strings.HasPrefix(name, "..") {
			return statusResponse(specs.StatusCodeForbidden)
		}

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		if err != nil {
			if os.IsNotExist(err) {
				return statusResponse(specs.StatusCodeNotFound)
			}
			logger.Printf("cannot read %s: %s", name, err)
			return statusResponse(specs.StatusCodeInternalServerError)
		}

		builder := weft.NewResponseBuilder().
			Status(specs.StatusCodeOK).
			Header(specs.HeaderContentType, specs.ContentTypeByExt(filepath.Ext(name)))
		if req.Method == specs.HttpMethodGet {
			builder.Body(data)
		} else {
			builder.Header(specs.HeaderContentLength, strconv.Itoa(len(data)))
		}
		resp, _ := builder.Build()
		return resp
	}
}

func statusResponse(status specs.StatusCode) *weft.Response {
	resp, _ := weft.NewResponseBuilder().Status(status).Build()
	return resp
}
