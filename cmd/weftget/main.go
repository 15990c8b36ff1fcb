// Command weftget downloads a url to a file, inspecting the response
// head before committing to the body.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"
	"time"

	"github.com/nefry/weft"
	"github.com/nefry/weft/specs"
)

func main() {
	output := flag.String("o", "", "output file, defaults to the url file name")
	timeout := flag.Duration("timeout", 30*time.Second, "overall request timeout")
	proxyUrl := flag.String("proxy", "", "proxy url (http, https, socks5)")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: weftget [flags] <url>")
	}
	rawUrl := flag.Arg(0)

	url, err := specs.ParseUrl(rawUrl)
	if err != nil {
		log.Fatalf("invalid url: %s", err)
	}

	client := weft.DefaultClient()
	client.ReadTimeout = *timeout
	if *proxyUrl != "" {
		if client.Proxy, err = specs.ParseUrl(*proxyUrl); err != nil {
			log.Fatalf("invalid proxy url: %s", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	head, err := client.Head(ctx, rawUrl)
	if err != nil {
		log.Fatalf("head request failed: %s", err)
	}
	log.Printf("%s %d %s", head.Version, head.Status, head.Reason)
	if length := head.Header().Get(specs.HeaderContentLength); length != "" {
		log.Printf("content length: %s bytes", length)
	}
	if !head.Status.IsReplyable() || head.Status >= 400 {
		log.Fatalf("nothing to download, status %d", head.Status)
	}

	resp, err := client.Get(ctx, rawUrl)
	if err != nil {
		log.Fatalf("get request failed: %s", err)
	}

	data, err := weft.DecodeData(resp)
	if err != nil {
		log.Fatalf("cannot decode body: %s", err)
	}

	name := *output
	if name == "" {
		if name = url.File(); name == "" {
			name = "index.html"
		} else {
			name = path.Base(name)
		}
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		log.Fatalf("cannot write %s: %s", name, err)
	}
	log.Printf("wrote %d bytes to %s", len(data), name)
}
