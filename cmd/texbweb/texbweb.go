// Command texbweb serves the texture banks in a directory over HTTP.
//
// Banks are listed at /texb/; /debug/requests shows recent requests.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-texb/paths"
	"badc0de.net/pkg/go-texb/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for texbweb")
	texbDir       = flag.String("texb_dir", "", "directory with the .texb files to serve; defaults to the first $"+paths.EnvVar+" directory, or the working directory")
	accessLog     = flag.Bool("access_log", true, "whether to write a combined access log to stderr")
)

func defaultDir() string {
	if dirs := paths.SearchDirs(); len(dirs) > 0 {
		return dirs[0]
	}
	return "."
}

func newRouter(dir string) http.Handler {
	r := mux.NewRouter()
	web.NewHandler(dir).RegisterRoutes(r)
	r.Handle("/", http.RedirectHandler("/texb/", http.StatusFound))
	r.HandleFunc("/sitemap.xml", sitemapHandler(dir))
	// x/net/trace registers its pages on the default mux.
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)

	var h http.Handler = handlers.CompressHandler(r)
	if *accessLog {
		h = handlers.CombinedLoggingHandler(os.Stderr, h)
	}
	return h
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	dir := *texbDir
	if dir == "" {
		dir = defaultDir()
	}
	glog.Infof("serving texture banks from %s on %s", dir, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, newRouter(dir)))
}
