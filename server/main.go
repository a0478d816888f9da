package main

import (
	"flag"
	"net/http"
	"os"
	"path"

	"github.com/julienschmidt/httprouter"
	"github.com/neilgarb/durak"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

var (
	addr      = flag.String("addr", "", "listen address (default :$PORT or :8080)")
	clientDir = flag.String("client", "client", "directory with the browser client")
	dev       = flag.Bool("dev", false, "development logging")
)

func main() {
	flag.Parse()

	log, err := newLogger(*dev)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	listen := *addr
	if listen == "" {
		listen = ":" + getenv("PORT", "8080")
	}

	dir := *clientDir
	if !path.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatal("getwd", zap.Error(err))
		}
		dir = path.Join(wd, dir)
	}

	manager := durak.NewManager(log)

	log.Info("listening", zap.String("addr", listen), zap.String("client", dir))
	if err := http.ListenAndServe(listen, newRouter(manager, dir)); err != nil {
		log.Fatal("listen", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newRouter(manager *durak.Manager, clientDir string) *httprouter.Router {
	r := httprouter.New()

	r.GET("/ws", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		websocket.Handler(manager.Serve).ServeHTTP(w, r)
	})
	r.GET("/games/:id/save", saveHandler(manager))
	r.GET("/healthz", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Write([]byte("ok"))
	})
	r.ServeFiles("/client/*filepath", http.Dir(clientDir))

	return r
}

func saveHandler(manager *durak.Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		text, ok := manager.SaveText(ps.ByName("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="durak_save.txt"`)
		w.Write([]byte(text))
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
