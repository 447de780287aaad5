package waymark

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/websocket"
)

// The dev server is a local playground for the table authors: it exposes the
// resolution pipeline over HTTP and pushes a reload event to connected
// clients whenever the watcher swaps in a rebuilt table bundle. It is not
// part of the resolution hot path.

var Server *http.Server

// Handler is a http.HandlerFunc exposing the resolution endpoints for use
// with custom HTTP servers.
var Handler = http.HandlerFunc(handle)

func handle(w http.ResponseWriter, r *http.Request) {
	// In dev mode, changed tables are picked up before answering.
	if MainWatcher != nil {
		if err := MainWatcher.Notify(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if MainNav == nil {
		http.Error(w, "navigation tables not initialized", http.StatusServiceUnavailable)
		return
	}

	switch r.URL.Path {
	case "/resolve":
		serveResolve(w, r)
	case "/compose":
		serveCompose(w, r)
	case "/title":
		serveTitle(w, r)
	case "/live":
		websocket.Handler(serveLive).ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}

func serveResolve(w http.ResponseWriter, r *http.Request) {
	p := r.FormValue("path")
	dir := ParseDirection(r.FormValue("dir"))

	result := MainNav.Resolve(p, dir)
	reply := map[string]string{
		"path":      p,
		"direction": dir.String(),
		"result":    result,
	}
	if r.FormValue("compose") != "" {
		reply["composed"] = MainNav.Compose(result)
	}
	writeJSON(w, reply)
}

func serveCompose(w http.ResponseWriter, r *http.Request) {
	p := r.FormValue("path")
	writeJSON(w, map[string]string{
		"path":   p,
		"group":  MainNav.Tables().Composer.Group(p).String(),
		"result": MainNav.Compose(p),
	})
}

func serveTitle(w http.ResponseWriter, r *http.Request) {
	p := r.FormValue("path")
	title, declared := MainNav.Tables().Menu.Title(p)
	if !declared {
		title = MainNav.ScreenTitle(p)
	}
	writeJSON(w, map[string]interface{}{
		"path":     p,
		"title":    title,
		"declared": declared,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ERROR.Println("Unable to write response:", err)
	}
}

// Live reload push channel.

var live = struct {
	sync.Mutex
	conns map[chan string]bool
}{conns: make(map[chan string]bool)}

func serveLive(ws *websocket.Conn) {
	ws.SetDeadline(time.Now().Add(time.Hour * 24))

	events := make(chan string, 1)
	live.Lock()
	live.conns[events] = true
	live.Unlock()
	defer func() {
		live.Lock()
		delete(live.conns, events)
		live.Unlock()
	}()

	for event := range events {
		if err := websocket.Message.Send(ws, event); err != nil {
			return
		}
	}
}

func broadcastReload() {
	live.Lock()
	defer live.Unlock()
	for events := range live.conns {
		select {
		case events <- "reload":
		default:
		}
	}
}

// liveReloader is the watcher listener wired up by Init: it rebuilds the
// table bundle and then tells connected playground clients to reload.
type liveReloader struct {
	nav *Nav
}

func (l liveReloader) Refresh() error {
	if err := l.nav.Refresh(); err != nil {
		return err
	}
	broadcastReload()
	return nil
}

// Run the dev server.
// If port is non-zero, use that. Else, read the port from app.conf.
func Run(port int) {
	if port == 0 {
		port = HttpPort
	}
	localAddress := HttpAddr + ":" + strconv.Itoa(port)

	Server = &http.Server{
		Addr:         localAddress,
		Handler:      Handler,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		fmt.Printf("Listening on %s...\n", localAddress)
	}()

	if HttpSsl {
		ERROR.Fatalln("Failed to listen:",
			Server.ListenAndServeTLS(HttpSslCert, HttpSslKey))
	} else {
		listener, err := net.Listen("tcp", localAddress)
		if err != nil {
			ERROR.Fatalln("Failed to listen:", err)
		}
		ERROR.Fatalln("Failed to serve:", Server.Serve(listener))
	}
}
