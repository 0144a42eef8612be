// local-dev-dependencies runs the containers the app can use for storage in the background,
// so `STORAGE=postgres` and `STORAGE=redis` work locally without installing anything.
//
//	go run ./cmd/local-dev-dependencies            start (returns once everything is up)
//	go run ./cmd/local-dev-dependencies stop       stop and wait for the containers to go away
//	go run ./cmd/local-dev-dependencies playwright install the browsers for the e2e tests
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sevlyar/go-daemon"

	"github.com/gaqzi/star-reviews/test"
)

const (
	startTimeout = 2 * time.Minute

	// The parent tells the daemon where to serve the health check through the environment.
	healthcheckEnvName = "HEALTHCHECK_ADDR"
)

var signal = flag.String("s", "", `Send signal to the daemon:
  quit — graceful shutdown
  stop — fast shutdown`)

// dependency is a container that writes where to reach it into tmp/ once it's up.
type dependency struct {
	name     string
	confFile string
	start    func(ctx context.Context) (err error, conn string, done func())

	up   atomic.Bool
	done func()
}

func (d *dependency) run(errChan chan<- error) {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	err, conn, done := d.start(ctx)
	if err != nil {
		errChan <- fmt.Errorf("failed to start %s: %w", d.name, err)
		return
	}
	d.done = done

	if err := os.WriteFile(d.confFile, []byte(conn), 0o640); err != nil {
		errChan <- fmt.Errorf("failed to write %s: %w", d.confFile, err)
		return
	}

	log.Printf("%s is up, connection details in %s", d.name, d.confFile)
	d.up.Store(true)
}

func (d *dependency) stop() {
	if d.done != nil {
		d.done()
		log.Printf("stopped %s", d.name)
	}
	_ = os.Remove(d.confFile)
}

var dependencies = []*dependency{
	{name: "postgres", confFile: "tmp/postgres.conf", start: test.StartPostgres},
	{name: "redis", confFile: "tmp/redis.conf", start: test.StartRedis},
}

func main() {
	flag.Parse()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	daemon.AddCommand(daemon.StringFlag(signal, "quit"), syscall.SIGQUIT, termHandler(cancel, stopped, true))
	daemon.AddCommand(daemon.StringFlag(signal, "stop"), syscall.SIGTERM, termHandler(cancel, stopped, false))
	if err := os.MkdirAll("tmp", 0o755); err != nil {
		log.Fatalln(err.Error())
	}

	cntxt := &daemon.Context{
		PidFileName: "tmp/local-dev-dependencies.pid",
		PidFilePerm: 0o644,
		LogFileName: "tmp/local-dev-dependencies.log",
		LogFilePerm: 0o640,
		WorkDir:     "./",
		Umask:       0o27,
		Args:        []string{"star-reviews__local-dev-dependencies"},
	}

	if len(daemon.ActiveFlags()) > 0 {
		d, err := cntxt.Search()
		if err != nil {
			log.Fatalf("Unable send signal to the daemon: %s", err.Error())
		}
		if err := daemon.SendCommands(d); err != nil {
			log.Fatalln(err.Error())
		}
		return
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "stop":
			stop(cntxt)
		case "playwright":
			if err := playwright.Install(); err != nil {
				log.Fatalf("failed to install playwright dependencies: %s", err.Error())
			}
			os.Exit(0)
		default:
			log.Fatalf("unknown subcommand: %q", os.Args[1])
		}
	}

	healthcheckAddr, err := freeAddr()
	if err != nil {
		log.Fatalf("failed to find an address for the healthcheck: %s", err)
	}
	cntxt.Env = append(os.Environ(), fmt.Sprintf("%s=%s", healthcheckEnvName, healthcheckAddr))

	d, err := cntxt.Reborn()
	if err != nil {
		if errors.Is(err, daemon.ErrWouldBlock) {
			// Already running, nothing to do.
			os.Exit(0)
		}
		log.Fatal("Unable to run: ", err)
	}

	if d != nil {
		waitForHealthy(healthcheckAddr)
		return
	}

	// Only the daemon gets here.
	defer func() { _ = cntxt.Release() }()

	log.Print("- - - - - - - - - - - - - - -")
	log.Print("up and running")

	errChan := make(chan error, len(dependencies))
	go serveHealthcheck(os.Getenv(healthcheckEnvName))
	for _, dep := range dependencies {
		go dep.run(errChan)
	}
	go (func() {
		if err := daemon.ServeSignals(); err != nil {
			log.Printf("failed to respond to signal: %s", err)
		}
	})()

	select {
	case <-ctx.Done():
		<-stopped
		log.Printf("context cancelled, shutting down")
		os.Exit(0)
	case err := <-errChan:
		log.Print(err.Error())
		log.Printf("shutting down")
		stopAll()
		os.Exit(1)
	}
}

func freeAddr() (string, error) {
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return "", err
	}
	addr := ln.Addr().String()

	return addr, ln.Close()
}

// waitForHealthy runs in the parent and returns once the daemon reports every dependency up.
func waitForHealthy(addr string) {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout+2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s/", addr), nil)
	if err != nil {
		log.Fatalf("failed to create http request: %s", err)
	}

	var failedConn int
	for {
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			if strings.Contains(err.Error(), "connection refused") {
				if failedConn >= 20 {
					log.Fatalf("failed to get health check %d times, check tmp/local-dev-dependencies.log", failedConn)
				}
				time.Sleep(100 * time.Millisecond)
				failedConn++
				continue
			}

			log.Fatalf("failed to call health check endpoint: %s", err)
		}
		failedConn = 0

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			log.Printf("failed to read healthcheck body: %s", err)
		}

		if !strings.Contains(string(body), "=false") {
			return
		}

		time.Sleep(100 * time.Millisecond)
	}
}

func stop(cntxt *daemon.Context) {
	proc, err := cntxt.Search()
	if err != nil {
		var patherr *fs.PathError
		// No pid file, so assume it isn't running.
		if errors.As(err, &patherr) && errors.Is(patherr.Err, fs.ErrNotExist) {
			os.Exit(0)
		}

		log.Fatalf("failed to find process: %s", err.Error())
	}
	if proc == nil {
		os.Exit(0)
	}

	if err := proc.Signal(syscall.SIGQUIT); err != nil {
		log.Fatalf("failed to signal process: %s", err.Error())
	}

	log.Printf("waiting for shutdown of local dev dependencies to complete")
	for {
		isAlive, err := cntxt.Search()
		if err != nil {
			var patherr *fs.PathError
			if errors.As(err, &patherr) {
				fmt.Print("\n")
				os.Exit(0)
			}
			log.Fatalf("error: %q", err)
		}
		if isAlive == nil {
			fmt.Print("\n")
			os.Exit(0)
		}
		fmt.Print(".")
		time.Sleep(100 * time.Millisecond)
	}
}

func serveHealthcheck(listenAddr string) {
	if listenAddr == "" {
		log.Printf("%s is empty in env", healthcheckEnvName)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		status := make([]string, 0, len(dependencies))
		for _, dep := range dependencies {
			status = append(status, fmt.Sprintf("%sUp=%t", dep.name, dep.up.Load()))
		}

		log.Printf("request from %s: %s %q, %s", r.RemoteAddr, r.Method, r.URL, strings.Join(status, " "))
		_, _ = fmt.Fprint(w, strings.Join(status, " "))
	})

	log.Printf("about to listen to %q", listenAddr)
	if err := http.ListenAndServe(listenAddr, mux); err != nil {
		log.Printf("healthcheck stopped: %s", err)
	}
}

func stopAll() {
	var wg sync.WaitGroup
	for _, dep := range dependencies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dep.stop()
		}()
	}
	wg.Wait()
}

// termHandler stops the containers. A graceful quit waits for them to be gone before the daemon exits.
func termHandler(cancel func(), stopped chan<- struct{}, graceful bool) func(sig os.Signal) error {
	return func(sig os.Signal) error {
		log.Printf("terminating on %s...", sig)
		if graceful {
			stopAll()
		} else {
			go stopAll()
		}
		close(stopped)
		cancel()
		return daemon.ErrStop
	}
}
