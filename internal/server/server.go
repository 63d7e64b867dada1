// Package server exposes the record store, the YAML codec, and document
// generation over a local HTTP API.
package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"invoicer/internal/invoices"
	"invoicer/internal/render"
)

const (
	allowRemoteEnvKey = "INVOICER_ALLOW_REMOTE"

	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 120 * time.Second
	idleTimeout       = 60 * time.Second

	// Document generation shells out to an external converter on the
	// rendering service side; keep concurrent requests low.
	generateConcurrencyLimit = 2
	importConcurrencyLimit   = 1
)

// Server wraps HTTP handlers for the invoicer API.
type Server struct {
	addr            string
	records         *invoices.Store
	renderer        *render.Client
	dbPath          string
	assetsDir       string
	artifactsDir    string
	endpointURL     string
	pdfBackend      string
	logger          *slog.Logger
	generateLimiter chan struct{}
	importLimiter   chan struct{}
}

// Info carries static server facts reported by /v1/info.
type Info struct {
	DBPath       string
	AssetsDir    string
	ArtifactsDir string
	EndpointURL  string
	PDFBackend   string
}

// New creates a new server instance.
func New(addr string, records *invoices.Store, renderer *render.Client, info Info, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		addr:            addr,
		records:         records,
		renderer:        renderer,
		dbPath:          info.DBPath,
		assetsDir:       info.AssetsDir,
		artifactsDir:    info.ArtifactsDir,
		endpointURL:     info.EndpointURL,
		pdfBackend:      info.PDFBackend,
		logger:          logger,
		generateLimiter: make(chan struct{}, generateConcurrencyLimit),
		importLimiter:   make(chan struct{}, importConcurrencyLimit),
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) acquireLimiter(limiter chan struct{}, w http.ResponseWriter, r *http.Request, name string) bool {
	if limiter == nil {
		return true
	}
	select {
	case limiter <- struct{}{}:
		return true
	default:
		err := apiError{
			status:  http.StatusTooManyRequests,
			code:    "resource_exhausted",
			errCode: ErrCodeResourceExhausted,
			err:     fmt.Errorf("too many concurrent %s requests", name),
		}
		s.writeErrorReq(w, r, http.StatusTooManyRequests, err)
		return false
	}
}

func (s *Server) releaseLimiter(limiter chan struct{}) {
	if limiter == nil {
		return
	}
	select {
	case <-limiter:
	default:
	}
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
