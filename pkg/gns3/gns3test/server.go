// Package gns3test provides an in-memory GNS3 REST server for tests.
package gns3test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/terabiome/gns3facts/pkg/gns3"
)

const ServerVersion = "2.2.44"

// Project is a project served by the fake server.
type Project struct {
	Info  gns3.ProjectInfo
	Nodes []gns3.Node
}

// Server answers the subset of the GNS3 v2 API the client uses.
type Server struct {
	*httptest.Server

	user     string
	password string

	mu       sync.Mutex
	projects []Project
	requests []string
}

// NewServer starts a server holding projects. It is closed when the test ends.
func NewServer(t testing.TB, projects ...Project) *Server {
	t.Helper()
	return NewServerWithAuth(t, "", "", projects...)
}

// NewServerWithAuth starts a server that requires basic auth when user is non-empty.
func NewServerWithAuth(t testing.TB, user, password string, projects ...Project) *Server {
	t.Helper()

	s := &Server{
		user:     user,
		password: password,
		projects: projects,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/version", s.version)
	mux.HandleFunc("GET /v2/projects", s.listProjects)
	mux.HandleFunc("GET /v2/projects/{project_id}", s.getProject)
	mux.HandleFunc("GET /v2/projects/{project_id}/nodes", s.getNodes)

	s.Server = httptest.NewServer(s.authenticate(mux))
	t.Cleanup(s.Close)
	return s
}

// Host returns the server URL without its port, e.g. http://127.0.0.1.
func (s *Server) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Scheme + "://" + u.Hostname()
}

// Port returns the port the server listens on.
func (s *Server) Port() int {
	u, _ := url.Parse(s.URL)
	port, _ := strconv.Atoi(u.Port())
	return port
}

// Requests returns the paths requested so far, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		s.mu.Unlock()

		if s.user != "" {
			user, password, ok := r.BasicAuth()
			if !ok || user != s.user || password != s.password {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, gns3.Version{Version: ServerVersion, Local: true})
}

func (s *Server) listProjects(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]gns3.ProjectInfo, 0, len(s.projects))
	for _, p := range s.projects {
		infos = append(infos, p.Info)
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.find(r.PathValue("project_id"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Project ID %s doesn't exist", r.PathValue("project_id")))
		return
	}
	writeJSON(w, http.StatusOK, project.Info)
}

func (s *Server) getNodes(w http.ResponseWriter, r *http.Request) {
	project, ok := s.find(r.PathValue("project_id"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Project ID %s doesn't exist", r.PathValue("project_id")))
		return
	}
	nodes := project.Nodes
	if nodes == nil {
		nodes = []gns3.Node{}
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (s *Server) find(projectID string) (Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.projects {
		if strings.EqualFold(p.Info.ProjectID, projectID) {
			return p, true
		}
	}
	return Project{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message, "status": status})
}
