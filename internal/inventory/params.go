package inventory

import (
	"fmt"
	"log/slog"
)

// DefaultPort is the GNS3 REST API port used when none is given.
const DefaultPort = 3080

// ConnectionParameters contains transport-agnostic parameters for reaching a GNS3 server.
type ConnectionParameters struct {
	URL      string
	Port     int
	User     string
	Password string
}

// ServerURL composes the connector address as "<url>:<port>".
func (p ConnectionParameters) ServerURL() string {
	return fmt.Sprintf("%s:%d", p.URL, p.Port)
}

// LogValue keeps the password out of every log record.
func (p ConnectionParameters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", p.URL),
		slog.Int("port", p.Port),
		slog.String("user", p.User),
	)
}

// ProjectSelector identifies the project by name or by ID.
type ProjectSelector struct {
	Name string
	ID   string
}

// IsZero reports whether neither name nor ID is set.
func (s ProjectSelector) IsZero() bool {
	return s.Name == "" && s.ID == ""
}

func (s ProjectSelector) LogValue() slog.Value {
	if s.Name != "" {
		return slog.GroupValue(slog.String("project_name", s.Name))
	}
	return slog.GroupValue(slog.String("project_id", s.ID))
}
