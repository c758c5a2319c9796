// Package ansible runs the node inventory as an Ansible binary module: the
// arguments arrive as a JSON file and the result is a single JSON document
// on stdout.
package ansible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/terabiome/gns3facts/internal/adapter"
	"github.com/terabiome/gns3facts/internal/api"
	"github.com/terabiome/gns3facts/internal/inventory"
)

// ModuleName is the name the module is published under.
const ModuleName = "gns3_nodes_inventory"

const noLogMask = "********"

var supportedParameters = []string{"layout", "password", "port", "project_id", "project_name", "url", "user"}

// Fetcher retrieves the inventory of a project.
type Fetcher interface {
	Fetch(ctx context.Context, conn inventory.ConnectionParameters, selector inventory.ProjectSelector) (*inventory.Result, error)
}

// ParseArgs decodes a module argument document. Internal "_ansible_" keys are
// ignored and loosely typed values are coerced to the declared types.
func ParseArgs(r io.Reader) (api.InventoryRequest, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return api.InventoryRequest{}, fmt.Errorf("unable to parse module arguments: %w", err)
	}

	var unsupported []string
	for key := range raw {
		if strings.HasPrefix(key, "_ansible_") {
			continue
		}
		if !contains(supportedParameters, key) {
			unsupported = append(unsupported, key)
		}
	}
	if len(unsupported) > 0 {
		sort.Strings(unsupported)
		return api.InventoryRequest{}, fmt.Errorf("%w: Unsupported parameters for (%s) module: %s. Supported parameters include: %s",
			adapter.ErrPreconditionFailed,
			ModuleName,
			strings.Join(unsupported, ", "),
			strings.Join(supportedParameters, ", "),
		)
	}

	var (
		req  api.InventoryRequest
		errs []error
	)
	req.URL = stringArg(raw, "url", &errs)
	req.User = stringArg(raw, "user", &errs)
	req.Password = stringArg(raw, "password", &errs)
	req.ProjectName = stringArg(raw, "project_name", &errs)
	req.ProjectID = stringArg(raw, "project_id", &errs)
	req.Layout = api.Layout(stringArg(raw, "layout", &errs))

	req.Port = inventory.DefaultPort
	if v, ok := raw["port"]; ok && v != nil {
		port, err := cast.ToIntE(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("argument port is of type %T and we were unable to convert to int: %w", v, err))
		} else {
			req.Port = port
		}
	}

	if len(errs) > 0 {
		return api.InventoryRequest{}, fmt.Errorf("%w: %w", adapter.ErrPreconditionFailed, errors.Join(errs...))
	}
	return req, nil
}

func stringArg(raw map[string]any, key string, errs *[]error) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("argument %s is of type %T and we were unable to convert to str: %w", key, v, err))
		return ""
	}
	return s
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Exit writes a successful module result.
func Exit(w io.Writer, facts map[string]any) error {
	return json.NewEncoder(w).Encode(facts)
}

// Fail writes a failed module result. Secrets are masked in msg and exception.
func Fail(w io.Writer, msg, exception string, secrets ...string) error {
	payload := map[string]any{
		"failed": true,
		"msg":    mask(msg, secrets),
	}
	if exception != "" {
		payload["exception"] = mask(exception, secrets)
	}
	return json.NewEncoder(w).Encode(payload)
}

func mask(s string, secrets []string) string {
	for _, secret := range secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, noLogMask)
		}
	}
	return s
}

// Runner executes the module against a fetcher.
type Runner struct {
	fetcher       Fetcher
	defaultLayout api.Layout
	logger        *slog.Logger
}

// NewRunner creates a module runner. defaultLayout applies when the arguments
// do not name one.
func NewRunner(fetcher Fetcher, defaultLayout api.Layout, logger *slog.Logger) *Runner {
	return &Runner{
		fetcher:       fetcher,
		defaultLayout: defaultLayout,
		logger:        logger.With(slog.String("component", "ansible")),
	}
}

// Run parses args, fetches the inventory and writes the module result to out.
// It returns the process exit code.
func (r *Runner) Run(ctx context.Context, args io.Reader, out io.Writer) int {
	req, err := ParseArgs(args)
	if err != nil {
		return r.fail(out, preconditionMessage(err), "")
	}

	if err := adapter.ValidateInventoryRequest(req); err != nil {
		return r.fail(out, preconditionMessage(err), "", req.Password)
	}

	layout := req.Layout
	if layout == "" {
		layout = r.defaultLayout
	}

	conn, selector := adapter.AdaptInventoryRequest(req)
	result, err := r.fetcher.Fetch(ctx, conn, selector)
	if err != nil {
		var depErr *inventory.DependencyError
		if errors.As(err, &depErr) {
			msg := fmt.Sprintf("Failed to import the required Go library (%s) on this host.", depErr.Library)
			return r.fail(out, msg, depErr.Trace, req.Password)
		}
		return r.fail(out, err.Error(), "", req.Password)
	}

	facts := adapter.AdaptResultToAPI(result).Facts(layout)
	if err := Exit(out, facts); err != nil {
		r.logger.Error("failed to write module result", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

// preconditionMessage strips the sentinel prefix so the message reads like the
// framework's own argument validation.
func preconditionMessage(err error) string {
	return strings.TrimPrefix(err.Error(), adapter.ErrPreconditionFailed.Error()+": ")
}

func (r *Runner) fail(out io.Writer, msg, exception string, secrets ...string) int {
	r.logger.Debug("module failed", slog.String("msg", mask(msg, secrets)))
	if err := Fail(out, msg, exception, secrets...); err != nil {
		r.logger.Error("failed to write module result", slog.String("error", err.Error()))
	}
	return 1
}
