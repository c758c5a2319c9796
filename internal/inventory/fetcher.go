package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/terabiome/gns3facts/pkg/gns3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// ConnectFunc opens a connector for serverURL ("<url>:<port>").
type ConnectFunc func(serverURL, user, password string) *gns3.Connector

// Connect returns a ConnectFunc backed by the gns3 client with the given options.
func Connect(opts ...gns3.Option) ConnectFunc {
	return func(serverURL, user, password string) *gns3.Connector {
		return gns3.NewConnector(serverURL, user, password, opts...)
	}
}

// Result is the inventory of a single project snapshot.
type Result struct {
	Changed    bool
	Nodes      map[string]NodeFacts
	TotalNodes int
}

// Fetcher retrieves node inventories. It holds no per-invocation state.
type Fetcher struct {
	connect ConnectFunc
	logger  *slog.Logger

	fetchCounter  metric.Int64Counter
	fetchDuration metric.Float64Histogram
}

// NewFetcher creates a Fetcher. A nil connect makes every Fetch fail with
// ErrMissingDependency.
func NewFetcher(connect ConnectFunc, logger *slog.Logger) *Fetcher {
	meter := otel.Meter("gns3facts/inventory")

	fetchCounter, err := meter.Int64Counter(
		"gns3facts.inventory.fetch",
		metric.WithDescription("Number of node inventory fetches"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		logger.Warn("failed to create fetchCounter metric", slog.String("error", err.Error()))
	}

	fetchDuration, err := meter.Float64Histogram(
		"gns3facts.inventory.fetch.duration",
		metric.WithDescription("Duration of node inventory fetches"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("failed to create fetchDuration metric", slog.String("error", err.Error()))
	}

	return &Fetcher{
		connect:       connect,
		logger:        logger.With(slog.String("component", "inventory")),
		fetchCounter:  fetchCounter,
		fetchDuration: fetchDuration,
	}
}

// Fetch connects to the server, loads the selected project and flattens its nodes.
// The caller guarantees that selector names a project.
func (f *Fetcher) Fetch(ctx context.Context, conn ConnectionParameters, selector ProjectSelector) (*Result, error) {
	if f.connect == nil {
		return nil, newDependencyError(ClientLibrary)
	}

	tracer := otel.Tracer("gns3facts/inventory")
	ctx, span := tracer.Start(ctx, "FetchInventory")
	defer span.End()

	span.SetAttributes(
		attribute.String("gns3.server", conn.ServerURL()),
		attribute.String("gns3.project.name", selector.Name),
		attribute.String("gns3.project.id", selector.ID),
	)

	startTime := time.Now()
	f.logger.Debug("fetching node inventory",
		slog.Any("server", conn),
		slog.Any("project", selector),
	)

	connector := f.connect(conn.ServerURL(), conn.User, conn.Password)

	ref := gns3.ProjectRef{ID: selector.ID}
	if selector.Name != "" {
		ref = gns3.ProjectRef{Name: selector.Name}
	}
	project := gns3.NewProject(connector, ref)

	if err := project.Get(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		f.record(ctx, startTime, "error")
		f.logger.Error("failed to retrieve project",
			slog.String("server", connector.BaseURL()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	result := &Result{
		Changed: false,
		Nodes:   make(map[string]NodeFacts, len(project.Nodes)),
	}
	for _, node := range project.Nodes {
		result.Nodes[node.Name] = FactsFromNode(node)
	}
	result.TotalNodes = len(project.Nodes)

	span.SetAttributes(attribute.Int("gns3.nodes.count", result.TotalNodes))
	f.record(ctx, startTime, "ok")

	f.logger.Info("retrieved node inventory",
		slog.String("project_id", project.ID()),
		slog.Int("total_nodes", result.TotalNodes),
	)
	return result, nil
}

func (f *Fetcher) record(ctx context.Context, startTime time.Time, outcome string) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	if f.fetchCounter != nil {
		f.fetchCounter.Add(ctx, 1, attrs)
	}
	if f.fetchDuration != nil {
		f.fetchDuration.Record(ctx, time.Since(startTime).Seconds(), attrs)
	}
}
