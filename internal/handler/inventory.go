package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/terabiome/gns3facts/internal/adapter"
	"github.com/terabiome/gns3facts/internal/api"
	"github.com/terabiome/gns3facts/internal/inventory"
	"gopkg.in/yaml.v3"
)

// Fetcher retrieves the inventory of a project.
type Fetcher interface {
	Fetch(ctx context.Context, conn inventory.ConnectionParameters, selector inventory.ProjectSelector) (*inventory.Result, error)
}

// Inventory handles node inventory HTTP requests
type Inventory struct {
	fetcher       Fetcher
	connect       inventory.ConnectFunc
	defaultLayout api.Layout
	logger        *slog.Logger
}

// NewInventory creates a new Inventory handler
func NewInventory(fetcher Fetcher, connect inventory.ConnectFunc, defaultLayout api.Layout, logger *slog.Logger) *Inventory {
	return &Inventory{
		fetcher:       fetcher,
		connect:       connect,
		defaultLayout: defaultLayout,
		logger:        logger,
	}
}

// Nodes handles POST /inventory/nodes requests to retrieve the nodes of a project
func (h *Inventory) Nodes(writer http.ResponseWriter, request *http.Request) {
	var inventoryRequest api.InventoryRequest
	if err := parseBodyAndHandleError(writer, request, &inventoryRequest); err != nil {
		return
	}

	if err := adapter.ValidateInventoryRequest(inventoryRequest); err != nil {
		writeResult(writer, http.StatusBadRequest, GenericResponse{
			Body:    nil,
			Message: "invalid inventory request",
			Error:   err.Error(),
		})
		return
	}

	layout := inventoryRequest.Layout
	if layout == "" {
		layout = h.defaultLayout
	}

	// Adapt API contract to fetcher params
	conn, selector := adapter.AdaptInventoryRequest(inventoryRequest)

	result, err := h.fetcher.Fetch(request.Context(), conn, selector)
	if err != nil {
		statusCode := http.StatusBadGateway
		if errors.Is(err, inventory.ErrMissingDependency) {
			statusCode = http.StatusInternalServerError
		}
		writeResult(writer, statusCode, GenericResponse{
			Body:    nil,
			Message: "failed to retrieve node inventory",
			Error:   err.Error(),
		})
		return
	}

	writeResult(writer, http.StatusOK, GenericResponse{
		Body:    adapter.AdaptResultToAPI(result).Facts(layout),
		Message: "retrieved node inventory successfully",
	})
}

// ServerVersion handles GET /server/version?url=&port= requests. Credentials,
// if any, are taken from the request's basic auth header.
func (h *Inventory) ServerVersion(writer http.ResponseWriter, request *http.Request) {
	queries := request.URL.Query()

	serverURL := queries.Get("url")
	if serverURL == "" {
		writeResult(writer, http.StatusBadRequest, GenericResponse{
			Body:    nil,
			Message: "missing url query parameter",
		})
		return
	}

	port := inventory.DefaultPort
	if rawPort := queries.Get("port"); rawPort != "" {
		parsed, err := strconv.Atoi(rawPort)
		if err != nil || parsed <= 0 || parsed > 65535 {
			writeResult(writer, http.StatusBadRequest, GenericResponse{
				Body:    nil,
				Message: "invalid port query parameter",
			})
			return
		}
		port = parsed
	}

	if h.connect == nil {
		writeResult(writer, http.StatusInternalServerError, GenericResponse{
			Body:    nil,
			Message: "failed to query server version",
			Error:   inventory.ErrMissingDependency.Error(),
		})
		return
	}

	user, password, _ := request.BasicAuth()
	conn := inventory.ConnectionParameters{URL: serverURL, Port: port, User: user, Password: password}
	connector := h.connect(conn.ServerURL(), conn.User, conn.Password)

	version, err := connector.ServerVersion(request.Context())
	if err != nil {
		h.logger.Warn("failed to query server version",
			slog.Any("server", conn),
			slog.String("error", err.Error()),
		)
		writeResult(writer, http.StatusBadGateway, GenericResponse{
			Body:    nil,
			Message: "failed to query server version",
			Error:   err.Error(),
		})
		return
	}

	writeResult(writer, http.StatusOK, GenericResponse{
		Body: api.ServerVersionResponse{
			Server:  connector.BaseURL(),
			Version: version.Version,
			Local:   version.Local,
		},
		Message: "retrieved server version successfully",
	})
}

// FormatRequest handles GET /format?format=json|yaml requests returning an example inventory request
func (h *Inventory) FormatRequest(writer http.ResponseWriter, request *http.Request) {
	serializerMap := map[string]struct {
		contentType string
		serialize   func(any) ([]byte, error)
	}{
		"json": {"application/json", func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }},
		"yaml": {"application/yaml", yaml.Marshal},
	}

	format := request.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	serializer, ok := serializerMap[format]
	if !ok {
		writeResult(writer, http.StatusNotFound, GenericResponse{
			Body:    nil,
			Message: "no matching serializer to format request",
		})
		return
	}

	example := api.InventoryRequest{
		URL:         "http://localhost",
		Port:        inventory.DefaultPort,
		ProjectName: "test_lab",
		Layout:      h.defaultLayout,
	}

	outputData, err := serializer.serialize(example)
	if err != nil {
		writeResult(writer, http.StatusInternalServerError, GenericResponse{
			Body:    nil,
			Message: "failed to format request",
			Error:   err.Error(),
		})
		return
	}

	writeBytes(writer, http.StatusOK, serializer.contentType, outputData)
}
