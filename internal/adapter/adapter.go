package adapter

import (
	"errors"
	"fmt"

	"github.com/terabiome/gns3facts/internal/api"
	"github.com/terabiome/gns3facts/internal/inventory"
)

// ErrPreconditionFailed is returned when a request is rejected before the fetcher runs.
var ErrPreconditionFailed = errors.New("precondition failed")

// ValidateInventoryRequest checks the parameters the fetcher relies on its caller for.
func ValidateInventoryRequest(req api.InventoryRequest) error {
	if req.URL == "" {
		return fmt.Errorf("%w: missing required arguments: url", ErrPreconditionFailed)
	}
	if req.ProjectName == "" && req.ProjectID == "" {
		return fmt.Errorf("%w: one of the following is required: project_name, project_id", ErrPreconditionFailed)
	}
	if req.Port < 0 || req.Port > 65535 {
		return fmt.Errorf("%w: port %d is out of range", ErrPreconditionFailed, req.Port)
	}
	if req.Layout != "" && !req.Layout.Valid() {
		return fmt.Errorf("%w: invalid layout %q (valid: %s, %s)", ErrPreconditionFailed, req.Layout, api.LAYOUT_NESTED, api.LAYOUT_LEGACY)
	}
	return nil
}

// AdaptInventoryRequest converts an API contract to fetcher params
func AdaptInventoryRequest(req api.InventoryRequest) (inventory.ConnectionParameters, inventory.ProjectSelector) {
	port := req.Port
	if port == 0 {
		port = inventory.DefaultPort
	}

	conn := inventory.ConnectionParameters{
		URL:      req.URL,
		Port:     port,
		User:     req.User,
		Password: req.Password,
	}
	selector := inventory.ProjectSelector{
		Name: req.ProjectName,
		ID:   req.ProjectID,
	}
	return conn, selector
}

// AdaptResultToAPI converts a fetcher result to the API response
func AdaptResultToAPI(result *inventory.Result) api.NodesInventoryResponse {
	nodes := make(map[string]inventory.NodeFacts, len(result.Nodes))
	for name, facts := range result.Nodes {
		nodes[name] = facts
	}
	return api.NodesInventoryResponse{
		Changed:        result.Changed,
		NodesInventory: nodes,
		TotalNodes:     result.TotalNodes,
	}
}
