package api

import "github.com/terabiome/gns3facts/internal/inventory"

// Layout selects how node facts are placed in a NodesInventoryResponse.
type Layout string

const (
	// LAYOUT_NESTED puts node facts under "nodes_inventory".
	LAYOUT_NESTED Layout = "nested"
	// LAYOUT_LEGACY puts one top-level key per node and leaves "nodes_inventory" null.
	LAYOUT_LEGACY Layout = "legacy"
)

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	return l == LAYOUT_NESTED || l == LAYOUT_LEGACY
}

// InventoryRequest contains the parameters for retrieving the nodes of a project.
type InventoryRequest struct {
	URL         string `json:"url" yaml:"url"`
	Port        int    `json:"port" yaml:"port"`
	User        string `json:"user,omitempty" yaml:"user,omitempty"`
	Password    string `json:"password,omitempty" yaml:"password,omitempty"`
	ProjectName string `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	ProjectID   string `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Layout      Layout `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// NodesInventoryResponse is the result of an inventory request.
type NodesInventoryResponse struct {
	Changed        bool                           `json:"changed" yaml:"changed"`
	NodesInventory map[string]inventory.NodeFacts `json:"nodes_inventory" yaml:"nodes_inventory"`
	TotalNodes     int                            `json:"total_nodes" yaml:"total_nodes"`
}

// Facts builds the result mapping handed to the automation framework.
func (r NodesInventoryResponse) Facts(layout Layout) map[string]any {
	if layout != LAYOUT_LEGACY {
		return map[string]any{
			"changed":         r.Changed,
			"nodes_inventory": r.NodesInventory,
			"total_nodes":     r.TotalNodes,
		}
	}

	facts := make(map[string]any, len(r.NodesInventory)+3)
	for name, node := range r.NodesInventory {
		facts[name] = node
	}
	// reserved keys win over nodes that happen to share their name
	facts["changed"] = r.Changed
	facts["nodes_inventory"] = nil
	facts["total_nodes"] = r.TotalNodes
	return facts
}

// ServerVersionResponse is the version reported by a GNS3 server.
type ServerVersionResponse struct {
	Server  string `json:"server" yaml:"server"`
	Version string `json:"version" yaml:"version"`
	Local   bool   `json:"local" yaml:"local"`
}
