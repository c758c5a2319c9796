package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/terabiome/gns3facts/internal/api"
	"github.com/terabiome/gns3facts/internal/config"
	"github.com/terabiome/gns3facts/pkg/templator"
	"gopkg.in/yaml.v3"
)

const inventoryGroup = "gns3_nodes"

// renderInventory serializes an inventory response in the requested format.
func renderInventory(cfg *config.Config, format string, layout api.Layout, response api.NodesInventoryResponse) ([]byte, error) {
	switch format {
	case "json":
		output, err := json.MarshalIndent(response.Facts(layout), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("unable to marshal response: %w", err)
		}
		return append(output, '\n'), nil
	case "yaml":
		output, err := yaml.Marshal(response.Facts(layout))
		if err != nil {
			return nil, fmt.Errorf("unable to marshal response: %w", err)
		}
		return output, nil
	case "ini":
		engine := templator.NewEngine()
		if cfg.InventoryTemplate != "" {
			if err := engine.LoadTemplate(templator.TemplateInventory, cfg.InventoryTemplate); err != nil {
				return nil, err
			}
		} else if err := engine.LoadTemplateText(templator.TemplateInventory, templator.DefaultInventoryTemplate); err != nil {
			return nil, err
		}
		return engine.RenderToBytes(templator.TemplateInventory, inventoryPlaceholder(response))
	default:
		return nil, fmt.Errorf("unsupported output format: %s (valid: json, yaml, ini)", format)
	}
}

// inventoryPlaceholder lists the nodes sorted by name so the output is stable.
func inventoryPlaceholder(response api.NodesInventoryResponse) templator.InventoryTemplatePlaceholder {
	names := make([]string, 0, len(response.NodesInventory))
	for name := range response.NodesInventory {
		names = append(names, name)
	}
	sort.Strings(names)

	hosts := make([]templator.InventoryHost, 0, len(names))
	for _, name := range names {
		node := response.NodesInventory[name]
		host := templator.InventoryHost{
			Name:        name,
			NodeID:      node.NodeID,
			NodeType:    node.NodeType,
			Status:      node.Status,
			ConsoleHost: node.ConsoleHost,
		}
		if node.Console != nil {
			host.ConsolePort = *node.Console
		}
		hosts = append(hosts, host)
	}

	return templator.InventoryTemplatePlaceholder{
		Group:      inventoryGroup,
		TotalNodes: response.TotalNodes,
		Hosts:      hosts,
	}
}
