package inventory

import "github.com/terabiome/gns3facts/pkg/gns3"

// NodeFacts is the flattened view of a node handed back to the caller.
type NodeFacts struct {
	ProjectID        string           `json:"project_id" yaml:"project_id"`
	NodeID           string           `json:"node_id" yaml:"node_id"`
	ComputeID        string           `json:"compute_id" yaml:"compute_id"`
	NodeType         string           `json:"node_type" yaml:"node_type"`
	TemplateID       *string          `json:"template_id" yaml:"template_id"`
	Template         *string          `json:"template" yaml:"template"`
	NodeDirectory    *string          `json:"node_directory" yaml:"node_directory"`
	Status           string           `json:"status" yaml:"status"`
	Ports            []gns3.Port      `json:"ports" yaml:"ports"`
	PortNameFormat   string           `json:"port_name_format" yaml:"port_name_format"`
	PortSegmentSize  int              `json:"port_segment_size" yaml:"port_segment_size"`
	FirstPortName    *string          `json:"first_port_name" yaml:"first_port_name"`
	Properties       any              `json:"properties" yaml:"properties"`
	Locked           bool             `json:"locked" yaml:"locked"`
	Label            gns3.Label       `json:"label" yaml:"label"`
	Console          *int             `json:"console" yaml:"console"`
	ConsoleHost      string           `json:"console_host" yaml:"console_host"`
	ConsoleAutoStart bool             `json:"console_auto_start" yaml:"console_auto_start"`
	CommandLine      *string          `json:"command_line" yaml:"command_line"`
	CustomAdapters   []map[string]any `json:"custom_adapters" yaml:"custom_adapters"`
	Height           int              `json:"height" yaml:"height"`
	Width            int              `json:"width" yaml:"width"`
	Symbol           string           `json:"symbol" yaml:"symbol"`
	X                int              `json:"x" yaml:"x"`
	Y                int              `json:"y" yaml:"y"`
	Z                int              `json:"z" yaml:"z"`
}

// FactsFromNode copies the node fields verbatim. Properties go through
// DiskImageDefaults; the node itself is left untouched.
func FactsFromNode(node gns3.Node) NodeFacts {
	return NodeFacts{
		ProjectID:        node.ProjectID,
		NodeID:           node.NodeID,
		ComputeID:        node.ComputeID,
		NodeType:         node.NodeType,
		TemplateID:       node.TemplateID,
		Template:         node.Template,
		NodeDirectory:    node.NodeDirectory,
		Status:           node.Status,
		Ports:            node.Ports,
		PortNameFormat:   node.PortNameFormat,
		PortSegmentSize:  node.PortSegmentSize,
		FirstPortName:    node.FirstPortName,
		Properties:       DiskImageDefaults(node.Properties),
		Locked:           node.Locked,
		Label:            node.Label,
		Console:          node.Console,
		ConsoleHost:      node.ConsoleHost,
		ConsoleAutoStart: node.ConsoleAutoStart,
		CommandLine:      node.CommandLine,
		CustomAdapters:   node.CustomAdapters,
		Height:           node.Height,
		Width:            node.Width,
		Symbol:           node.Symbol,
		X:                node.X,
		Y:                node.Y,
		Z:                node.Z,
	}
}

// diskImageNames maps the disk image properties of qemu nodes to the file
// name the server gives the disk inside the node directory.
var diskImageNames = []struct {
	key      string
	filename string
}{
	{key: "hda_disk_image", filename: "hda_disk.qcow2"},
	{key: "hdb_disk_image", filename: "hdb_disk.qcow2"},
	{key: "hdc_disk_image", filename: "hdc_disk.qcow2"},
	{key: "hdd_disk_image", filename: "hdd_disk.qcow2"},
}

// DiskImageDefaults returns properties with a "<key>_real" entry for every
// hdX_disk_image key holding a non-empty string. A mapping is copied before
// being augmented; any other value is returned unchanged.
func DiskImageDefaults(properties any) any {
	props, ok := properties.(map[string]any)
	if !ok {
		return properties
	}

	out := make(map[string]any, len(props)+len(diskImageNames))
	for k, v := range props {
		out[k] = v
	}

	for _, disk := range diskImageNames {
		if image, ok := props[disk.key].(string); ok && image != "" {
			out[disk.key+"_real"] = disk.filename
		}
	}
	return out
}
