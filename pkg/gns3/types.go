package gns3

// Version is the payload of GET /v2/version.
type Version struct {
	Version string `json:"version"`
	Local   bool   `json:"local"`
}

// ProjectInfo is the project record returned by the projects endpoints.
type ProjectInfo struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Path        string `json:"path,omitempty"`
	Filename    string `json:"filename,omitempty"`
	AutoStart   bool   `json:"auto_start"`
	AutoOpen    bool   `json:"auto_open"`
	AutoClose   bool   `json:"auto_close"`
	SceneHeight int    `json:"scene_height"`
	SceneWidth  int    `json:"scene_width"`
}

// Label is the text label drawn next to a node.
type Label struct {
	Rotation int    `json:"rotation" yaml:"rotation"`
	Style    string `json:"style" yaml:"style"`
	Text     string `json:"text" yaml:"text"`
	X        *int   `json:"x" yaml:"x"`
	Y        *int   `json:"y" yaml:"y"`
}

// Port is a single network port exposed by a node.
type Port struct {
	Name          string            `json:"name" yaml:"name"`
	ShortName     string            `json:"short_name" yaml:"short_name"`
	AdapterNumber int               `json:"adapter_number" yaml:"adapter_number"`
	PortNumber    int               `json:"port_number" yaml:"port_number"`
	LinkType      string            `json:"link_type" yaml:"link_type"`
	DataLinkTypes map[string]string `json:"data_link_types" yaml:"data_link_types"`
	AdapterType   string            `json:"adapter_type,omitempty" yaml:"adapter_type,omitempty"`
	MacAddress    string            `json:"mac_address,omitempty" yaml:"mac_address,omitempty"`
}

// Node is a node as returned by GET /v2/projects/{project_id}/nodes.
// Nullable server fields are pointers so that null survives a round trip.
type Node struct {
	Name      string `json:"name"`
	NodeID    string `json:"node_id"`
	ProjectID string `json:"project_id"`
	ComputeID string `json:"compute_id"`
	NodeType  string `json:"node_type"`

	TemplateID *string `json:"template_id"`
	// Template is the template name; the server does not always send it.
	Template *string `json:"template"`

	NodeDirectory *string `json:"node_directory"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Z             int     `json:"z"`
	Height        int     `json:"height"`
	Width         int     `json:"width"`
	Symbol        string  `json:"symbol"`
	Label         Label   `json:"label"`

	Status           string  `json:"status"`
	Console          *int    `json:"console"`
	ConsoleHost      string  `json:"console_host"`
	ConsoleType      string  `json:"console_type"`
	ConsoleAutoStart bool    `json:"console_auto_start"`
	CommandLine      *string `json:"command_line"`
	Locked           bool    `json:"locked"`

	Ports           []Port           `json:"ports"`
	PortNameFormat  string           `json:"port_name_format"`
	PortSegmentSize int              `json:"port_segment_size"`
	FirstPortName   *string          `json:"first_port_name"`
	CustomAdapters  []map[string]any `json:"custom_adapters"`

	// Properties holds emulator specific settings. It is left untyped because
	// its shape depends on node_type and the server may send null.
	Properties any `json:"properties"`
}
