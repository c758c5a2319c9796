package templator

// TemplateInventory is the engine name of the Ansible inventory template.
const TemplateInventory = "inventory"

// DefaultInventoryTemplate renders an INI inventory with one host per node,
// reachable through its console.
const DefaultInventoryTemplate = `[{{ .Group }}]
{{- range .Hosts }}
{{ .Name }} ansible_host={{ .ConsoleHost }}{{ if .ConsolePort }} ansible_port={{ .ConsolePort }}{{ end }} node_id={{ .NodeID }} node_type={{ .NodeType }} status={{ .Status }}
{{- end }}

[{{ .Group }}:vars]
total_nodes={{ .TotalNodes }}
`

type InventoryHost struct {
	Name        string
	NodeID      string
	NodeType    string
	Status      string
	ConsoleHost string
	ConsolePort int
}

type InventoryTemplatePlaceholder struct {
	Group      string
	TotalNodes int
	Hosts      []InventoryHost
}
