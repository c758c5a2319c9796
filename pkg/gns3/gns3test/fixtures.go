package gns3test

import (
	"github.com/google/uuid"
	"github.com/terabiome/gns3facts/pkg/gns3"
)

// NewNode returns a started qemu node of projectID with the given properties.
func NewNode(projectID, name string, console int, properties any) gns3.Node {
	nodeDirectory := "project-files/qemu/" + name
	portNameFormat := "Ethernet{0}"
	firstPort := "Ethernet0"
	labelX, labelY := -4, -25

	return gns3.Node{
		Name:          name,
		NodeID:        uuid.NewString(),
		ProjectID:     projectID,
		ComputeID:     "local",
		NodeType:      "qemu",
		NodeDirectory: &nodeDirectory,
		X:             -150,
		Y:             20,
		Z:             1,
		Height:        48,
		Width:         66,
		Symbol:        ":/symbols/router.svg",
		Label: gns3.Label{
			Text:  name,
			Style: "font-family: TypeWriter;font-size: 10.0;font-weight: bold;fill: #000000;fill-opacity: 1.0;",
			X:     &labelX,
			Y:     &labelY,
		},
		Status:      "started",
		Console:     &console,
		ConsoleHost: "127.0.0.1",
		ConsoleType: "telnet",
		Ports: []gns3.Port{
			{
				Name:          firstPort,
				ShortName:     "e0",
				AdapterNumber: 0,
				PortNumber:    0,
				LinkType:      "ethernet",
				DataLinkTypes: map[string]string{"Ethernet": "DLT_EN10MB"},
			},
		},
		PortNameFormat:  portNameFormat,
		PortSegmentSize: 0,
		FirstPortName:   &firstPort,
		CustomAdapters:  []map[string]any{},
		Properties:      properties,
	}
}

// NewProject returns a project with a random ID holding nodes built by build.
func NewProject(name string, build func(projectID string) []gns3.Node) Project {
	projectID := uuid.NewString()

	var nodes []gns3.Node
	if build != nil {
		nodes = build(projectID)
	}

	return Project{
		Info: gns3.ProjectInfo{
			ProjectID:   projectID,
			Name:        name,
			Status:      "opened",
			SceneHeight: 1000,
			SceneWidth:  2000,
		},
		Nodes: nodes,
	}
}
