package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terabiome/gns3facts/internal/api"
	"github.com/terabiome/gns3facts/internal/inventory"
)

func TestValidateInventoryRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     api.InventoryRequest
		wantErr string
	}{
		{
			name: "by name",
			req:  api.InventoryRequest{URL: "http://localhost", ProjectName: "lab"},
		},
		{
			name: "by id with legacy layout",
			req:  api.InventoryRequest{URL: "http://localhost", ProjectID: "abc", Layout: api.LAYOUT_LEGACY},
		},
		{
			name:    "missing url",
			req:     api.InventoryRequest{ProjectName: "lab"},
			wantErr: "missing required arguments: url",
		},
		{
			name:    "no project",
			req:     api.InventoryRequest{URL: "http://localhost"},
			wantErr: "one of the following is required: project_name, project_id",
		},
		{
			name:    "port out of range",
			req:     api.InventoryRequest{URL: "http://localhost", ProjectName: "lab", Port: 70000},
			wantErr: "port 70000 is out of range",
		},
		{
			name:    "unknown layout",
			req:     api.InventoryRequest{URL: "http://localhost", ProjectName: "lab", Layout: "flat"},
			wantErr: `invalid layout "flat"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInventoryRequest(tt.req)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPreconditionFailed))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAdaptInventoryRequest(t *testing.T) {
	t.Run("defaults port", func(t *testing.T) {
		conn, selector := AdaptInventoryRequest(api.InventoryRequest{
			URL:         "http://gns3.lab",
			User:        "admin",
			Password:    "pw",
			ProjectName: "lab",
		})

		assert.Equal(t, inventory.ConnectionParameters{
			URL:      "http://gns3.lab",
			Port:     inventory.DefaultPort,
			User:     "admin",
			Password: "pw",
		}, conn)
		assert.Equal(t, inventory.ProjectSelector{Name: "lab"}, selector)
		assert.Equal(t, "http://gns3.lab:3080", conn.ServerURL())
	})

	t.Run("keeps explicit port", func(t *testing.T) {
		conn, selector := AdaptInventoryRequest(api.InventoryRequest{URL: "http://gns3.lab", Port: 8080, ProjectID: "abc"})

		assert.Equal(t, 8080, conn.Port)
		assert.Equal(t, "abc", selector.ID)
	})
}

func TestAdaptResultToAPI(t *testing.T) {
	result := &inventory.Result{
		Nodes: map[string]inventory.NodeFacts{
			"R1": {NodeID: "n1"},
			"R2": {NodeID: "n2"},
		},
		TotalNodes: 2,
	}

	response := AdaptResultToAPI(result)

	assert.False(t, response.Changed)
	assert.Equal(t, 2, response.TotalNodes)
	assert.Equal(t, result.Nodes, response.NodesInventory)
}
