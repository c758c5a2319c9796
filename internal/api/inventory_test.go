package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/terabiome/gns3facts/internal/inventory"
)

func testResponse() NodesInventoryResponse {
	return NodesInventoryResponse{
		NodesInventory: map[string]inventory.NodeFacts{
			"R1": {NodeID: "n1"},
			"R2": {NodeID: "n2"},
		},
		TotalNodes: 2,
	}
}

func TestFacts_Nested(t *testing.T) {
	facts := testResponse().Facts(LAYOUT_NESTED)

	assert.Len(t, facts, 3)
	assert.Equal(t, false, facts["changed"])
	assert.Equal(t, 2, facts["total_nodes"])
	assert.Equal(t, testResponse().NodesInventory, facts["nodes_inventory"])
}

func TestFacts_Legacy(t *testing.T) {
	facts := testResponse().Facts(LAYOUT_LEGACY)

	assert.Len(t, facts, 5)
	assert.Equal(t, inventory.NodeFacts{NodeID: "n1"}, facts["R1"])
	assert.Equal(t, inventory.NodeFacts{NodeID: "n2"}, facts["R2"])
	assert.Contains(t, facts, "nodes_inventory")
	assert.Nil(t, facts["nodes_inventory"])
	assert.Equal(t, 2, facts["total_nodes"])
}

func TestFacts_LegacyReservedKeysWin(t *testing.T) {
	response := NodesInventoryResponse{
		NodesInventory: map[string]inventory.NodeFacts{
			"changed":     {NodeID: "n1"},
			"total_nodes": {NodeID: "n2"},
		},
		TotalNodes: 2,
	}

	facts := response.Facts(LAYOUT_LEGACY)

	assert.Equal(t, false, facts["changed"])
	assert.Equal(t, 2, facts["total_nodes"])
}

func TestFacts_UnknownLayoutIsNested(t *testing.T) {
	facts := testResponse().Facts("")
	assert.Contains(t, facts, "nodes_inventory")
	assert.NotContains(t, facts, "R1")
}

func TestLayout_Valid(t *testing.T) {
	assert.True(t, LAYOUT_NESTED.Valid())
	assert.True(t, LAYOUT_LEGACY.Valid())
	assert.False(t, Layout("flat").Valid())
	assert.False(t, Layout("").Valid())
}
