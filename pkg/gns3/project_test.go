package gns3_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terabiome/gns3facts/pkg/gns3"
	"github.com/terabiome/gns3facts/pkg/gns3/gns3test"
)

func twoNodeLab() gns3test.Project {
	return gns3test.NewProject("test_lab", func(projectID string) []gns3.Node {
		return []gns3.Node{
			gns3test.NewNode(projectID, "R1", 5000, map[string]any{"ram": 256}),
			gns3test.NewNode(projectID, "R2", 5001, map[string]any{"hda_disk_image": "r2.qcow2"}),
		}
	})
}

func TestProject_GetByName(t *testing.T) {
	lab := twoNodeLab()
	srv := gns3test.NewServer(t, gns3test.NewProject("other", nil), lab)

	project := gns3.NewProject(gns3.NewConnector(srv.URL, "", ""), gns3.ProjectRef{Name: "test_lab"})
	require.NoError(t, project.Get(context.Background()))

	assert.Equal(t, lab.Info.ProjectID, project.ID())
	assert.Equal(t, "test_lab", project.Info.Name)
	require.Len(t, project.Nodes, 2)
	assert.Equal(t, "R1", project.Nodes[0].Name)
	assert.Equal(t, "R2", project.Nodes[1].Name)
	assert.Equal(t, []string{
		"/v2/projects",
		"/v2/projects/" + lab.Info.ProjectID,
		"/v2/projects/" + lab.Info.ProjectID + "/nodes",
	}, srv.Requests())
}

func TestProject_GetByID(t *testing.T) {
	lab := twoNodeLab()
	srv := gns3test.NewServer(t, lab)

	project := gns3.NewProject(gns3.NewConnector(srv.URL, "", ""), gns3.ProjectRef{ID: lab.Info.ProjectID})
	require.NoError(t, project.Get(context.Background()))

	assert.Equal(t, "test_lab", project.Info.Name)
	assert.Len(t, project.Nodes, 2)
	assert.NotContains(t, srv.Requests(), "/v2/projects")
}

func TestProject_NameWinsOverID(t *testing.T) {
	lab := twoNodeLab()
	srv := gns3test.NewServer(t, lab)

	project := gns3.NewProject(gns3.NewConnector(srv.URL, "", ""), gns3.ProjectRef{Name: "test_lab", ID: "ignored"})
	require.NoError(t, project.Get(context.Background()))
	assert.Equal(t, lab.Info.ProjectID, project.ID())
}

func TestProject_NameNotFound(t *testing.T) {
	srv := gns3test.NewServer(t, twoNodeLab())

	project := gns3.NewProject(gns3.NewConnector(srv.URL, "", ""), gns3.ProjectRef{Name: "missing"})
	err := project.Get(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, gns3.ErrProjectNotFound))
	assert.Contains(t, err.Error(), "missing")
	assert.Nil(t, project.Nodes)
}

func TestProject_IDNotFound(t *testing.T) {
	srv := gns3test.NewServer(t, twoNodeLab())

	project := gns3.NewProject(gns3.NewConnector(srv.URL, "", ""), gns3.ProjectRef{ID: "f00d"})
	err := project.Get(context.Background())

	require.Error(t, err)
	assert.True(t, gns3.IsNotFound(err))

	var apiErr *gns3.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Project ID f00d doesn't exist", apiErr.Message)
}

func TestProject_EmptyRef(t *testing.T) {
	srv := gns3test.NewServer(t)

	project := gns3.NewProject(gns3.NewConnector(srv.URL, "", ""), gns3.ProjectRef{})
	require.Error(t, project.Get(context.Background()))
	assert.Empty(t, srv.Requests())
}

func TestConnector_BasicAuth(t *testing.T) {
	srv := gns3test.NewServerWithAuth(t, "admin", "s3cret", twoNodeLab())

	t.Run("rejected without credentials", func(t *testing.T) {
		_, err := gns3.NewConnector(srv.URL, "", "").ServerVersion(context.Background())

		var apiErr *gns3.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.NotContains(t, err.Error(), "s3cret")
	})

	t.Run("accepted with credentials", func(t *testing.T) {
		version, err := gns3.NewConnector(srv.URL, "admin", "s3cret").ServerVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, gns3test.ServerVersion, version.Version)
		assert.True(t, version.Local)
	})
}

func TestConnector_URLs(t *testing.T) {
	connector := gns3.NewConnector("http://localhost:3080/", "", "")
	assert.Equal(t, "http://localhost:3080", connector.BaseURL())
	assert.Equal(t, "http://localhost:3080/v2", connector.APIURL())
}

func TestConnector_Unreachable(t *testing.T) {
	srv := gns3test.NewServer(t)
	target := srv.URL
	srv.Close()

	connector := gns3.NewConnector(target, "", "", gns3.WithTimeout(time.Second))
	_, err := connector.Projects(context.Background())
	require.Error(t, err)
	assert.False(t, gns3.IsNotFound(err))
}

func TestConnector_NullProperties(t *testing.T) {
	lab := gns3test.NewProject("cloud_lab", func(projectID string) []gns3.Node {
		node := gns3test.NewNode(projectID, "Cloud1", 0, nil)
		node.NodeType = "cloud"
		node.Console = nil
		return []gns3.Node{node}
	})
	srv := gns3test.NewServer(t, lab)

	project := gns3.NewProject(gns3.NewConnector(srv.URL, "", ""), gns3.ProjectRef{ID: lab.Info.ProjectID})
	require.NoError(t, project.Get(context.Background()))
	require.Len(t, project.Nodes, 1)
	assert.Nil(t, project.Nodes[0].Properties)
	assert.Nil(t, project.Nodes[0].Console)
}
