package gns3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRef selects a project by name or by ID. Name takes precedence when both are set.
type ProjectRef struct {
	Name string
	ID   string
}

// Project is a handle on a server-side project bound to a connector.
// Info and Nodes are populated by Get.
type Project struct {
	ref       ProjectRef
	connector *Connector

	Info  ProjectInfo
	Nodes []Node
}

// NewProject creates a project handle. No request is made until Get.
func NewProject(connector *Connector, ref ProjectRef) *Project {
	return &Project{
		ref:       ref,
		connector: connector,
	}
}

// ID returns the resolved project ID, or the one the handle was created with.
func (p *Project) ID() string {
	if p.Info.ProjectID != "" {
		return p.Info.ProjectID
	}
	return p.ref.ID
}

// Get retrieves the project information and its nodes.
func (p *Project) Get(ctx context.Context) error {
	if p.connector == nil {
		return errors.New("project has no connector")
	}

	projectID, err := p.resolveID(ctx)
	if err != nil {
		return err
	}

	var info ProjectInfo
	if err := p.connector.Get(ctx, "/projects/"+url.PathEscape(projectID), &info); err != nil {
		return fmt.Errorf("get project %s: %w", projectID, err)
	}
	p.Info = info

	return p.GetNodes(ctx)
}

// GetNodes refreshes the node list of an already resolved project.
func (p *Project) GetNodes(ctx context.Context) error {
	projectID := p.ID()
	if projectID == "" {
		return errors.New("project id is not resolved")
	}

	var nodes []Node
	if err := p.connector.Get(ctx, "/projects/"+url.PathEscape(projectID)+"/nodes", &nodes); err != nil {
		return fmt.Errorf("get nodes of project %s: %w", projectID, err)
	}
	p.Nodes = nodes
	return nil
}

func (p *Project) resolveID(ctx context.Context) (string, error) {
	if p.ref.Name == "" {
		if p.ref.ID == "" {
			return "", errors.New("project name or id is required")
		}
		return p.ref.ID, nil
	}

	projects, err := p.connector.Projects(ctx)
	if err != nil {
		return "", fmt.Errorf("list projects: %w", err)
	}
	for _, project := range projects {
		if project.Name == p.ref.Name {
			return project.ProjectID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrProjectNotFound, p.ref.Name)
}
