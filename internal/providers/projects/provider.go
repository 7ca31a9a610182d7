package projects

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/media"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/types"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/utils"
	"go.uber.org/zap"
)

const projectFields = `id name description patternNotation patternInstructions difficultyLevel materials estimatedTime imageData isFavorite createdAt updatedAt`

const (
	listQuery = `query Projects {
  projects { ` + projectFields + ` }
}`

	getQuery = `query Project($projectId: ID!) {
  project(projectId: $projectId) { ` + projectFields + ` }
}`

	createMutation = `mutation CreateProject($input: ProjectInput!) {
  createProject(input: $input) { ` + projectFields + ` }
}`

	updateMutation = `mutation UpdateProject($projectId: ID!, $input: ProjectUpdateInput!) {
  updateProject(projectId: $projectId, input: $input) { ` + projectFields + ` }
}`

	deleteMutation = `mutation DeleteProject($projectId: ID!) {
  deleteProject(projectId: $projectId)
}`
)

var (
	// ErrNotFound is returned when the server has no such project
	ErrNotFound = errors.New("project not found")
	// ErrImagesNotEncoded is returned when any attached image fails to encode
	ErrImagesNotEncoded = errors.New("images could not be encoded")
)

// Provider manages saved projects. Every read goes to the server.
type Provider struct {
	client *protocol.Client
	codec  *media.Codec
	logger *logging.Logger
}

// NewProvider creates a projects provider
func NewProvider(client *protocol.Client, codec *media.Codec, logger *logging.Logger) *Provider {
	return &Provider{
		client: client,
		codec:  codec,
		logger: logging.OrNop(logger).Named("projects"),
	}
}

// List returns the signed-in user's projects
func (p *Provider) List(ctx context.Context) ([]types.Project, error) {
	out, err := protocol.Execute[struct {
		Projects []types.Project `json:"projects"`
	}](ctx, p.client, protocol.NewOperation(listQuery, nil))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if out.Projects == nil {
		return []types.Project{}, nil
	}
	return out.Projects, nil
}

// Get fetches one project
func (p *Provider) Get(ctx context.Context, projectID string) (*types.Project, error) {
	if err := utils.ValidateID(projectID, "projectId", true); err != nil {
		return nil, err
	}

	out, err := protocol.Execute[struct {
		Project *types.Project `json:"project"`
	}](ctx, p.client, protocol.NewOperation(getQuery, idVars(projectID)))
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if out.Project == nil {
		return nil, ErrNotFound
	}
	return out.Project, nil
}

// Create saves a new project. Name is required.
func (p *Provider) Create(ctx context.Context, in types.ProjectInput) (*types.Project, error) {
	if in.Name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	vars := protocol.NewObject(protocol.F("input", protocol.ObjectValue(inputObject(in, true))))
	out, err := protocol.Execute[struct {
		CreateProject types.Project `json:"createProject"`
	}](ctx, p.client, protocol.NewOperation(createMutation, vars))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	p.logger.Info("Project created", zap.String("project_id", out.CreateProject.ID))
	return &out.CreateProject, nil
}

// Update changes the non-nil fields of in
func (p *Provider) Update(ctx context.Context, projectID string, in types.ProjectInput) (*types.Project, error) {
	if err := utils.ValidateID(projectID, "projectId", true); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	vars := idVars(projectID).Set("input", protocol.ObjectValue(inputObject(in, false)))
	out, err := protocol.Execute[struct {
		UpdateProject *types.Project `json:"updateProject"`
	}](ctx, p.client, protocol.NewOperation(updateMutation, vars))
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if out.UpdateProject == nil {
		return nil, ErrNotFound
	}
	return out.UpdateProject, nil
}

// Delete removes a project. A false answer from the server is ErrNotFound.
func (p *Provider) Delete(ctx context.Context, projectID string) error {
	if err := utils.ValidateID(projectID, "projectId", true); err != nil {
		return err
	}

	out, err := protocol.Execute[struct {
		DeleteProject bool `json:"deleteProject"`
	}](ctx, p.client, protocol.NewOperation(deleteMutation, idVars(projectID)))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if !out.DeleteProject {
		return ErrNotFound
	}
	p.logger.Info("Project deleted", zap.String("project_id", projectID))
	return nil
}

// AttachImages encodes images into in.ImageData, replacing any previous
// value. Encode from decoded working copies to avoid compounding loss.
func (p *Provider) AttachImages(in *types.ProjectInput, images []image.Image) error {
	encoded, ok := p.codec.EncodeAll(images)
	if !ok {
		return ErrImagesNotEncoded
	}
	in.ImageData = &encoded
	return nil
}

// Images decodes a project's attached images; undecodable entries are skipped
func (p *Provider) Images(project types.Project) []image.Image {
	if project.ImageData == nil || *project.ImageData == "" {
		return []image.Image{}
	}
	return p.codec.DecodeAll(*project.ImageData)
}

func idVars(projectID string) *protocol.Object {
	return protocol.NewObject(protocol.F("projectId", protocol.String(projectID)))
}

// inputObject builds the input variable; with nulls set, nil fields are sent
// as null rather than omitted
func inputObject(in types.ProjectInput, nulls bool) *protocol.Object {
	obj := protocol.NewObject()
	str := func(key string, v *string) {
		if v != nil || nulls {
			obj.Set(key, protocol.OptionalString(v))
		}
	}
	str("name", in.Name)
	str("description", in.Description)
	str("patternNotation", in.PatternNotation)
	str("patternInstructions", in.PatternInstructions)
	str("difficultyLevel", in.DifficultyLevel)
	str("materials", in.Materials)
	str("estimatedTime", in.EstimatedTime)
	str("imageData", in.ImageData)
	if in.IsFavorite != nil {
		obj.Set("isFavorite", protocol.Bool(*in.IsFavorite))
	} else if nulls {
		obj.Set("isFavorite", protocol.Bool(false))
	}
	return obj
}

func validateInput(in types.ProjectInput) error {
	if in.Name != nil {
		if err := utils.ValidateName(*in.Name, "name"); err != nil {
			return err
		}
	}
	if in.Description != nil {
		if err := utils.ValidateDescription(*in.Description, "description", false); err != nil {
			return err
		}
	}
	return nil
}
