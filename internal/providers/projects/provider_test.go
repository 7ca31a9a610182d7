package projects

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/media"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol/protocoltest"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectJSON = `{"id":"p1","name":"Granny Square","patternNotation":"ch4, 12 dc","isFavorite":false,"createdAt":"2026-03-01T10:00:00Z"}`

func newProvider(t *testing.T) (*Provider, *protocoltest.Server) {
	t.Helper()
	server := protocoltest.NewServer(t)
	codec := media.NewCodec(media.DefaultMaxDimension, media.DefaultQuality, nil, nil)
	return NewProvider(server.Client(t, nil, false), codec, nil), server
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	return img
}

func ptr[T any](v T) *T { return &v }

func TestList(t *testing.T) {
	p, server := newProvider(t)
	server.On("Projects", `{"data":{"projects":[`+projectJSON+`,{"id":"p2","name":"Beanie","isFavorite":true}]}}`)

	projects, err := p.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "p1", projects[0].ID)
	assert.True(t, projects[1].IsFavorite)
}

func TestList_Empty(t *testing.T) {
	p, server := newProvider(t)
	server.On("Projects", `{"data":{"projects":[]}}`)

	projects, err := p.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestGet(t *testing.T) {
	p, server := newProvider(t)
	server.On("Project", `{"data":{"project":`+projectJSON+`}}`)

	project, err := p.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Granny Square", project.Name)
	assert.Equal(t, "ch4, 12 dc", *project.PatternNotation)

	req, _ := server.Last()
	assert.Equal(t, "p1", req.Variables["projectId"])
}

func TestGet_TimestampsWithoutOffset(t *testing.T) {
	p, server := newProvider(t)
	server.On("Project", `{"data":{"project":{"id":"p1","name":"Cowl","isFavorite":false,"createdAt":"2025-01-15T10:30:00.123456","updatedAt":"2025-01-16 08:00:00"}}}`)

	project, err := p.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, project.CreatedAt)
	require.NotNil(t, project.UpdatedAt)
	assert.Equal(t, 15, project.CreatedAt.Day())
	assert.Equal(t, 8, project.UpdatedAt.Hour())
	assert.True(t, project.UpdatedAt.After(project.CreatedAt.Time))
}

func TestGet_NotFound(t *testing.T) {
	p, server := newProvider(t)
	server.On("Project", `{"data":{"project":null}}`)

	_, err := p.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_InvalidID(t *testing.T) {
	p, server := newProvider(t)

	_, err := p.Get(context.Background(), "../p1")
	assert.Error(t, err)
	assert.Empty(t, server.Requests())
}

func TestCreate_SendsNulls(t *testing.T) {
	p, server := newProvider(t)
	server.On("CreateProject", `{"data":{"createProject":`+projectJSON+`}}`)

	form := types.PatternForm{Name: "Granny Square", Notation: "ch4, 12 dc"}
	project, err := p.Create(context.Background(), form.ProjectInput())
	require.NoError(t, err)
	assert.Equal(t, "p1", project.ID)

	req, _ := server.Last()
	input := req.Variables["input"].(map[string]interface{})
	assert.Equal(t, "Granny Square", input["name"])
	assert.Equal(t, "ch4, 12 dc", input["patternNotation"])
	assert.Contains(t, input, "materials")
	assert.Nil(t, input["materials"])
	assert.Equal(t, false, input["isFavorite"])
}

func TestCreate_RequiresName(t *testing.T) {
	p, server := newProvider(t)

	_, err := p.Create(context.Background(), types.ProjectInput{})
	assert.Error(t, err)
	_, err = p.Create(context.Background(), types.ProjectInput{Name: ptr("")})
	assert.Error(t, err)
	assert.Empty(t, server.Requests())
}

func TestUpdate_OnlySetFields(t *testing.T) {
	p, server := newProvider(t)
	server.On("UpdateProject", `{"data":{"updateProject":`+projectJSON+`}}`)

	_, err := p.Update(context.Background(), "p1", types.ProjectInput{
		Materials:  ptr("4mm hook"),
		IsFavorite: ptr(true),
	})
	require.NoError(t, err)

	req, _ := server.Last()
	assert.Equal(t, "p1", req.Variables["projectId"])
	input := req.Variables["input"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"materials": "4mm hook", "isFavorite": true}, input)
}

func TestDelete(t *testing.T) {
	p, server := newProvider(t)
	server.On("DeleteProject", `{"data":{"deleteProject":true}}`)
	require.NoError(t, p.Delete(context.Background(), "p1"))

	server.On("DeleteProject", `{"data":{"deleteProject":false}}`)
	assert.ErrorIs(t, p.Delete(context.Background(), "p1"), ErrNotFound)
}

func TestDelete_ServerError(t *testing.T) {
	p, server := newProvider(t)
	server.OnStatus("DeleteProject", 503, "")

	err := p.Delete(context.Background(), "p1")
	assert.ErrorIs(t, err, protocol.ErrHTTPStatus)
	assert.Equal(t, 503, protocol.StatusCode(err))
}

func TestImages_RoundTripThroughCreate(t *testing.T) {
	p, server := newProvider(t)

	in := types.ProjectInput{Name: ptr("Amigurumi")}
	require.NoError(t, p.AttachImages(&in, []image.Image{solid(40, 20), solid(10, 30)}))
	require.NotNil(t, in.ImageData)

	var entries []string
	require.NoError(t, sonic.UnmarshalString(*in.ImageData, &entries))
	assert.Len(t, entries, 2)

	response, err := sonic.MarshalString(map[string]interface{}{
		"data": map[string]interface{}{
			"createProject": map[string]interface{}{
				"id": "p9", "name": "Amigurumi", "imageData": *in.ImageData, "isFavorite": false,
			},
		},
	})
	require.NoError(t, err)
	server.On("CreateProject", response)

	project, err := p.Create(context.Background(), in)
	require.NoError(t, err)

	req, _ := server.Last()
	assert.Equal(t, *in.ImageData, req.Variables["input"].(map[string]interface{})["imageData"])

	images := p.Images(*project)
	require.Len(t, images, 2)
	assert.Equal(t, 40, images[0].Bounds().Dx())
	assert.Equal(t, 30, images[1].Bounds().Dy())
}

func TestImages_NoData(t *testing.T) {
	p, _ := newProvider(t)

	assert.Empty(t, p.Images(types.Project{}))
	assert.Empty(t, p.Images(types.Project{ImageData: ptr("not json")}))
}

func TestAttachImages_Failure(t *testing.T) {
	p, _ := newProvider(t)
	in := types.ProjectInput{}

	assert.ErrorIs(t, p.AttachImages(&in, []image.Image{nil}), ErrImagesNotEncoded)
	assert.Nil(t, in.ImageData)
}
