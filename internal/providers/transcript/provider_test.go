package transcript

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/extract"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol/protocoltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videoURL = "https://www.youtube.com/watch?v=abc123"

const fetchOK = `{"data":{"fetchTranscript":{"success":true,"videoId":"abc123","transcript":"chain four, join, twelve double crochet","wordCount":6,"language":"en","thumbnailUrl":"https://img.example.com/abc123.jpg"}}}`

func newProvider(t *testing.T) (*Provider, *protocoltest.Server) {
	t.Helper()
	server := protocoltest.NewServer(t)
	return NewProvider(server.Client(t, nil, false), nil), server
}

func TestFetch(t *testing.T) {
	p, server := newProvider(t)
	server.On("FetchTranscript", fetchOK)

	result, err := p.Fetch(context.Background(), videoURL, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.WordCount)
	assert.Equal(t, 6, *result.WordCount)

	req, _ := server.Last()
	assert.Equal(t, videoURL, req.Variables["videoUrl"])
	assert.Equal(t, []interface{}{"en"}, req.Variables["languages"])
}

func TestFetch_Unsuccessful(t *testing.T) {
	p, server := newProvider(t)
	server.On("FetchTranscript", `{"data":{"fetchTranscript":{"success":false,"error":"Transcripts are disabled"}}}`)

	result, err := p.Fetch(context.Background(), videoURL, []string{"es", "en"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Transcripts are disabled", *result.Error)
}

func TestFetch_Validation(t *testing.T) {
	p, server := newProvider(t)

	_, err := p.Fetch(context.Background(), "not a url", nil)
	assert.Error(t, err)
	_, err = p.Fetch(context.Background(), videoURL, []string{"???"})
	assert.Error(t, err)
	assert.Empty(t, server.Requests())
}

func TestExtractPattern(t *testing.T) {
	p, server := newProvider(t)
	server.On("ExtractPatternFromTranscript", `{"data":{"extractPatternFromTranscript":{"success":true,"patternName":"Granny Square","patternNotation":"ch4, 12 dc","difficultyLevel":"Beginner"}}}`)

	id := "abc123"
	pattern, err := p.ExtractPattern(context.Background(), "chain four", &id, nil)
	require.NoError(t, err)
	assert.Equal(t, "Granny Square", *pattern.PatternName)

	req, _ := server.Last()
	assert.Equal(t, "abc123", req.Variables["videoId"])
	assert.Contains(t, req.Variables, "thumbnailUrl")
	assert.Nil(t, req.Variables["thumbnailUrl"])
}

func TestExtractPattern_GraphQLError(t *testing.T) {
	p, server := newProvider(t)
	server.On("ExtractPatternFromTranscript", `{"errors":[{"message":"model unavailable","path":["extractPatternFromTranscript"]}]}`)

	_, err := p.ExtractPattern(context.Background(), "chain four", nil, nil)
	assert.ErrorIs(t, err, protocol.ErrGraphQL)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestFetchAndExtract(t *testing.T) {
	p, server := newProvider(t)
	server.On("FetchTranscript", fetchOK)
	server.On("ExtractPatternFromTranscript", `{"data":{"extractPatternFromTranscript":{"success":true,"patternName":"Granny Square","materials":"  "}}}`)

	fields, result, err := p.FetchAndExtract(context.Background(), videoURL, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, extract.Fields{extract.FieldName: "Granny Square"}, fields)

	reqs := server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "https://img.example.com/abc123.jpg", reqs[1].Variables["thumbnailUrl"])
}

func TestFetchAndExtract_SharesTrace(t *testing.T) {
	tracer := tracing.New("test", nil)
	t.Cleanup(tracer.Close)

	server := protocoltest.NewServer(t)
	client := server.ClientWith(t, func(o *protocol.Options) { o.Tracer = tracer })
	p := NewProvider(client, nil)
	server.On("FetchTranscript", fetchOK)
	server.On("ExtractPatternFromTranscript", `{"data":{"extractPatternFromTranscript":{"success":true,"patternName":"Granny Square"}}}`)

	_, _, err := p.FetchAndExtract(context.Background(), videoURL, nil)
	require.NoError(t, err)

	reqs := server.Requests()
	require.Len(t, reqs, 2)
	trace := reqs[0].Header.Get(tracing.TraceHeader)
	assert.NotEmpty(t, trace)
	assert.Equal(t, trace, reqs[1].Header.Get(tracing.TraceHeader))
}

func TestFetchAndExtract_NoTranscript(t *testing.T) {
	p, server := newProvider(t)
	server.On("FetchTranscript", `{"data":{"fetchTranscript":{"success":false,"error":"not found"}}}`)

	fields, result, err := p.FetchAndExtract(context.Background(), videoURL, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, fields)
	assert.Len(t, server.Requests(), 1)
}
