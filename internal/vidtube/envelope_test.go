package vidtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInto_StatusCodeEnvelope(t *testing.T) {
	body := []byte(`{"statusCode":200,"data":{"_id":"v1","title":"First"},"message":"ok","success":true}`)
	var video Video
	require.NoError(t, decodeInto(body, &video))
	assert.Equal(t, "v1", video.ID)
	assert.Equal(t, "First", video.Title)
}

func TestDecodeInto_DocsWrapper(t *testing.T) {
	body := []byte(`{"data":{"docs":[{"_id":"v1"},{"_id":"v2"}],"totalDocs":2,"page":1}}`)
	var videos []Video
	require.NoError(t, decodeInto(body, &videos))
	require.Len(t, videos, 2)
	assert.Equal(t, "v2", videos[1].ID)
}

func TestDecodeInto_BareArray(t *testing.T) {
	body := []byte(`[{"_id":"c1","content":"nice"}]`)
	var comments []Comment
	require.NoError(t, decodeInto(body, &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Content)
}

func TestDecodeInto_EmptyBodyIsNoop(t *testing.T) {
	var video Video
	require.NoError(t, decodeInto(nil, &video))
	assert.Empty(t, video.ID)
}

func TestDecodeInto_UnrecognizedListShapeErrors(t *testing.T) {
	body := []byte(`{"data":{"weird":true}}`)
	var videos []Video
	require.Error(t, decodeInto(body, &videos))
}

func TestOwnerRef_AcceptsStringAndObject(t *testing.T) {
	var v Video
	require.NoError(t, decodeInto([]byte(`{"data":{"_id":"v1","owner":"u42"}}`), &v))
	assert.Equal(t, "u42", v.Owner.ID)

	require.NoError(t, decodeInto([]byte(`{"data":{"_id":"v1","owner":{"_id":"u42","username":"ada"}}}`), &v))
	assert.Equal(t, "ada", v.Owner.Username)
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "not found", serverMessage([]byte(`{"statusCode":404,"message":"not found"}`)))
	assert.Empty(t, serverMessage([]byte(`garbage`)))
}
