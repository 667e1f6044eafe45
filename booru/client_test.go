package booru

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/imgdl/request"
)

func newTestServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/index.php", r.URL.Path)
		assert.Equal(t, "dapi", r.URL.Query().Get("page"))
		assert.Equal(t, "1", r.URL.Query().Get("json"))
		w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(server.URL+"/", zerolog.Nop(), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		rootURL string
		opts    []Option
		wantErr error
	}{
		{name: "valid", rootURL: "https://api.rule34.xxx"},
		{name: "trailing slash", rootURL: "https://safebooru.org/"},
		{name: "with proxy", rootURL: "https://safebooru.org", opts: []Option{WithProxy("socks5://127.0.0.1:9050")}},
		{name: "empty", rootURL: "", wantErr: request.ErrInvalidConfig},
		{name: "no scheme", rootURL: "safebooru.org", wantErr: request.ErrInvalidConfig},
		{name: "bad proxy", rootURL: "https://safebooru.org", opts: []Option{WithProxy("tcp://x:1")}, wantErr: request.ErrInvalidProxy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.rootURL, logger, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.False(t, strings.HasSuffix(client.RootURL(), "/"))
		})
	}
}

func TestBuildURL(t *testing.T) {
	client, err := NewClient("https://safebooru.org", zerolog.Nop(), WithLimit(20))
	require.NoError(t, err)

	u, err := client.buildURL(request.ListPosts, "cat", 2)
	require.NoError(t, err)
	assert.Equal(t, "https://safebooru.org/index.php?page=dapi&s=post&q=index&json=1&limit=20&pid=2&tags=cat", u)

	_, err = client.buildURL(request.ListAttributes, "cat", 0)
	assert.ErrorIs(t, err, request.ErrUnsupportedEndpoint)
	_, err = client.buildURL(request.GetPost, "cat", 0)
	assert.ErrorIs(t, err, request.ErrUnsupportedEndpoint)
}

func TestFetchPosts(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "posts.json"))
	require.NoError(t, err)
	client := newTestClient(t, newTestServer(t, body))

	posts, err := client.FetchPosts(context.Background(), "cat", 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first := posts[0]
	assert.Equal(t, int64(9123456), first.ID)
	assert.Equal(t, int64(3081), first.Directory)
	assert.Equal(t, "safe", first.Rating)
	assert.True(t, first.HasSample())
	assert.False(t, first.HasParent())
	assert.Equal(t, []string{"cat", "solo", "window"}, first.TagList())
	require.NotNil(t, first.CommentCount)
	assert.Equal(t, 2, *first.CommentCount)

	second := posts[1]
	assert.Nil(t, second.Score)
	assert.Nil(t, second.Sample)
	assert.Nil(t, second.SampleURL)
	assert.False(t, second.HasSample())
	assert.True(t, second.HasParent())
}

func TestFetchPostsEmpty(t *testing.T) {
	for name, body := range map[string]string{
		"empty body":  "",
		"whitespace":  " \n",
		"empty array": "[]",
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, newTestServer(t, []byte(body)))
			posts, err := client.FetchPosts(context.Background(), "no_such_tag", 0)
			require.NoError(t, err)
			assert.NotNil(t, posts)
			assert.Empty(t, posts)
		})
	}
}

func TestFetchPostsDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		path  string
		field string
	}{
		{
			name: "wrapped gelbooru shape",
			body: `{"@attributes":{"limit":100,"offset":0,"count":0}}`,
		},
		{
			name:  "missing hash",
			body:  `[{"id":1,"directory":1,"image":"x.png","width":1,"height":1,"rating":"safe","owner":"o","tags":"","file_url":"u"}]`,
			path:  "[0]",
			field: "hash",
		},
		{
			name:  "missing status",
			body:  `[{"id":1,"directory":1,"hash":"h","image":"x.png","width":1,"height":1,"rating":"safe","owner":"o","tags":"","file_url":"u","preview_url":"p","source":""}]`,
			path:  "[0]",
			field: "status",
		},
		{
			name:  "string directory",
			body:  `[{"id":1,"directory":"ab/cd","hash":"h","image":"x.png","width":1,"height":1,"rating":"safe","owner":"o","tags":"","file_url":"u","preview_url":"p","source":"","status":"active"}]`,
			path:  "[0]",
			field: "directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, newTestServer(t, []byte(tt.body)))
			_, err := client.FetchPosts(context.Background(), "cat", 0)

			var de *request.DecodeError
			require.True(t, errors.As(err, &de))
			if tt.field != "" {
				assert.Equal(t, tt.path, de.Path)
				assert.Equal(t, tt.field, de.Field)
			}
		})
	}
}
