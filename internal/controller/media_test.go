package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type upload struct {
	field    string
	fileName string
	content  []byte
}

func (s testServer) doMultipart(t *testing.T, path, token string, fields map[string]string, files ...upload) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.fileName)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

// newProject creates a draft through the admin api and returns its id.
func (s testServer) newProject(t *testing.T, token, slug string) string {
	t.Helper()

	w, resp := s.do(t, http.MethodPost, "/api/v1/admin/projects", token, map[string]any{"title": "Proyecto " + slug, "slug": slug})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return resp.Data.(map[string]any)["project"].(map[string]any)["id"].(string)
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func positionsOf(t *testing.T, resp util.Response) []map[string]any {
	t.Helper()

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	raw := data["positions"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.(map[string]any))
	}
	return out
}

func TestUploadImages(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "admin@renova.test", constant.UserRoleAdmin)
	projectID := s.newProject(t, token, "fachada")
	path := "/api/v1/admin/projects/" + projectID + "/images"

	w, resp := s.doMultipart(t, path, token, map[string]string{"imageType": "before", "caption": "antes"},
		upload{"files", "antes.png", pngBytes(t, 3, 2)},
		upload{"files", "detalle.png", pngBytes(t, 5, 4)},
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	images := resp.Data.(map[string]any)["images"].([]any)
	require.Len(t, images, 2)

	first := images[0].(map[string]any)
	assert.Equal(t, "before", first["imageType"])
	assert.Equal(t, "antes", first["caption"])
	assert.EqualValues(t, 3, first["width"])
	assert.EqualValues(t, 2, first["height"])
	assert.EqualValues(t, 0, first["orderIndex"])
	assert.EqualValues(t, 1, images[1].(map[string]any)["orderIndex"])

	url := first["imageUrl"].(string)
	require.True(t, strings.HasPrefix(url, "https://cdn.test/media/projects/"+projectID+"/images/"), url)
	assert.True(t, s.storage.Has(strings.TrimPrefix(url, "https://cdn.test/media/")))
}

func TestUploadImagesRejectsInvalidInput(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "admin@renova.test", constant.UserRoleAdmin)
	projectID := s.newProject(t, token, "bano")
	path := "/api/v1/admin/projects/" + projectID + "/images"

	tests := []struct {
		name   string
		fields map[string]string
		files  []upload
	}{
		{"not an image", map[string]string{"imageType": "gallery"}, []upload{{"files", "notas.png", []byte("esto no es una imagen")}}},
		{"unknown image type", map[string]string{"imageType": "panorama"}, []upload{{"files", "a.png", pngBytes(t, 1, 1)}}},
		{"no files", map[string]string{"imageType": "gallery"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := s.doMultipart(t, path, token, tt.fields, tt.files...)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.False(t, resp.Success)
		})
	}

	images, err := s.app.Repository.Image.ListByProject(context.Background(), nil, projectID)
	require.NoError(t, err)
	assert.Empty(t, images)

	w, _ := s.doMultipart(t, "/api/v1/admin/projects/missing/images", token, map[string]string{"imageType": "gallery"}, upload{"files", "a.png", pngBytes(t, 1, 1)})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateVideo(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "admin@renova.test", constant.UserRoleAdmin)
	projectID := s.newProject(t, token, "terraza")
	path := "/api/v1/admin/projects/" + projectID + "/videos"

	w, resp := s.do(t, http.MethodPost, path, token, map[string]any{"videoUrl": "https://youtu.be/dQw4w9WgXcQ", "title": "Recorrido"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	video := resp.Data.(map[string]any)["video"].(map[string]any)
	assert.Equal(t, "youtube", video["videoType"])
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", video["embedUrl"])
	assert.EqualValues(t, 0, video["orderIndex"])

	w, _ = s.do(t, http.MethodPost, path, token, map[string]any{"videoUrl": "https://example.com/clip.mp4"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// webm magic number
	webm := append([]byte("\x1A\x45\xDF\xA3"), make([]byte, 64)...)
	w, resp = s.doMultipart(t, path, token, map[string]string{"title": "Obra"}, upload{"file", "obra.webm", webm})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	video = resp.Data.(map[string]any)["video"].(map[string]any)
	assert.Equal(t, "upload", video["videoType"])
	assert.EqualValues(t, 1, video["orderIndex"])
	assert.True(t, s.storage.Has(strings.TrimPrefix(video["videoUrl"].(string), "https://cdn.test/media/")))

	w, resp = s.doMultipart(t, path, token, nil, upload{"file", "notas.txt", []byte("hola")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestContentBlockEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "admin@renova.test", constant.UserRoleAdmin)
	projectID := s.newProject(t, token, "cocina")
	path := "/api/v1/admin/projects/" + projectID + "/blocks"

	create := func(blockType string, content any) string {
		w, resp := s.do(t, http.MethodPost, path, token, map[string]any{"blockType": blockType, "content": content})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return resp.Data.(map[string]any)["block"].(map[string]any)["id"].(string)
	}

	textID := create("text", map[string]any{"text": "Demolición del alicatado"})
	quoteID := create("quote", map[string]any{"quote": "Quedó perfecto", "author": "Marta"})
	galleryID := create("gallery", map[string]any{"images": []any{map[string]any{"url": "https://x/1.jpg"}}})

	w, _ := s.do(t, http.MethodPost, path, token, map[string]any{"blockType": "table", "content": map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPost, path, token, map[string]any{"blockType": "text", "content": map[string]any{"text": ""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := s.do(t, http.MethodPut, path+"/"+textID, token, map[string]any{"content": map[string]any{"text": "Alicatado nuevo"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Alicatado nuevo", resp.Data.(map[string]any)["block"].(map[string]any)["summary"])

	// move the gallery to the front
	w, resp = s.do(t, http.MethodPost, path+"/reorder", token, map[string]any{"from": 2, "to": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	positions := positionsOf(t, resp)
	require.Len(t, positions, 3)
	assert.Equal(t, galleryID, positions[0]["id"])
	assert.EqualValues(t, 0, positions[0]["orderIndex"])

	w, _ = s.do(t, http.MethodPost, path+"/reorder", token, map[string]any{"from": 0, "to": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// swap touches only the two neighbours
	w, resp = s.do(t, http.MethodPost, path+"/"+quoteID+"/swap", token, map[string]any{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, positionsOf(t, resp), 2)

	w, _ = s.do(t, http.MethodPost, path+"/"+galleryID+"/swap", token, map[string]any{"direction": "up"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodDelete, path+"/"+galleryID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	blocks := resp.Data.(map[string]any)["blocks"].([]any)
	require.Len(t, blocks, 2)

	ids := make([]string, 0, len(blocks))
	for i, b := range blocks {
		block := b.(map[string]any)
		assert.EqualValues(t, i, block["orderIndex"])
		assert.NotEmpty(t, block["summary"])
		ids = append(ids, block["id"].(string))
	}
	assert.Equal(t, []string{quoteID, textID}, ids)
}

func TestReorderImagesReportsPartialSave(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "admin@renova.test", constant.UserRoleAdmin)
	projectID := s.newProject(t, token, "salon")
	path := "/api/v1/admin/projects/" + projectID + "/images"

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		w, resp := s.do(t, http.MethodPost, path, token, map[string]any{"imageUrl": "https://x/" + name + ".jpg", "imageType": "gallery"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		ids = append(ids, resp.Data.(map[string]any)["image"].(map[string]any)["id"].(string))
	}

	w, resp := s.do(t, http.MethodPost, path+"/reorder", token, map[string]any{"imageType": "gallery", "from": 0, "to": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, resp.Success)
	assert.Equal(t, ids[1], positionsOf(t, resp)[0]["id"])
	// order is now b, a, c

	// the row that would move to the front cannot be written
	require.NoError(t, s.app.Repository.DB.Callback().Update().Before("gorm:update").Register("fail_front_order", func(tx *gorm.DB) {
		if tx.Statement.Table != "project_images" {
			return
		}
		if dest, ok := tx.Statement.Dest.(map[string]any); ok && dest["order_index"] == 0 {
			_ = tx.AddError(errors.New("database unavailable"))
		}
	}))

	w, resp = s.do(t, http.MethodPost, path+"/reorder", token, map[string]any{"imageType": "gallery", "from": 2, "to": 0})
	require.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
	assert.False(t, resp.Success)
	assert.Equal(t, "Order was only partially saved", resp.Message)

	// the intended order is returned so the client can retry
	positions := positionsOf(t, resp)
	require.Len(t, positions, 3)
	assert.Equal(t, []any{ids[2], ids[1], ids[0]}, []any{positions[0]["id"], positions[1]["id"], positions[2]["id"]})

	images, err := s.app.Repository.Image.ListByProject(context.Background(), nil, projectID)
	require.NoError(t, err)
	got := make(map[string]int, len(images))
	for _, img := range images {
		got[img.ID] = img.OrderIndex
	}
	// b and a were written, c kept its old index
	assert.Equal(t, map[string]int{ids[1]: 1, ids[0]: 2, ids[2]: 2}, got)
}
