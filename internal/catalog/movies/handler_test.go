package movies

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, antiForgery gin.HandlerFunc) (*gin.Engine, *memRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, repo := newTestService()
	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, api.Group(""), svc, antiForgery)
	return r, repo
}

type upload struct {
	name string
	data []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *upload) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile(FieldPoster, file.name)
		require.NoError(t, err)
		_, err = fw.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func inceptionFields() map[string]string {
	in := inceptionInput()
	return map[string]string{
		FieldTitle:     in.Title,
		FieldYear:      in.Year,
		FieldRate:      in.Rate,
		FieldStoryLine: in.StoryLine,
		FieldGenreID:   in.GenreID,
	}
}

func postForm(t *testing.T, r *gin.Engine, path string, fields map[string]string, file *upload) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, fields, file)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) Code {
	t.Helper()
	var body errDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHandler_ListCarriesPosterURL(t *testing.T) {
	r, repo := newTestRouter(t, nil)
	id := repo.seed(Movie{Title: "Inception", Year: 2010, Rate: 8.8, StoryLine: "dreams", GenreID: 2, Poster: pngMagic})

	w := get(r, "/api/v1/movies")
	require.Equal(t, http.StatusOK, w.Code)

	var body ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "/api/v1/movies/poster?id="+strconv.FormatInt(id, 10), body.Items[0].PosterURL)
	assert.NotContains(t, w.Body.String(), `"poster":`)
}

func TestHandler_CreateRedirectsToListing(t *testing.T) {
	r, repo := newTestRouter(t, nil)

	w := postForm(t, r, "/api/v1/movies/create", inceptionFields(), &upload{"inception.png", pngMagic})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/api/v1/movies", w.Header().Get("Location"))

	var body SavedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Movie is added successfully!", body.Message)
	assert.Equal(t, pngMagic, repo.rows[body.ID].Poster)
}

func TestHandler_CreateRejectsLargePoster(t *testing.T) {
	r, repo := newTestRouter(t, nil)

	w := postForm(t, r, "/api/v1/movies/create", inceptionFields(), &upload{"big.png", bytes.Repeat([]byte{1}, 2<<20)})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body validationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeValidationFailed, body.Error.Code)
	assert.Equal(t, []FieldError{{Field: FieldPoster, Message: "Posters can't be more than 1MB!"}}, body.Fields)
	require.NotNil(t, body.Form)
	assert.Equal(t, byName, body.Form.Genres)
	assert.Empty(t, repo.rows)
}

func TestHandler_EditWithoutFile(t *testing.T) {
	r, repo := newTestRouter(t, nil)
	id := repo.seed(Movie{Title: "Old", Year: 2000, Rate: 5, StoryLine: "old", GenreID: 1, Poster: jpegMagic})

	fields := inceptionFields()
	fields["id"] = strconv.FormatInt(id, 10)
	w := postForm(t, r, "/api/v1/movies/edit", fields, nil)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Movie is updated successfully!")
	assert.Equal(t, "Inception", repo.rows[id].Title)
	assert.Equal(t, jpegMagic, repo.rows[id].Poster)
}

func TestHandler_EditBadRequests(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	fields := inceptionFields()
	fields["id"] = "abc"
	w := postForm(t, r, "/api/v1/movies/edit", fields, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidArgument, errorCode(t, w))

	fields["id"] = "999"
	w = postForm(t, r, "/api/v1/movies/edit", fields, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies/edit", bytes.NewBufferString(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ReadEndpoints(t *testing.T) {
	r, repo := newTestRouter(t, nil)
	id := repo.seed(Movie{Title: "Inception", Year: 2010, Rate: 8.8, StoryLine: "dreams", GenreID: 2, Poster: pngMagic})
	sid := strconv.FormatInt(id, 10)

	w := get(r, "/api/v1/movies/create")
	require.Equal(t, http.StatusOK, w.Code)
	var form MovieForm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Equal(t, byName, form.Genres)

	w = get(r, "/api/v1/movies/edit?id="+sid)
	require.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/api/v1/movies/details?id="+sid)
	require.Equal(t, http.StatusOK, w.Code)
	var d MovieDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "Sci-Fi", d.Genre.Name)
	assert.Equal(t, "/api/v1/movies/poster?id="+sid, d.PosterURL)

	w = get(r, "/api/v1/movies/poster?id="+sid)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, pngMagic, w.Body.Bytes())

	for _, path := range []string{"/api/v1/movies/details", "/api/v1/movies/edit", "/api/v1/movies/details?id=x"} {
		w = get(r, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
	w = get(r, "/api/v1/movies/details?id=999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, errorCode(t, w))
}

func TestHandler_Delete(t *testing.T) {
	r, repo := newTestRouter(t, nil)
	id := repo.seed(Movie{Title: "Inception", Rate: 8.8, GenreID: 2, Poster: pngMagic})

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/movies/delete").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/v1/movies/delete?id=999").Code)
	assert.Len(t, repo.rows, 1)

	w := get(r, "/api/v1/movies/delete?id="+strconv.FormatInt(id, 10))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, repo.rows)
}

func TestHandler_AntiForgeryRunsFirst(t *testing.T) {
	reject := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
	r, repo := newTestRouter(t, reject)

	w := postForm(t, r, "/api/v1/movies/create", inceptionFields(), &upload{"a.png", pngMagic})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, repo.writes)

	// GET 系は対象外
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/movies").Code)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// 上限を超える本文は最後まで読まずに 422 を返す
func TestHandler_OversizedBodyStopsReading(t *testing.T) {
	r, repo := newTestRouter(t, nil)
	limit := uploadLimit(DefaultPosterPolicy())

	body, ct := multipartBody(t, inceptionFields(), &upload{"huge.png", bytes.Repeat([]byte{7}, 4<<20)})
	src := &countingReader{r: body}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies/create", src)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp validationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []FieldError{{Field: FieldPoster, Message: "Posters can't be more than 1MB!"}}, resp.Fields)
	require.NotNil(t, resp.Form)
	assert.Equal(t, byName, resp.Form.Genres)
	assert.LessOrEqual(t, src.n, limit+1)
	assert.Empty(t, repo.rows)
}

func TestHandler_PosterAtLimitStillAccepted(t *testing.T) {
	r, repo := newTestRouter(t, nil)
	data := append(bytes.Clone(pngMagic), bytes.Repeat([]byte{0}, (1<<20)-len(pngMagic))...)

	w := postForm(t, r, "/api/v1/movies/create", inceptionFields(), &upload{"full.png", data})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Len(t, repo.rows, 1)
}
