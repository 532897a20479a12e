package movies

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"IMDB-backend/internal/platform/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes: 表示系は public、更新系は admin グループへ。
// POST には antiForgery（CSRF 検証）を前段に挟む。
func RegisterRoutes(public, admin gin.IRoutes, svc *Service, antiForgery gin.HandlerFunc) {
	h := &Handler{svc: svc}

	public.GET("/movies", h.List)
	public.GET("/movies/create", h.CreateForm)
	public.GET("/movies/edit", h.EditForm)
	public.GET("/movies/details", h.Details)
	public.GET("/movies/poster", h.Poster)

	admin.POST("/movies/create", guarded(antiForgery, h.Create)...)
	admin.POST("/movies/edit", guarded(antiForgery, h.Edit)...)
	admin.GET("/movies/delete", h.Delete)
}

func guarded(guard, next gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{next}
	}
	return []gin.HandlerFunc{guard, next}
}

// ===== 一覧 =====

// List godoc
// @Summary  List movies ordered by rate (highest first)
// @Tags     movies
// @Produce  json
// @Success  200 {object} ListResponse
// @Failure  500 {object} errDTO
// @Router   /movies [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	base := listingPath(c)
	for i := range items {
		items[i].PosterURL = posterURL(base, items[i].ID)
	}
	c.JSON(http.StatusOK, ListResponse{Items: items, Total: len(items)})
}

// ===== 新規 =====

// CreateForm godoc
// @Summary  Empty movie form with the selectable genres
// @Tags     movies
// @Produce  json
// @Success  200 {object} MovieForm
// @Router   /movies/create [get]
func (h *Handler) CreateForm(c *gin.Context) {
	form, err := h.svc.NewForm(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Create godoc
// @Summary  Create a movie with its poster
// @Tags     movies
// @Accept   multipart/form-data
// @Produce  json
// @Security Bearer
// @Param    X-CSRF-Token header   string true  "anti-forgery token"
// @Param    title        formData string true  "title"
// @Param    year         formData int    true  "year"
// @Param    rate         formData number true  "rate (1-10)"
// @Param    story_line   formData string true  "story line"
// @Param    genre_id     formData int    true  "genre id"
// @Param    poster       formData file   true  ".jpg or .png, 1MB max"
// @Success  303 {object} SavedResponse
// @Failure  400 {object} errDTO
// @Failure  403 {object} map[string]string
// @Failure  422 {object} validationDTO
// @Router   /movies/create [post]
func (h *Handler) Create(c *gin.Context) {
	form, ok := h.readMultipart(c)
	if !ok {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), formInput(form), posterPart(form))
	if err != nil {
		respondErr(c, err)
		return
	}
	redirectToListing(c, m.ID, MsgCreated)
}

// ===== 編集 =====

// EditForm godoc
// @Summary  Movie form populated from an existing movie
// @Tags     movies
// @Produce  json
// @Param    id query int true "movie id"
// @Success  200 {object} MovieForm
// @Failure  400 {object} errDTO
// @Failure  404 {object} errDTO
// @Router   /movies/edit [get]
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	form, err := h.svc.EditForm(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Edit godoc
// @Summary  Update a movie; the poster is replaced only when a new file is sent
// @Tags     movies
// @Accept   multipart/form-data
// @Produce  json
// @Security Bearer
// @Param    X-CSRF-Token header   string true  "anti-forgery token"
// @Param    id           formData int    true  "movie id"
// @Param    title        formData string true  "title"
// @Param    year         formData int    true  "year"
// @Param    rate         formData number true  "rate (1-10)"
// @Param    story_line   formData string true  "story line"
// @Param    genre_id     formData int    true  "genre id"
// @Param    poster       formData file   false ".jpg or .png, 1MB max"
// @Success  303 {object} SavedResponse
// @Failure  400 {object} errDTO
// @Failure  404 {object} errDTO
// @Failure  422 {object} validationDTO
// @Router   /movies/edit [post]
func (h *Handler) Edit(c *gin.Context) {
	form, ok := h.readMultipart(c)
	if !ok {
		return
	}
	id, err := parseID(firstValue(form, "id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "id must be a number"))
		return
	}
	m, err := h.svc.Edit(c.Request.Context(), id, formInput(form), posterPart(form))
	if err != nil {
		respondErr(c, err)
		return
	}
	redirectToListing(c, m.ID, MsgUpdated)
}

// ===== 詳細 =====

// Details godoc
// @Summary  Movie with its genre
// @Tags     movies
// @Produce  json
// @Param    id query int true "movie id"
// @Success  200 {object} MovieDetail
// @Failure  400 {object} errDTO
// @Failure  404 {object} errDTO
// @Router   /movies/details [get]
func (h *Handler) Details(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	d, err := h.svc.Details(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	d.PosterURL = posterURL(listingPath(c), d.ID)
	c.JSON(http.StatusOK, d)
}

// ===== 削除 =====

// Delete godoc
// @Summary  Delete a movie
// @Tags     movies
// @Security Bearer
// @Param    id query int true "movie id"
// @Success  200
// @Failure  400 {object} errDTO
// @Failure  404 {object} errDTO
// @Router   /movies/delete [get]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ===== ポスター =====

// Poster godoc
// @Summary  Raw poster bytes
// @Tags     movies
// @Produce  image/jpeg,image/png,application/octet-stream
// @Param    id query int true "movie id"
// @Success  200 {file} binary
// @Failure  400 {object} errDTO
// @Failure  404 {object} errDTO
// @Router   /movies/poster [get]
func (h *Handler) Poster(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	data, ct, err := h.svc.Poster(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, ct, data)
}

// ===== helpers =====

type errDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type validationDTO struct {
	errDTO
	Fields []FieldError `json:"fields"`
	Form   *MovieForm   `json:"form"`
}

func apiErr(code Code, msg string) errDTO {
	var e errDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func apiErrFrom(err error) errDTO {
	var api *APIError
	if errors.As(err, &api) {
		return apiErr(api.Code, api.Message)
	}
	return apiErr(CodeInternal, "internal error")
}

// respondErr: ValidationError はフォームごと 422、その他は APIError として返す
func respondErr(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, validationDTO{
			errDTO: apiErr(CodeValidationFailed, "validation failed"),
			Fields: ve.Fields,
			Form:   ve.Form,
		})
		return
	}
	status := toHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s request_id=%s: %v",
			c.Request.Method, c.FullPath(), c.GetString(middleware.CtxRequestIDKey), err)
	}
	c.JSON(status, apiErrFrom(err))
}

// formSlack: ポスター以外（テキスト項目と multipart の境界・ヘッダ）に許す分
const formSlack = 256 << 10

func uploadLimit(p PosterPolicy) int64 { return p.MaxBytes() + formSlack }

// readMultipart: 本文は uploadLimit までしか読まない。超えたらポスターのサイズエラー（422）
func (h *Handler) readMultipart(c *gin.Context) (*multipart.Form, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uploadLimit(h.svc.Policy()))
	form, err := c.MultipartForm()
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respondErr(c, h.svc.RejectOversized(c.Request.Context()))
		return nil, false
	case err != nil:
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid multipart form"))
		return nil, false
	}
	return form, true
}

func formInput(form *multipart.Form) FormInput {
	return FormInput{
		Title:     firstValue(form, FieldTitle),
		Year:      firstValue(form, FieldYear),
		Rate:      firstValue(form, FieldRate),
		StoryLine: firstValue(form, FieldStoryLine),
		GenreID:   firstValue(form, FieldGenreID),
	}
}

func firstValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func posterPart(form *multipart.Form) *PosterFile {
	if fs := form.File[FieldPoster]; len(fs) > 0 {
		return PosterFromHeader(fs[0])
	}
	return nil
}

// parseID: 空なら nil（サービス側で client error）、数値でなければ err
func parseID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func queryID(c *gin.Context) (*int64, bool) {
	id, err := parseID(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "id must be a number"))
		return nil, false
	}
	return id, true
}

// listingPath: マッチしたルートから一覧のパスを得る（/api/v1/movies/edit → /api/v1/movies）
func listingPath(c *gin.Context) string {
	p := c.FullPath()
	if i := strings.LastIndex(p, "/movies"); i >= 0 {
		return p[:i+len("/movies")]
	}
	return "/movies"
}

func posterURL(base string, id int64) string {
	return base + "/poster?id=" + strconv.FormatInt(id, 10)
}

func redirectToListing(c *gin.Context, id int64, msg string) {
	to := listingPath(c)
	c.Header("Location", to)
	c.JSON(http.StatusSeeOther, SavedResponse{ID: id, Message: msg, Redirect: to})
}
