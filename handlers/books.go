package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const maxUploadSize = 32 << 20

func (h *Handler) GetBooks(w http.ResponseWriter, r *http.Request) {
	page, limit := 1, 0
	var err error
	if v := r.URL.Query().Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			WriteErrorResponse(w, models.ErrBadRequest)
			return
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			WriteErrorResponse(w, models.ErrBadRequest)
			return
		}
	}

	res, err := h.bs.GetBooks(page, limit)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.bs.GetBookById(mux.Vars(r)["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) GetBooksBatch(w http.ResponseWriter, r *http.Request) {
	var req entities.BatchRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	books, err := h.bs.GetBooksByIds(req.Ids)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	req, uploaded, err := h.bookRequest(r)
	if err != nil {
		h.bs.DiscardImages(uploaded)
		WriteErrorResponse(w, err)
		return
	}
	book, err := h.bs.CreateBook(req)
	if err != nil {
		h.bs.DiscardImages(uploaded)
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	req, uploaded, err := h.bookRequest(r)
	if err != nil {
		h.bs.DiscardImages(uploaded)
		WriteErrorResponse(w, err)
		return
	}
	book, err := h.bs.UpdateBook(mux.Vars(r)["id"], req)
	if err != nil {
		h.bs.DiscardImages(uploaded)
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.bs.DeleteBook(mux.Vars(r)["id"]); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Book deleted successfully")
}

// bookRequest reads a book payload sent either as JSON or as a multipart
// form. Uploaded files are stored first and replaced by their urls, which are
// also returned so the caller can drop them when the request fails.
func (h *Handler) bookRequest(r *http.Request) (req entities.BookRequest, uploaded []string, err error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = decodeJSON(r, &req)
		return
	}
	if err = r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Warn().Err(err).Msg("ParseMultipartForm")
		err = models.ErrBadRequest
		return
	}
	form := r.MultipartForm

	str := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			v := strings.TrimSpace(vals[0])
			return &v
		}
		return nil
	}
	req.Title = str("title")
	req.Author = str("author")
	req.Description = str("description")
	req.Category = str("category")
	req.CoverImage = str("coverImage")

	for _, key := range []string{"oldPrice", "newPrice"} {
		v := str(key)
		if v == nil {
			continue
		}
		d, e := decimal.NewFromString(*v)
		if e != nil {
			log.Warn().Err(e).Str("field", key).Msg("invalid price")
			err = models.ErrBadRequest
			return
		}
		if key == "oldPrice" {
			req.OldPrice = &d
		} else {
			req.NewPrice = &d
		}
	}
	for _, key := range []string{"trending", "recommended"} {
		v := str(key)
		if v == nil {
			continue
		}
		b, e := strconv.ParseBool(*v)
		if e != nil {
			err = models.ErrBadRequest
			return
		}
		if key == "trending" {
			req.Trending = &b
		} else {
			req.Recommended = &b
		}
	}

	if files := form.File["coverImage"]; len(files) > 0 {
		var url string
		if url, err = h.storeUpload(files[0]); err != nil {
			return
		}
		uploaded = append(uploaded, url)
		req.CoverImage = &url
	}
	if files := form.File["images"]; len(files) > 0 {
		if len(files) > services.MaxExtraImages {
			err = models.ErrBadRequest
			return
		}
		req.Images = make([]string, 0, len(files))
		for _, fh := range files {
			var url string
			if url, err = h.storeUpload(fh); err != nil {
				return
			}
			uploaded = append(uploaded, url)
			req.Images = append(req.Images, url)
		}
	}
	return
}

func (h *Handler) storeUpload(fh *multipart.FileHeader) (url string, err error) {
	f, err := fh.Open()
	if err != nil {
		log.Warn().Err(err).Str("file", fh.Filename).Msg("open upload")
		err = models.ErrBadRequest
		return
	}
	defer f.Close()
	url, err = h.bs.SaveImage(f, fh.Filename)
	return
}
