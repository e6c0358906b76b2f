package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductStore/pkg/kit"
)

const (
	maxBodyBytes  = 1 << 20
	jsonMediaType = "application/json"
	basePath      = "/products"
)

type Server struct {
	Store     Store
	Log       *zap.Logger
	Mutations *Mutations
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.health)
	r.Get("/readyz", s.ready)

	r.Route(basePath, func(rr chi.Router) {
		rr.Get("/", s.list)
		rr.Post("/", s.create)
		rr.Get("/{id:[0-9]+}", s.get)
		rr.Put("/{id:[0-9]+}", s.update)
		rr.Delete("/{id:[0-9]+}", s.delete)
	})

	return r
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "message": "OK"})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.log().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	s.log().Info("request to create a product")

	data, ok := s.decodeJSON(w, r)
	if !ok {
		return
	}

	var p Product
	if err := p.Deserialize(data); err != nil {
		s.fail(w, r, "create product", err)
		return
	}
	if err := p.Create(r.Context(), s.Store); err != nil {
		s.fail(w, r, "create product", err)
		return
	}
	s.Mutations.Inc("create")
	s.log().Info("product saved", zap.Int64("id", *p.ID), zap.Stringer("product", p))

	w.Header().Set("Location", productURL(r, *p.ID))
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		products []Product
		err      error
	)

	switch {
	case q.Get("name") != "":
		products, err = FindByName(ctx, s.Store, q.Get("name"))
	case q.Get("category") != "":
		label := q.Get("category")
		c, perr := ParseCategory(label)
		if perr != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "Invalid category: "+label)
			return
		}
		products, err = FindByCategory(ctx, s.Store, c)
	case q.Has("available"):
		products, err = FindByAvailability(ctx, s.Store, parseAvailable(q.Get("available")))
	case q.Get("price") != "":
		products, err = FindByPrice(ctx, s.Store, q.Get("price"))
	default:
		products, err = All(ctx, s.Store)
	}
	if err != nil {
		s.fail(w, r, "list products", err)
		return
	}

	if products == nil {
		products = []Product{}
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}

	p, err := Find(r.Context(), s.Store, id)
	if err != nil {
		s.fail(w, r, "get product", err)
		return
	}

	w.Header().Set("Location", productURL(r, id))
	if p == nil {
		kit.WriteJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	s.log().Info("request to update a product", zap.Int64("id", id))

	data, ok := s.decodeJSON(w, r)
	if !ok {
		return
	}

	p, err := Find(r.Context(), s.Store, id)
	if err != nil {
		s.fail(w, r, "update product", err)
		return
	}
	if p == nil {
		kit.WriteError(w, r, http.StatusNotFound, notFoundMsg(id))
		return
	}

	if err := p.Deserialize(data); err != nil {
		s.fail(w, r, "update product", err)
		return
	}
	p.ID = &id
	if err := p.Update(r.Context(), s.Store); err != nil {
		s.fail(w, r, "update product", err)
		return
	}
	s.Mutations.Inc("update")

	w.Header().Set("Location", productURL(r, id))
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	s.log().Info("request to delete a product", zap.Int64("id", id))

	p, err := Find(r.Context(), s.Store, id)
	if err != nil {
		s.fail(w, r, "delete product", err)
		return
	}
	if p == nil {
		kit.WriteError(w, r, http.StatusNotFound, notFoundMsg(id))
		return
	}

	if err := p.Delete(r.Context(), s.Store); err != nil {
		s.fail(w, r, "delete product", err)
		return
	}
	s.Mutations.Inc("delete")

	w.Header().Set("Location", productURL(r, id))
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON enforces the media type and decodes the body into a generic JSON
// value. It writes the error response itself and reports false when it did.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request) (any, bool) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		s.log().Warn("no Content-Type specified")
		kit.WriteError(w, r, http.StatusUnsupportedMediaType, "Content-Type must be "+jsonMediaType)
		return nil, false
	}
	if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != jsonMediaType {
		s.log().Warn("invalid Content-Type", zap.String("content_type", ct))
		kit.WriteError(w, r, http.StatusUnsupportedMediaType, "Content-Type must be "+jsonMediaType)
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var data any
	err := dec.Decode(&data)
	if err == nil && dec.More() {
		err = errors.New("extra data after json value")
	}
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest,
			"Invalid product: body of request contained bad or no data ("+err.Error()+")")
		return nil, false
	}
	return data, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *DataValidationError
	if errors.As(err, &ve) {
		kit.WriteError(w, r, http.StatusBadRequest, ve.Msg)
		return
	}
	s.log().Error(op+" failed", zap.Error(err))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error")
}

// parseAvailable treats "true", "yes", "1" and a bare parameter as true and
// anything else as false.
func parseAvailable(v string) bool {
	switch strings.ToLower(v) {
	case "true", "yes", "1", "":
		return true
	default:
		return false
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func productURL(r *http.Request, id int64) string {
	return kit.ExternalURL(r, basePath+"/"+strconv.FormatInt(id, 10))
}

func notFoundMsg(id int64) string {
	return fmt.Sprintf("Product with id '%d' was not found.", id)
}
