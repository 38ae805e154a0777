package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"go.hackfix.me/hexo/web/server/types"
)

// StoreSet stores the value of the request ?key=value.
func (h *Handler) StoreSet(w http.ResponseWriter, r *http.Request) {
	rawKey, rawValue, _ := strings.Cut(r.URL.RawQuery, "=")
	key, err := url.QueryUnescape(rawKey)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(fmt.Errorf("invalid key: %w", err)))
		return
	}
	value, err := url.QueryUnescape(rawValue)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(fmt.Errorf("invalid value: %w", err)))
		return
	}
	if key == "" {
		_ = render.Render(w, r, types.ErrBadRequest(errors.New("key not provided")))
		return
	}
	if value == "" {
		_ = render.Render(w, r, types.ErrBadRequest(errors.New("value not provided")))
		return
	}

	if err := h.store.Set(key, []byte(value)); err != nil {
		h.renderInternal(w, r, err)
		return
	}

	_ = render.Render(w, r, &types.OperationResponse{
		Response:  types.OK(),
		Operation: "set",
	})
}

// StoreDelete deletes the key in the request query. Deleting a missing key
// succeeds.
func (h *Handler) StoreDelete(w http.ResponseWriter, r *http.Request) {
	key, ok := h.queryKey(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(key); err != nil {
		h.renderInternal(w, r, err)
		return
	}

	_ = render.Render(w, r, &types.OperationResponse{
		Response:  types.OK(),
		Operation: "delete",
	})
}

// StoreFetch returns the value of the key in the request query, or null.
func (h *Handler) StoreFetch(w http.ResponseWriter, r *http.Request) {
	key, ok := h.queryKey(w, r)
	if !ok {
		return
	}

	found, val, err := h.store.Get(key)
	if err != nil {
		h.renderInternal(w, r, err)
		return
	}

	resp := &types.FetchResponse{Response: types.OK()}
	if found {
		resp.Data = storedJSON(val)
	}

	_ = render.Render(w, r, resp)
}

// StoreFetchAll returns every entry ordered by key.
func (h *Handler) StoreFetchAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.List("")
	if err != nil {
		h.renderInternal(w, r, err)
		return
	}

	resp := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, types.Entry{Key: e.Key, ID: e.Key, Data: storedJSON(e.Value)})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// Latency returns the shard time in Unix milliseconds.
func (h *Handler) Latency(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, &types.LatencyResponse{
		Response: types.OK(),
		Ping:     strconv.FormatInt(h.now().UnixMilli(), 10),
	})
}

func (h *Handler) renderInternal(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("store operation failed", "path", r.URL.Path, "error", err)
	_ = render.Render(w, r, types.ErrInternal(err))
}

func (h *Handler) queryKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key, err := url.QueryUnescape(r.URL.RawQuery)
	if err != nil {
		_ = render.Render(w, r, types.ErrBadRequest(fmt.Errorf("invalid key: %w", err)))
		return "", false
	}
	if key == "" {
		_ = render.Render(w, r, types.ErrBadRequest(errors.New("key not provided")))
		return "", false
	}
	return key, true
}

// storedJSON returns stored text as JSON: as is when it is a JSON number,
// boolean, object or array, and quoted otherwise. The text "null" is quoted
// so it isn't mistaken for a missing value, and text with surrounding
// whitespace is quoted so it reads back unchanged.
func storedJSON(val []byte) json.RawMessage {
	if len(val) > 0 && len(bytes.TrimSpace(val)) == len(val) &&
		!bytes.Equal(val, []byte("null")) && json.Valid(val) {
		return json.RawMessage(val)
	}
	data, _ := json.Marshal(string(val))
	return data
}
