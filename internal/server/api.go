package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"

	"snowglobe/internal/export"
	"snowglobe/internal/logging"
	"snowglobe/internal/notify"
	"snowglobe/internal/silhouette"
	"snowglobe/internal/state"
	"snowglobe/internal/store"
	"snowglobe/internal/treecodec"
)

const (
	defaultPreviewSize = 256
	maxPreviewSize     = 1024
)

// CreateRequest is the body of POST /api/submission. Tree may be in either
// serialized format.
type CreateRequest struct {
	Tree json.RawMessage `json:"tree"`
	state.Engraving
}

// EmailRequest is the body of POST /api/submission/email/{shortId}.
type EmailRequest struct {
	Email string `json:"email"`
}

// ErrUnknownOrnament is returned for submitted ornaments of an unknown type.
var ErrUnknownOrnament = errors.New("server: unknown ornament type")

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{OK: true})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, storeStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true, Submissions: subs})
}

// checkTree upgrades a submitted tree to the compact format and verifies it
// decodes with known ornament types.
func (s *Server) checkTree(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing tree", treecodec.ErrInvalidFormat)
	}
	compact, err := s.codec.Upgrade(raw)
	if err != nil {
		return nil, err
	}
	tree, err := treecodec.Deserialize(compact)
	if err != nil {
		return nil, err
	}
	for _, o := range tree.Ornaments {
		if !o.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOrnament, o.Type)
		}
	}
	return json.Marshal(compact)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tree, err := s.checkTree(req.Tree)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sub := &store.Submission{Tree: tree}
	sub.SetEngraving(req.Engraving.Sanitize())
	if err := s.store.Create(r.Context(), sub); err != nil {
		logging.Logger().Error("server: create submission", "error", err)
		writeError(w, storeStatus(err), err)
		return
	}
	logging.Logger().Info("server: submission created", "shortid", sub.ShortID)
	writeJSON(w, http.StatusOK, Response{OK: true, Submission: sub, URL: s.ShareURL(sub.ShortID)})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Submission, bool) {
	sub, err := s.store.GetByShortID(r.Context(), r.PathValue("shortId"))
	if err != nil {
		writeError(w, storeStatus(err), err)
		return nil, false
	}
	return sub, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true, Submission: sub, URL: s.ShareURL(sub.ShortID)})
}

func (s *Server) handleEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid email: %w", err))
		return
	}

	sub, err := s.store.SetEmail(r.Context(), r.PathValue("shortId"), addr.Address)
	if err != nil {
		writeError(w, storeStatus(err), err)
		return
	}
	link := s.ShareURL(sub.ShortID)
	if err := s.notifier.Notify(r.Context(), notify.ShareMessage(sub, link)); err != nil {
		logging.Logger().Error("server: notify", "shortid", sub.ShortID, "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true, Submission: sub, URL: link})
}

// design decodes a stored tree into its profile and ornaments.
func design(sub *store.Submission) (silhouette.Profile, []state.Ornament, error) {
	tree, err := treecodec.DeserializeJSON(sub.Tree)
	if err != nil {
		return silhouette.Profile{}, nil, err
	}
	return silhouette.Build(tree.Points), tree.Ornaments, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	size := defaultPreviewSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxPreviewSize {
			writeError(w, http.StatusBadRequest, fmt.Errorf("size must be between 1 and %d", maxPreviewSize))
			return
		}
		size = n
	}

	sub, ok := s.lookup(w, r)
	if !ok {
		return
	}
	profile, ornaments, err := design(sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !profile.Ready() {
		writeError(w, http.StatusUnprocessableEntity, export.ErrEmptyProfile)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := export.PreviewPNG(w, profile.Points, ornaments, size); err != nil {
		logging.Logger().Warn("server: preview", "shortid", sub.ShortID, "error", err)
	}
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.lookup(w, r)
	if !ok {
		return
	}
	profile, ornaments, err := design(sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !profile.Ready() {
		writeError(w, http.StatusUnprocessableEntity, export.ErrEmptyProfile)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "snowglobe-"+sub.ShortID+".pdf"))
	card := export.Card{
		Profile:   profile.Points,
		Ornaments: ornaments,
		Engraving: sub.Engraving(),
		Link:      s.ShareURL(sub.ShortID),
	}
	if err := export.CardPDF(w, card); err != nil {
		logging.Logger().Warn("server: card", "shortid", sub.ShortID, "error", err)
	}
}
