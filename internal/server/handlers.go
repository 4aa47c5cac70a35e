package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	chiselerr "github.com/chisel-ui/chisel/internal/errors"
	"github.com/chisel-ui/chisel/internal/store"
	"github.com/chisel-ui/chisel/internal/types"
	"github.com/chisel-ui/chisel/internal/validate"
)

type extractRequest struct {
	Source string `json:"source"`
	Name   string `json:"name,omitempty"`
}

// handleExtract parses source text into a component structure.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decode(w, r, &req) {
		return
	}
	structure, err := s.extractor.Extract(req.Source, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, structure)
}

type applyRequest struct {
	Source    string `json:"source"`
	ElementID string `json:"elementId"`
	Property  string `json:"property"`
	Value     string `json:"value"`
	// Component and Owner select the revision stream to append to;
	// empty skips persistence
	Component string `json:"component,omitempty"`
	Owner     string `json:"owner,omitempty"`
}

type applyResponse struct {
	Source    string                    `json:"source"`
	Structure *types.ComponentStructure `json:"structure"`
	Version   int64                     `json:"version,omitempty"`
}

// handleApply runs the full editing round trip: validate the value, apply
// the change to the source text, and re-extract so the client gets fresh
// element ids alongside the new source.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !decode(w, r, &req) {
		return
	}

	structure, err := s.extractor.Extract(req.Source, "")
	if err != nil {
		writeError(w, err)
		return
	}
	elem, ok := structure.FindElement(req.ElementID)
	if !ok {
		writeError(w, chiselerr.NewValidationError("unknown_element",
			fmt.Sprintf("element %q not found in extracted structure", req.ElementID)))
		return
	}
	prop, ok := s.catalog.ResolveProperty(elem, req.Property)
	if !ok {
		writeError(w, chiselerr.NewValidationError("unknown_property",
			fmt.Sprintf("property %q is not editable on element %q", req.Property, req.ElementID)))
		return
	}

	if err := validate.Change(prop, req.Value); err != nil {
		writeError(w, err)
		return
	}
	mutated, err := s.mutator.ApplyChange(req.Source, elem, prop, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	fresh, err := s.extractor.Extract(mutated, "")
	if err != nil {
		writeError(w, err)
		return
	}

	resp := applyResponse{Source: mutated, Structure: fresh}
	if s.store != nil && req.Component != "" {
		version, err := s.store.SaveRevision(r.Context(), req.Owner, req.Component, mutated, store.Changeset{
			ElementID: req.ElementID,
			Property:  req.Property,
			Value:     req.Value,
		})
		if err != nil {
			s.logger.Warn(r.Context(), err, "saving revision failed",
				"component", req.Component)
		} else {
			resp.Version = version
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type previewRequest struct {
	Source    string                    `json:"source,omitempty"`
	Structure *types.ComponentStructure `json:"structure,omitempty"`
	Values    types.PropertyValues      `json:"values,omitempty"`
}

// handlePreview renders the fast structural preview without compilation.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decode(w, r, &req) {
		return
	}
	structure := req.Structure
	if structure == nil {
		var err error
		structure, err = s.extractor.Extract(req.Source, "")
		if err != nil {
			writeError(w, err)
			return
		}
	}
	html, err := s.renderer.Render(structure, req.Values)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

type renderRequest struct {
	PreviewSource   string `json:"previewSource"`
	ComponentSource string `json:"componentSource,omitempty"`
}

// handleRender runs the live sandbox over raw (possibly edited) source.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.sandbox.Compile(r.Context(), req.PreviewSource, req.ComponentSource)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"html":     result.HTML,
		"function": result.FunctionName,
	})
}

// handleListComponents lists discovered components without their sources.
func (s *Server) handleListComponents(w http.ResponseWriter, _ *http.Request) {
	records := s.registry.GetAll()
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"name":     rec.Name,
			"filePath": rec.FilePath,
			"hash":     rec.Hash,
			"lastMod":  rec.LastMod,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetComponent returns one component with source and structure.
func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	record, ok := s.registry.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{
				"kind":    chiselerr.KindParse,
				"code":    "component_not_found",
				"message": fmt.Sprintf("component %q is not registered", name),
			},
		})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleHistory returns the stored revision history for a component.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, chiselerr.NewConfigError("store_disabled", "revision store is not configured"))
		return
	}
	name := chi.URLParam(r, "name")
	owner := r.URL.Query().Get("owner")
	history, err := s.store.History(r.Context(), owner, name)
	if err != nil {
		writeError(w, chiselerr.NewIOError("history_failed", "loading revision history failed", err))
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// decode parses a JSON request body, writing a validation error on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, chiselerr.NewValidationError("bad_request", "request body is not valid JSON"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses and a structured
// JSON body the editing UI renders as a dedicated error state.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := chiselerr.KindInternal
	code := ""
	var ce *chiselerr.ChiselError
	if errors.As(err, &ce) {
		kind = ce.Kind
		code = ce.Code
		switch ce.Kind {
		case chiselerr.KindParse, chiselerr.KindValidation:
			status = http.StatusUnprocessableEntity
		case chiselerr.KindTranspile, chiselerr.KindExecution:
			status = http.StatusBadRequest
		case chiselerr.KindConfig:
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"kind":    kind,
			"code":    code,
			"message": err.Error(),
		},
	})
}
