package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/sh4d0w/ios-mobile-designer/internal/engine"
	"github.com/sh4d0w/ios-mobile-designer/internal/extractor"
	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

const maxValidateBody = 4 << 20

// POST /api/v1/validate: stateless validation of one scene document.
// The body is the same JSON the CLI reads from disk; nothing is stored.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxValidateBody+1))
	if err != nil {
		s.err(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	if len(body) > maxValidateBody {
		s.err(w, http.StatusRequestEntityTooLarge, "scene document too large")
		return
	}

	scene, err := extractor.ParseDocument("request", body)
	if err != nil {
		var mal *extractor.MalformedInputError
		if errors.As(err, &mal) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error": mal.Error(),
				"index": mal.Index,
				"field": mal.Field,
			})
			return
		}
		s.err(w, http.StatusBadRequest, err.Error())
		return
	}

	run := engine.Validate(r.Context(), s.Registry, []ir.Scene{scene}, engine.Options{Source: "api"})
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":   run.ID,
		"report":   run.Report,
		"verdicts": run.Verdicts,
	})
}
