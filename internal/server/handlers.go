package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/errors"
	"github.com/matzehuels/archflow/pkg/observability"
	"github.com/matzehuels/archflow/pkg/pipeline"
	"github.com/matzehuels/archflow/pkg/presenter"
	"github.com/matzehuels/archflow/pkg/render/flow"
	"github.com/matzehuels/archflow/pkg/session"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.Len()})
}

// mode reads ?mode=, falling back to the server default.
func (s *Server) mode(r *http.Request) (diagram.Mode, error) {
	q := r.URL.Query().Get("mode")
	if q == "" {
		return s.opts.Mode, nil
	}
	return diagram.ParseMode(q)
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	s.artifact(w, r, pipeline.FormatHTML)
}

func (s *Server) diagramJSON(w http.ResponseWriter, r *http.Request) {
	s.artifact(w, r, pipeline.FormatJSON)
}

func (s *Server) diagramArtifact(w http.ResponseWriter, r *http.Request) {
	s.artifact(w, r, chi.URLParam(r, "format"))
}

func (s *Server) artifact(w http.ResponseWriter, r *http.Request, format string) {
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := s.mode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.runner.Build(r.Context(), mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, hit, err := s.runner.RenderWithCacheInfo(r.Context(), d, format, pipeline.DefaultScale, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(data)
}

type createSessionRequest struct {
	Mode string `json:"mode" validate:"omitempty,max=32"`
}

type modeRequest struct {
	Mode string `json:"mode" validate:"required,max=32"`
}

type sessionResponse struct {
	ID       string        `json:"id"`
	Ready    bool          `json:"ready"`
	Document flow.Document `json:"document"`
}

type connectResponse struct {
	Edge  flow.Edge `json:"edge"`
	Added bool      `json:"added"`
}

func newSessionResponse(sess *session.Session) sessionResponse {
	st := sess.Presenter.Snapshot()
	doc := flow.Export(st.Diagram())
	doc.UserEdges = st.UserEdges
	return sessionResponse{ID: sess.ID, Ready: st.Ready, Document: doc}
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	mode := s.opts.Mode
	if req.Mode != "" {
		m, err := diagram.ParseMode(req.Mode)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		mode = m
	}

	sess, err := s.sessions.Create(r.Context(), mode)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "create session"))
		return
	}
	w.Header().Set("Location", "/api/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

// lookup resolves the {id} URL parameter.
func (s *Server) lookup(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %q not found", id)
	}
	return sess, nil
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setMode(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req modeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := diagram.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	from := sess.Presenter.Mode()
	if sess.Presenter.SetMode(mode) {
		observability.Session().OnModeChange(r.Context(), sess.ID, from.String(), mode.String())
		s.logger.Debug("mode changed", "session", sess.ID, "from", from, "to", mode)
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) connect(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var c presenter.Connection
	if err := decode(r, &c); err != nil {
		s.writeError(w, r, err)
		return
	}

	e, added, err := sess.Presenter.Connect(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	observability.Session().OnConnect(r.Context(), sess.ID, e.ID, added)

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	doc := flow.Export(diagram.Diagram{Edges: []diagram.Edge{e}})
	writeJSON(w, status, connectResponse{Edge: doc.Edges[0], Added: added})
}
