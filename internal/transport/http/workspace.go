package http

import (
	"net/http"

	alertDomain "github.com/reshetovitsme/product-scout/internal/modules/alerts/domain"
	analyticsDomain "github.com/reshetovitsme/product-scout/internal/modules/analytics/domain"
	favoriteDomain "github.com/reshetovitsme/product-scout/internal/modules/favorites/domain"
	noteDomain "github.com/reshetovitsme/product-scout/internal/modules/notes/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/oops"
)

func (s *Server) registerWorkspaceRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/notes", s.handleNoteList)
	mux.HandleFunc("POST /api/notes", s.handleNoteCreate)
	mux.HandleFunc("GET /api/notes/categories", s.handleNoteCategories)
	mux.HandleFunc("GET /api/notes/stats", s.handleNoteStats)
	mux.HandleFunc("POST /api/notes/{id}/star", s.handleNoteStar)
	mux.HandleFunc("DELETE /api/notes/{id}", s.handleNoteDelete)

	mux.HandleFunc("GET /api/alerts", s.handleAlertList)
	mux.HandleFunc("POST /api/alerts", s.handleAlertCreate)
	mux.HandleFunc("GET /api/alerts/summary", s.handleAlertSummary)
	mux.HandleFunc("POST /api/alerts/{id}/read", s.handleAlertRead)
	mux.HandleFunc("POST /api/alerts/{id}/toggle", s.handleAlertToggle)
	mux.HandleFunc("DELETE /api/alerts/{id}", s.handleAlertDelete)

	mux.HandleFunc("GET /api/tag-rules", s.handleRuleList)
	mux.HandleFunc("POST /api/tag-rules", s.handleRuleCreate)
	mux.HandleFunc("POST /api/tag-rules/run", s.handleRuleRun)
	mux.HandleFunc("POST /api/tag-rules/{id}/toggle", s.handleRuleToggle)
	mux.HandleFunc("DELETE /api/tag-rules/{id}", s.handleRuleDelete)

	mux.HandleFunc("GET /api/saved-searches", s.handleSavedSearchList)
	mux.HandleFunc("POST /api/saved-searches", s.handleSavedSearchCreate)
	mux.HandleFunc("GET /api/saved-searches/{id}", s.handleSavedSearchGet)
	mux.HandleFunc("POST /api/saved-searches/{id}/toggle", s.handleSavedSearchToggle)
	mux.HandleFunc("POST /api/saved-searches/{id}/run", s.handleSavedSearchRun)
	mux.HandleFunc("DELETE /api/saved-searches/{id}", s.handleSavedSearchDelete)

	mux.HandleFunc("GET /api/favorites", s.handleFavoriteList)
	mux.HandleFunc("POST /api/favorites", s.handleFavoriteAdd)
	mux.HandleFunc("GET /api/favorites/categories", s.handleFavoriteCategories)
	mux.HandleFunc("GET /api/favorites/stats", s.handleFavoriteStats)
	mux.HandleFunc("DELETE /api/favorites/{id}", s.handleFavoriteRemove)

	mux.HandleFunc("GET /api/contacts", s.handleContactList)
	mux.HandleFunc("POST /api/contacts", s.handleContactCreate)
	mux.HandleFunc("POST /api/contacts/extract", s.handleContactExtract)
	mux.HandleFunc("GET /api/contacts/summary", s.handleContactSummary)
	mux.HandleFunc("POST /api/contacts/{id}/verify", s.handleContactVerify)
	mux.HandleFunc("DELETE /api/contacts/{id}", s.handleContactDelete)

	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)
}

// respond writes v, or the error when err is set.
func respond[T any](s *Server, w http.ResponseWriter, r *http.Request, v T, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, v)
}

// create decodes the request body, passes it to fn and answers 201.
func create[In, Out any](s *Server, w http.ResponseWriter, r *http.Request, fn func(In) (Out, error)) {
	var input In
	if err := decode(r, &input); err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := fn(input)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.created(w, out)
}

func (s *Server) noContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Notes

func (s *Server) handleNoteList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	notes, err := s.svc.Notes.List(noteDomain.Query{Term: q.Get("q"), Category: q.Get("category")})
	respond(s, w, r, notes, err)
}

func (s *Server) handleNoteCreate(w http.ResponseWriter, r *http.Request) {
	create(s, w, r, s.svc.Notes.Create)
}

func (s *Server) handleNoteCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Notes.Categories()
	respond(s, w, r, categories, err)
}

func (s *Server) handleNoteStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.Notes.CountByPriority()
	respond(s, w, r, counts, err)
}

func (s *Server) handleNoteStar(w http.ResponseWriter, r *http.Request) {
	note, err := s.svc.Notes.ToggleStar(r.PathValue("id"))
	respond(s, w, r, note, err)
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, r, s.svc.Notes.Delete(r.PathValue("id")))
}

// Alerts

func (s *Server) handleAlertList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := alertDomain.Query{ShowRead: q.Get("show_read") == "true"}
	if raw := q.Get("type"); raw != "" && raw != "all" {
		t, err := alertDomain.ParseType(raw)
		if err != nil {
			s.fail(w, r, oops.With("type", raw).Wrap(errors.ErrInvalidInput))
			return
		}
		query.Type = t
	}
	if raw := q.Get("priority"); raw != "" && raw != "all" {
		p, err := alertDomain.ParsePriority(raw)
		if err != nil {
			s.fail(w, r, oops.With("priority", raw).Wrap(errors.ErrInvalidInput))
			return
		}
		query.Priority = p
	}

	alerts, err := s.svc.Alerts.List(query)
	respond(s, w, r, alerts, err)
}

func (s *Server) handleAlertCreate(w http.ResponseWriter, r *http.Request) {
	create(s, w, r, s.svc.Alerts.Create)
}

func (s *Server) handleAlertSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Alerts.Summary()
	respond(s, w, r, summary, err)
}

func (s *Server) handleAlertRead(w http.ResponseWriter, r *http.Request) {
	alert, err := s.svc.Alerts.MarkRead(r.PathValue("id"))
	respond(s, w, r, alert, err)
}

func (s *Server) handleAlertToggle(w http.ResponseWriter, r *http.Request) {
	alert, err := s.svc.Alerts.ToggleActive(r.PathValue("id"))
	respond(s, w, r, alert, err)
}

func (s *Server) handleAlertDelete(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, r, s.svc.Alerts.Delete(r.PathValue("id")))
}

// Tag rules

func (s *Server) handleRuleList(w http.ResponseWriter, r *http.Request) {
	rules, err := s.svc.Tagging.List()
	respond(s, w, r, rules, err)
}

func (s *Server) handleRuleCreate(w http.ResponseWriter, r *http.Request) {
	create(s, w, r, s.svc.Tagging.Create)
}

func (s *Server) handleRuleRun(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Tagging.Run(r.Context())
	respond(s, w, r, result, err)
}

func (s *Server) handleRuleToggle(w http.ResponseWriter, r *http.Request) {
	rule, err := s.svc.Tagging.Toggle(r.PathValue("id"))
	respond(s, w, r, rule, err)
}

func (s *Server) handleRuleDelete(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, r, s.svc.Tagging.Delete(r.PathValue("id")))
}

// Saved searches

func (s *Server) handleSavedSearchList(w http.ResponseWriter, r *http.Request) {
	searches, err := s.svc.SavedSearches.List()
	respond(s, w, r, searches, err)
}

func (s *Server) handleSavedSearchCreate(w http.ResponseWriter, r *http.Request) {
	create(s, w, r, s.svc.SavedSearches.Create)
}

func (s *Server) handleSavedSearchGet(w http.ResponseWriter, r *http.Request) {
	search, err := s.svc.SavedSearches.Get(r.PathValue("id"))
	respond(s, w, r, search, err)
}

func (s *Server) handleSavedSearchToggle(w http.ResponseWriter, r *http.Request) {
	search, err := s.svc.SavedSearches.Toggle(r.PathValue("id"))
	respond(s, w, r, search, err)
}

func (s *Server) handleSavedSearchRun(w http.ResponseWriter, r *http.Request) {
	products, err := s.svc.SavedSearches.Run(r.Context(), r.PathValue("id"))
	respond(s, w, r, products, err)
}

func (s *Server) handleSavedSearchDelete(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, r, s.svc.SavedSearches.Delete(r.PathValue("id")))
}

// Favorites

func (s *Server) handleFavoriteList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	favorites, err := s.svc.Favorites.List(favoriteDomain.Query{
		Term:     q.Get("q"),
		Type:     q.Get("type"),
		Category: q.Get("category"),
	})
	respond(s, w, r, favorites, err)
}

func (s *Server) handleFavoriteAdd(w http.ResponseWriter, r *http.Request) {
	create(s, w, r, s.svc.Favorites.Add)
}

func (s *Server) handleFavoriteCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Favorites.Categories()
	respond(s, w, r, categories, err)
}

func (s *Server) handleFavoriteStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.Favorites.CountByType()
	respond(s, w, r, counts, err)
}

func (s *Server) handleFavoriteRemove(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, r, s.svc.Favorites.Remove(r.PathValue("id")))
}

// Contacts

func (s *Server) handleContactList(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.svc.Contacts.List(r.URL.Query().Get("q"))
	respond(s, w, r, contacts, err)
}

func (s *Server) handleContactCreate(w http.ResponseWriter, r *http.Request) {
	create(s, w, r, s.svc.Contacts.Create)
}

type extractRequest struct {
	Text string `json:"text"`
	Save bool   `json:"save"`
}

func (s *Server) handleContactExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if !req.Save {
		s.ok(w, s.svc.Contacts.Extract(req.Text))
		return
	}
	contacts, err := s.svc.Contacts.ExtractAndSave(req.Text)
	respond(s, w, r, contacts, err)
}

func (s *Server) handleContactSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Contacts.Summary()
	respond(s, w, r, summary, err)
}

func (s *Server) handleContactVerify(w http.ResponseWriter, r *http.Request) {
	contact, err := s.svc.Contacts.Verify(r.PathValue("id"))
	respond(s, w, r, contact, err)
}

func (s *Server) handleContactDelete(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, r, s.svc.Contacts.Delete(r.PathValue("id")))
}

// Analytics

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	var rng analyticsDomain.Range
	if raw := r.URL.Query().Get("range"); raw != "" {
		parsed, err := analyticsDomain.ParseRange(raw)
		if err != nil {
			s.fail(w, r, oops.With("range", raw).Wrap(errors.ErrInvalidInput))
			return
		}
		rng = parsed
	}

	overview, err := s.svc.Analytics.Overview(r.Context(), rng)
	respond(s, w, r, overview, err)
}
