package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	channelService "github.com/reshetovitsme/product-scout/internal/modules/channel/service"
	syncDomain "github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	messageService "github.com/reshetovitsme/product-scout/internal/modules/message/service"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/oops"
)

func (s *Server) registerChannelRoutes(mux *http.ServeMux) {
	// Sync page
	mux.HandleFunc("GET /api/channels/list", s.handleJoinedList)
	mux.HandleFunc("GET /api/channels/saved/list", s.handleSavedList)
	mux.HandleFunc("POST /api/channels/save", s.handleSave)
	mux.HandleFunc("GET /api/channels/{id}/messages/sync", s.handleSyncMessages)
	mux.HandleFunc("GET /api/channels/{id}/messages", s.handleMessages)

	// Channel manager
	mux.HandleFunc("GET /api/channels", s.handleChannelList)
	mux.HandleFunc("POST /api/channels", s.handleChannelAdd)
	mux.HandleFunc("GET /api/channels/facets", s.handleChannelFacets)
	mux.HandleFunc("GET /api/channels/{id}", s.handleChannelGet)
	mux.HandleFunc("PATCH /api/channels/{id}", s.handleChannelUpdate)
	mux.HandleFunc("DELETE /api/channels/{id}", s.handleChannelDelete)
	mux.HandleFunc("POST /api/channels/{id}/toggle", s.handleChannelToggle)
	mux.HandleFunc("POST /api/channels/{id}/filters", s.handleFilterAdd)
	mux.HandleFunc("DELETE /api/channels/{id}/filters/{index}", s.handleFilterRemove)
}

func (s *Server) handleJoinedList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := syncDomain.ListOptions{Query: q.Get("query")}
	if raw := q.Get("verification"); raw != "" {
		v, err := syncDomain.ParseVerification(raw)
		if err != nil {
			s.fail(w, r, oops.With("verification", raw).Wrap(errors.ErrInvalidInput))
			return
		}
		opts.Verification = v
	}
	if raw := q.Get("sort"); raw != "" {
		sortBy, err := syncDomain.ParseSortBy(raw)
		if err != nil {
			s.fail(w, r, oops.With("sort", raw).Wrap(errors.ErrInvalidInput))
			return
		}
		opts.SortBy = sortBy
	}

	channels, err := s.svc.Joined.List(opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, channels)
}

func (s *Server) handleSavedList(w http.ResponseWriter, r *http.Request) {
	channels, err := s.svc.Channels.List(domain.Query{})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, channels)
}

type saveRequest struct {
	Channels []syncDomain.JoinedChannel `json:"channels"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	saved, err := s.svc.Joined.Save(req.Channels)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Message: fmt.Sprintf("%d channels saved", len(saved)),
		Data:    saved,
	})
}

func (s *Server) handleSyncMessages(w http.ResponseWriter, r *http.Request) {
	products, err := s.svc.Channels.SyncMessages(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, products)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", messageService.DefaultLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	channelID := r.PathValue("id")
	if _, err := s.svc.Channels.GetChannel(channelID); err != nil {
		s.fail(w, r, err)
		return
	}

	messages, err := s.svc.Messages.Latest(channelID, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, messages)
}

func (s *Server) handleChannelList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	channels, err := s.svc.Channels.List(domain.Query{
		Platform: q.Get("platform"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, channels)
}

func (s *Server) handleChannelAdd(w http.ResponseWriter, r *http.Request) {
	var input domain.NewChannel
	if err := decode(r, &input); err != nil {
		s.fail(w, r, err)
		return
	}

	channel, err := s.svc.Channels.Add(input)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.created(w, channel)
}

func (s *Server) handleChannelFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := s.svc.Channels.FacetValues()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, facets)
}

func (s *Server) handleChannelGet(w http.ResponseWriter, r *http.Request) {
	channel, err := s.svc.Channels.GetChannel(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, channel)
}

func (s *Server) handleChannelUpdate(w http.ResponseWriter, r *http.Request) {
	var settings channelService.Settings
	if err := decode(r, &settings); err != nil {
		s.fail(w, r, err)
		return
	}

	channel, err := s.svc.Channels.UpdateSettings(r.PathValue("id"), settings)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, channel)
}

func (s *Server) handleChannelDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Channels.Delete(r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChannelToggle(w http.ResponseWriter, r *http.Request) {
	channel, err := s.svc.Channels.Toggle(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, channel)
}

type filterRequest struct {
	Type     domain.FilterType `json:"type"`
	Keywords []string          `json:"keywords"`
}

func (s *Server) handleFilterAdd(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	channel, err := s.svc.Channels.AddFilter(r.PathValue("id"), req.Type, req.Keywords)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.created(w, channel)
}

func (s *Server) handleFilterRemove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.fail(w, r, oops.With("index", r.PathValue("index")).Wrap(errors.ErrInvalidInput))
		return
	}

	channel, err := s.svc.Channels.RemoveFilter(r.PathValue("id"), index)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, channel)
}
