// Copyright 2026 The GNP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mgmtapi implements the http management API of the router. It
// reports counters and interfaces, and lets an operator dispose of datagrams
// that hooks queued.
package mgmtapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/private/routing"
	"github.com/gnprouter/gnp/router"
)

// RouteLister lists static routes.
type RouteLister interface {
	Entries() []routing.Entry
}

// Server implements the management API. Every access to the router happens
// on Loop.
type Server struct {
	Router *router.Router
	Loop   *router.Loop
	// Routes is optional. Without it /routes is empty.
	Routes RouteLister
}

// Handler registers the API on r and returns it.
func Handler(s *Server, r chi.Router) http.Handler {
	r.Get("/stats", s.GetStats)
	r.Get("/interfaces", s.GetInterfaces)
	r.Get("/routes", s.GetRoutes)
	r.Get("/queue", s.GetQueue)
	r.Post("/queue/{id}/drop", s.DropQueued)
	r.Post("/queue/{id}/reinject", s.ReinjectQueued)
	return r
}

// GetStats returns the counters of the router.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	var st router.Statistics
	if err := s.Loop.Do(r.Context(), func() { st = s.Router.Stats() }); err != nil {
		unavailable(w, err)
		return
	}
	writeJSON(w, StatsResponse{
		Forwarded:  st.Forwarded,
		Delivered:  st.Delivered,
		Dropped:    st.Dropped,
		Unroutable: st.Unroutable,
		Queued:     st.Queued,
	})
}

// GetInterfaces lists the interfaces of the router.
func (s *Server) GetInterfaces(w http.ResponseWriter, r *http.Request) {
	var rep []Interface
	err := s.Loop.Do(r.Context(), func() {
		for _, ifc := range s.Router.Interfaces().Interfaces() {
			rep = append(rep, Interface{
				ID:        ifc.ID,
				Name:      ifc.Name,
				Addrs:     addrStrings(ifc.Addrs),
				Groups:    addrStrings(ifc.Groups),
				Multicast: ifc.Multicast,
				Up:        ifc.Up,
			})
		}
	})
	if err != nil {
		unavailable(w, err)
		return
	}
	writeJSON(w, rep)
}

// GetRoutes lists the static routes, most specific first.
func (s *Server) GetRoutes(w http.ResponseWriter, r *http.Request) {
	rep := []Route{}
	if s.Routes != nil {
		for _, e := range s.Routes.Entries() {
			rep = append(rep, Route{
				Prefix:    e.Prefix.String(),
				Interface: e.Interface.Name,
				NextHop:   addrString(e.NextHop),
			})
		}
	}
	writeJSON(w, rep)
}

// GetQueue lists the queued datagrams in queuing order.
func (s *Server) GetQueue(w http.ResponseWriter, r *http.Request) {
	rep := []QueuedDatagram{}
	err := s.Loop.Do(r.Context(), func() {
		for _, p := range s.Router.Queued() {
			dg := p.Datagram
			rep = append(rep, QueuedDatagram{
				ID:          dg.ID.String(),
				Point:       p.Point.String(),
				Src:         addrString(dg.Src),
				Dst:         addrString(dg.Dst),
				Protocol:    dg.Protocol.String(),
				HopLimit:    dg.HopLimit,
				PayloadLen:  len(dg.Payload),
				In:          ifaceName(p.In),
				Out:         ifaceName(p.Out),
				NextHop:     addrString(p.NextHop),
				LocalOrigin: p.LocalOrigin,
			})
		}
	})
	if err != nil {
		unavailable(w, err)
		return
	}
	writeJSON(w, rep)
}

// DropQueued discards a queued datagram.
func (s *Server) DropQueued(w http.ResponseWriter, r *http.Request) {
	s.dispose(w, r, s.Router.DropQueued)
}

// ReinjectQueued resumes processing of a queued datagram.
func (s *Server) ReinjectQueued(w http.ResponseWriter, r *http.Request) {
	s.dispose(w, r, s.Router.ReinjectQueued)
}

func (s *Server) dispose(w http.ResponseWriter, r *http.Request, fn func(gnp.ID) error) {
	id, err := gnp.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		ErrorResponse(w, Problem{
			Detail: stringRef(err.Error()),
			Status: http.StatusBadRequest,
			Title:  "invalid datagram id",
			Type:   stringRef(BadRequest),
		})
		return
	}
	var dispErr error
	if err := s.Loop.Do(r.Context(), func() { dispErr = fn(id) }); err != nil {
		unavailable(w, err)
		return
	}
	switch {
	case dispErr == nil:
		w.WriteHeader(http.StatusNoContent)
	// A second disposition is also an unknown identity, so check it first.
	case errors.Is(dispErr, router.ErrDoubleDisposition):
		ErrorResponse(w, Problem{
			Detail: stringRef(dispErr.Error()),
			Status: http.StatusConflict,
			Title:  "datagram already disposed",
			Type:   stringRef(Conflict),
		})
	case errors.Is(dispErr, router.ErrUnknownQueueIdentity):
		ErrorResponse(w, Problem{
			Detail: stringRef(dispErr.Error()),
			Status: http.StatusNotFound,
			Title:  "no such queued datagram",
			Type:   stringRef(NotFound),
		})
	default:
		ErrorResponse(w, Problem{
			Detail: stringRef(dispErr.Error()),
			Status: http.StatusInternalServerError,
			Title:  "disposing datagram",
			Type:   stringRef(InternalError),
		})
	}
}

func unavailable(w http.ResponseWriter, err error) {
	ErrorResponse(w, Problem{
		Detail: stringRef(err.Error()),
		Status: http.StatusServiceUnavailable,
		Title:  "router not running",
		Type:   stringRef(Unavailable),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		ErrorResponse(w, Problem{
			Detail: stringRef(err.Error()),
			Status: http.StatusInternalServerError,
			Title:  "unable to marshal response",
			Type:   stringRef(InternalError),
		})
	}
}

// ErrorResponse writes p as the response.
func ErrorResponse(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	// Nothing left to do if this fails.
	_ = enc.Encode(p)
}

func addrString(a netip.Addr) string {
	if !a.IsValid() {
		return ""
	}
	return a.String()
}

func addrStrings(addrs []netip.Addr) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out
}

func ifaceName(ifc *router.Interface) string {
	if ifc == nil {
		return ""
	}
	return ifc.Name
}
