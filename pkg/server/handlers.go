package server

import (
	"net/http"
	"time"

	"github.com/getmockd/mocksauce/pkg/httputil"
	"github.com/getmockd/mocksauce/pkg/jsonapi"
	"github.com/getmockd/mocksauce/pkg/sauce"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+HealthPath, s.handleHealth)

	for _, route := range s.routes {
		collection, member := route.Path, route.Path+"/{id}"
		if route.Path == "/" {
			collection, member = "/{$}", "/{id}"
		}
		mux.HandleFunc("GET "+collection, s.handleCollection(route))
		mux.HandleFunc("GET "+member, s.handleMember(route))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			httputil.WriteMethodNotAllowed(w, http.MethodGet)
			return
		}
		httputil.WriteNotFound(w, "route_not_found", "no route for "+r.URL.Path)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"routes":    len(s.routes),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleCollection runs the route's fixture document through its serializer.
func (s *Server) handleCollection(route *Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := sauce.NewRequest(r.URL.Query())
		httputil.WriteOK(w, route.Serializer.Serialize(route.Document, req))
	}
}

// handleMember serves one resource of the route's document with the
// document's included resources.
func (s *Server) handleMember(route *Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		res, ok := findMember(route.Document, id)
		if !ok {
			httputil.WriteNotFound(w, "resource_not_found", "no resource with id "+id+" at "+route.Path)
			return
		}

		doc := jsonapi.NewSingle(res, route.Document.Included)
		doc.Meta = route.Document.Meta
		req := sauce.NewRequest(r.URL.Query())
		httputil.WriteOK(w, route.Serializer.Serialize(doc, req))
	}
}

func findMember(doc *jsonapi.Document, id string) (*jsonapi.Resource, bool) {
	want := jsonapi.CanonicalID(id)
	if !doc.IsCollection() {
		if doc.Single != nil && jsonapi.CanonicalID(doc.Single.ID) == want {
			return doc.Single, true
		}
		return nil, false
	}
	for _, res := range doc.Collection {
		if jsonapi.CanonicalID(res.ID) == want {
			return res, true
		}
	}
	return nil, false
}
