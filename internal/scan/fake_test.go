package scan

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/roobyn/sap-bi/pkg/biprws"
)

// fakeServer is an in-memory BIPRWS speaking just the routes the scanner
// uses. It counts document fetches so tests can assert which reports
// were (not) queried.
type fakeServer struct {
	t *testing.T

	folders   map[string][]biprws.FolderEntry
	documents map[string]biprws.DocumentInfo
	providers map[string][]biprws.DataProviderInfo
	specs     map[string]string // "docID/dpID" -> XML body
	failDocs  map[string]int    // docID -> status to fail with

	mu          sync.Mutex
	docsFetched map[string]int
}

func newFakeServer(t *testing.T) *fakeServer {
	return &fakeServer{
		t:           t,
		folders:     map[string][]biprws.FolderEntry{},
		documents:   map[string]biprws.DocumentInfo{},
		providers:   map[string][]biprws.DataProviderInfo{},
		specs:       map[string]string{},
		failDocs:    map[string]int{},
		docsFetched: map[string]int{},
	}
}

func (s *fakeServer) start() (*biprws.Client, func()) {
	srv := httptest.NewServer(s)
	return biprws.New(srv.URL), srv.Close
}

func (s *fakeServer) fetched(docID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docsFetched[docID]
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(biprws.TokenHeader) != "tok" {
		http.Error(w, "missing session token", http.StatusUnauthorized)
		return
	}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 3 && parts[0] == "infostore" && parts[2] == "children":
		entries, ok := s.folders[parts[1]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"entries": entries})

	case len(parts) == 4 && parts[0] == "raylight" && parts[2] == "documents":
		docID := parts[3]
		s.mu.Lock()
		s.docsFetched[docID]++
		s.mu.Unlock()
		if status, ok := s.failDocs[docID]; ok {
			http.Error(w, "boom", status)
			return
		}
		doc, ok := s.documents[docID]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"document": doc})

	case len(parts) == 5 && parts[4] == "dataproviders":
		writeJSON(w, map[string]any{
			"dataproviders": map[string]any{"dataprovider": s.providers[parts[3]]},
		})

	case len(parts) == 7 && parts[6] == "specification":
		spec, ok := s.specs[parts[3]+"/"+parts[5]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(spec))

	default:
		s.t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func specWith(names ...string) string {
	var sb strings.Builder
	sb.WriteString("<QuerySpec><queriesTree><children><query><resultObjects>")
	for i, name := range names {
		fmt.Fprintf(&sb, `<resultObject id="DS0.DO%d" name="%s"/>`, i, name)
	}
	sb.WriteString("</resultObjects></query></children></queriesTree></QuerySpec>")
	return sb.String()
}
