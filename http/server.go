package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fwojciec/taxdoc"
)

// Server exposes stored documents and summarization over HTTP.
//
//	GET  /data/{docNumber}           document markdown with metadata header
//	GET  /data/{docNumber}/metadata  basic metadata as JSON
//	POST /summarize                  {"content": ...} -> {"summary": ...}
type Server struct {
	Documents  taxdoc.DocumentService
	Summarizer taxdoc.Summarizer
	Logger     *slog.Logger

	mux *http.ServeMux
}

// NewServer creates a Server. summarizer may be nil, in which case
// /summarize is not registered.
func NewServer(documents taxdoc.DocumentService, summarizer taxdoc.Summarizer, logger *slog.Logger) *Server {
	s := &Server{
		Documents:  documents,
		Summarizer: summarizer,
		Logger:     logger,
		mux:        http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /data/{docNumber}", s.handleDocument)
	s.mux.HandleFunc("GET /data/{docNumber}/metadata", s.handleMetadata)
	if summarizer != nil {
		s.mux.HandleFunc("POST /summarize", s.handleSummarize)
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Documents.FindDocumentByNumber(r.Context(), docNumber(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(taxdoc.FormatDocument(&doc.Metadata, doc.Type, doc.Content)))
}

// MetadataResponse is the body of a metadata response.
type MetadataResponse struct {
	Title     string `json:"문서명"`
	URL       string `json:"url"`
	DocNumber string `json:"문서번호"`
	TaxType   string `json:"세목"`
	Result    string `json:"판결결과"`
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Documents.FindDocumentByNumber(r.Context(), docNumber(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	meta := doc.Metadata
	if meta.DocNumber == "" {
		// Imported documents may carry the header in their content instead.
		if parsed, err := taxdoc.ParseBasicInfo(doc.Content); err == nil {
			meta = *parsed
		}
	}
	title := meta.Title
	if title == "" {
		title = doc.Title
	}
	url := meta.URL
	if url == "" {
		url = doc.SourceURL
	}
	writeJSON(w, http.StatusOK, MetadataResponse{
		Title:     title,
		URL:       url,
		DocNumber: doc.DocNumber,
		TaxType:   meta.TaxType,
		Result:    meta.Result,
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, taxdoc.Errorf(taxdoc.EINVALID, "invalid JSON body: %v", err))
		return
	}
	summary, err := s.Summarizer.Summarize(r.Context(), req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummarizeResponse{Summary: summary})
}

// docNumber returns the path document number, tolerating a file extension.
func docNumber(r *http.Request) string {
	n := r.PathValue("docNumber")
	for _, ext := range []string{".md", ".html"} {
		n = strings.TrimSuffix(n, ext)
	}
	return n
}

var errorStatus = map[string]int{
	taxdoc.EINVALID:  http.StatusBadRequest,
	taxdoc.ENOTFOUND: http.StatusNotFound,
	taxdoc.ECONFLICT: http.StatusConflict,
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := taxdoc.ErrorCode(err)
	status, ok := errorStatus[code]
	if !ok {
		status = http.StatusInternalServerError
		if s.Logger != nil {
			s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		}
	}
	writeJSON(w, status, SummarizeResponse{Error: taxdoc.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
