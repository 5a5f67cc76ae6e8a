// Package web serves the HTTP chat API: the same query pipeline the Telegram
// bot uses, behind a small JSON interface.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sefariabot/internal/service"
)

// TextFetcher fetches a source text by reference.
type TextFetcher interface {
	GetTextByRef(ctx context.Context, ref string) (string, error)
}

// Server is the JSON chat API server.
type Server struct {
	chat   *service.ChatService
	texts  TextFetcher
	server *http.Server
	log    *logrus.Entry
}

// NewServer wires the chat pipeline into an HTTP server on the given port.
func NewServer(port string, chat *service.ChatService, texts TextFetcher) *Server {
	s := &Server{
		chat:  chat,
		texts: texts,
		log:   logrus.WithField("component", "web"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/text/", s.handleText)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // model calls are slow
	}
	return s
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.log.WithField("addr", s.server.Addr).Info("starting http server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, chatResponse{Error: "метод не поддерживается"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, chatResponse{Error: "Запрос не может быть пустым"})
		return
	}

	answer := s.chat.HandleQuery(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, chatResponse{Response: answer})
}

type textResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimPrefix(r.URL.Path, "/api/text/")
	if ref == "" {
		writeJSON(w, http.StatusBadRequest, textResponse{Error: "не указана ссылка на текст"})
		return
	}

	text, err := s.texts.GetTextByRef(r.Context(), ref)
	if err != nil {
		s.log.WithError(err).WithField("ref", ref).Error("text fetch failed")
		writeJSON(w, http.StatusBadGateway, textResponse{Error: "Ошибка при получении текста: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: text})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
