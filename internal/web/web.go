// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the eligibility form. Every request that submits the
// form runs its own checker.Session, so nothing is shared between users.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pdiddy/airdrop-checker/internal/allocation"
	"github.com/pdiddy/airdrop-checker/internal/checker"
	"github.com/pdiddy/airdrop-checker/internal/httputil"
	"github.com/pdiddy/airdrop-checker/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// maxBodyBytes caps form and JSON bodies.
const maxBodyBytes = 16 << 10

// Server holds the dependencies shared by all handlers. Both are safe for
// concurrent use: the requester keeps no per-call state and the random
// source must be goroutine-safe.
type Server struct {
	requester checker.MessageRequester
	random    allocation.RandomSource
	log       *zap.Logger
}

// NewServer returns a Server. A nil random source means the unseeded
// production source; a nil logger discards logs.
func NewServer(requester checker.MessageRequester, random allocation.RandomSource, log *zap.Logger) *Server {
	if random == nil {
		random = allocation.NewRandomSource()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{requester: requester, random: random, log: log}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(httputil.WithRequestID, httputil.WithLogging(s.log))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/check", s.handleCheck).Methods(http.MethodPost)
	r.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	r.HandleFunc("/api/check", s.handleAPICheck).Methods(http.MethodPost)

	return r
}

// pageData is the view model for index.html.
type pageData struct {
	Submission     types.Submission
	Error          string
	Result         *types.AllocationResult
	FormattedValue string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, pageData{Error: "Could not read the form. Please try again."})
		return
	}
	sub := types.Submission{
		WalletAddress: r.PostFormValue("walletAddress"),
		TwitterHandle: r.PostFormValue("twitterHandle"),
		DiscordRoles:  r.PostFormValue("discordRoles"),
	}

	session := s.newSession(r)
	res, err := session.Submit(r.Context(), sub)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, checker.ErrWalletRequired) {
			status = http.StatusUnprocessableEntity
		}
		s.render(w, status, pageData{Submission: sub, Error: err.Error()})
		return
	}

	s.render(w, http.StatusOK, pageData{
		Result:         res,
		FormattedValue: humanize.Comma(int64(res.Value)),
	})
}

// handleReset sends the browser back to an empty form.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPICheck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var sub types.Submission
	if err := decodeJSON(r, &sub); err != nil {
		httputil.ErrorResponse(w, s.log, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.newSession(r).Submit(r.Context(), sub)
	if err != nil {
		if errors.Is(err, checker.ErrWalletRequired) {
			httputil.ErrorResponse(w, s.log, http.StatusUnprocessableEntity, err.Error())
			return
		}
		httputil.ErrorResponse(w, s.log, http.StatusInternalServerError, "check failed")
		return
	}
	httputil.JSONResponse(w, s.log, http.StatusOK, res)
}

func (s *Server) newSession(r *http.Request) *checker.Session {
	session := checker.NewSession(s.requester, s.random)
	rid := httputil.RequestID(r.Context())
	session.OnTransition = func(from, to checker.State) {
		s.log.Debug("check state changed",
			zap.String("request_id", rid),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	}
	return session
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		s.log.Error("failed to render page", zap.Error(err))
	}
}
