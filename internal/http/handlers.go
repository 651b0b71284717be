package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/importer"
	"github.com/mauv0809/bgstats/internal/notifier"
	"github.com/mauv0809/bgstats/internal/player"
)

// maxBodyBytes bounds uploaded match files and query fragments.
const maxBodyBytes = 8 << 20

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		if err := s.Store.Ping(r.Context()); err != nil {
			log.Error("Health check failed", "error", err)
			http.Error(w, "Store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ImportHandler records the analysed match in the request body. The body is
// JSON unless the content type names msgpack.
func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		envID, replace, err := importParams(r.URL.Query().Get("env"), r.URL.Query().Get("replace"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		format := analysis.FormatFromContentType(r.Header.Get("Content-Type"))
		rec, err := analysis.Decode(io.LimitReader(r.Body, maxBodyBytes), format)
		if err != nil {
			log.Warn("Failed to decode analysed match", "error", err, "format", format)
			http.Error(w, "Invalid match file", http.StatusBadRequest)
			return
		}

		ctx := importer.WithDryRun(r.Context(), isDryRunFromContext(r))
		res := s.Importer.Import(ctx, rec, envID, replace)
		writeImportResult(w, res)
	}
}

// PushImportHandler accepts a Pub/Sub push message carrying a msgpack
// encoded analysed match. The env and replace attributes select the import
// options.
func (s *Server) PushImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received import message", "bytes", len(bodyBytes))

		var pubsubMsg pushEnvelope
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		attrs := pubsubMsg.Message.Attributes
		envID, replace, err := importParams(attrs["env"], attrs["replace"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec, err := analysis.Decode(bytes.NewReader(rawData), analysis.FormatMsgpack)
		if err != nil {
			log.Warn("Failed to decode pushed match", "error", err, "messageId", pubsubMsg.Message.MessageID)
			http.Error(w, "Invalid match payload", http.StatusBadRequest)
			return
		}

		ctx := importer.WithDryRun(r.Context(), isDryRunFromContext(r))
		res := s.Importer.Import(ctx, rec, envID, replace)
		writeImportResult(w, res)
	}
}

func (s *Server) PlayerSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "Missing name parameter", http.StatusBadRequest)
			return
		}

		summary, err := s.Facade.PlayerSummary(r.Context(), name)
		if errors.Is(err, player.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Player %q not found", name), http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Failed to summarise player", "error", err, "name", name)
			http.Error(w, "Failed to summarise player", http.StatusInternalServerError)
			return
		}

		if r.URL.Query().Get("notify") == "true" && s.Notifier != nil {
			ns := &notifier.PlayerSummary{
				Name:             summary.Name,
				GamesPlayed:      summary.GamesPlayed,
				GamesWon:         summary.GamesWon,
				AverageErrorRate: summary.AverageErrorRate,
			}
			if err := s.Notifier.SendPlayerSummary(r.Context(), ns, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to send player summary", "error", err, "name", name)
			}
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) ErasePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "Missing name parameter", http.StatusBadRequest)
			return
		}

		err := s.Facade.ErasePlayer(r.Context(), name)
		if errors.Is(err, player.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Player %q not found", name), http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Failed to erase player", "error", err, "name", name)
			http.Error(w, "Failed to erase player", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Erased player %s", name)
	}
}

func (s *Server) EraseAllHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to erase all matches and players")
		if err := s.Facade.EraseAll(r.Context()); err != nil {
			log.Error("Failed to erase store", "error", err)
			http.Error(w, "Failed to erase store", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store erased!")
	}
}

// SelectHandler runs "SELECT " + body.
func (s *Server) SelectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fragment, ok := readFragment(w, r)
		if !ok {
			return
		}
		res, err := s.Facade.RunRead(r.Context(), fragment)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// UpdateHandler runs "UPDATE " + body.
func (s *Server) UpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fragment, ok := readFragment(w, r)
		if !ok {
			return
		}
		n, err := s.Facade.RunWrite(r.Context(), fragment)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"rows_affected": n})
	}
}

func importParams(env, replace string) (int, bool, error) {
	envID := 0
	if env != "" {
		n, err := strconv.Atoi(env)
		if err != nil || n < 0 {
			return 0, false, fmt.Errorf("invalid env %q", env)
		}
		envID = n
	}
	return envID, replace == "true" || replace == "1", nil
}

func readFragment(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return "", false
	}
	fragment := strings.TrimSpace(string(body))
	if fragment == "" {
		http.Error(w, "Missing query fragment", http.StatusBadRequest)
		return "", false
	}
	return fragment, true
}

func writeImportResult(w http.ResponseWriter, res importer.Result) {
	status := http.StatusOK
	switch {
	case res.Outcome == importer.OutcomeImported:
		status = http.StatusCreated
	case errors.Is(res.Err, analysis.ErrMalformedInput):
		status = http.StatusUnprocessableEntity
	case res.Outcome == importer.OutcomeFailed:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
