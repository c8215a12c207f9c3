package report

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	prhttp "github.com/MrJamesThe3rd/acquitrack/internal/http/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/http/respond"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.catalogue)
	r.Get("/analytics", h.analytics)
	r.Post("/export", h.export)
	r.Post("/{id}/generate", h.generate)
}

// Filters use the same keys as the purchase request list query, e.g. {"status": "approved,rejected"}.
type generateRequest struct {
	Format  report.Format     `json:"format,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

type exportRequest struct {
	Filters map[string]string `json:"filters,omitempty"`
}

type definitionResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    report.Category `json:"category"`
	Formats     []report.Format `json:"formats"`
}

func (h *Handler) catalogue(w http.ResponseWriter, _ *http.Request) {
	defs := h.svc.Catalogue()

	resp := make([]definitionResponse, len(defs))
	for i, d := range defs {
		resp[i] = definitionResponse{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
			Formats:     d.Formats,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	filter, err := prhttp.ParseFilter(r.URL.Query())
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	a, err := h.svc.Analytics(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toAnalyticsResponse(a))
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "invalid request body: "+err.Error())
			return
		}
	}

	filter, err := parseFilters(req.Filters)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	doc, err := h.svc.Generate(r.Context(), chi.URLParam(r, "id"), req.Format, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))

	if _, err := w.Write(doc.Data); err != nil {
		slog.Error("failed to write report", "report", doc.ReportID, "error", err)
	}
}

// export streams every catalogue report and the summary as one zip archive.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "invalid request body: "+err.Error())
			return
		}
	}

	filter, err := parseFilters(req.Filters)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	tmpDir, err := os.MkdirTemp("", "acquitrack-reports-*")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer os.RemoveAll(tmpDir)

	if _, err := h.svc.Export(r.Context(), filter, tmpDir); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"reports_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err = filepath.WalkDir(tmpDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		relPath, err := filepath.Rel(tmpDir, path)
		if err != nil {
			return err
		}

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}

func parseFilters(m map[string]string) (purchaserequest.Filter, error) {
	q := make(url.Values, len(m))
	for k, v := range m {
		q.Set(k, v)
	}

	return prhttp.ParseFilter(q)
}
