package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/dstrelkov/jobdeck/internal/clients/opencage"
	"github.com/dstrelkov/jobdeck/internal/entities"
	"github.com/dstrelkov/jobdeck/internal/repositories"
	"github.com/dstrelkov/jobdeck/internal/services"
)

type Handler struct {
	jobSvc *services.JobService
}

func NewHandler(jobSvc *services.JobService) *Handler {
	return &Handler{jobSvc: jobSvc}
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {

	var dto createJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	job, err := h.jobSvc.Create(r.Context(), dto.toInput())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJobResp(job))
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {

	job, err := h.jobSvc.Get(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobResp(job))
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {

	var dto updateJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	job, err := h.jobSvc.Update(r.Context(), chi.URLParam(r, "idOrSlug"), dto.toInput())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobResp(job))
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {

	if err := h.jobSvc.Delete(r.Context(), chi.URLParam(r, "idOrSlug")); err != nil {
		h.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) FindJobsNear(w http.ResponseWriter, r *http.Request) {

	query := r.URL.Query()

	lat, latErr := strconv.ParseFloat(query.Get("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(query.Get("longitude"), 64)
	radius, radiusErr := strconv.ParseFloat(query.Get("radius_km"), 64)
	if latErr != nil || lonErr != nil || radiusErr != nil {
		writeErr(w, http.StatusBadRequest, "latitude, longitude and radius_km must be numbers")
		return
	}

	filter := entities.JobFilter{
		Industry:   entities.Industry(query.Get("industry")),
		JobType:    entities.JobType(query.Get("job_type")),
		Experience: entities.Experience(query.Get("experience")),
	}

	jobs, err := h.jobSvc.FindNear(r.Context(), lat, lon, radius, filter)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(jobs, func(job entities.Job, _ int) jobResp {
		return toJobResp(&job)
	}))
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {

	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{
			Message: "validation failed",
			Fields: lo.Map(validationErr.Violations, func(v entities.FieldViolation, _ int) fieldErrorResp {
				return fieldErrorResp{Field: v.Field, Reason: v.Reason}
			}),
		})
		return
	}

	var enrichmentErr *services.EnrichmentError
	if errors.As(err, &enrichmentErr) {
		switch {
		case errors.Is(err, opencage.ErrNoResults):
			writeErr(w, http.StatusBadRequest, "address could not be resolved")
		case errors.Is(err, opencage.ErrQuotaExceeded):
			writeErr(w, http.StatusServiceUnavailable, "geocoding quota exceeded, try again later")
		default:
			writeErr(w, http.StatusServiceUnavailable, "geocoding temporarily unavailable")
		}
		return
	}

	if errors.Is(err, repositories.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "job not found")
		return
	}

	writeErr(w, http.StatusInternalServerError, "internal error")
}
