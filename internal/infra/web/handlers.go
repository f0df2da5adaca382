package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/repository"
	"interpreter-booking/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// A struct to define the expected JSON request body for creating a booking.
type storeJobRequest struct {
	FromLanguageID       string `json:"from_language_id"`
	Immediate            bool   `json:"immediate"`
	Due                  string `json:"due"` // RFC3339, ignored for immediate
	Duration             int    `json:"duration"`
	JobType              string `json:"job_type"`
	Certified            string `json:"certified"`
	Gender               string `json:"gender"`
	CustomerPhoneType    bool   `json:"customer_phone_type"`
	CustomerPhysicalType bool   `json:"customer_physical_type"`
	Town                 string `json:"town"`
	Reference            string `json:"reference"`
}

func (s *Server) storeJob(w http.ResponseWriter, r *http.Request) {
	var req storeJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var due time.Time
	if req.Due != "" {
		var err error
		due, err = time.Parse(time.RFC3339, req.Due)
		if err != nil {
			http.Error(w, "Invalid due time", http.StatusBadRequest)
			return
		}
	}

	result := s.bookings.Store(r.Context(), userFrom(r), usecase.StoreJobRequest{
		FromLanguageID:       req.FromLanguageID,
		Immediate:            req.Immediate,
		Due:                  due,
		Duration:             req.Duration,
		JobType:              model.JobType(req.JobType),
		Certified:            model.CertifiedRequirement(req.Certified),
		Gender:               model.Gender(req.Gender),
		CustomerPhoneType:    req.CustomerPhoneType,
		CustomerPhysicalType: req.CustomerPhysicalType,
		Town:                 req.Town,
		Reference:            req.Reference,
	})
	writeJSON(w, http.StatusOK, result)
}

type storeJobEmailRequest struct {
	UserEmail    string `json:"user_email"`
	Reference    string `json:"reference"`
	Address      string `json:"address"`
	Instructions string `json:"instructions"`
	Town         string `json:"town"`
}

func (s *Server) storeJobEmail(w http.ResponseWriter, r *http.Request) {
	var req storeJobEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	result := s.bookings.StoreJobEmail(r.Context(), usecase.JobEmailRequest{
		JobID:        chi.URLParam(r, "id"),
		UserEmail:    req.UserEmail,
		Reference:    req.Reference,
		Address:      req.Address,
		Instructions: req.Instructions,
		Town:         req.Town,
	})
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) potentialJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.bookings.GetPotentialJobs(r.Context(), userFrom(r).ID)
	if err != nil {
		http.Error(w, "Failed to list potential jobs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Job `json:"data"`
	}{Data: jobs})
}

func (s *Server) acceptJob(w http.ResponseWriter, r *http.Request) {
	result := s.bookings.AcceptJob(r.Context(), chi.URLParam(r, "id"), userFrom(r))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) cancelJob(w http.ResponseWriter, r *http.Request) {
	result := s.bookings.CancelJob(r.Context(), chi.URLParam(r, "id"), userFrom(r))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) endJob(w http.ResponseWriter, r *http.Request) {
	result := s.bookings.EndJob(r.Context(), chi.URLParam(r, "id"), userFrom(r).ID)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) customerNotCall(w http.ResponseWriter, r *http.Request) {
	result := s.bookings.CustomerNotCall(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) userJobs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := userFrom(r)
	if caller.ID != id && caller.Role != model.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	jobs, err := s.bookings.GetUsersJobs(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to list jobs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) userJobsHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := userFrom(r)
	if caller.ID != id && caller.Role != model.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50 // Default page size
	}
	if offset < 0 {
		offset = 0
	}

	jobs, err := s.bookings.GetUsersJobsHistory(r.Context(), id, limit, offset)
	if err != nil {
		http.Error(w, "Failed to list history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data   []*model.Job `json:"data"`
		Limit  int          `json:"limit"`
		Offset int          `json:"offset"`
	}{Data: jobs, Limit: limit, Offset: offset})
}

// queryJobs is the admin dashboard listing; every filter is optional.
func (s *Server) queryJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f repository.JobFilter

	if v := q.Get("customer_id"); v != "" {
		f.CustomerIDs = []string{v}
	}
	f.TranslatorID = q.Get("translator_id")
	if v := q.Get("status"); v != "" {
		for _, sv := range strings.Split(v, ",") {
			st, err := model.ParseJobStatus(sv)
			if err != nil {
				http.Error(w, "Invalid status filter", http.StatusBadRequest)
				return
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	if v := q.Get("language_id"); v != "" {
		f.LanguageIDs = []string{v}
	}
	if v := q.Get("due_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "Invalid due_from", http.StatusBadRequest)
			return
		}
		f.DueFrom = &t
	}
	if v := q.Get("due_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "Invalid due_to", http.StatusBadRequest)
			return
		}
		f.DueTo = &t
	}
	if v := q.Get("immediate"); v != "" {
		b := v == "true"
		f.Immediate = &b
	}
	if v := q.Get("flagged"); v != "" {
		b := v == "true"
		f.Flagged = &b
	}
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f.Offset, _ = strconv.Atoi(q.Get("offset"))
	if f.Limit <= 0 {
		f.Limit = 50
	}

	jobs, err := s.bookings.QueryJobs(r.Context(), f)
	if err != nil {
		http.Error(w, "Failed to query jobs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Job `json:"data"`
	}{Data: jobs})
}

type updateJobRequest struct {
	TranslatorID    string `json:"translator_id"`
	TranslatorEmail string `json:"translator_email"`
	Due             string `json:"due"` // RFC3339, empty leaves it alone
	FromLanguageID  string `json:"from_language_id"`
	Status          string `json:"status"`
	AdminComments   string `json:"admin_comments"`
	SessionTime     string `json:"session_time"`
	Reference       string `json:"reference"`
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	var req updateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	uc := usecase.UpdateJobRequest{
		Translator: usecase.TranslatorChangeRequest{
			TranslatorID:    req.TranslatorID,
			TranslatorEmail: req.TranslatorEmail,
		},
		FromLanguageID: req.FromLanguageID,
		Status:         req.Status,
		AdminComments:  req.AdminComments,
		SessionTime:    req.SessionTime,
		Reference:      req.Reference,
	}
	if req.Due != "" {
		t, err := time.Parse(time.RFC3339, req.Due)
		if err != nil {
			http.Error(w, "Invalid due time", http.StatusBadRequest)
			return
		}
		uc.Due = &t
	}

	result := s.bookings.UpdateJob(r.Context(), chi.URLParam(r, "id"), uc, userFrom(r))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) reopenJob(w http.ResponseWriter, r *http.Request) {
	result := s.bookings.Reopen(r.Context(), chi.URLParam(r, "id"), userFrom(r).ID)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) notifyTranslators(w http.ResponseWriter, r *http.Request) {
	if err := s.bookings.SendNotificationByAdminCancelJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "Failed to notify translators", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) resendSMS(w http.ResponseWriter, r *http.Request) {
	count, err := s.bookings.ResendSMSNotifications(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
