package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/Resumely/internal/config"
	db "github.com/markdave123-py/Resumely/internal/core/database"
	"github.com/markdave123-py/Resumely/internal/core/objectstore"
	"github.com/markdave123-py/Resumely/internal/core/parser"
	"github.com/markdave123-py/Resumely/internal/models"
)

// Concurrent files processed per upload request. The Gemini key pool does the
// real throttling; this just bounds memory.
const uploadConcurrency = 4

type ResumeHandler struct {
	dbclient     db.DbClient
	objectclient objectstore.ObjectClient
	parser       *parser.Parser
	cfg          *config.Config
}

func NewResumeHandler(dbclient db.DbClient, objectclient objectstore.ObjectClient, p *parser.Parser, cfg *config.Config) *ResumeHandler {
	return &ResumeHandler{dbclient: dbclient, objectclient: objectclient, parser: p, cfg: cfg}
}

type uploadFileResult struct {
	Filename    string         `json:"filename"`
	Success     bool           `json:"success"`
	IsDuplicate bool           `json:"is_duplicate,omitempty"`
	Error       string         `json:"error,omitempty"`
	Resume      *models.Resume `json:"data,omitempty"`
}

// UploadResumes accepts one or more files under the "resumes" form field,
// runs each through the extraction pipeline and stores file plus parsed
// fields. One bad file never fails the batch.
func (h *ResumeHandler) UploadResumes(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	files := r.MultipartForm.File["resumes"]
	if len(files) == 0 {
		http.Error(w, "no files in 'resumes' field", http.StatusBadRequest)
		return
	}

	results := make([]uploadFileResult, len(files))

	g, gctx := errgroup.WithContext(r.Context())
	g.SetLimit(uploadConcurrency)

	for i, header := range files {
		i, header := i, header
		g.Go(func() error {
			results[i] = h.processUpload(gctx, userID, header)
			return nil
		})
	}
	_ = g.Wait()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": results})
}

func (h *ResumeHandler) processUpload(ctx context.Context, userID string, header *multipart.FileHeader) uploadFileResult {

	filename := filepath.Base(header.Filename)
	out := uploadFileResult{Filename: filename}

	file, err := header.Open()
	if err != nil {
		out.Error = "could not open file"
		return out
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		out.Error = "could not read file"
		return out
	}

	sum := sha256.Sum256(data)
	contentHash := hex.EncodeToString(sum[:])

	// Byte-identical re-uploads short-circuit: no S3 write, no model call.
	if existing, err := h.dbclient.FindResumeByContentHash(ctx, userID, contentHash); err == nil && existing != nil {
		out.Success = true
		out.IsDuplicate = true
		out.Resume = existing
		return out
	}

	parsed := h.parser.ProcessResume(ctx, data, filename)
	if !parsed.Success {
		out.Error = parsed.Err
		return out
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resumeID := uuid.NewString()
	s3Key := fmt.Sprintf("%s/%s/%s", userID, resumeID, filename)

	url, err := h.objectclient.UploadFile(ctx, s3Key, data, contentType)
	if err != nil {
		log.Printf("upload failed for %s: %v", filename, err)
		out.Error = fmt.Sprintf("storage upload failed: %v", err)
		return out
	}

	rec := parsed.Record
	resume := &models.Resume{
		ID:                   resumeID,
		UploadedBy:           userID,
		Filename:             filename,
		Name:                 rec.Name,
		Email:                rec.Email,
		Phone:                rec.Phone,
		Linkedin:             rec.Linkedin,
		Github:               rec.Github,
		Skills:               rec.Skills,
		UGDegree:             rec.UGDegree,
		UGCollege:            rec.UGCollege,
		UGYear:               rec.UGYear,
		PGDegree:             rec.PGDegree,
		PGCollege:            rec.PGCollege,
		PGYear:               rec.PGYear,
		TotalExperienceYears: rec.TotalExperienceYears,
		WorkExperience:       rec.WorkExperience,
		StorageURL:           url,
		ObjectKey:            s3Key,
		ContentType:          contentType,
		ContentHash:          contentHash,
		CreatedAt:            time.Now(),
	}

	if err := h.dbclient.UpsertResume(ctx, resume); err != nil {
		log.Printf("DB upsert failed for %s: %v", filename, err)
		out.Error = fmt.Sprintf("failed to store resume: %v", err)
		return out
	}

	out.Success = true
	out.Resume = resume
	if parsed.Err != "" {
		// Text-only mode note, passed through for visibility.
		out.Error = parsed.Err
	}
	return out
}

// ListResumes returns the caller's resumes, or everyone's for admins.
func (h *ResumeHandler) ListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}
	isAdmin, _ := r.Context().Value("is_admin").(bool)

	var (
		resumes []models.Resume
		err     error
	)
	if isAdmin {
		resumes, err = h.dbclient.ListResumes(r.Context())
	} else {
		resumes, err = h.dbclient.ListResumesByUser(r.Context(), userID)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if resumes == nil {
		resumes = []models.Resume{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resumes)
}

// GetResumeFile streams the stored original file back to its owner (or an
// admin). ?download=1 switches Content-Disposition to attachment.
func (h *ResumeHandler) GetResumeFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}
	isAdmin, _ := r.Context().Value("is_admin").(bool)

	id := chi.URLParam(r, "id")
	resume, err := h.dbclient.GetResumeByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if resume == nil {
		http.Error(w, "resume not found", http.StatusNotFound)
		return
	}
	if !isAdmin && resume.UploadedBy != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	data, err := h.objectclient.GetFile(r.Context(), resume.ObjectKey)
	if err != nil {
		http.Error(w, "could not fetch file", http.StatusBadGateway)
		return
	}

	disposition := "inline"
	if r.URL.Query().Get("download") != "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", resume.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, resume.Filename))
	w.Write(data)
}

// SkillSuggestions autocompletes skills from the stored corpus. Queries
// shorter than 2 characters return an empty list.
func (h *ResumeHandler) SkillSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	w.Header().Set("Content-Type", "application/json")
	if len(q) < 2 {
		json.NewEncoder(w).Encode([]string{})
		return
	}

	skills, err := h.dbclient.ListSkills(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(rankSuggestions(skills, q))
}

type filterRequest struct {
	MandatorySkills []string `json:"mandatory_skills"`
	OptionalSkills  []string `json:"optional_skills"`
}

// FilterResumes filters the visible resumes by skill: all mandatory skills
// must match; optional skills apply only when no mandatory ones are given.
func (h *ResumeHandler) FilterResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}
	isAdmin, _ := r.Context().Value("is_admin").(bool)

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	var (
		resumes []models.Resume
		err     error
	)
	if isAdmin {
		resumes, err = h.dbclient.ListResumes(r.Context())
	} else {
		resumes, err = h.dbclient.ListResumesByUser(r.Context(), userID)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	matched := []models.Resume{}
	for i := range resumes {
		if matchesSkillFilters(&resumes[i], req.MandatorySkills, req.OptionalSkills) {
			matched = append(matched, resumes[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matched)
}
