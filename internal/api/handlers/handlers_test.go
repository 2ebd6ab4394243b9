package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/internal/config"
	"resumeforge/internal/drafts"
	"resumeforge/internal/llm"
	"resumeforge/internal/renderer"
	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
)

func jsonRequest(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()

	var reader *strings.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(payload))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestTemplatesHandlerReturnsCatalog(t *testing.T) {
	rec, c := jsonRequest(t, http.MethodGet, "/api/v1/templates", nil)

	require.NoError(t, TemplatesHandler()(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Templates []models.TemplateInfo `json:"templates"`
		Default   string                `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Templates, 6)
	assert.Equal(t, "classic_pro", body.Default)
}

func TestRenderResumeHandlerReturnsHTML(t *testing.T) {
	r, err := renderer.New()
	require.NoError(t, err)

	req := models.RenderResumeRequest{
		TemplateID: "modern_tech",
		Resume: models.ResumeData{
			PersonalDetails: models.PersonalDetails{FirstName: "Jane", LastName: "Doe"},
		},
	}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/resume/render", req)

	require.NoError(t, RenderResumeHandler(r, nil)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), "Jane Doe")
}

func TestSaveDraftThenLatestRoundTrip(t *testing.T) {
	registry := drafts.NewRegistry(storage.NewMemoryDraftStore(), nil, 10*time.Millisecond)
	defer registry.Close(context.Background())

	req := models.SaveDraftRequest{
		AccountID: "acct-1",
		Content:   models.ResumeData{TargetRole: "SRE"},
	}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/resume/draft", req)
	require.NoError(t, SaveDraftHandler(registry)(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// The latest-draft fetch flushes the pending debounced edit.
	rec, c = jsonRequest(t, http.MethodGet, "/api/v1/resume/latest-draft?account_id=acct-1", nil)
	require.NoError(t, LatestDraftHandler(registry)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var draft models.Draft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.Equal(t, "SRE", draft.Content.TargetRole)
}

func TestLatestDraftMissingAccountRejected(t *testing.T) {
	registry := drafts.NewRegistry(storage.NewMemoryDraftStore(), nil, time.Second)
	rec, c := jsonRequest(t, http.MethodGet, "/api/v1/resume/latest-draft", nil)

	require.NoError(t, LatestDraftHandler(registry)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestDraftNotFound(t *testing.T) {
	registry := drafts.NewRegistry(storage.NewMemoryDraftStore(), nil, time.Second)
	rec, c := jsonRequest(t, http.MethodGet, "/api/v1/resume/latest-draft?account_id=nobody", nil)

	require.NoError(t, LatestDraftHandler(registry)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveResumeValidatesTemplateID(t *testing.T) {
	store := storage.NewMemoryResumeStore()

	req := models.SaveResumeRequest{
		AccountID:  "acct-1",
		TemplateID: "not_a_template",
		Title:      "My Resume",
	}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/resumes", req)
	require.NoError(t, SaveResumeHandler(store, nil)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveAndGetResume(t *testing.T) {
	store := storage.NewMemoryResumeStore()
	activity := storage.NewMemoryActivityStore()

	req := models.SaveResumeRequest{
		AccountID:  "acct-1",
		TemplateID: "classic_pro",
		Title:      "Backend Resume",
		Content:    models.ResumeData{TargetRole: "Backend Engineer"},
	}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/resumes", req)
	require.NoError(t, SaveResumeHandler(store, activity)(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved models.SavedResume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)

	rec, c = jsonRequest(t, http.MethodGet, "/api/v1/resumes/"+saved.ID+"?account_id=acct-1", nil)
	c.SetParamNames("id")
	c.SetParamValues(saved.ID)
	require.NoError(t, GetResumeHandler(store)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	entries, err := activity.ListByAccount(context.Background(), "acct-1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionResumeSave, entries[0].Action)
}

func TestUpdateResumePartialFields(t *testing.T) {
	store := storage.NewMemoryResumeStore()
	resume := &models.SavedResume{
		AccountID:  "acct-1",
		TemplateID: "classic_pro",
		Title:      "Original",
		Content:    models.ResumeData{TargetRole: "Engineer"},
	}
	require.NoError(t, store.Create(context.Background(), resume))

	newTitle := "Renamed"
	req := models.UpdateResumeRequest{AccountID: "acct-1", Title: &newTitle}
	rec, c := jsonRequest(t, http.MethodPut, "/api/v1/resumes/"+resume.ID, req)
	c.SetParamNames("id")
	c.SetParamValues(resume.ID)
	require.NoError(t, UpdateResumeHandler(store, nil)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := store.GetByID(context.Background(), "acct-1", resume.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Engineer", got.Content.TargetRole)
}

// cannedProvider satisfies llm.LLMProvider for handler-level tests.
type cannedProvider struct{ reply string }

func (p cannedProvider) GenerateResume(context.Context, *models.GenerateResumeRequest) (string, error) {
	return p.reply, nil
}
func (p cannedProvider) GenerateCoverLetter(context.Context, *models.GenerateCoverLetterRequest) (string, error) {
	return p.reply, nil
}
func (p cannedProvider) IsHealthy(context.Context) error { return nil }
func (p cannedProvider) GetProviderName() string         { return "canned" }

func TestGenerateResumeHandlerHappyPath(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	manager := llm.NewManager(cfg)
	manager.SetProvider(cannedProvider{reply: "RESUME_ATS: tuned for machines\nRESUME_HUMAN: tuned for people"})

	req := models.GenerateResumeRequest{
		Mode:    models.ModeCreateScratch,
		Account: models.AccountIdentity{ID: "acct-1"},
		Resume:  models.ResumeData{TargetRole: "Platform Engineer"},
	}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/resume/generate", req)
	require.NoError(t, GenerateResumeHandler(cfg, manager, nil)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GenerateResumeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "tuned for machines", resp.Result.ResumeATS)
	assert.Equal(t, "tuned for people", resp.Result.ResumeHuman)
}

func TestGenerateResumeHandlerRejectsUnknownMode(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	manager := llm.NewManager(cfg)
	manager.SetProvider(cannedProvider{reply: "unused"})

	req := models.GenerateResumeRequest{Mode: "MODE_Z"}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/resume/generate", req)
	require.NoError(t, GenerateResumeHandler(cfg, manager, nil)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportResumeHandlerMapsJSON(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	manager := llm.NewManager(cfg)
	manager.SetProvider(cannedProvider{reply: `RESUME_JSON: {"header": {"name": "Sam Lee"}}`})

	req := models.GenerateResumeRequest{
		Mode:       models.ModeFormatExisting,
		ResumeText: "Sam Lee, developer",
	}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/resume/import", req)
	require.NoError(t, ImportResumeHandler(cfg, manager, nil)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ImportResumeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Resume)
	assert.Equal(t, "Sam", resp.Resume.PersonalDetails.FirstName)
	assert.Equal(t, "Lee", resp.Resume.PersonalDetails.LastName)
}

func TestGenerateCoverLetterHandlerPersistsLetter(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	manager := llm.NewManager(cfg)
	manager.SetProvider(cannedProvider{reply: "COVER_LETTER_FULL:\nDear team, the long version.\n\nCOVER_LETTER_SHORT:\nThe short version.\n\nCOLD_EMAIL:\nSubject: intro"})

	store := storage.NewMemoryCoverLetterStore()
	req := models.GenerateCoverLetterRequest{
		Account:        models.AccountIdentity{ID: "acct-1", Name: "Jane Doe"},
		JobDescription: "We are hiring a platform engineer to run our compute fleet.",
	}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/cover-letters/generate", req)
	require.NoError(t, GenerateCoverLetterHandler(cfg, manager, store, nil)(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var letter models.CoverLetter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &letter))
	assert.Equal(t, "Cover Letter", letter.Title)
	assert.Equal(t, "Dear team, the long version.", letter.Content.Full)
	assert.Equal(t, "The short version.", letter.Content.Short)

	stored, err := store.GetByID(context.Background(), "acct-1", letter.ID)
	require.NoError(t, err)
	assert.Equal(t, "Subject: intro", stored.Content.ColdEmail)
}

func TestGenerateCoverLetterHandlerRequiresJobDescription(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	manager := llm.NewManager(cfg)
	manager.SetProvider(cannedProvider{reply: "unused"})

	req := models.GenerateCoverLetterRequest{
		Account:        models.AccountIdentity{ID: "acct-1"},
		JobDescription: "too short",
	}
	rec, c := jsonRequest(t, http.MethodPost, "/api/v1/cover-letters/generate", req)
	require.NoError(t, GenerateCoverLetterHandler(cfg, manager, storage.NewMemoryCoverLetterStore(), nil)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndDeleteCoverLetters(t *testing.T) {
	store := storage.NewMemoryCoverLetterStore()
	letter := &models.CoverLetter{
		AccountID:      "acct-1",
		Title:          "SRE application",
		JobDescription: "A long enough job description for the record.",
	}
	require.NoError(t, store.Create(context.Background(), letter))

	rec, c := jsonRequest(t, http.MethodGet, "/api/v1/cover-letters?account_id=acct-1", nil)
	require.NoError(t, ListCoverLettersHandler(store)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CoverLetters []models.CoverLetterSummary `json:"cover_letters"`
		Count        int                         `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "SRE application", body.CoverLetters[0].Title)

	rec, c = jsonRequest(t, http.MethodDelete, "/api/v1/cover-letters/"+letter.ID+"?account_id=acct-1", nil)
	c.SetParamNames("id")
	c.SetParamValues(letter.ID)
	require.NoError(t, DeleteCoverLetterHandler(store)(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := store.GetByID(context.Background(), "acct-1", letter.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
