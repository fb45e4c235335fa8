package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

func TestAssessmentHandler_ValidateCode_Valid(t *testing.T) {
	stub := &stubAssessmentService{
		validateFn: func(_ context.Context, code string, _ ports.RequestMeta) (*domain.AssessmentCode, error) {
			return &domain.AssessmentCode{Code: "ABCD1234", Organization: "Acme", Questions: []string{"q1", "q2"}}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/assessment/validate-code", `{"code":"abcd1234"}`, nil)

	if err := NewAssessmentHandler(stub).ValidateCode(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp validCodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || !resp.Valid || resp.Organization != "Acme" || len(resp.Questions) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

// A missing code must still reach the service so the attempt is audited.
func TestAssessmentHandler_ValidateCode_MissingCodeReachesService(t *testing.T) {
	calls := 0
	stub := &stubAssessmentService{
		validateFn: func(_ context.Context, code string, _ ports.RequestMeta) (*domain.AssessmentCode, error) {
			calls++
			if code != "" {
				t.Fatalf("expected empty code, got %q", code)
			}
			return nil, domain.ErrInvalidInput
		},
	}

	for _, body := range []string{`{}`, `not-json`} {
		c, _ := newContext(http.MethodPost, "/api/assessment/validate-code", body, nil)
		err := NewAssessmentHandler(stub).ValidateCode(c)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("body %s: expected ErrInvalidInput, got %v", body, err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 service calls, got %d", calls)
	}
}

func TestAssessmentHandler_StartSession_MissingCode(t *testing.T) {
	stub := &stubAssessmentService{
		startFn: func(context.Context, ports.StartSessionInput) (*domain.AssessmentSession, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/api/assessment/sessions", `{"respondent_name":"Jo"}`, nil)

	err := NewAssessmentHandler(stub).StartSession(c)
	if httpStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAssessmentHandler_SubmitResponse_Validation(t *testing.T) {
	bodies := []string{
		`{"subdomain_id":1,"score":3}`,
		`{"question_id":"q1","score":3}`,
		`{"question_id":"q1","subdomain_id":1}`,
		`{"question_id":"q1","subdomain_id":1,"score":6}`,
	}
	stub := &stubAssessmentService{
		submitFn: func(context.Context, string, ports.ResponseInput) (*domain.AssessmentResponse, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	for _, body := range bodies {
		c, _ := newContext(http.MethodPost, "/api/assessment/sessions/s1/responses", body, nil)
		c.SetParamNames("id")
		c.SetParamValues("s1")

		err := NewAssessmentHandler(stub).SubmitResponse(c)
		if httpStatus(err) != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAssessmentHandler_SubmitResponse_Created(t *testing.T) {
	stub := &stubAssessmentService{
		submitFn: func(_ context.Context, sessionID string, in ports.ResponseInput) (*domain.AssessmentResponse, error) {
			if sessionID != "s1" || in.Score != 4 {
				t.Fatalf("unexpected args: %s %+v", sessionID, in)
			}
			return &domain.AssessmentResponse{ID: 1, SessionID: sessionID, QuestionID: in.QuestionID, Score: in.Score}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/assessment/sessions/s1/responses", `{"question_id":"q1","subdomain_id":2,"score":4}`, nil)
	c.SetParamNames("id")
	c.SetParamValues("s1")

	if err := NewAssessmentHandler(stub).SubmitResponse(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAssessmentHandler_CreateCode_MissingOrganization(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/admin/codes", `{"questions":["q1"]}`, alice)

	err := NewAssessmentHandler(&stubAssessmentService{}).CreateCode(c)
	if httpStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
