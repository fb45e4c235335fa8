package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

func TestOrganizationRequestHandler_Submit_Validation(t *testing.T) {
	bodies := []string{
		`{"contact_name":"Jo","email":"jo@acme.test","request_type":"demo"}`,
		`{"organization_name":"Acme","email":"jo@acme.test","request_type":"demo"}`,
		`{"organization_name":"Acme","contact_name":"Jo","request_type":"demo"}`,
		`{"organization_name":"Acme","contact_name":"Jo","email":"not-an-email","request_type":"demo"}`,
		`{"organization_name":"Acme","contact_name":"Jo","email":"jo@acme.test","request_type":"pizza"}`,
	}
	stub := &stubOrganizationRequestService{
		submitFn: func(context.Context, ports.OrganizationRequestInput) (*domain.OrganizationRequest, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	for _, body := range bodies {
		c, _ := newContext(http.MethodPost, "/api/organization-requests", body, nil)
		err := NewOrganizationRequestHandler(stub).Submit(c)
		if httpStatus(err) != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestOrganizationRequestHandler_Submit_Created(t *testing.T) {
	stub := &stubOrganizationRequestService{
		submitFn: func(_ context.Context, in ports.OrganizationRequestInput) (*domain.OrganizationRequest, error) {
			return &domain.OrganizationRequest{ID: 3, OrganizationName: in.OrganizationName, Status: domain.RequestStatusNew}, nil
		},
	}
	body := `{"organization_name":"Acme","contact_name":"Jo","email":"jo@acme.test","request_type":"consultation"}`
	c, rec := newContext(http.MethodPost, "/api/organization-requests", body, nil)

	if err := NewOrganizationRequestHandler(stub).Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}
