package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

func TestCustomerHandler_Create(t *testing.T) {
	svc := &stubCustomerService{}
	h := NewCustomerHandler(svc)

	c, rec := newContext(http.MethodPost, "/customers", `{"name":"Jansen","phone":"0612345678"}`, balie)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastCreate.Phone == nil || *svc.lastCreate.Phone != "0612345678" || svc.lastCreate.Email != nil {
		t.Fatalf("unexpected input: %+v", svc.lastCreate)
	}
	if !strings.Contains(rec.Body.String(), `"email":null`) {
		t.Fatalf("expected null email, got %s", rec.Body.String())
	}
}

func TestCustomerHandler_Create_RequiresName(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{})

	c, _ := newContext(http.MethodPost, "/customers", `{"phone":"06"}`, balie)
	err := h.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if detail, _ := domain.DetailOf(err); detail != "name is required" {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestCustomerHandler_Update_Partial(t *testing.T) {
	svc := &stubCustomerService{}
	h := NewCustomerHandler(svc)

	c, _ := newContext(http.MethodPatch, "/customers/3", `{"phone":"0699"}`, balie)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastUpdate.Name != nil || svc.lastUpdate.Phone == nil {
		t.Fatalf("unexpected update: %+v", svc.lastUpdate)
	}
}

func TestCustomerHandler_Get_NotFound(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{err: domain.NotFound("Not found")})

	c, _ := newContext(http.MethodGet, "/customers/99", "", balie)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
