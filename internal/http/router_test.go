package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ticketzone/internal/auth"
	intconfig "ticketzone/internal/config"
	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/http/handlers"
	"ticketzone/internal/metrics"
	"ticketzone/internal/repositories"
	"ticketzone/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

// fakeTickets records inserts and list filters; other methods are unused here.
type fakeTickets struct {
	services.TicketStore
	inserted []models.Ticket
	filters  []repositories.TicketFilter
}

func (f *fakeTickets) Insert(_ context.Context, t models.Ticket) error {
	f.inserted = append(f.inserted, t)
	return nil
}

func (f *fakeTickets) List(_ context.Context, flt repositories.TicketFilter) (models.TicketPage, error) {
	f.filters = append(f.filters, flt)
	return models.TicketPage{Tickets: []models.Ticket{}, Page: flt.Page, Limit: flt.Limit}, nil
}

func (f *fakeTickets) GetByID(_ context.Context, id string) (models.Ticket, error) {
	return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
}

type fakeUsers struct {
	services.UserStore
	roles map[string]domain.Role
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	role, ok := f.roles[email]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return models.User{Email: email, Role: role}, nil
}

// fakeProvider knows no sessions, so any settlement that reaches it is a 404.
type fakeProvider struct{}

func (fakeProvider) CreateCheckoutSession(context.Context, models.CheckoutRequest) (models.CheckoutSession, error) {
	return models.CheckoutSession{}, domain.UpstreamError{Service: "payment provider"}
}

func (fakeProvider) GetSession(context.Context, string) (models.PaymentSession, error) {
	return models.PaymentSession{}, domain.NotFoundError{Resource: "payment session"}
}

type testServer struct {
	engine  *gin.Engine
	tickets *fakeTickets
	tokens  auth.JWTVerifier
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tickets := &fakeTickets{}
	users := fakeUsers{roles: map[string]domain.Role{
		"vendor@example.com": domain.RoleVendor,
		"user@example.com":   domain.RoleUser,
		"admin@example.com":  domain.RoleAdmin,
	}}
	verifier := auth.NewJWTVerifier(testSecret, time.Hour)

	env := intconfig.Env{CORSAllowedOrigins: []string{"http://localhost:5173"}, RequestTimeout: 5 * time.Second}
	r := NewRouter(env, Deps{
		Handler: handlers.Handler{
			Tickets:  services.TicketService{Tickets: tickets},
			Payments: services.PaymentService{Provider: fakeProvider{}},
		},
		Verifier: verifier,
		Roles:    services.RoleResolver{Users: users},
		Metrics:  metrics.New(),
	})
	return testServer{engine: r, tickets: tickets, tokens: verifier}
}

func (s testServer) do(t *testing.T, method, path, email, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if email != "" {
		token, err := s.tokens.Issue(email)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const ticketBody = `{"vendorName":"Night Lines","title":"Night coach","transportType":"Bus","from":"Dhaka","to":"Sylhet","price":"20.50","quantity":10}`

func TestCreateTicketRequiresVendor(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/ticket", "", ticketBody)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "unauthorized access", envelope(t, w)["message"])

	w = s.do(t, http.MethodPost, "/ticket", "user@example.com", ticketBody)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden access", envelope(t, w)["message"])

	w = s.do(t, http.MethodPost, "/ticket", "stranger@example.com", ticketBody)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Empty(t, s.tickets.inserted)
}

func TestCreateTicketBadToken(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/ticket", strings.NewReader(ticketBody))
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "forbidden access", envelope(t, w)["message"])
	assert.Empty(t, s.tickets.inserted)
}

func TestCreateTicketAsVendor(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/ticket", "Vendor@Example.com", ticketBody)
	require.Equal(t, http.StatusOK, w.Code)

	body := envelope(t, w)
	assert.Equal(t, true, body["acknowledged"])
	require.Len(t, s.tickets.inserted, 1)
	got := s.tickets.inserted[0]
	assert.Equal(t, got.ID, body["insertedId"])
	assert.Equal(t, "vendor@example.com", got.VendorEmail)
	assert.Equal(t, models.TicketPending, got.Status)
	assert.Equal(t, "bus", got.TransportType)
}

func TestCreateTicketEmptyBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/ticket", "vendor@example.com", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "request body is required", envelope(t, w)["message"])
}

func TestListTicketsIsPublic(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ticket?transportType=Bus&from=dha&page=2&limit=abc&sort=asc&isAdvertised=true", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, s.tickets.filters, 1)
	f := s.tickets.filters[0]
	assert.Equal(t, "bus", f.TransportType)
	assert.Equal(t, "dha", f.From)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, repositories.DefaultPageSize, f.Limit)
	assert.Equal(t, "asc", f.PriceSort)
	require.NotNil(t, f.IsAdvertised)
	assert.True(t, *f.IsAdvertised)
}

func TestListTicketsRejectsBadFlag(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ticket?isAdvertised=maybe", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := envelope(t, w)
	assert.Equal(t, true, body["error"])
	assert.Contains(t, body["message"], "isAdvertised")
	assert.Empty(t, s.tickets.filters)
}

func TestListTicketsByStatusRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ticket/status/accepted", "vendor@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.tickets.filters, 1)
	assert.Equal(t, models.TicketAccepted, s.tickets.filters[0].Status)

	w = s.do(t, http.MethodGet, "/ticket/status/sold", "vendor@example.com", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTicketErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ticket/not-an-id", "user@example.com", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/ticket/"+domain.NewID(), "user@example.com", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ticket not found", envelope(t, w)["message"])
}

func TestPaymentSuccessNeedsSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPatch, "/payment-success", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentSuccessReadsChunkedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPatch, "/payment-success", strings.NewReader(`{"sessionId":"cs_test_1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "payment session not found", envelope(t, w)["message"])
}

func TestPaymentSuccessQueryParam(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPatch, "/payment-success?session_id=cs_test_1", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSystemRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ticket Zone Server Running!", w.Body.String())

	w = s.do(t, http.MethodGet, "/db-check", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/",status="200"} 1`)
}
