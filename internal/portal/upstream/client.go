// Package upstream is the portal's only egress to the supplier API. Every
// screen fetch and form action funnels through Client, and every request
// carries its session credentials via the context so Transport can attach the
// auth header.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

const defaultRequestTimeout = 15 * time.Second

// Client wraps the supplier API behind typed methods. baseURL includes the
// /api prefix, e.g. http://localhost:5000/api.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client around the given transport.
func NewClient(baseURL string, transport http.RoundTripper) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Timeout:   defaultRequestTimeout,
		},
	}
}

// --- Auth ---

// Login exchanges credentials for an API token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// ResetPassword consumes a one-time reset token to set a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/users/reset-password", body, nil)
}

// RequestPasswordReset asks the API to issue a reset token for a user.
func (c *Client) RequestPasswordReset(ctx context.Context, userID string) (string, error) {
	var out struct {
		ResetToken string `json:"reset_token"`
	}
	path := "/users/" + url.PathEscape(userID) + "/request-password-reset"
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return "", err
	}
	return out.ResetToken, nil
}

// --- Suppliers ---

// SupplierInput carries supplier create/update fields.
type SupplierInput struct {
	Name        string `json:"name"`
	FieldID     string `json:"field_id"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

func (c *Client) SearchSuppliers(ctx context.Context, query, fieldID string) ([]domain.Supplier, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	if fieldID != "" {
		q.Set("field_id", fieldID)
	}
	path := "/suppliers/search"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []domain.Supplier
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSupplier(ctx context.Context, input SupplierInput) (*domain.Supplier, error) {
	var out domain.Supplier
	if err := c.do(ctx, http.MethodPost, "/suppliers", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, id string, input SupplierInput) (*domain.Supplier, error) {
	var out domain.Supplier
	if err := c.do(ctx, http.MethodPut, "/suppliers/"+url.PathEscape(id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/suppliers/"+url.PathEscape(id), nil, nil)
}

// --- Reviews ---

// ReviewInput carries a new supplier review.
type ReviewInput struct {
	SupplierID string `json:"supplier_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
}

func (c *Client) SupplierReviews(ctx context.Context, supplierID string) ([]domain.Review, error) {
	var out []domain.Review
	path := "/suppliers/" + url.PathEscape(supplierID) + "/reviews"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReview(ctx context.Context, input ReviewInput) (*domain.Review, error) {
	var out domain.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Supplier fields ---

func (c *Client) SupplierFields(ctx context.Context) ([]domain.SupplierField, error) {
	var out []domain.SupplierField
	if err := c.do(ctx, http.MethodGet, "/supplier-fields", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSupplierField(ctx context.Context, name string) (*domain.SupplierField, error) {
	var out domain.SupplierField
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/supplier-fields", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameSupplierField(ctx context.Context, id, name string) (*domain.SupplierField, error) {
	var out domain.SupplierField
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPut, "/supplier-fields/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Supplier requests ---

// RequestInput carries a branch manager's new-supplier request.
type RequestInput struct {
	BranchID      string `json:"branch_id,omitempty"`
	SupplierName  string `json:"supplier_name"`
	FieldID       string `json:"field_id,omitempty"`
	ContactName   string `json:"contact_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Justification string `json:"justification,omitempty"`
}

func (c *Client) CreateSupplierRequest(ctx context.Context, input RequestInput) (*domain.SupplierRequest, error) {
	var out domain.SupplierRequest
	if err := c.do(ctx, http.MethodPost, "/supplier-requests", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PendingSupplierRequests(ctx context.Context) ([]domain.SupplierRequest, error) {
	var out []domain.SupplierRequest
	if err := c.do(ctx, http.MethodGet, "/supplier-requests/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ResolveSupplierRequest(ctx context.Context, id string, status domain.RequestStatus) (*domain.SupplierRequest, error) {
	var out domain.SupplierRequest
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, "/supplier-requests/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Notifications ---

func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PendingRequestsCount(ctx context.Context) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifications/pending-requests-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/notifications/mark-all-read", nil, nil)
}

// --- Users ---

// UserInput carries user register/update fields.
type UserInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	RoleID   int    `json:"role_id,omitempty"`
	BranchID string `json:"branch_id,omitempty"`
}

func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterUser(ctx context.Context, input UserInput) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPost, "/users/register", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// --- Branches ---

// Balance is a branch's current balance.
type Balance struct {
	BranchID string  `json:"branch_id"`
	Balance  float64 `json:"balance"`
}

func (c *Client) BranchOfUser(ctx context.Context, userID string) (*domain.Branch, error) {
	var out domain.Branch
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/branch", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BranchBalance(ctx context.Context, branchID string) (*Balance, error) {
	var out Balance
	if err := c.do(ctx, http.MethodGet, "/branches/"+url.PathEscape(branchID)+"/balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BranchTransactions(ctx context.Context, branchID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := c.do(ctx, http.MethodGet, "/branches/"+url.PathEscape(branchID)+"/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Dashboard and reports ---

func (c *Client) DashboardSummary(ctx context.Context, period domain.SummaryPeriod) (*domain.DashboardSummary, error) {
	var out domain.DashboardSummary
	path := "/dashboard/summary?period=" + url.QueryEscape(string(period))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AnnualCashFlow(ctx context.Context, year int) (*domain.AnnualCashFlow, error) {
	var out domain.AnnualCashFlow
	path := "/reports/annual-cash-flow?year=" + strconv.Itoa(year)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one API request: marshals body when present, decodes the
// response into out when asked, and turns every non-2xx answer into an
// *APIError built from the API's error envelope.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream: decode response: %w", err)
	}
	return nil
}

func decodeErrorMessage(body io.Reader) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil || envelope.Error == "" {
		return "unexpected upstream response"
	}
	return envelope.Error
}
