// Package portalclient is the Go mirror of the admin browser client: it
// talks to the portal API and re-runs the same field validation locally
// for immediate feedback. The server remains the authority.
package portalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
	"time"

	"emp-portal/internal/validation"
)

// Employee mirrors the API's record shape.
type Employee struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Designation string    `json:"designation"`
	Gender      string    `json:"gender"`
	Course      string    `json:"course"`
	Image       string    `json:"image,omitempty"`
	CreateDate  time.Time `json:"createdate"`
}

// Image is a photo attached to a form submission.
type Image struct {
	Filename string
	MIME     string
	Reader   io.Reader
}

// EmployeeForm is the create/update form state.
type EmployeeForm struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Courses     []string
	Image       *Image
}

var (
	designations = []string{"HR", "Manager", "Sales"}
	genders      = []string{"Male", "Female", "Other"}
	courses      = []string{"MCA", "BCA", "BSC"}
)

// FieldErrors maps form field names to messages, like the per-field
// errors the browser form renders.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// Validate runs the shared validation rules plus the enum restrictions
// the form enforces through its select/radio/checkbox inputs.
func (f *EmployeeForm) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !validation.Email(f.Email) {
		errs["email"] = "Invalid email"
	}
	if strings.TrimSpace(f.Mobile) == "" {
		errs["mobile"] = "Mobile is required"
	} else if !validation.Mobile(f.Mobile) {
		errs["mobile"] = "Mobile must be 10 digits"
	}
	if !contains(designations, f.Designation) {
		errs["designation"] = "Designation is required"
	}
	if !contains(genders, f.Gender) {
		errs["gender"] = "Gender is required"
	}
	if len(f.Courses) == 0 {
		errs["course"] = "Select at least one course"
	} else {
		for _, c := range f.Courses {
			if !contains(courses, c) {
				errs["course"] = "Unknown course: " + c
				break
			}
		}
	}
	if f.Image != nil && !validation.ImageMIME(f.Image.MIME) {
		errs["image"] = "Only jpg/png allowed"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// APIError is a non-2xx response, carrying the server's JSON message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL  string
	httpc    *http.Client
	fullName string
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FullName is the display name from the last successful login — the only
// session state the client holds.
func (c *Client) FullName() string {
	return c.fullName
}

// Login checks the credentials and remembers the returned display name.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp struct {
		Success  bool   `json:"success"`
		Username string `json:"username"`
		FullName string `json:"fullName"`
	}
	if err := c.do(req, &resp); err != nil {
		return err
	}

	c.fullName = resp.FullName
	return nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/employees", nil)
	if err != nil {
		return nil, err
	}

	var employees []Employee
	if err := c.do(req, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) CreateEmployee(ctx context.Context, form EmployeeForm) (*Employee, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/employees", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var created Employee
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, form EmployeeForm) (*Employee, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/employees/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var updated Employee
	if err := c.do(req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/api/employees/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// encode assembles the multipart body the API expects: one field per
// scalar, the course list as repeated fields, the image as a file part
// carrying its MIME type.
func (f *EmployeeForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        f.Name,
		"email":       f.Email,
		"mobile":      f.Mobile,
		"designation": f.Designation,
		"gender":      f.Gender,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	for _, course := range f.Courses {
		if err := w.WriteField("course", course); err != nil {
			return nil, "", err
		}
	}

	if f.Image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`,
			quoteEscaper.Replace(f.Image.Filename)))
		h.Set("Content-Type", f.Image.MIME)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Image.Reader); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Server error"}
		var body struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Message != "" {
			apiErr.Message = body.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
