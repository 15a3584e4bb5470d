package employee_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"emp-portal/internal/employee"
	employeeerrors "emp-portal/internal/employee/errors"
	"emp-portal/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn func(ctx context.Context) ([]employee.EmployeeResponse, error)
	UpdateFn func(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn func(ctx context.Context, id int64) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id int64) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type formImage struct {
	filename string
	mime     string
	content  string
}

// employeeFormBody builds the multipart body the admin panel submits:
// one field per scalar, a repeated "course" field, optionally a photo.
func employeeFormBody(t *testing.T, fields map[string]string, courses []string, img *formImage) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, mw.WriteField(k, v))
	}
	for _, course := range courses {
		assert.NoError(t, mw.WriteField("course", course))
	}
	if img != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+img.filename+`"`)
		h.Set("Content-Type", img.mime)
		part, err := mw.CreatePart(h)
		assert.NoError(t, err)
		_, err = part.Write([]byte(img.content))
		assert.NoError(t, err)
	}
	assert.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func validFormFields() map[string]string {
	return map[string]string{
		"name":        "Hukum",
		"email":       "hukum@example.com",
		"mobile":      "9876543210",
		"designation": "HR",
		"gender":      "M",
	}
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success with image", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Hukum", req.Name)
				assert.Equal(t, []string{"MCA", "BCA"}, req.Courses)
				if assert.NotNil(t, req.Image) {
					assert.Equal(t, "avatar.png", req.Image.Filename)
					assert.Equal(t, "image/png", req.Image.MIME)
				}
				return employee.EmployeeResponse{
					ID:         1,
					Name:       req.Name,
					Email:      req.Email,
					Course:     "MCA,BCA",
					Image:      "https://cdn.example.com/avatar.png",
					CreateDate: time.Now().UTC(),
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := employeeFormBody(t, validFormFields(), []string{"MCA", "BCA"}, &formImage{
			filename: "avatar.png",
			mime:     "image/png",
			content:  "png-bytes",
		})
		req := httptest.NewRequest(http.MethodPost, "/employees", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Hukum")
		assert.Contains(t, w.Body.String(), "MCA,BCA")
	})

	t.Run("success without image", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Nil(t, req.Image)
				return employee.EmployeeResponse{ID: 2, Name: req.Name}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := employeeFormBody(t, validFormFields(), []string{"MCA"}, nil)
		req := httptest.NewRequest(http.MethodPost, "/employees", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing fields propagate the validation message", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrMissingRequiredFields
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := employeeFormBody(t, map[string]string{"name": "Hukum"}, nil, nil)
		req := httptest.NewRequest(http.MethodPost, "/employees", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "All fields are required")
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := employeeFormBody(t, validFormFields(), []string{"MCA"}, nil)
		req := httptest.NewRequest(http.MethodPost, "/employees", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
		assert.Contains(t, w.Body.String(), "Email already exists")
	})

	t.Run("unknown service error returns 500", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := employeeFormBody(t, validFormFields(), []string{"MCA"}, nil)
		req := httptest.NewRequest(http.MethodPost, "/employees", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{
					{ID: 1, Name: "Hukum", Email: "hukum@example.com"},
					{ID: 2, Name: "Manish", Email: "manish@example.com"},
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hukum")
		assert.Contains(t, w.Body.String(), "Manish")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return nil, errors.New("database error")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, int64(3), id)
				assert.Equal(t, "Hukum", req.Name)
				return employee.EmployeeResponse{ID: id, Name: req.Name, Email: req.Email}, nil
			},
		}

		r := setupRouter()
		h := employee.NewHandler(svc)
		r.PUT("/employees/:id", h.Update)

		body, contentType := employeeFormBody(t, validFormFields(), []string{"MCA"}, nil)
		req := httptest.NewRequest(http.MethodPut, "/employees/3", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "hukum@example.com")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		r := setupRouter()
		h := employee.NewHandler(&fakeEmployeeService{})
		r.PUT("/employees/:id", h.Update)

		body, contentType := employeeFormBody(t, validFormFields(), []string{"MCA"}, nil)
		req := httptest.NewRequest(http.MethodPut, "/employees/abc", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid employee ID")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		r := setupRouter()
		h := employee.NewHandler(svc)
		r.PUT("/employees/:id", h.Update)

		body, contentType := employeeFormBody(t, validFormFields(), []string{"MCA"}, nil)
		req := httptest.NewRequest(http.MethodPut, "/employees/99", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Employee not found")
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id int64) error {
				assert.Equal(t, int64(5), id)
				return nil
			},
		}

		r := setupRouter()
		h := employee.NewHandler(svc)
		r.DELETE("/employees/:id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/employees/5", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Employee deleted successfully")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id int64) error {
				return employeeerrors.ErrEmployeeNotFound
			},
		}

		r := setupRouter()
		h := employee.NewHandler(svc)
		r.DELETE("/employees/:id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/employees/404", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		r := setupRouter()
		h := employee.NewHandler(&fakeEmployeeService{})
		r.DELETE("/employees/:id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/employees/x", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
