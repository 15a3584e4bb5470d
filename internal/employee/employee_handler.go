package employee

import (
	"net/http"
	"strconv"

	employeeerrors "emp-portal/internal/employee/errors"
	"emp-portal/internal/shared/apperror"
	"emp-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
}

// employeeForm is the multipart field set shared by create and update.
// Required-ness is checked by the service, not binding tags, so the
// error order matches the documented validation sequence.
type employeeForm struct {
	Name        string   `form:"name"`
	Email       string   `form:"email"`
	Mobile      string   `form:"mobile"`
	Designation string   `form:"designation"`
	Gender      string   `form:"gender"`
	Courses     []string `form:"course"`
}

// readImage pulls the optional photo out of the multipart body. A missing
// file is not an error. The returned closer is non-nil iff a file was sent.
func (h *Handler) readImage(c *gin.Context) (*ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	img := &ImageUpload{
		Filename: fh.Filename,
		MIME:     fh.Header.Get("Content-Type"),
		Reader:   f,
	}
	return img, func() { f.Close() }, nil
}

func (h *Handler) Create(c *gin.Context) {
	h.logger.Debug("http create employee")

	var form employeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("http create employee bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid form data")
		return
	}

	img, closeImg, err := h.readImage(c)
	if err != nil {
		h.logger.Warn("http create employee read image failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid image upload")
		return
	}
	if closeImg != nil {
		defer closeImg()
	}

	resp, err := h.service.Create(c.Request.Context(), CreateEmployeeRequest{
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Designation: form.Designation,
		Gender:      form.Gender,
		Courses:     form.Courses,
		Image:       img,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	h.logger.Debug("http get all employees")

	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// The list is returned whole: filtering, sorting, and paging are the
	// client view's job.
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
		return
	}
	h.logger.Debug("http update employee", zap.Int64("employee_id", id))

	var form employeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("http update employee bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid form data")
		return
	}

	img, closeImg, err := h.readImage(c)
	if err != nil {
		h.logger.Warn("http update employee read image failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid image upload")
		return
	}
	if closeImg != nil {
		defer closeImg()
	}

	resp, err := h.service.Update(c.Request.Context(), id, UpdateEmployeeRequest{
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Designation: form.Designation,
		Gender:      form.Gender,
		Courses:     form.Courses,
		Image:       img,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
		return
	}
	h.logger.Debug("http delete employee", zap.Int64("employee_id", id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Employee deleted successfully")
}
