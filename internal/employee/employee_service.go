package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	employeeerrors "emp-portal/internal/employee/errors"
	"emp-portal/internal/events"
	"emp-portal/internal/messaging/kafka"
	"emp-portal/internal/shared/contextutil"
	"emp-portal/internal/shared/counter"
	"emp-portal/internal/storage"
	"emp-portal/internal/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ListCacheKey = "employees:list"

const idSequenceName = "employee_id"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	uploads storage.Uploader
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	uploads storage.Uploader,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, counterRepo, uploads, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	uploads storage.Uploader,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		uploads: uploads,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

// validateFields runs the shared field rules in the order the API
// promises: required set, email format, mobile format. Uniqueness and
// image MIME come after, in Create/Update.
func validateFields(name, email, mobile, designation, gender string, courses []string) error {
	if !validation.Required(validation.RequiredFields{
		Name:        name,
		Email:       email,
		Mobile:      mobile,
		Designation: designation,
		Gender:      gender,
		Courses:     courses,
	}) {
		return employeeerrors.ErrMissingRequiredFields
	}
	if !validation.Email(email) {
		return employeeerrors.ErrInvalidEmail
	}
	if !validation.Mobile(mobile) {
		return employeeerrors.ErrInvalidMobile
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	if err := validateFields(req.Name, req.Email, req.Mobile, req.Designation, req.Gender, req.Courses); err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emailTaken, err := qtx.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		s.logger.Error("create employee email check failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if emailTaken {
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
	}

	mobileTaken, err := qtx.ExistsByMobile(ctx, req.Mobile, 0)
	if err != nil {
		s.logger.Error("create employee mobile check failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if mobileTaken {
		return EmployeeResponse{}, employeeerrors.ErrMobileAlreadyExists
	}

	// Upload before any store write so a storage failure leaves nothing
	// behind. Image is optional on create.
	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return EmployeeResponse{}, err
	}

	nextID, err := s.counter.NextValue(ctx, idSequenceName)
	if err != nil {
		s.logger.Error("create employee assign id failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:          nextID,
		Name:        req.Name,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Designation: req.Designation,
		Gender:      req.Gender,
		Course:      strings.Join(req.Courses, ","),
		ImageURL:    imageURL,
		CreatedAt:   time.Now().UTC(),
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.EmployeeCreated, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ListCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent list reads after an invalidation.
	v, err, _ := s.sf.Do(ListCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get all employees failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, ListCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", id),
	)

	if err := validateFields(req.Name, req.Email, req.Mobile, req.Designation, req.Gender, req.Courses); err != nil {
		s.logger.Warn("update employee validation failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Uniqueness checks exclude the record being updated, so resubmitting
	// an unchanged email or mobile succeeds.
	emailTaken, err := qtx.ExistsByEmail(ctx, req.Email, id)
	if err != nil {
		s.logger.Error("update employee email check failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if emailTaken {
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
	}

	mobileTaken, err := qtx.ExistsByMobile(ctx, req.Mobile, id)
	if err != nil {
		s.logger.Error("update employee mobile check failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if mobileTaken {
		return EmployeeResponse{}, employeeerrors.ErrMobileAlreadyExists
	}

	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl.Name = req.Name
	empl.Email = req.Email
	empl.Mobile = req.Mobile
	empl.Designation = req.Designation
	empl.Gender = req.Gender
	empl.Course = strings.Join(req.Courses, ",")
	if imageURL != "" {
		empl.ImageURL = imageURL
	}
	// ID and CreatedAt stay as loaded.

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("update employee success", zap.Int64("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("delete employee fetch existing failed", zap.Int64("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.EmployeeDeleted, empl); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("delete employee success", zap.Int64("employee_id", id))
	return nil
}

func (s *service) uploadImage(ctx context.Context, img *ImageUpload) (string, error) {
	if img == nil {
		return "", nil
	}
	if !validation.ImageMIME(img.MIME) {
		return "", employeeerrors.ErrInvalidImageType
	}
	if s.uploads == nil {
		return "", errors.New("image storage is not configured")
	}
	url, err := s.uploads.Upload(ctx, img.Filename, img.Reader)
	if err != nil {
		s.logger.Error("employee image upload failed", zap.String("filename", img.Filename), zap.Error(err))
		return "", err
	}
	return url, nil
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: empl.ID,
		Email:      empl.Email,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal lifecycle event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   strconv.FormatInt(empl.ID, 10),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("lifecycle event outbox persist failed",
			zap.Int64("employee_id", empl.ID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", ListCacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          empl.ID,
		Name:        empl.Name,
		Email:       empl.Email,
		Mobile:      empl.Mobile,
		Designation: empl.Designation,
		Gender:      empl.Gender,
		Course:      empl.Course,
		Image:       empl.ImageURL,
		CreateDate:  empl.CreatedAt,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
