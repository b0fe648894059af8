package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vitrina/internal/access/models"
	"vitrina/internal/access/service/mocks"
	"vitrina/internal/sentinel"
	dErrors "vitrina/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockStore *mocks.MockStore
	service   *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(s.mockStore,
		WithLogger(logger),
		WithCheckTimeout(time.Second),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) record(telegramID int64) *models.AccessRecord {
	return &models.AccessRecord{
		ID:         uuid.New(),
		TelegramID: telegramID,
		CreatedAt:  time.Now().UTC(),
	}
}

func (s *ServiceSuite) TestIsAuthorized_RecordExists() {
	s.mockStore.EXPECT().
		FindByTelegramID(gomock.Any(), int64(42)).
		Return(s.record(42), nil)

	ok, err := s.service.IsAuthorized(context.Background(), 42)
	s.NoError(err)
	s.True(ok)
}

func (s *ServiceSuite) TestIsAuthorized_NoRecordDeniesWithoutError() {
	s.mockStore.EXPECT().
		FindByTelegramID(gomock.Any(), int64(42)).
		Return(nil, sentinel.ErrNotFound)

	ok, err := s.service.IsAuthorized(context.Background(), 42)
	s.NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestIsAuthorized_TransientFailureRetriesOnce() {
	gomock.InOrder(
		s.mockStore.EXPECT().
			FindByTelegramID(gomock.Any(), int64(42)).
			Return(nil, errors.New("connection reset")),
		s.mockStore.EXPECT().
			FindByTelegramID(gomock.Any(), int64(42)).
			Return(s.record(42), nil),
	)

	ok, err := s.service.IsAuthorized(context.Background(), 42)
	s.NoError(err)
	s.True(ok)
}

func (s *ServiceSuite) TestIsAuthorized_PersistentFailureFailsClosed() {
	s.mockStore.EXPECT().
		FindByTelegramID(gomock.Any(), int64(42)).
		Return(nil, errors.New("connection reset")).
		Times(2)

	ok, err := s.service.IsAuthorized(context.Background(), 42)
	s.False(ok)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestGrant_Success() {
	s.mockStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *models.AccessRecord) error {
			s.Equal(int64(42), record.TelegramID)
			s.NotEqual(uuid.Nil, record.ID)
			return nil
		})

	record, err := s.service.Grant(context.Background(), 42)
	s.NoError(err)
	s.Equal(int64(42), record.TelegramID)
}

func (s *ServiceSuite) TestGrant_DuplicateReportsConflict() {
	s.mockStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(sentinel.ErrAlreadyUsed)

	_, err := s.service.Grant(context.Background(), 42)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestGrant_RejectsNonPositiveID() {
	_, err := s.service.Grant(context.Background(), 0)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestRevoke_MissingRecordReportsNotFound() {
	s.mockStore.EXPECT().
		Delete(gomock.Any(), int64(42)).
		Return(sentinel.ErrNotFound)

	err := s.service.Revoke(context.Background(), 42)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestList() {
	s.mockStore.EXPECT().
		ListAll(gomock.Any()).
		Return([]*models.AccessRecord{s.record(1), s.record(2)}, nil)

	records, err := s.service.List(context.Background())
	s.NoError(err)
	s.Len(records, 2)
}
