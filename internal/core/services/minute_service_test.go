package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	"github.com/opsdesk/requisition_backend/internal/core/services"
	"github.com/opsdesk/requisition_backend/internal/dto"
)

// MockMinuteRepository is a mock type for the MinuteRepositoryFacade interface
type MockMinuteRepository struct {
	mock.Mock
}

func (m *MockMinuteRepository) FindMinuteByID(ctx context.Context, minuteID string) (*domain.Minute, error) {
	args := m.Called(ctx, minuteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Minute), args.Error(1)
}

func (m *MockMinuteRepository) FindMinutes(ctx context.Context, limit, offset int) ([]domain.Minute, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Minute), args.Error(1)
}

func (m *MockMinuteRepository) SaveMinute(ctx context.Context, minute domain.Minute) error {
	args := m.Called(ctx, minute)
	return args.Error(0)
}

func (m *MockMinuteRepository) UpdateMinute(ctx context.Context, minute domain.Minute) error {
	args := m.Called(ctx, minute)
	return args.Error(0)
}

func (m *MockMinuteRepository) DeleteMinute(ctx context.Context, minuteID string) error {
	args := m.Called(ctx, minuteID)
	return args.Error(0)
}

type MinuteServiceTestSuite struct {
	suite.Suite
	mockRepo *MockMinuteRepository
	service  *services.MinuteService
}

func (suite *MinuteServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMinuteRepository)
	suite.service = services.NewMinuteService(suite.mockRepo)
}

func (suite *MinuteServiceTestSuite) TestCreateMinute() {
	ctx := context.Background()
	meetingDate := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	suite.mockRepo.On("SaveMinute", ctx, mock.AnythingOfType("domain.Minute")).Return(nil).Once()

	minute, err := suite.service.CreateMinute(ctx, dto.CreateMinuteRequest{
		Title:     "Weekly sync",
		Date:      meetingDate,
		Attendees: []string{"Jane", "Omar"},
		Body:      "Budget review.",
		ActionItems: []dto.ActionItemInput{
			{Description: "Send revised budget", Owner: "Jane"},
		},
	}, regularPrincipal("Jane"))

	suite.Require().NoError(err)
	suite.NotEmpty(minute.MinuteID)
	suite.Equal("Weekly sync", minute.Title)
	suite.Equal(meetingDate, minute.Date)
	suite.Len(minute.ActionItems, 1)
	suite.False(minute.ActionItems[0].Done)
	suite.Equal("Jane", minute.CreatedBy.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MinuteServiceTestSuite) TestUpdateMinute_PartialFields() {
	ctx := context.Background()
	existing := &domain.Minute{
		MinuteID:  "m1",
		Title:     "Old title",
		Body:      "Old body",
		Attendees: []string{"Jane"},
	}
	suite.mockRepo.On("FindMinuteByID", ctx, "m1").Return(existing, nil).Once()

	var persisted domain.Minute
	suite.mockRepo.On("UpdateMinute", ctx, mock.AnythingOfType("domain.Minute")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(domain.Minute)
		}).
		Return(nil).Once()

	newTitle := "New title"
	updated, err := suite.service.UpdateMinute(ctx, "m1", dto.UpdateMinuteRequest{Title: &newTitle})

	suite.Require().NoError(err)
	suite.Equal("New title", updated.Title)
	// Fields not present in the request stay untouched.
	suite.Equal("Old body", persisted.Body)
	suite.Equal([]string{"Jane"}, persisted.Attendees)
}

func (suite *MinuteServiceTestSuite) TestUpdateMinute_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindMinuteByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateMinute(ctx, "missing", dto.UpdateMinuteRequest{})
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateMinute")
}

func (suite *MinuteServiceTestSuite) TestToggleActionItem() {
	ctx := context.Background()
	existing := &domain.Minute{
		MinuteID: "m1",
		ActionItems: []domain.ActionItem{
			{Description: "a"},
			{Description: "b"},
		},
	}
	suite.mockRepo.On("FindMinuteByID", ctx, "m1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateMinute", ctx, mock.AnythingOfType("domain.Minute")).Return(nil).Once()

	updated, err := suite.service.ToggleActionItem(ctx, "m1", 1, true)

	suite.Require().NoError(err)
	suite.False(updated.ActionItems[0].Done)
	suite.True(updated.ActionItems[1].Done)
}

func (suite *MinuteServiceTestSuite) TestToggleActionItem_IndexOutOfRange() {
	ctx := context.Background()
	existing := &domain.Minute{MinuteID: "m1", ActionItems: []domain.ActionItem{{Description: "a"}}}
	suite.mockRepo.On("FindMinuteByID", ctx, "m1").Return(existing, nil)

	_, err := suite.service.ToggleActionItem(ctx, "m1", 5, true)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ToggleActionItem(ctx, "m1", -1, true)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateMinute")
}

func (suite *MinuteServiceTestSuite) TestListMinutes() {
	ctx := context.Background()
	page := []domain.Minute{{MinuteID: "m1"}, {MinuteID: "m2"}}
	suite.mockRepo.On("FindMinutes", ctx, 20, 0).Return(page, nil).Once()

	result, err := suite.service.ListMinutes(ctx, 20, 0)
	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func TestMinuteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MinuteServiceTestSuite))
}
