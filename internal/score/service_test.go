package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cocobridge/penguinhop/internal/apperrors"
	"github.com/cocobridge/penguinhop/internal/session"
)

func newTestScoreService() (*ScoreService, *ScoreRepositoryMock, *SessionFinderMock, *ChangeNotifierMock) {
	repo := &ScoreRepositoryMock{}
	sessions := &SessionFinderMock{}
	notifier := &ChangeNotifierMock{}
	return NewScoreService(repo, sessions, notifier), repo, sessions, notifier
}

func validSubmission() *SubmissionRequest {
	scoreVal, timeVal, valid := 500, 30, true
	return &SubmissionRequest{
		TournamentID: "t-1",
		GameID:       "penguin-hop",
		UserID:       "0xA",
		Score:        &scoreVal,
		Time:         &timeVal,
		IsValid:      &valid,
	}
}

func TestScoreService_Submit_Success(t *testing.T) {
	service, repo, sessions, notifier := newTestScoreService()

	var order []string
	sessions.On("Find", mock.Anything, "t-1", "0xA").
		Return(&session.GameSession{TournamentID: "t-1", UserID: "0xA"}, nil)
	repo.On("Append", mock.Anything, mock.AnythingOfType("*score.ScoreRecord")).
		Run(func(args mock.Arguments) { order = append(order, "append") }).
		Return(nil)
	notifier.On("NotifyChange").
		Run(func(args mock.Arguments) { order = append(order, "notify") }).
		Return()

	err := service.Submit(context.Background(), validSubmission())
	assert.NoError(t, err)
	assert.Equal(t, []string{"append", "notify"}, order, "write must happen before broadcast")
	repo.AssertExpectations(t)
	sessions.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestScoreService_Submit_MissingFields(t *testing.T) {
	service, repo, _, notifier := newTestScoreService()

	req := validSubmission()
	req.Score = nil

	err := service.Submit(context.Background(), req)
	assert.Error(t, err)
	assert.Equal(t, 400, apperrors.CodeOf(err))
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyChange")
}

func TestScoreService_Submit_UnknownSession(t *testing.T) {
	service, repo, sessions, notifier := newTestScoreService()

	sessions.On("Find", mock.Anything, "t-1", "0xA").
		Return(nil, apperrors.NewAppError(404, "Invalid game session", nil))

	err := service.Submit(context.Background(), validSubmission())
	assert.Error(t, err)
	assert.Equal(t, 404, apperrors.CodeOf(err))
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyChange")
}

func TestScoreService_Submit_StorageErrorSkipsBroadcast(t *testing.T) {
	service, repo, sessions, notifier := newTestScoreService()

	sessions.On("Find", mock.Anything, "t-1", "0xA").
		Return(&session.GameSession{TournamentID: "t-1", UserID: "0xA"}, nil)
	repo.On("Append", mock.Anything, mock.AnythingOfType("*score.ScoreRecord")).
		Return(apperrors.NewAppError(500, "Failed to store score", nil))

	err := service.Submit(context.Background(), validSubmission())
	assert.Error(t, err)
	assert.Equal(t, 500, apperrors.CodeOf(err))
	notifier.AssertNotCalled(t, "NotifyChange")
}

func TestScoreService_Submit_InvalidScoreIsStored(t *testing.T) {
	service, repo, sessions, notifier := newTestScoreService()

	var stored *ScoreRecord
	sessions.On("Find", mock.Anything, "t-1", "0xA").
		Return(&session.GameSession{TournamentID: "t-1", UserID: "0xA"}, nil)
	repo.On("Append", mock.Anything, mock.AnythingOfType("*score.ScoreRecord")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*ScoreRecord) }).
		Return(nil)
	notifier.On("NotifyChange").Return()

	req := validSubmission()
	flagged := false
	req.IsValid = &flagged

	err := service.Submit(context.Background(), req)
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.False(t, stored.IsValid)
	notifier.AssertCalled(t, "NotifyChange")
}

func TestScoreService_Leaderboard(t *testing.T) {
	service, repo, _, _ := newTestScoreService()

	entries := []RankedEntry{{UserID: "0xA", BestScore: 500}}
	repo.On("TopRanked", mock.Anything, 10).Return(entries, nil)

	result, err := service.Leaderboard(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, entries, result)
	repo.AssertExpectations(t)
}
