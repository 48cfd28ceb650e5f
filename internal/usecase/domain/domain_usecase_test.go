package domain

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"approval-workflow/internal/entities"
	"approval-workflow/internal/notification"
	"approval-workflow/internal/repository"
	"approval-workflow/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type notifierMock struct{ mock.Mock }

var _ notification.Dispatcher = (*notifierMock)(nil)

func (m *notifierMock) NotifyCreated(snap entities.RequestSnapshot) {
	m.Called(snap)
}

func (m *notifierMock) NotifyStatusChanged(snap entities.RequestSnapshot, actor entities.User, comments *string) {
	m.Called(snap, actor, comments)
}

// failingDecisions wraps a store and fails every decision with err.
type failingDecisions struct {
	*memory.Store
	err error
}

func (f *failingDecisions) DecideRequest(_ context.Context, _ entities.Decision) (*entities.ApprovalRequest, *entities.RequestLog, error) {
	return nil, nil, f.err
}

var _ repository.Repository = (*failingDecisions)(nil)

type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}

func newStore(clock *stepClock) *memory.Store {
	opts := []memory.Option{memory.WithReferenceData(memory.DemoUsers(), memory.DemoRequestTypes())}
	if clock != nil {
		opts = append(opts, memory.WithClock(clock.Now))
	}
	return memory.New(zap.NewNop().Sugar(), opts...)
}

func newUsecase(repo repository.Repository, n notification.Dispatcher) *Usecase {
	return New(zap.NewNop().Sugar(), context.Background(), repo, n, time.Second)
}

func quietNotifier() *notifierMock {
	n := &notifierMock{}
	n.On("NotifyCreated", mock.Anything).Maybe()
	n.On("NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything).Maybe()
	return n
}

func strPtr(s string) *string { return &s }

func createInput(title string) entities.CreateRequestInput {
	return entities.CreateRequestInput{
		Title:         title,
		Description:   strPtr("for the new hire"),
		RequesterID:   1,
		ApproverID:    2,
		RequestTypeID: 1,
	}
}

func TestUsecase_CreateRequest(t *testing.T) {
	n := &notifierMock{}
	n.On("NotifyCreated", mock.MatchedBy(func(s entities.RequestSnapshot) bool {
		return s.Request.Title == "New laptop" && s.Approver != nil && s.Approver.ID == 2
	})).Once()
	uc := newUsecase(newStore(nil), n)

	summary, err := uc.CreateRequest(context.Background(), createInput("New laptop"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, summary.ID)
	require.Equal(t, "New laptop", summary.Title)
	require.Equal(t, entities.StatusPending, summary.Status)
	require.Equal(t, "Hardware", summary.TypeName)
	require.Equal(t, "Alice Smith", summary.RelatedUserName)
	require.False(t, summary.CreatedAt.IsZero())
	n.AssertExpectations(t)

	created, err := uc.RequestsCreatedBy(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, summary.ID, created[0].ID)

	assigned, err := uc.RequestsAssignedTo(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	require.Equal(t, "John Doe", assigned[0].RelatedUserName)
}

func TestUsecase_CreateRequestRejectsBlankTitle(t *testing.T) {
	n := &notifierMock{}
	uc := newUsecase(newStore(nil), n)

	_, err := uc.CreateRequest(context.Background(), createInput("   "))
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	n.AssertNotCalled(t, "NotifyCreated", mock.Anything)
}

func TestUsecase_CreateRequestReportsFirstMissingReference(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*entities.CreateRequestInput)
		wantErr error
		wantMsg string
	}{
		{
			name: "requester checked first",
			mutate: func(in *entities.CreateRequestInput) {
				in.RequesterID, in.ApproverID, in.RequestTypeID = 999, 998, 997
			},
			wantErr: entities.ErrUserNotFound,
			wantMsg: "requester",
		},
		{
			name:    "approver before type",
			mutate:  func(in *entities.CreateRequestInput) { in.ApproverID, in.RequestTypeID = 998, 997 },
			wantErr: entities.ErrUserNotFound,
			wantMsg: "approver",
		},
		{
			name:    "type",
			mutate:  func(in *entities.CreateRequestInput) { in.RequestTypeID = 997 },
			wantErr: entities.ErrRequestTypeNotFound,
			wantMsg: "request type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := &notifierMock{}
			uc := newUsecase(newStore(nil), n)

			in := createInput("New laptop")
			tc.mutate(&in)
			_, err := uc.CreateRequest(context.Background(), in)
			require.ErrorIs(t, err, tc.wantErr)
			require.Contains(t, err.Error(), tc.wantMsg)

			created, err := uc.RequestsCreatedBy(context.Background(), in.RequesterID)
			require.NoError(t, err)
			require.Empty(t, created)
			n.AssertNotCalled(t, "NotifyCreated", mock.Anything)
		})
	}
}

func TestUsecase_ListsNewestFirst(t *testing.T) {
	clock := &stepClock{cur: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	uc := newUsecase(newStore(clock), quietNotifier())

	first, err := uc.CreateRequest(context.Background(), createInput("first"))
	require.NoError(t, err)
	second, err := uc.CreateRequest(context.Background(), createInput("second"))
	require.NoError(t, err)
	clock.Advance(time.Minute)
	third, err := uc.CreateRequest(context.Background(), createInput("third"))
	require.NoError(t, err)

	got, err := uc.RequestsCreatedBy(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, third.ID, got[0].ID)
	require.Equal(t, first.ID, got[1].ID)
	require.Equal(t, second.ID, got[2].ID)
}

func TestUsecase_ListsUnknownUserEmpty(t *testing.T) {
	uc := newUsecase(newStore(nil), quietNotifier())

	created, err := uc.RequestsCreatedBy(context.Background(), 999)
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Empty(t, created)

	assigned, err := uc.RequestsAssignedTo(context.Background(), 999)
	require.NoError(t, err)
	require.Empty(t, assigned)
}

func TestUsecase_ApproveRequest(t *testing.T) {
	n := quietNotifier()
	uc := newUsecase(newStore(nil), n)

	created, err := uc.CreateRequest(context.Background(), createInput("New laptop"))
	require.NoError(t, err)

	summary, err := uc.ApproveRequest(context.Background(), created.ID, strPtr("Looks good"), 2)
	require.NoError(t, err)
	require.Equal(t, entities.StatusApproved, summary.Status)
	require.Equal(t, "Alice Smith", summary.RelatedUserName)

	n.AssertCalled(t, "NotifyStatusChanged",
		mock.MatchedBy(func(s entities.RequestSnapshot) bool { return s.Request.Status == entities.StatusApproved }),
		mock.MatchedBy(func(u entities.User) bool { return u.ID == 2 }),
		mock.MatchedBy(func(c *string) bool { return c != nil && *c == "Looks good" }),
	)

	details, err := uc.RequestDetails(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusApproved, details.Status)
	require.Equal(t, "for the new hire", *details.Description)
	require.NotNil(t, details.Comments)
	require.Equal(t, "Looks good", *details.Comments)
}

func TestUsecase_DecisionLoggedOnce(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core).Sugar()
	store := memory.New(log, memory.WithReferenceData(memory.DemoUsers(), memory.DemoRequestTypes()))
	uc := New(log, context.Background(), store, quietNotifier(), time.Second)

	created, err := uc.CreateRequest(context.Background(), createInput("New laptop"))
	require.NoError(t, err)
	_, err = uc.ApproveRequest(context.Background(), created.ID, nil, 2)
	require.NoError(t, err)

	decided := logs.FilterMessage("request decided").All()
	require.Len(t, decided, 1)
	require.Equal(t, "usecase", decided[0].LoggerName)
}

func TestUsecase_DecisionOnTerminalRequest(t *testing.T) {
	uc := newUsecase(newStore(nil), quietNotifier())

	created, err := uc.CreateRequest(context.Background(), createInput("New laptop"))
	require.NoError(t, err)
	_, err = uc.ApproveRequest(context.Background(), created.ID, nil, 2)
	require.NoError(t, err)

	_, err = uc.RejectRequest(context.Background(), created.ID, strPtr("changed my mind"), 2)
	require.ErrorIs(t, err, entities.ErrInvalidState)
	require.Contains(t, err.Error(), "APPROVED")

	details, err := uc.RequestDetails(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusApproved, details.Status)
	require.Nil(t, details.Comments)
}

func TestUsecase_DecisionByWrongUser(t *testing.T) {
	store := newStore(nil)
	n := quietNotifier()
	uc := newUsecase(store, n)

	created, err := uc.CreateRequest(context.Background(), createInput("New laptop"))
	require.NoError(t, err)

	_, err = uc.ApproveRequest(context.Background(), created.ID, nil, 999)
	require.ErrorIs(t, err, entities.ErrUnauthorized)

	details, err := uc.RequestDetails(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusPending, details.Status)

	logs, err := store.ListRequestLogs(context.Background(), created.ID)
	require.NoError(t, err)
	require.Empty(t, logs)
	n.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_DecisionUnknownRequest(t *testing.T) {
	uc := newUsecase(newStore(nil), quietNotifier())

	_, err := uc.RejectRequest(context.Background(), uuid.New(), nil, 2)
	require.ErrorIs(t, err, entities.ErrRequestNotFound)

	_, err = uc.RequestDetails(context.Background(), uuid.New())
	require.ErrorIs(t, err, entities.ErrRequestNotFound)
}

func TestUsecase_ConcurrentDecisionsSingleWinner(t *testing.T) {
	store := newStore(nil)
	uc := newUsecase(store, quietNotifier())

	created, err := uc.CreateRequest(context.Background(), createInput("New laptop"))
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		conflict int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = uc.ApproveRequest(context.Background(), created.ID, nil, 2)
			} else {
				_, err = uc.RejectRequest(context.Background(), created.ID, nil, 2)
			}
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, entities.ErrInvalidState):
				conflict++
			default:
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	require.Equal(t, 15, conflict)

	logs, err := store.ListRequestLogs(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestUsecase_DetailsUseMostRecentComment(t *testing.T) {
	store := newStore(nil)
	uc := newUsecase(store, quietNotifier())

	created, err := uc.CreateRequest(context.Background(), createInput("New laptop"))
	require.NoError(t, err)

	details, err := uc.RequestDetails(context.Background(), created.ID)
	require.NoError(t, err)
	require.Nil(t, details.Comments)
	require.Equal(t, "Alice Smith", details.RelatedUserName)

	_, err = uc.RejectRequest(context.Background(), created.ID, nil, 2)
	require.NoError(t, err)

	details, err = uc.RequestDetails(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusRejected, details.Status)
	require.Nil(t, details.Comments)
}

func TestUsecase_FailedDecisionSkipsNotification(t *testing.T) {
	store := newStore(nil)
	n := quietNotifier()
	uc := newUsecase(store, n)

	created, err := uc.CreateRequest(context.Background(), createInput("New laptop"))
	require.NoError(t, err)

	boom := errors.New("connection reset")
	failing := newUsecase(&failingDecisions{Store: store, err: boom}, n)
	_, err = failing.ApproveRequest(context.Background(), created.ID, nil, 2)
	require.ErrorIs(t, err, boom)
	n.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_Directory(t *testing.T) {
	uc := newUsecase(newStore(nil), quietNotifier())

	users, err := uc.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 4)

	types, err := uc.RequestTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 4)
}

func TestResultLabel(t *testing.T) {
	require.Equal(t, "ok", resultLabel(nil))
	require.Equal(t, "not_found", resultLabel(entities.ErrRequestNotFound))
	require.Equal(t, "invalid_state", resultLabel(entities.ErrInvalidState))
	require.Equal(t, "unauthorized", resultLabel(entities.ErrUnauthorized))
	require.Equal(t, "invalid_argument", resultLabel(entities.ErrInvalidArgument))
	require.Equal(t, "error", resultLabel(errors.New("boom")))
}
