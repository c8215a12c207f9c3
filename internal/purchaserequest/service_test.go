package purchaserequest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

var (
	testUser = &purchaserequest.UserReference{
		ID: "user-1", Name: "John Smith", Organization: "Information Technology Division",
		Role: purchaserequest.RoleRequester,
	}
	testFunding = &purchaserequest.FundingSource{
		ID: "fund-1", Name: "Operations & Maintenance", Code: "O&M-2025",
		AvailableBalance: decimal.NewFromInt(500000), FiscalYear: 2025,
	}
)

func validCreateParams() purchaserequest.CreateParams {
	return purchaserequest.CreateParams{
		RequesterID:     "user-1",
		Organization:    "Information Technology Division",
		NeedDate:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Justification:   "Replace end-of-life laptops",
		FundingSourceID: "fund-1",
		LineItems: []purchaserequest.LineItemParams{
			{Description: "Laptop", Quantity: 2, UnitPrice: decimal.RequireFromString("1250.50"), Category: purchaserequest.CategoryITEquipment},
			{Description: "Docking station", Quantity: 3, UnitPrice: decimal.NewFromInt(200)},
		},
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    func() purchaserequest.CreateParams
		setupMock func(r *purchaserequest.MockRepository, d *purchaserequest.MockDirectory)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validCreateParams,
			setupMock: func(r *purchaserequest.MockRepository, d *purchaserequest.MockDirectory) {
				d.EXPECT().GetUser(gomock.Any(), "user-1").Return(testUser, nil)
				d.EXPECT().GetFundingSource(gomock.Any(), "fund-1").Return(testFunding, nil)
				r.EXPECT().NextSequence(gomock.Any()).Return(7, nil)
				r.EXPECT().CreatePurchaseRequest(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "MissingOrganization",
			params: func() purchaserequest.CreateParams {
				p := validCreateParams()
				p.Organization = "  "
				return p
			},
			wantErr: purchaserequest.ErrValidation,
		},
		{
			name: "NoLineItems",
			params: func() purchaserequest.CreateParams {
				p := validCreateParams()
				p.LineItems = nil
				return p
			},
			wantErr: purchaserequest.ErrValidation,
		},
		{
			name: "ZeroQuantity",
			params: func() purchaserequest.CreateParams {
				p := validCreateParams()
				p.LineItems[0].Quantity = 0
				return p
			},
			wantErr: purchaserequest.ErrValidation,
		},
		{
			name: "NegativeUnitPrice",
			params: func() purchaserequest.CreateParams {
				p := validCreateParams()
				p.LineItems[1].UnitPrice = decimal.NewFromInt(-1)
				return p
			},
			wantErr: purchaserequest.ErrValidation,
		},
		{
			name: "UnknownPriority",
			params: func() purchaserequest.CreateParams {
				p := validCreateParams()
				p.Priority = "whenever"
				return p
			},
			wantErr: purchaserequest.ErrValidation,
		},
		{
			name:   "UnknownFundingSource",
			params: validCreateParams,
			setupMock: func(_ *purchaserequest.MockRepository, d *purchaserequest.MockDirectory) {
				d.EXPECT().GetUser(gomock.Any(), "user-1").Return(testUser, nil)
				d.EXPECT().GetFundingSource(gomock.Any(), "fund-1").Return(nil, purchaserequest.ErrNotFound)
			},
			wantErr: purchaserequest.ErrValidation,
		},
		{
			name:   "RepoError",
			params: validCreateParams,
			setupMock: func(r *purchaserequest.MockRepository, d *purchaserequest.MockDirectory) {
				d.EXPECT().GetUser(gomock.Any(), "user-1").Return(testUser, nil)
				d.EXPECT().GetFundingSource(gomock.Any(), "fund-1").Return(testFunding, nil)
				r.EXPECT().NextSequence(gomock.Any()).Return(1, nil)
				r.EXPECT().CreatePurchaseRequest(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := purchaserequest.NewMockRepository(ctrl)
			dir := purchaserequest.NewMockDirectory(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, dir)
			}

			ctx := actor.WithActor(context.Background(), actor.Actor{ID: "user-1", Name: "John Smith"})
			svc := purchaserequest.NewService(repo, dir, purchaserequest.WithClock(fixedClock))

			got, err := svc.Create(ctx, tt.params())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, purchaserequest.ErrValidation) {
					assert.ErrorIs(t, err, purchaserequest.ErrValidation)
				}

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, "PR-2025-007", got.PRNumber)
			assert.Equal(t, purchaserequest.StatusDraft, got.Status)
			assert.Equal(t, purchaserequest.PriorityMedium, got.Priority)
			assert.Equal(t, "3101", got.TotalAmount.String())
			assert.Equal(t, "2501", got.LineItems[0].TotalPrice.String())
			assert.Equal(t, purchaserequest.CategoryOther, got.LineItems[1].Category)
			assert.Equal(t, fixedNow, got.CreatedAt)

			require.Len(t, got.History, 1)
			assert.Equal(t, purchaserequest.ActionCreated, got.History[0].Action)
			assert.Equal(t, "user-1", got.History[0].ActorID)
			assert.Equal(t, "John Smith", got.History[0].ActorName)
		})
	}
}

func TestService_Create_DefaultsRequesterToActor(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := purchaserequest.NewMockRepository(ctrl)
	dir := purchaserequest.NewMockDirectory(ctrl)

	dir.EXPECT().GetUser(gomock.Any(), "user-1").Return(testUser, nil)
	dir.EXPECT().GetFundingSource(gomock.Any(), "fund-1").Return(testFunding, nil)
	repo.EXPECT().NextSequence(gomock.Any()).Return(1, nil)
	repo.EXPECT().CreatePurchaseRequest(gomock.Any(), gomock.Any()).Return(nil)

	params := validCreateParams()
	params.RequesterID = ""

	ctx := actor.WithActor(context.Background(), actor.Actor{ID: "user-1", Name: "John Smith"})
	got, err := purchaserequest.NewService(repo, dir).Create(ctx, params)

	require.NoError(t, err)
	assert.Equal(t, "John Smith", got.Requester.Name)
}

// applyTo makes UpdatePurchaseRequest run fn against a copy of pr, the way a store does.
func applyTo(pr *purchaserequest.PurchaseRequest) func(context.Context, uuid.UUID, func(*purchaserequest.PurchaseRequest) error) (*purchaserequest.PurchaseRequest, error) {
	return func(_ context.Context, _ uuid.UUID, fn func(*purchaserequest.PurchaseRequest) error) (*purchaserequest.PurchaseRequest, error) {
		next := pr.Clone()
		if err := fn(next); err != nil {
			return nil, err
		}

		return next, nil
	}
}

func TestService_Transition(t *testing.T) {
	type testCase struct {
		name       string
		from       purchaserequest.Status
		to         purchaserequest.Status
		wantErr    error
		wantAction purchaserequest.AuditAction
	}

	tests := []testCase{
		{name: "Submit", from: purchaserequest.StatusDraft, to: purchaserequest.StatusSubmitted, wantAction: purchaserequest.ActionSubmitted},
		{name: "StartReview", from: purchaserequest.StatusSubmitted, to: purchaserequest.StatusUnderReview, wantAction: purchaserequest.ActionReviewStarted},
		{name: "Approve", from: purchaserequest.StatusUnderReview, to: purchaserequest.StatusApproved, wantAction: purchaserequest.ActionApproved},
		{name: "Reject", from: purchaserequest.StatusUnderReview, to: purchaserequest.StatusRejected, wantAction: purchaserequest.ActionRejected},
		{name: "Reopen", from: purchaserequest.StatusRejected, to: purchaserequest.StatusDraft, wantAction: purchaserequest.ActionReopened},
		{name: "Cancel", from: purchaserequest.StatusSubmitted, to: purchaserequest.StatusCancelled, wantAction: purchaserequest.ActionCancelled},
		{name: "ApproveDraft", from: purchaserequest.StatusDraft, to: purchaserequest.StatusApproved, wantErr: purchaserequest.ErrInvalidTransition},
		{name: "LeaveApproved", from: purchaserequest.StatusApproved, to: purchaserequest.StatusDraft, wantErr: purchaserequest.ErrInvalidTransition},
		{name: "SubmitTwice", from: purchaserequest.StatusSubmitted, to: purchaserequest.StatusSubmitted, wantErr: purchaserequest.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			existing := &purchaserequest.PurchaseRequest{
				ID:      uuid.New(),
				Status:  tt.from,
				History: []purchaserequest.AuditEntry{{Action: purchaserequest.ActionCreated}},
			}

			repo := purchaserequest.NewMockRepository(ctrl)
			repo.EXPECT().
				UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).
				DoAndReturn(applyTo(existing))

			svc := purchaserequest.NewService(repo, purchaserequest.NewMockDirectory(ctrl), purchaserequest.WithClock(fixedClock))
			got, err := svc.Transition(context.Background(), existing.ID, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			require.Len(t, got.History, 2)
			assert.Equal(t, tt.wantAction, got.History[1].Action)
			assert.Equal(t, purchaserequest.Change{From: string(tt.from), To: string(tt.to)}, got.History[1].Changes["status"])
			assert.Equal(t, actor.System.ID, got.History[1].ActorID)
		})
	}
}

func TestService_Transition_UnknownTarget(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := purchaserequest.NewService(purchaserequest.NewMockRepository(ctrl), purchaserequest.NewMockDirectory(ctrl))
	_, err := svc.Transition(context.Background(), uuid.New(), "pending_approval")

	assert.ErrorIs(t, err, purchaserequest.ErrInvalidTransition)
}

func TestService_Transition_KeepsFirstSubmittedAt(t *testing.T) {
	ctrl := gomock.NewController(t)

	first := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	existing := &purchaserequest.PurchaseRequest{
		ID:          uuid.New(),
		Status:      purchaserequest.StatusDraft,
		SubmittedAt: &first,
	}

	repo := purchaserequest.NewMockRepository(ctrl)
	repo.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))

	got, err := purchaserequest.NewService(repo, purchaserequest.NewMockDirectory(ctrl), purchaserequest.WithClock(fixedClock)).
		Submit(context.Background(), existing.ID)

	require.NoError(t, err)
	assert.Equal(t, first, *got.SubmittedAt)
	assert.Equal(t, fixedNow, got.UpdatedAt)
}

func TestService_Reject_AppendsReason(t *testing.T) {
	ctrl := gomock.NewController(t)

	existing := &purchaserequest.PurchaseRequest{ID: uuid.New(), Status: purchaserequest.StatusUnderReview}

	repo := purchaserequest.NewMockRepository(ctrl)
	repo.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))

	got, err := purchaserequest.NewService(repo, purchaserequest.NewMockDirectory(ctrl), purchaserequest.WithClock(fixedClock)).
		Reject(context.Background(), existing.ID, "over budget")

	require.NoError(t, err)
	require.NotNil(t, got.RejectedAt)
	assert.Equal(t, "Purchase request rejected: over budget", got.History[0].Details)
}

func TestService_Update(t *testing.T) {
	type testCase struct {
		name      string
		status    purchaserequest.Status
		params    purchaserequest.UpdateParams
		setupMock func(r *purchaserequest.MockRepository, d *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest)
		wantErr   error
		check     func(t *testing.T, got *purchaserequest.PurchaseRequest)
	}

	tests := []testCase{
		{
			name:   "ReplacesLineItems",
			params: purchaserequest.UpdateParams{LineItems: []purchaserequest.LineItemParams{{Description: "Monitor", Quantity: 4, UnitPrice: decimal.NewFromInt(300)}}},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			check: func(t *testing.T, got *purchaserequest.PurchaseRequest) {
				assert.Equal(t, "1200", got.TotalAmount.String())
				assert.Equal(t, purchaserequest.Change{From: "100.00", To: "1200.00"}, got.History[0].Changes["total_amount"])
			},
		},
		{
			name:   "ChangesFundingSource",
			params: purchaserequest.UpdateParams{FundingSourceID: new("fund-1")},
			setupMock: func(r *purchaserequest.MockRepository, d *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				d.EXPECT().GetFundingSource(gomock.Any(), "fund-1").Return(testFunding, nil)
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			check: func(t *testing.T, got *purchaserequest.PurchaseRequest) {
				assert.Equal(t, "fund-1", got.FundingSource.ID)
				assert.Equal(t, purchaserequest.Change{From: "fund-2", To: "fund-1"}, got.History[0].Changes["funding_source"])
			},
		},
		{
			name:   "EmptyUpdateStillAudited",
			params: purchaserequest.UpdateParams{},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			check: func(t *testing.T, got *purchaserequest.PurchaseRequest) {
				require.Len(t, got.History, 1)
				assert.Equal(t, purchaserequest.ActionUpdated, got.History[0].Action)
				assert.Nil(t, got.History[0].Changes)
				assert.Equal(t, purchaserequest.StatusDraft, got.Status)
			},
		},
		{
			name:   "RejectedIsEditable",
			status: purchaserequest.StatusRejected,
			params: purchaserequest.UpdateParams{Justification: new("Added second quote")},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			check: func(t *testing.T, got *purchaserequest.PurchaseRequest) {
				assert.Equal(t, "Added second quote", got.Justification)
				assert.Equal(t, purchaserequest.StatusRejected, got.Status)
			},
		},
		{
			name:   "UpdateApproved",
			status: purchaserequest.StatusApproved,
			params: purchaserequest.UpdateParams{LineItems: []purchaserequest.LineItemParams{{Description: "Server", Quantity: 100, UnitPrice: decimal.NewFromInt(1000)}}},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			wantErr: purchaserequest.ErrInvalidTransition,
		},
		{
			name:   "UpdateCancelled",
			status: purchaserequest.StatusCancelled,
			params: purchaserequest.UpdateParams{LineItems: []purchaserequest.LineItemParams{{Description: "Server", Quantity: 100, UnitPrice: decimal.NewFromInt(1000)}}},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			wantErr: purchaserequest.ErrInvalidTransition,
		},
		{
			name:   "UpdateUnderReview",
			status: purchaserequest.StatusUnderReview,
			params: purchaserequest.UpdateParams{LineItems: []purchaserequest.LineItemParams{{Description: "Server", Quantity: 100, UnitPrice: decimal.NewFromInt(1000)}}},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			wantErr: purchaserequest.ErrInvalidTransition,
		},
		{
			name:   "UpdateSubmitted",
			status: purchaserequest.StatusSubmitted,
			params: purchaserequest.UpdateParams{LineItems: []purchaserequest.LineItemParams{{Description: "Server", Quantity: 100, UnitPrice: decimal.NewFromInt(1000)}}},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			wantErr: purchaserequest.ErrInvalidTransition,
		},
		{
			name:    "InvalidLineItem",
			params:  purchaserequest.UpdateParams{LineItems: []purchaserequest.LineItemParams{{Description: "Monitor", Quantity: 1}}},
			wantErr: purchaserequest.ErrValidation,
		},
		{
			name:   "BlankOrganization",
			params: purchaserequest.UpdateParams{Organization: new("")},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing))
			},
			wantErr: purchaserequest.ErrValidation,
		},
		{
			name:   "NotFound",
			params: purchaserequest.UpdateParams{},
			setupMock: func(r *purchaserequest.MockRepository, _ *purchaserequest.MockDirectory, existing *purchaserequest.PurchaseRequest) {
				r.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).Return(nil, purchaserequest.ErrNotFound)
			},
			wantErr: purchaserequest.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			status := tt.status
			if status == "" {
				status = purchaserequest.StatusDraft
			}

			existing := &purchaserequest.PurchaseRequest{
				ID:            uuid.New(),
				Status:        status,
				TotalAmount:   decimal.NewFromInt(100),
				FundingSource: purchaserequest.FundingSource{ID: "fund-2"},
			}

			repo := purchaserequest.NewMockRepository(ctrl)
			dir := purchaserequest.NewMockDirectory(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, dir, existing)
			}

			svc := purchaserequest.NewService(repo, dir, purchaserequest.WithClock(fixedClock))
			got, err := svc.Update(context.Background(), existing.ID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				assert.Empty(t, existing.History)
				assert.Equal(t, "100", existing.TotalAmount.String())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, existing.ID, got.ID)
			assert.Equal(t, fixedNow, got.UpdatedAt)
			tt.check(t, got)
		})
	}
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *purchaserequest.MockRepository)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "Filtered",
			setupMock: func(m *purchaserequest.MockRepository) {
				m.EXPECT().ListPurchaseRequests(gomock.Any()).Return(fixturePRs(), nil)
			},
			wantLen: 2,
		},
		{
			name: "Error",
			setupMock: func(m *purchaserequest.MockRepository) {
				m.EXPECT().ListPurchaseRequests(gomock.Any()).Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := purchaserequest.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := purchaserequest.NewService(repo, purchaserequest.NewMockDirectory(ctrl))
			got, err := svc.List(context.Background(), purchaserequest.Filter{
				Statuses: []purchaserequest.Status{purchaserequest.StatusSubmitted},
			})

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

type recordingMetrics struct {
	ops  []string
	errs []error
}

func (r *recordingMetrics) Observe(op string, _ time.Duration, err error) {
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

type recordingNotifier struct {
	actions []purchaserequest.AuditAction
}

func (r *recordingNotifier) Notify(_ context.Context, _ *purchaserequest.PurchaseRequest, e purchaserequest.AuditEntry) {
	r.actions = append(r.actions, e.Action)
}

func TestService_Options(t *testing.T) {
	ctrl := gomock.NewController(t)

	existing := &purchaserequest.PurchaseRequest{ID: uuid.New(), Status: purchaserequest.StatusDraft}

	repo := purchaserequest.NewMockRepository(ctrl)
	repo.EXPECT().UpdatePurchaseRequest(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyTo(existing)).Times(2)

	metrics := &recordingMetrics{}
	notifier := &recordingNotifier{}

	svc := purchaserequest.NewService(repo, purchaserequest.NewMockDirectory(ctrl),
		purchaserequest.WithMetrics(metrics), purchaserequest.WithNotifier(notifier))

	_, err := svc.Submit(context.Background(), existing.ID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), existing.ID, "")
	require.ErrorIs(t, err, purchaserequest.ErrInvalidTransition)

	assert.Equal(t, []string{"purchase_request.transition", "purchase_request.transition"}, metrics.ops)
	assert.NoError(t, metrics.errs[0])
	assert.ErrorIs(t, metrics.errs[1], purchaserequest.ErrInvalidTransition)
	assert.Equal(t, []purchaserequest.AuditAction{purchaserequest.ActionSubmitted}, notifier.actions)
}
